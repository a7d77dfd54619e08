package lyngdorf

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/avcontrol/lyngdorf/internal/protocol"
	"github.com/avcontrol/lyngdorf/pkg/models"
)

// buildReverseMap inverts a descriptor's command table so inbound mnemonics
// resolve to logical parameters. A mnemonic may fan out to more than one
// parameter. Set-only aliases that share a status mnemonic are excluded.
func buildReverseMap(desc *models.Descriptor) map[string][]models.Param {
	reverse := make(map[string][]models.Param, len(desc.Commands))
	for p, mnemonic := range desc.Commands {
		if p == models.ParamTrimTrebleSet {
			continue
		}
		reverse[mnemonic] = append(reverse[mnemonic], p)
	}
	return reverse
}

// handleFrame runs on the connection reader goroutine for every decoded
// frame. It updates the state mirror, fires the parameter callbacks for
// each affected field, then fires the generic change callbacks exactly
// once. PONG replies feed the keep-alive clock and nothing else.
func (r *Receiver) handleFrame(f protocol.Frame) {
	r.mu.Lock()
	r.lastRx = time.Now()
	r.mu.Unlock()

	if pong, ok := r.desc.Command(models.ParamPong); ok && f.Mnemonic == pong {
		return
	}

	params, known := r.reverse[f.Mnemonic]
	if !known {
		r.log.Debug("unknown mnemonic", zap.String("mnemonic", f.Mnemonic), zap.String("param", f.Param))
	}

	for _, p := range params {
		target, value, fire := r.applyFrame(p, f)
		if !fire {
			continue
		}
		for _, fn := range r.callbacks.paramSnapshot(target) {
			r.safeCallParam(fn, value)
		}
	}

	for _, fn := range r.callbacks.changeSnapshot() {
		r.safeCallChange(fn)
	}
}

// applyFrame decodes one frame for one logical parameter and writes the
// mirror. It returns the parameter whose callbacks should fire (set-style
// frames like MUTEON fire under their status parameter), the decoded value,
// and whether to fire at all.
func (r *Receiver) applyFrame(p models.Param, f protocol.Frame) (models.Param, any, bool) {
	switch p {
	case models.ParamVolume, models.ParamZoneBVolume:
		db, err := r.desc.ParseVolume(f.Param)
		if err != nil {
			r.logBadParam(f, err)
			return p, nil, false
		}
		r.setCache(p, db)
		return p, db, true

	case models.ParamTrimBass, models.ParamTrimCentre, models.ParamTrimHeight,
		models.ParamTrimLFE, models.ParamTrimSurround, models.ParamTrimTreble:
		db, err := r.desc.ParseTrim(f.Param)
		if err != nil {
			r.logBadParam(f, err)
			return p, nil, false
		}
		r.setCache(p, db)
		return p, db, true

	case models.ParamPower, models.ParamZoneBPower, models.ParamMute, models.ParamZoneBMute:
		on, ok := parseOnOff(f.Param)
		if !ok {
			r.logBadParam(f, nil)
			return p, nil, false
		}
		r.setCache(p, on)
		return p, on, true

	case models.ParamPowerOn:
		r.setCache(models.ParamPower, true)
		return models.ParamPower, true, true
	case models.ParamPowerOff:
		r.setCache(models.ParamPower, false)
		return models.ParamPower, false, true
	case models.ParamZoneBPowerOn:
		r.setCache(models.ParamZoneBPower, true)
		return models.ParamZoneBPower, true, true
	case models.ParamZoneBPowerOff:
		r.setCache(models.ParamZoneBPower, false)
		return models.ParamZoneBPower, false, true

	case models.ParamMuteOn:
		r.setCache(models.ParamMute, true)
		return models.ParamMute, true, true
	case models.ParamMuteOff:
		r.setCache(models.ParamMute, false)
		return models.ParamMute, false, true
	case models.ParamZoneBMuteOn:
		r.setCache(models.ParamZoneBMute, true)
		return models.ParamZoneBMute, true, true
	case models.ParamZoneBMuteOff:
		r.setCache(models.ParamZoneBMute, false)
		return models.ParamZoneBMute, false, true

	case models.ParamDevice, models.ParamAudioModel,
		models.ParamAudioType, models.ParamVideoType,
		models.ParamBalance:
		r.setCache(p, f.Param)
		return p, f.Param, true

	case models.ParamLipSync:
		ms, err := strconv.Atoi(f.Param)
		if err != nil {
			r.logBadParam(f, err)
			return p, nil, false
		}
		r.setCache(p, ms)
		return p, ms, true

	case models.ParamSourcesCount, models.ParamZoneBSourcesCount,
		models.ParamAudioModesCount, models.ParamRoomPerfectPositionsCount,
		models.ParamVoicingsCount:
		n, err := strconv.Atoi(f.Param)
		if err != nil {
			r.logBadParam(f, err)
			return p, nil, false
		}
		r.mu.Lock()
		r.listForCount(p).setCount(n)
		r.cache[p] = n
		r.mu.Unlock()
		return p, n, true

	case models.ParamSource, models.ParamZoneBSource, models.ParamAudioMode,
		models.ParamRoomPerfectPosition, models.ParamVoicing:
		return r.applyListFrame(p, f)

	case models.ParamAudioIn, models.ParamZoneBAudioIn:
		return r.applyIndexedName(p, f, r.desc.AudioInputName)
	case models.ParamVideoIn:
		return r.applyIndexedName(p, f, r.desc.VideoInputName)
	case models.ParamStreamType, models.ParamZoneBStreamType:
		return r.applyIndexedName(p, f, r.desc.StreamTypeName)
	}

	// Acks (VERB) and list-query echoes carry no state.
	return p, nil, false
}

// applyListFrame handles the dual meaning of indexed name frames: while the
// counted list is filling they are entries, afterwards they are the current
// selection.
func (r *Receiver) applyListFrame(p models.Param, f protocol.Frame) (models.Param, any, bool) {
	index, err := strconv.Atoi(f.Param)
	if err != nil {
		r.logBadParam(f, err)
		return p, nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.listForSelection(p)
	if !list.full() {
		list.add(index, f.Text)
		return p, nil, false
	}

	name := f.Text
	if name == "" {
		if n, ok := list.names[index]; ok {
			name = n
		}
	}
	r.cache[p] = name
	return p, name, true
}

// applyIndexedName resolves an integer index through a descriptor table.
func (r *Receiver) applyIndexedName(p models.Param, f protocol.Frame, lookup func(int) string) (models.Param, any, bool) {
	index, err := strconv.Atoi(f.Param)
	if err != nil {
		r.logBadParam(f, err)
		return p, nil, false
	}
	name := lookup(index)
	r.setCache(p, name)
	return p, name, true
}

// listForCount maps a COUNT parameter to its list. Callers hold r.mu.
func (r *Receiver) listForCount(p models.Param) *namedList {
	switch p {
	case models.ParamSourcesCount:
		return &r.sources
	case models.ParamZoneBSourcesCount:
		return &r.zoneBSources
	case models.ParamAudioModesCount:
		return &r.audioModes
	case models.ParamRoomPerfectPositionsCount:
		return &r.positions
	default:
		return &r.voicings
	}
}

// listForSelection maps a selection parameter to its list. Callers hold r.mu.
func (r *Receiver) listForSelection(p models.Param) *namedList {
	switch p {
	case models.ParamSource:
		return &r.sources
	case models.ParamZoneBSource:
		return &r.zoneBSources
	case models.ParamAudioMode:
		return &r.audioModes
	case models.ParamRoomPerfectPosition:
		return &r.positions
	default:
		return &r.voicings
	}
}

// parseOnOff accepts the boolean encodings the devices use.
func parseOnOff(s string) (on bool, ok bool) {
	switch s {
	case "1", "ON":
		return true, true
	case "0", "OFF":
		return false, true
	default:
		return false, false
	}
}

func (r *Receiver) logBadParam(f protocol.Frame, err error) {
	r.log.Warn("undecodable parameter",
		zap.String("mnemonic", f.Mnemonic),
		zap.String("param", f.Param),
		zap.Error(err),
	)
}

// Callback invocation with panic isolation. A broken observer must never
// unwind the reader goroutine.

func (r *Receiver) safeCallParam(fn func(any), v any) {
	defer r.recoverCallback()
	fn(v)
}

func (r *Receiver) safeCallChange(fn func()) {
	defer r.recoverCallback()
	fn()
}

func (r *Receiver) safeCallLost(fn func(error), err error) {
	defer r.recoverCallback()
	fn(err)
}

func (r *Receiver) recoverCallback() {
	if p := recover(); p != nil {
		r.log.Error("callback panicked", zap.Any("panic", p), zap.Stack("stack"))
	}
}
