package models

import (
	"fmt"
	"math"
	"strconv"
)

// Param identifies a logical device parameter independent of the protocol
// mnemonic a given model uses for it.
type Param int

const (
	ParamDevice Param = iota
	ParamVerbose
	ParamPing
	ParamPong
	ParamPower
	ParamPowerOn
	ParamPowerOff
	ParamVolume
	ParamMute
	ParamMuteOn
	ParamMuteOff
	ParamSourcesCount
	ParamSource
	ParamSourceList
	ParamAudioIn
	ParamVideoIn
	ParamStreamType
	ParamAudioModesCount
	ParamAudioMode
	ParamAudioModel
	ParamAudioType
	ParamVideoType
	ParamRoomPerfectPositionsCount
	ParamRoomPerfectPosition
	ParamRoomPerfectPositionList
	ParamVoicingsCount
	ParamVoicing
	ParamVoicingList
	ParamLipSync
	ParamBalance
	ParamZoneBPower
	ParamZoneBPowerOn
	ParamZoneBPowerOff
	ParamZoneBVolume
	ParamZoneBMute
	ParamZoneBMuteOn
	ParamZoneBMuteOff
	ParamZoneBSourcesCount
	ParamZoneBSource
	ParamZoneBSourceList
	ParamZoneBAudioIn
	ParamZoneBStreamType
	ParamTrimBass
	ParamTrimCentre
	ParamTrimHeight
	ParamTrimLFE
	ParamTrimSurround
	ParamTrimTreble
	ParamTrimTrebleSet
)

// String returns the logical parameter name, used in logs and errors.
func (p Param) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Param(%d)", int(p))
}

var paramNames = map[Param]string{
	ParamDevice:                    "device",
	ParamVerbose:                   "verbose",
	ParamPing:                      "ping",
	ParamPong:                      "pong",
	ParamPower:                     "power",
	ParamPowerOn:                   "power_on",
	ParamPowerOff:                  "power_off",
	ParamVolume:                    "volume",
	ParamMute:                      "mute",
	ParamMuteOn:                    "mute_on",
	ParamMuteOff:                   "mute_off",
	ParamSourcesCount:              "sources_count",
	ParamSource:                    "source",
	ParamSourceList:                "source_list",
	ParamAudioIn:                   "audio_input",
	ParamVideoIn:                   "video_input",
	ParamStreamType:                "stream_type",
	ParamAudioModesCount:           "audio_modes_count",
	ParamAudioMode:                 "audio_mode",
	ParamAudioModel:                "audio_model",
	ParamAudioType:                 "audio_type",
	ParamVideoType:                 "video_type",
	ParamRoomPerfectPositionsCount: "room_perfect_positions_count",
	ParamRoomPerfectPosition:       "room_perfect_position",
	ParamRoomPerfectPositionList:   "room_perfect_position_list",
	ParamVoicingsCount:             "voicings_count",
	ParamVoicing:                   "voicing",
	ParamVoicingList:               "voicing_list",
	ParamLipSync:                   "lipsync",
	ParamBalance:                   "balance",
	ParamZoneBPower:                "zone_b_power",
	ParamZoneBPowerOn:              "zone_b_power_on",
	ParamZoneBPowerOff:             "zone_b_power_off",
	ParamZoneBVolume:               "zone_b_volume",
	ParamZoneBMute:                 "zone_b_mute",
	ParamZoneBMuteOn:               "zone_b_mute_on",
	ParamZoneBMuteOff:              "zone_b_mute_off",
	ParamZoneBSourcesCount:         "zone_b_sources_count",
	ParamZoneBSource:               "zone_b_source",
	ParamZoneBSourceList:           "zone_b_source_list",
	ParamZoneBAudioIn:              "zone_b_audio_input",
	ParamZoneBStreamType:           "zone_b_stream_type",
	ParamTrimBass:                  "trim_bass",
	ParamTrimCentre:                "trim_centre",
	ParamTrimHeight:                "trim_height",
	ParamTrimLFE:                   "trim_lfe",
	ParamTrimSurround:              "trim_surround",
	ParamTrimTreble:                "trim_treble",
	ParamTrimTrebleSet:             "trim_treble_set",
}

// Descriptor is the immutable capability record for one device model.
//
// It carries everything the protocol engine needs to drive the model: the
// logical-parameter to mnemonic mapping, the setup query sequence sent after
// connect, hardware feature flags, legal control ranges, and the fixed-point
// scale factors for decibel encoding.
type Descriptor struct {
	// Name is the model identifier as reported by the DEVICE query
	// (e.g. "mp-60", "tdai-3400"). Matching is case-insensitive.
	Name string

	// Manufacturer is the device manufacturer name.
	Manufacturer string

	// Commands maps logical parameters to protocol mnemonics.
	Commands map[Param]string

	// Setup is the ordered parameter sequence queried after connect to
	// populate the state cache. ParamVerbose is sent as a set command
	// enabling push notifications; everything else as a query.
	Setup []Param

	// HasZoneB reports whether the model has an independently controllable
	// second output zone.
	HasZoneB bool

	// HasVideo reports whether the model routes video inputs/outputs.
	HasVideo bool

	// HasRoomPerfect reports whether the model supports RoomPerfect
	// room-correction positions and voicings.
	HasRoomPerfect bool

	// Trims is the set of trim channels the model exposes.
	Trims []Param

	// VolumeScale is the number of wire units per dB for volume values.
	// MP series: 20 (0.05 dB resolution). TDAI series: 10 (0.1 dB).
	VolumeScale int

	// TrimScale is the number of wire units per dB for trim values.
	// All current models use 10 (0.1 dB resolution).
	TrimScale int

	// VolumeMin and VolumeMax bound the legal master volume in dB.
	VolumeMin, VolumeMax float64

	// AudioInputs, VideoInputs and StreamTypes map protocol indices to
	// human-readable names. Empty on models without the feature.
	AudioInputs map[int]string
	VideoInputs map[int]string
	StreamTypes map[int]string

	// VideoOutputs maps video output indices to names, when present.
	VideoOutputs map[int]string
}

// Command returns the protocol mnemonic for a logical parameter and whether
// the model defines one.
func (d *Descriptor) Command(p Param) (string, bool) {
	cmd, ok := d.Commands[p]
	return cmd, ok
}

// HasTrim reports whether the model exposes the given trim channel.
func (d *Descriptor) HasTrim(p Param) bool {
	for _, t := range d.Trims {
		if t == p {
			return true
		}
	}
	return false
}

// TrimRange returns the legal bounds in dB for a trim channel.
// Bass and treble allow +/-12 dB, all other channels +/-10 dB.
func (d *Descriptor) TrimRange(p Param) (min, max float64) {
	switch p {
	case ParamTrimBass, ParamTrimTreble, ParamTrimTrebleSet:
		return -12.0, 12.0
	default:
		return -10.0, 10.0
	}
}

// FormatVolume renders a dB volume in the model's wire fixed-point form.
func (d *Descriptor) FormatVolume(db float64) string {
	return formatFixed(db, d.VolumeScale)
}

// ParseVolume decodes a wire fixed-point volume into dB.
func (d *Descriptor) ParseVolume(raw string) (float64, error) {
	return parseFixed(raw, d.VolumeScale)
}

// FormatTrim renders a dB trim offset in the model's wire fixed-point form.
func (d *Descriptor) FormatTrim(db float64) string {
	return formatFixed(db, d.TrimScale)
}

// ParseTrim decodes a wire fixed-point trim offset into dB.
func (d *Descriptor) ParseTrim(raw string) (float64, error) {
	return parseFixed(raw, d.TrimScale)
}

// AudioInputName resolves an audio input index to its name. Unknown indices
// fall back to a synthesized "audio-N" name so the cache never loses state.
func (d *Descriptor) AudioInputName(index int) string {
	if name, ok := d.AudioInputs[index]; ok {
		return name
	}
	return fmt.Sprintf("audio-%d", index)
}

// VideoInputName resolves a video input index to its name.
func (d *Descriptor) VideoInputName(index int) string {
	if name, ok := d.VideoInputs[index]; ok {
		return name
	}
	return fmt.Sprintf("video-%d", index)
}

// StreamTypeName resolves a stream type index to its name.
func (d *Descriptor) StreamTypeName(index int) string {
	if name, ok := d.StreamTypes[index]; ok {
		return name
	}
	return fmt.Sprintf("stream-%d", index)
}

func formatFixed(db float64, scale int) string {
	return strconv.Itoa(int(math.Round(db * float64(scale))))
}

func parseFixed(raw string, scale int) (float64, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid fixed-point value %q: %w", raw, err)
	}
	return float64(n) / float64(scale), nil
}
