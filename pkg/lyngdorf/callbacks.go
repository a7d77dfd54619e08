package lyngdorf

import (
	"sync"

	"github.com/avcontrol/lyngdorf/pkg/models"
)

// CallbackHandle identifies a registered callback so it can be removed.
type CallbackHandle uint64

type paramCallback struct {
	handle CallbackHandle
	fn     func(value any)
}

type changeCallback struct {
	handle CallbackHandle
	fn     func()
}

type lostCallback struct {
	handle CallbackHandle
	fn     func(err error)
}

type decodeCallback struct {
	handle CallbackHandle
	fn     func(err error)
}

// callbackRegistry holds the callback kinds a Receiver supports.
// Callbacks fire in registration order.
type callbackRegistry struct {
	mu      sync.Mutex
	next    CallbackHandle
	byParam map[models.Param][]paramCallback
	change  []changeCallback
	lost    []lostCallback
	decode  []decodeCallback
}

func newCallbackRegistry() *callbackRegistry {
	return &callbackRegistry{byParam: make(map[models.Param][]paramCallback)}
}

func (r *callbackRegistry) addParam(p models.Param, fn func(any)) CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.byParam[p] = append(r.byParam[p], paramCallback{handle: r.next, fn: fn})
	return r.next
}

func (r *callbackRegistry) addChange(fn func()) CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.change = append(r.change, changeCallback{handle: r.next, fn: fn})
	return r.next
}

func (r *callbackRegistry) addLost(fn func(error)) CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.lost = append(r.lost, lostCallback{handle: r.next, fn: fn})
	return r.next
}

func (r *callbackRegistry) addDecode(fn func(error)) CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.decode = append(r.decode, decodeCallback{handle: r.next, fn: fn})
	return r.next
}

// remove deletes the callback with the given handle, whichever kind it is.
func (r *callbackRegistry) remove(h CallbackHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p, list := range r.byParam {
		for i, cb := range list {
			if cb.handle == h {
				r.byParam[p] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
	for i, cb := range r.change {
		if cb.handle == h {
			r.change = append(r.change[:i:i], r.change[i+1:]...)
			return
		}
	}
	for i, cb := range r.lost {
		if cb.handle == h {
			r.lost = append(r.lost[:i:i], r.lost[i+1:]...)
			return
		}
	}
	for i, cb := range r.decode {
		if cb.handle == h {
			r.decode = append(r.decode[:i:i], r.decode[i+1:]...)
			return
		}
	}
}

// snapshots return copies so callbacks run without holding the lock.

func (r *callbackRegistry) paramSnapshot(p models.Param) []func(any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byParam[p]
	out := make([]func(any), len(list))
	for i, cb := range list {
		out[i] = cb.fn
	}
	return out
}

func (r *callbackRegistry) changeSnapshot() []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]func(), len(r.change))
	for i, cb := range r.change {
		out[i] = cb.fn
	}
	return out
}

func (r *callbackRegistry) lostSnapshot() []func(error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]func(error), len(r.lost))
	for i, cb := range r.lost {
		out[i] = cb.fn
	}
	return out
}

func (r *callbackRegistry) decodeSnapshot() []func(error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]func(error), len(r.decode))
	for i, cb := range r.decode {
		out[i] = cb.fn
	}
	return out
}
