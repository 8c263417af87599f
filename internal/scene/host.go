package scene

import (
	"errors"
	"slices"
)

// Operation is an in-flight load or unload.
type Operation interface {
	Done() bool
}

// Host is the engine side that actually owns content units.
//
// BeginLoad and BeginUnload may return a nil Operation or an error when the
// request cannot be started; the Loader treats both as a failed attempt.
type Host interface {
	BeginLoad(name string, additive bool) (Operation, error)
	BeginUnload(name string) (Operation, error)
	Activate(name string)
	IsLoaded(name string) bool
}

// MemoryHost is a Host that keeps content units in memory. Each operation
// completes after a fixed number of polls, which makes load timing
// deterministic for tests and the terminal front end.
type MemoryHost struct {
	latency int
	loaded  map[string]bool
	active  string
	refuse  map[string]bool
	log     []string
}

// NewMemoryHost creates a host whose operations need latency extra polls
// before reporting done.
func NewMemoryHost(latency int) *MemoryHost {
	if latency < 0 {
		latency = 0
	}
	return &MemoryHost{
		latency: latency,
		loaded:  make(map[string]bool),
		refuse:  make(map[string]bool),
	}
}

// Refuse makes every future operation on name fail to start.
func (h *MemoryHost) Refuse(name string) {
	h.refuse[name] = true
}

// Allow undoes Refuse.
func (h *MemoryHost) Allow(name string) {
	delete(h.refuse, name)
}

// BeginLoad starts loading name. A non-additive load replaces every other
// loaded unit when it completes.
func (h *MemoryHost) BeginLoad(name string, additive bool) (Operation, error) {
	if h.refuse[name] {
		return nil, errors.New("host refused load of " + name)
	}
	h.log = append(h.log, "load:"+name)

	return &memoryOp{remaining: h.latency, apply: func() {
		if !additive {
			clear(h.loaded)
		}
		h.loaded[name] = true
	}}, nil
}

// BeginUnload starts unloading name.
func (h *MemoryHost) BeginUnload(name string) (Operation, error) {
	if h.refuse[name] {
		return nil, errors.New("host refused unload of " + name)
	}
	h.log = append(h.log, "unload:"+name)

	return &memoryOp{remaining: h.latency, apply: func() {
		delete(h.loaded, name)
		if h.active == name {
			h.active = ""
		}
	}}, nil
}

// Activate marks name as the foreground unit if it is loaded.
func (h *MemoryHost) Activate(name string) {
	if !h.loaded[name] {
		return
	}
	h.active = name
	h.log = append(h.log, "activate:"+name)
}

// IsLoaded reports whether name has finished loading.
func (h *MemoryHost) IsLoaded(name string) bool {
	return h.loaded[name]
}

// Active returns the foreground unit, or "" if none.
func (h *MemoryHost) Active() string {
	return h.active
}

// Loaded returns the loaded unit names in sorted order.
func (h *MemoryHost) Loaded() []string {
	names := make([]string, 0, len(h.loaded))
	for name := range h.loaded {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Log returns the ordered record of started operations and activations.
func (h *MemoryHost) Log() []string {
	return slices.Clone(h.log)
}

type memoryOp struct {
	remaining int
	apply     func()
	applied   bool
}

func (op *memoryOp) Done() bool {
	if op.remaining > 0 {
		op.remaining--
		return false
	}
	if !op.applied {
		op.apply()
		op.applied = true
	}
	return true
}
