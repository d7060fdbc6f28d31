package utils

import "sync/atomic"

// Mount guards state-setting callbacks against late-arriving responses.
// A view creates one on mount and closes it on unmount; any async
// completion checks Alive before touching view state.
type Mount struct {
	closed atomic.Bool
}

func NewMount() *Mount {
	return &Mount{}
}

// Alive reports whether the owning view is still mounted.
func (m *Mount) Alive() bool {
	return !m.closed.Load()
}

// Close marks the owner as unmounted. Safe to call more than once.
func (m *Mount) Close() {
	m.closed.Store(true)
}
