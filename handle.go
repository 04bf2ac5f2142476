// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import "code.hybscloud.com/atomix"

// Handle states. A handle moves from handlePending to handleResolved
// exactly once.
const (
	handlePending  = 0
	handleResolved = 1
)

// Handle is a write-once completion slot for one requested identity.
// The round executor resolves it with either a value or an error;
// the blocked continuation reads it afterwards. First writer wins:
// the state transition is a single atomix compare-and-swap, and a
// second completion attempt is ignored.
type Handle struct {
	state atomix.Uint32
	value any
	err   error
}

// complete resolves the handle with a value or an error.
// Reports false if the handle was already resolved; the late write
// is discarded, never overwrites.
func (h *Handle) complete(value any, err error) bool {
	if !h.state.CompareAndSwap(handlePending, handleResolved) {
		return false
	}
	h.value = value
	h.err = err
	return true
}

// Resolved reports whether the handle holds a terminal status.
func (h *Handle) Resolved() bool {
	return h.state.Load() == handleResolved
}

// status returns the terminal status. The continuation is only
// re-evaluated after its round completed, so an unresolved read is a
// scheduler bug, not a data condition.
func (h *Handle) status() (any, error) {
	if h.state.Load() != handleResolved {
		panic("fetch: handle read before resolution")
	}
	return h.value, h.err
}
