package lookup

import (
	"errors"
	"sync/atomic"
)

// ErrSubmitInFlight reports that a draft submission is already outstanding.
var ErrSubmitInFlight = errors.New("submission already in flight")

// SubmitGuard allows at most one in-flight submission per draft. Repeated
// triggers while a create/update call is outstanding return
// ErrSubmitInFlight instead of dispatching a duplicate.
type SubmitGuard struct {
	busy atomic.Bool
}

// Do runs fn unless a previous call is still running. The guard is released
// whether fn succeeds or fails, so a rejected submission can be retried.
func (g *SubmitGuard) Do(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer g.busy.Store(false)
	return fn()
}

// InFlight reports whether a submission is outstanding, for disabling the
// submit action.
func (g *SubmitGuard) InFlight() bool { return g.busy.Load() }
