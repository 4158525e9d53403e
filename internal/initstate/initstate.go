// initstate contains the atomic state machine that backs every lazycell
// container. It tracks whether a cell's one-time initializer has not yet run,
// is currently running, succeeded, or failed, and lets losers of the
// initialization race block until the winner publishes an outcome.
package initstate

import (
	"sync/atomic"
)

// Status is the lifecycle position of a one-time initializer.
//
// Transitions are monotonic:
//
//	Uninitialized → Initializing → Initialized
//	                             → Poisoned
//
// No status is ever revisited. The Uninitialized → Initializing edge is taken
// by exactly one caller, enforced with a compare-and-swap rather than a lock.
type Status uint32

const (
	// Uninitialized means the initializer has never been attempted.
	Uninitialized Status = iota
	// Initializing means exactly one caller is currently running the
	// initializer.
	Initializing
	// Initialized means the initializer succeeded and its result has been
	// published.
	Initialized
	// Poisoned means the initializer failed. It will never be retried.
	Poisoned
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Initialized:
		return "initialized"
	case Poisoned:
		return "poisoned"
	}
	return "unknown"
}

// State is the synchronization backbone of a cell. It holds no payload.
//
// A State must be created with New; the zero value is not usable.
type State struct {
	status atomic.Uint32
	// done is closed exactly once, after a terminal status (Initialized or
	// Poisoned) has been stored. Waiters block on it instead of spinning.
	done chan struct{}
}

// New returns a State in the Uninitialized status.
func New() *State {
	return &State{done: make(chan struct{})}
}

// Status returns the current status as a single atomic load. A caller that
// observes Initialized is guaranteed to also observe every write the winner
// made before calling MarkDone.
func (s *State) Status() Status {
	return Status(s.status.Load())
}

// Ready reports whether the status is Initialized. This is the fast path: one
// atomic load and a comparison, no lock, no contention.
func (s *State) Ready() bool {
	return s.Status() == Initialized
}

// TryBegin attempts the Uninitialized → Initializing transition. It succeeds
// for at most one caller across all concurrent invocations; a false return
// means some other caller is initializing or already has.
func (s *State) TryBegin() bool {
	if s.done == nil {
		panic("initstate: zero State, must be created with New")
	}
	return s.status.CompareAndSwap(uint32(Uninitialized), uint32(Initializing))
}

// MarkDone performs the Initializing → Initialized transition and wakes every
// waiter. Only the caller that won TryBegin may call it, after the result has
// been stored.
func (s *State) MarkDone() {
	s.finish(Initialized)
}

// MarkPoisoned performs the Initializing → Poisoned transition and wakes
// every waiter. Only the caller that won TryBegin may call it, after the
// failure has been recorded.
func (s *State) MarkPoisoned() {
	s.finish(Poisoned)
}

// finish publishes a terminal status. Reaching it from any status other than
// Initializing is a broken invariant, not a recoverable condition.
func (s *State) finish(terminal Status) {
	if !s.status.CompareAndSwap(uint32(Initializing), uint32(terminal)) {
		panic("initstate: transition to " + terminal.String() + " from a status other than initializing")
	}
	close(s.done)
}

// Wait blocks until the status has left Initializing, then returns it. If
// initialization has not begun, or has already finished, Wait returns the
// current status without blocking.
func (s *State) Wait() Status {
	if st := s.Status(); st != Initializing {
		return st
	}
	if s.done == nil {
		panic("initstate: zero State, must be created with New")
	}
	<-s.done
	return s.Status()
}
