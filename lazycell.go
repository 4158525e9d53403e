// lazycell provides thread-safe lazy one-time initialization: a Cell computes
// its contained value exactly once, on first access, no matter how many
// goroutines race to be first, and serves every later read with a single
// atomic load plus a branch.
//
// If the initializer fails, the cell is poisoned: the failure is permanent,
// every present and future caller receives the same error, and the
// initializer is never retried. This keeps "exactly once" honest for
// initializers with side effects, where a silent retry could run partial
// side effects twice. See ErrInitializerFailed.
package lazycell

import (
	"errors"
	"fmt"

	"github.com/peterldowns/lazycell/internal/initstate"
)

// ErrInitializerFailed is wrapped by every error returned from a poisoned
// cell. Use errors.Is(err, lazycell.ErrInitializerFailed) to distinguish "the
// producer failed during its one permitted attempt" from errors of your own.
var ErrInitializerFailed = errors.New("lazycell: initializer failed")

// Cell holds a single value of type T that is computed at most once. A Cell
// starts empty; the first call to Get runs the producer and publishes the
// result, and every call after that returns the published value without
// running anything.
//
// A Cell must be created with New. The zero value panics on first use rather
// than deadlocking.
//
// Once initialized, the contained value is effectively immutable and the
// returned pointer may be shared across any number of goroutines without
// further synchronization. Callers must not write through the pointer.
type Cell[T any] struct {
	state *initstate.State
	// value is valid if and only if state is Initialized. It is never read
	// before that, and never written after.
	value T
	// err is the poison error, valid if and only if state is Poisoned. It is
	// created once and returned identically to every caller, present or
	// future.
	err error
}

// New returns an empty Cell.
func New[T any]() *Cell[T] {
	return &Cell[T]{state: initstate.New()}
}

// Get returns a pointer to the cell's value, running producer to compute it
// if no caller has before.
//
// If the cell is already initialized, Get costs one atomic load and a branch,
// regardless of how many callers came before or where the call site lives.
// Otherwise exactly one of the racing callers runs producer; the rest block
// until it publishes a result. Producer runs at most once per Cell, ever,
// across all concurrent and sequential calls.
//
// If producer returns an error or panics, the cell is poisoned: Get returns
// an error wrapping both ErrInitializerFailed and the producer's error, now
// and on every future call, and producer is never retried.
//
// Producer must not call back into the same Cell; like sync.Once.Do, a
// re-entrant call deadlocks.
func (c *Cell[T]) Get(producer func() (T, error)) (*T, error) {
	c.ensure()
	if c.state.Ready() {
		return &c.value, nil
	}
	return c.getSlow(producer)
}

func (c *Cell[T]) getSlow(producer func() (T, error)) (*T, error) {
	if !c.state.TryBegin() {
		// Some other caller won the race to initialize. Block until it
		// publishes an outcome.
		if status := c.state.Wait(); status == initstate.Initialized {
			return &c.value, nil
		}
		return nil, c.err
	}

	returned := false
	defer func() {
		if returned {
			return
		}
		// Producer panicked or called runtime.Goexit. Poison the cell before
		// the unwind continues so that waiters are not stranded and later
		// callers see a deterministic failure.
		if r := recover(); r != nil {
			c.err = fmt.Errorf("%w: producer panicked: %v", ErrInitializerFailed, r)
			c.state.MarkPoisoned()
			panic(r)
		}
		c.err = fmt.Errorf("%w: producer exited before returning", ErrInitializerFailed)
		c.state.MarkPoisoned()
	}()

	value, err := producer()
	returned = true
	if err != nil {
		c.err = fmt.Errorf("%w: %w", ErrInitializerFailed, err)
		c.state.MarkPoisoned()
		return nil, c.err
	}
	c.value = value
	c.state.MarkDone()
	return &c.value, nil
}

// Initialize eagerly forces the cell, discarding the value. It is behaviorally
// identical to calling Get and ignoring the pointer, and just as idempotent:
// calling it once or a thousand times, before or after other accesses, runs
// producer at most once and adds no steady-state cost.
func (c *Cell[T]) Initialize(producer func() (T, error)) error {
	_, err := c.Get(producer)
	return err
}

// MustGet is Get for callers that treat initialization failure as fatal. It
// panics if the cell is, or becomes, poisoned.
func (c *Cell[T]) MustGet(producer func() (T, error)) *T {
	value, err := c.Get(producer)
	if err != nil {
		panic(err)
	}
	return value
}

// Ready reports whether the cell already holds a value. It never blocks and
// never runs a producer.
func (c *Cell[T]) Ready() bool {
	c.ensure()
	return c.state.Ready()
}

func (c *Cell[T]) ensure() {
	if c.state == nil {
		panic("lazycell: zero Cell, must be created with New")
	}
}
