package bridge

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned when work is posted to a loop that has exited.
var ErrLoopStopped = errors.New("menu owner loop stopped")

// Loop serializes every menu-tree read and mutation onto a single owning
// goroutine. The underlying UI toolkit forbids concurrent menu mutation, so
// exclusivity is enforced by design here rather than detected at runtime.
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
}

// NewLoop constructs a Loop. Run must be called before work is posted.
func NewLoop() *Loop {
	return &Loop{
		tasks:   make(chan func(), 64),
		stopped: make(chan struct{}),
	}
}

// Run executes posted tasks in arrival order until the context is canceled.
// It must be called from the goroutine that owns the native menu subsystem.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Submit enqueues f for execution on the owner goroutine and returns
// immediately. Tasks run strictly in submission order.
func (l *Loop) Submit(f func()) error {
	select {
	case <-l.stopped:
		return ErrLoopStopped
	default:
	}
	select {
	case <-l.stopped:
		return ErrLoopStopped
	case l.tasks <- f:
		return nil
	}
}

// Do runs f on the owner goroutine and blocks until it completes. It must
// not be called from the owner goroutine itself.
func (l *Loop) Do(f func()) error {
	done := make(chan struct{})
	if err := l.Submit(func() {
		defer close(done)
		f()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	}
}
