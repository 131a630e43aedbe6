package setup

import (
	"context"
	"time"
)

// Pending is an operation whose result arrives later. The wizard only cares
// that it finished; a real backend call can replace a Delay without changing
// the state machine.
type Pending interface {
	Await(ctx context.Context) error
}

// PendingFunc adapts a function to Pending.
type PendingFunc func(ctx context.Context) error

// Await calls f.
func (f PendingFunc) Await(ctx context.Context) error { return f(ctx) }

// Delay resolves after d or when ctx is done, whichever is first.
func Delay(d time.Duration) Pending {
	return PendingFunc(func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Sequence awaits ops in order and stops at the first error.
func Sequence(ops ...Pending) Pending {
	return PendingFunc(func(ctx context.Context) error {
		for _, op := range ops {
			if err := op.Await(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// Interaction is the TestInteraction pending operation split in two: Load
// ends the loading indicator, Reveal then shows the message.
type Interaction struct {
	Load   Pending
	Reveal Pending
}

// NewInteraction builds the simulated check-in from two fixed delays.
func NewInteraction(loading, reveal time.Duration) Interaction {
	return Interaction{Load: Delay(loading), Reveal: Delay(reveal)}
}

// DefaultInteraction uses the 2000ms loading and 500ms reveal delays.
func DefaultInteraction() Interaction {
	return NewInteraction(2000*time.Millisecond, 500*time.Millisecond)
}

// Await runs the whole interaction.
func (i Interaction) Await(ctx context.Context) error {
	return Sequence(i.Load, i.Reveal).Await(ctx)
}
