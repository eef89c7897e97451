package aggregate

import (
	"context"
	"time"
)

// Pacer inserts the pause between successive keyword fetches so the
// feed source is not hammered. Wait returns early with the context
// error when the run is cancelled.
type Pacer interface {
	Wait(ctx context.Context) error
}

// DelayPacer waits a fixed duration between fetches.
type DelayPacer struct {
	Delay time.Duration
}

// Wait blocks for the configured delay or until the context is done.
func (p DelayPacer) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer skips pacing entirely. Tests use it to run without real
// time delay.
type NopPacer struct{}

// Wait returns immediately, still honoring cancellation.
func (NopPacer) Wait(ctx context.Context) error { return ctx.Err() }
