package routine

import (
	"context"
	"time"
)

// DefaultInterval is the pause between ticks.
const DefaultInterval = 1000 * time.Millisecond

// Pacer suspends the tick loop between steps. Pause returns once, after the
// interval has elapsed, or early with ctx.Err() if the run is cancelled.
type Pacer interface {
	Pause(ctx context.Context) error
}

// TimerPacer pauses for a fixed wall-clock Interval.
type TimerPacer struct {
	Interval time.Duration
}

// NewTimerPacer returns a TimerPacer; a non-positive interval means
// DefaultInterval.
func NewTimerPacer(interval time.Duration) *TimerPacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TimerPacer{Interval: interval}
}

// Pause implements Pacer.
func (p *TimerPacer) Pause(ctx context.Context) error {
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ImmediatePacer continues without waiting. Used for headless runs and tests.
type ImmediatePacer struct{}

// Pause implements Pacer.
func (ImmediatePacer) Pause(ctx context.Context) error {
	return ctx.Err()
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context) error

// Pause implements Pacer.
func (f PacerFunc) Pause(ctx context.Context) error {
	return f(ctx)
}
