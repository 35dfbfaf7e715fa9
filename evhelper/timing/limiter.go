package timing

import (
	"context"
	"time"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Limiter paces the event loop between polls.
type Limiter interface {
	// Wait blocks until the next poll is due or ctx is done, in which case
	// it returns ctx.Err(). A loop running late is not made to catch up.
	Wait(ctx context.Context) error

	// Reset restarts the schedule from now, e.g. after a pause.
	Reset()
}

// NewNoOpLimiter returns a limiter that never blocks, for headless runs.
func NewNoOpLimiter() Limiter {
	return noOpLimiter{}
}

type noOpLimiter struct{}

func (noOpLimiter) Wait(ctx context.Context) error { return ctx.Err() }
func (noOpLimiter) Reset()                         {}

// FrameDuration returns the duration of a single frame at fps.
// Non-positive rates fall back to DefaultFPS.
func FrameDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
