package timing

import (
	"context"
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps until the next frame and spins for the last
// millisecond. Accumulated drift is corrected every second of frames.
type AdaptiveLimiter struct {
	target       time.Duration
	correctEvery int64
	next         time.Time
	frames       int64
}

func NewAdaptiveLimiter(fps float64) *AdaptiveLimiter {
	target := FrameDuration(fps)
	every := int64(time.Second / target)
	if every < 1 {
		every = 1
	}
	return &AdaptiveLimiter{
		target:       target,
		correctEvery: every,
		next:         time.Now(),
	}
}

func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	now := time.Now()
	wait := a.next.Sub(now)

	switch {
	case wait >= 2*time.Millisecond:
		if err := sleep(ctx, wait-time.Millisecond); err != nil {
			return err
		}
		for time.Now().Before(a.next) {
		}
	case wait > 0:
		for time.Now().Before(a.next) {
			// short waits are spun for accuracy
		}
	case wait < -5*time.Millisecond:
		// too far behind, don't try to catch up
		a.next = now
	}

	a.next = a.next.Add(a.target)
	a.frames++

	if a.frames%a.correctEvery == 0 {
		drift := time.Since(a.next)
		if drift.Abs() > 10*time.Millisecond {
			a.next = a.next.Add(drift / 10)
			slog.Debug("Frame timing drift correction", "drift_ms", drift.Milliseconds(), "frames", a.frames)
		}
	}
	return ctx.Err()
}

func (a *AdaptiveLimiter) Reset() {
	a.next = time.Now()
	a.frames = 0
}
