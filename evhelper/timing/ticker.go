package timing

import (
	"context"
	"time"
)

// TickerLimiter polls on a time.Ticker. Ticks missed while the loop was busy
// are dropped, so a slow frame is followed by at most one immediate poll.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
}

func NewTickerLimiter(fps float64) *TickerLimiter {
	period := FrameDuration(fps)
	return &TickerLimiter{
		ticker: time.NewTicker(period),
		period: period,
	}
}

func (t *TickerLimiter) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

// Stop releases the ticker. The limiter must not be used afterwards.
func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
