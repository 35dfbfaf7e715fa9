package evhelper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-evhelper/evhelper/source"
	"github.com/valerio/go-evhelper/evhelper/timing"
)

// Run polls src and feeds every event to h until ctx is cancelled, src fails,
// or a quit has been recorded. The limiter paces the polls. src must already
// be initialized; Run does not close it.
func Run[D any](ctx context.Context, src source.Source, h *Helper[D], limiter timing.Limiter) error {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	limiter.Reset()

	for {
		if err := ctx.Err(); err != nil {
			slog.Info("Event loop cancelled", "steps", h.UpdateCount())
			return err
		}

		events, err := src.Poll()
		if err != nil {
			return fmt.Errorf("poll events: %w", err)
		}
		for _, ev := range events {
			h.Update(ev)
		}

		if q := h.Quit(); q != 0 {
			slog.Info("Event loop finished", "steps", h.UpdateCount(), "quit", q)
			return nil
		}
		if err := limiter.Wait(ctx); err != nil {
			slog.Info("Event loop cancelled", "steps", h.UpdateCount())
			return err
		}
	}
}
