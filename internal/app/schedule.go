package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
)

// Schedule registers a notification to recipient on the cron spec
// (second minute hour day month [weekday], or descriptors such as
// "@every 1h"). Each run is bounded by timeout when it is positive. The
// returned cron is not started.
func (a *App) Schedule(spec string, recipient string, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := a.Notify(ctx, recipient); err != nil {
			a.appLog.Error("scheduled notification failed", "recipient", recipient, "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCronSpec, err)
	}
	return c, nil
}
