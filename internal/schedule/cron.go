package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/cronexpr"
	"github.com/jonboulle/clockwork"
)

// NextAfter returns the next time a cron expression fires after a specific
// time, in UTC. A zero time means the expression never fires again.
func NextAfter(cron string, after time.Time) (time.Time, error) {
	expr, err := cronexpr.Parse(cron)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	return expr.Next(after.UTC()), nil
}

func ValidateCron(cron string) error {
	if _, err := cronexpr.Parse(cron); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// Loop runs fn at every occurrence of the cron expression until the context
// is cancelled. The clock is injectable so cadence behavior can be tested
// with a fake clock.
func Loop(ctx context.Context, clock clockwork.Clock, cron string, fn func(ctx context.Context)) error {
	expr, err := cronexpr.Parse(cron)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	for {
		now := clock.Now()
		next := expr.Next(now)
		if next.IsZero() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(next.Sub(now)):
			fn(ctx)
		}
	}
}
