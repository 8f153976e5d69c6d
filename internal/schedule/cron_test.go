package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/schedule"
	"github.com/jonboulle/clockwork"
)

func TestNextAfter(t *testing.T) {
	table := []struct {
		cron  string
		after time.Time
		want  time.Time
	}{
		{
			cron:  "0 * * * *", // hourly
			after: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			want:  time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			cron:  "@hourly",
			after: time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC),
			want:  time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			cron:  "*/5 * * * *",
			after: time.Date(2024, 3, 1, 12, 2, 0, 0, time.UTC),
			want:  time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
		},
	}

	for _, tc := range table {
		t.Run(tc.cron, func(t *testing.T) {
			got, err := schedule.NextAfter(tc.cron, tc.after)
			if err != nil {
				t.Fatalf("NextAfter(%q, %v) returned error: %v", tc.cron, tc.after, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("NextAfter(%q, %v) = %v; want %v", tc.cron, tc.after, got, tc.want)
			}
		})
	}
}

func TestNextAfterInvalid(t *testing.T) {
	if _, err := schedule.NextAfter("not a cron", time.Now()); err == nil {
		t.Fatal("expected error for invalid expression")
	}
	if err := schedule.ValidateCron("not a cron"); err == nil {
		t.Fatal("expected error for invalid expression")
	}
}

func TestLoopFiresOnCadence(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 30, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- schedule.Loop(ctx, clock, "* * * * *", func(ctx context.Context) {
			fired <- struct{}{}
		})
	}()

	// First firing lands on the next whole minute.
	clock.BlockUntil(1)
	clock.Advance(30 * time.Second)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("loop did not fire at the first cron occurrence")
	}

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("loop did not fire at the second cron occurrence")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Loop returned %v, want context.Canceled", err)
	}
}

func TestLoopInvalidExpression(t *testing.T) {
	err := schedule.Loop(context.Background(), clockwork.NewFakeClock(), "bogus", func(ctx context.Context) {})
	if err == nil {
		t.Fatal("expected error for invalid expression")
	}
}
