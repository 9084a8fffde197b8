package game

import (
	"context"
	"time"
)

// Sleeper paces computer moves.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// NoDelay returns immediately unless ctx is done.
var NoDelay Sleeper = SleeperFunc(func(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
})

type timerSleeper struct{}

// Sleep waits for d or until ctx is done.
func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
