package data

import (
	"context"
	"time"
)

// Throttle enforces a minimum interval between upstream requests during
// batch acquisition. It belongs to the data layer; the engine core never
// sleeps.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the interval since the previous request has elapsed, or
// the context is canceled. The first call never blocks.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.interval <= 0 {
		return ctx.Err()
	}

	now := t.now()
	if !t.last.IsZero() {
		if remaining := t.interval - now.Sub(t.last); remaining > 0 {
			if err := t.sleep(ctx, remaining); err != nil {
				return err
			}
			now = t.now()
		}
	}
	t.last = now
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
