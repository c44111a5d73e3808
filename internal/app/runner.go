package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcastrip/internal/diagnostics"
)

// Runner drives a Controller at its configured rate.
type Runner struct {
	C *Controller
	// StartupDelay holds the strip dark before the first tick.
	StartupDelay time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Interval is how long to sleep after a tick that took spent: the remainder
// of the 1/rate budget, or zero when the tick overran it.
func Interval(rate int, spent time.Duration) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	budget := time.Second / time.Duration(rate)
	if spent >= budget {
		return 0
	}
	return budget - spent
}

// Run ticks until ctx is done. Tick faults are logged and the loop goes on.
func (r *Runner) Run(ctx context.Context) error {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	if err := sleep(ctx, r.StartupDelay); err != nil {
		return err
	}

	log.Warn().Msg("outbound link is unframed: echo bytes 0x00/0x01 look like button reports")
	r.C.publish(diagnostics.Unframed())

	for {
		start := now()
		if err := r.C.Tick(); err != nil {
			log.Warn().Err(err).Uint64("frame", r.C.frameID).Msg("tick")
		}
		if err := sleep(ctx, Interval(r.C.Rate(), now().Sub(start))); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
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
