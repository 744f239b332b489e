package resilience

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig tunes a retry policy: a fixed number of attempts with
// exponential backoff between them. Each wait is jittered to half-to-full
// of the computed backoff so synchronized callers spread out.
type RetryConfig struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.Attempts <= 0 {
		c.Attempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 100 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 1000 * time.Millisecond
	}
	if c.Multiplier <= 1 {
		c.Multiplier = 2
	}
	return c
}

type Retry struct {
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

func NewRetry(cfg RetryConfig) *Retry {
	return &Retry{cfg: cfg.withDefaults(), sleep: sleepCtx}
}

// Do runs fn up to Attempts times, backing off between failures. The last
// error is returned once the attempts are spent; ctx cancellation cuts the
// wait short and returns ctx.Err().
func (r *Retry) Do(ctx context.Context, fn func() error) error {
	backoff := r.cfg.InitialBackoff
	var err error
	for attempt := 1; attempt <= r.cfg.Attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt == r.cfg.Attempts {
			break
		}
		if serr := r.sleep(ctx, jitter(backoff)); serr != nil {
			return serr
		}
		backoff = time.Duration(float64(backoff) * r.cfg.Multiplier)
		if backoff > r.cfg.MaxBackoff {
			backoff = r.cfg.MaxBackoff
		}
	}
	return err
}

// jitter returns a duration in [d/2, d).
func jitter(d time.Duration) time.Duration {
	if d <= 1 {
		return d
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)))
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
