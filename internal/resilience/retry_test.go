package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryReturnsLastErrorAfterAttempts(t *testing.T) {
	r := NewRetry(RetryConfig{Attempts: 3, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second})

	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	calls := 0
	errLast := errors.New("still failing")
	err := r.Do(context.Background(), func() error {
		calls++
		return errLast
	})

	assert.Equal(t, errLast, err)
	assert.Equal(t, 3, calls)

	// Two waits between three attempts, each jittered within half-to-full
	// of the exponential schedule (100ms then 200ms).
	assert.Len(t, waits, 2)
	assert.GreaterOrEqual(t, waits[0], 50*time.Millisecond)
	assert.Less(t, waits[0], 100*time.Millisecond)
	assert.GreaterOrEqual(t, waits[1], 100*time.Millisecond)
	assert.Less(t, waits[1], 200*time.Millisecond)
}

func TestRetrySucceedsMidway(t *testing.T) {
	r := NewRetry(RetryConfig{Attempts: 3})
	r.sleep = func(context.Context, time.Duration) error { return nil }

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryBackoffIsCapped(t *testing.T) {
	r := NewRetry(RetryConfig{
		Attempts:       5,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     4,
	})

	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	_ = r.Do(context.Background(), func() error { return errors.New("nope") })

	assert.Len(t, waits, 4)
	for _, w := range waits {
		assert.Less(t, w, time.Second)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	r := NewRetry(RetryConfig{Attempts: 3, InitialBackoff: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, func() error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
