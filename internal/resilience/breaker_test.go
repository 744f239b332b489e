package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func newTestBreaker(cfg BreakerConfig) (*CircuitBreaker, *time.Time) {
	cb := NewCircuitBreaker("test", cfg)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }
	return cb, &now
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestBreakerStaysClosedBelowMinimumCalls(t *testing.T) {
	cb, _ := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     4,
		WindowSize:       4,
		OpenDuration:     time.Second,
		HalfOpenProbes:   2,
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, errBoom, cb.Do(fail))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerTripsOnFailureRate(t *testing.T) {
	cb, _ := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     4,
		WindowSize:       4,
		OpenDuration:     time.Second,
		HalfOpenProbes:   2,
	})

	// Two successes, two failures: rate hits exactly 0.5 at the fourth call.
	assert.NoError(t, cb.Do(succeed))
	assert.NoError(t, cb.Do(succeed))
	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, errBoom, cb.Do(fail))

	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, ErrOpenState, cb.Do(succeed))
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	cb, now := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     2,
		WindowSize:       2,
		OpenDuration:     time.Second,
		HalfOpenProbes:   2,
	})

	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, StateOpen, cb.State())

	*now = now.Add(2 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	// Both probes succeed, breaker closes again.
	assert.NoError(t, cb.Do(succeed))
	assert.NoError(t, cb.Do(succeed))
	assert.Equal(t, StateClosed, cb.State())

	// Closed breaker admits traffic.
	assert.NoError(t, cb.Do(succeed))
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb, now := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     2,
		WindowSize:       2,
		OpenDuration:     time.Second,
		HalfOpenProbes:   2,
	})

	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, errBoom, cb.Do(fail))

	*now = now.Add(2 * time.Second)
	assert.Equal(t, errBoom, cb.Do(fail))

	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, ErrOpenState, cb.Do(succeed))
}

func TestBreakerIgnoresCancelledCalls(t *testing.T) {
	cb, _ := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     2,
		WindowSize:       2,
		OpenDuration:     time.Second,
		HalfOpenProbes:   2,
	})

	// A cancelled caller is not a verdict on the dependency, however many
	// times it happens and however deep the wrapping.
	for i := 0; i < 5; i++ {
		err := cb.Do(func() error {
			return fmt.Errorf("call failed: %w", context.Canceled)
		})
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Do(succeed))
}

func TestBreakerFreesProbeSlotOnCancelledCall(t *testing.T) {
	cb, now := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     2,
		WindowSize:       2,
		OpenDuration:     time.Second,
		HalfOpenProbes:   1,
	})

	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, errBoom, cb.Do(fail))
	*now = now.Add(2 * time.Second)

	// A cancelled probe neither closes nor re-opens the breaker; its slot
	// goes back to the next caller.
	err := cb.Do(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.NoError(t, cb.Do(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerLimitsHalfOpenProbes(t *testing.T) {
	cb, now := newTestBreaker(BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     2,
		WindowSize:       2,
		OpenDuration:     time.Second,
		HalfOpenProbes:   1,
	})

	assert.Equal(t, errBoom, cb.Do(fail))
	assert.Equal(t, errBoom, cb.Do(fail))
	*now = now.Add(2 * time.Second)

	// First probe slot is taken while the call is in flight; a second
	// caller is rejected.
	err := cb.Do(func() error {
		assert.Equal(t, ErrOpenState, cb.Do(succeed))
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}
