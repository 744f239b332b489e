package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpenState is returned when a call is rejected without being attempted
// because the breaker is open.
var ErrOpenState = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig tunes one circuit breaker. Zero fields fall back to the
// defaults below.
type BreakerConfig struct {
	// FailureThreshold is the failure rate in [0,1] over the sliding window
	// that trips the breaker.
	FailureThreshold float64
	// MinimumCalls is how many outcomes must be recorded before the rate is
	// evaluated at all.
	MinimumCalls int
	// WindowSize is how many recent outcomes the rate is computed over.
	WindowSize int
	// OpenDuration is the cooldown before an open breaker admits probes.
	OpenDuration time.Duration
	// HalfOpenProbes is how many probe calls must all succeed to close the
	// breaker again.
	HalfOpenProbes int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 0.5
	}
	if c.MinimumCalls <= 0 {
		c.MinimumCalls = 5
	}
	if c.WindowSize <= 0 {
		c.WindowSize = 10
	}
	if c.OpenDuration <= 0 {
		c.OpenDuration = 10 * time.Second
	}
	if c.HalfOpenProbes <= 0 {
		c.HalfOpenProbes = 2
	}
	return c
}

// CircuitBreaker is a three-state guard around one downstream dependency:
// closed while the dependency is healthy, open for a cooldown once the
// failure rate over the sliding window crosses the threshold, then
// half-open admitting a fixed number of probe calls. All probes succeeding
// closes it; any probe failing re-opens it.
type CircuitBreaker struct {
	name string
	cfg  BreakerConfig
	now  func() time.Time

	mu             sync.Mutex
	state          State
	window         []bool // ring buffer, true = failure
	head           int
	count          int
	failures       int
	openedAt       time.Time
	probesInFlight int
	probeSuccesses int
}

func NewCircuitBreaker(name string, cfg BreakerConfig) *CircuitBreaker {
	cfg = cfg.withDefaults()
	return &CircuitBreaker{
		name:   name,
		cfg:    cfg,
		now:    time.Now,
		window: make([]bool, cfg.WindowSize),
	}
}

// Name identifies the guarded dependency in logs.
func (cb *CircuitBreaker) Name() string { return cb.name }

// State reports the current state, applying the open -> half-open
// transition if the cooldown has elapsed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenDuration {
		return StateHalfOpen
	}
	return cb.state
}

// Do runs fn under the breaker: the call is rejected with ErrOpenState when
// the breaker is open (or all half-open probe slots are taken), otherwise
// its outcome is recorded. A call that fails because the caller's context
// was cancelled is not an outcome of the dependency and is discarded
// without counting toward the failure rate.
func (cb *CircuitBreaker) Do(fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}
	err := fn()
	if errors.Is(err, context.Canceled) {
		cb.discard()
		return err
	}
	cb.record(err == nil)
	return err
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return nil
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.OpenDuration {
			return ErrOpenState
		}
		cb.state = StateHalfOpen
		cb.probesInFlight = 1
		cb.probeSuccesses = 0
		return nil
	case StateHalfOpen:
		if cb.probesInFlight+cb.probeSuccesses >= cb.cfg.HalfOpenProbes {
			return ErrOpenState
		}
		cb.probesInFlight++
		return nil
	}
	return nil
}

// discard frees the slot taken by allow without counting the outcome.
func (cb *CircuitBreaker) discard() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.probesInFlight > 0 {
		cb.probesInFlight--
	}
}

func (cb *CircuitBreaker) record(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.push(!success)
		if cb.count >= cb.cfg.MinimumCalls && cb.failureRate() >= cb.cfg.FailureThreshold {
			cb.trip()
		}
	case StateHalfOpen:
		if cb.probesInFlight > 0 {
			cb.probesInFlight--
		}
		if !success {
			cb.trip()
			return
		}
		cb.probeSuccesses++
		if cb.probeSuccesses >= cb.cfg.HalfOpenProbes {
			cb.resetClosed()
		}
	case StateOpen:
		// Late result from a call admitted before the trip; drop it.
	}
}

func (cb *CircuitBreaker) push(failure bool) {
	if cb.count == len(cb.window) {
		if cb.window[cb.head] {
			cb.failures--
		}
	} else {
		cb.count++
	}
	cb.window[cb.head] = failure
	if failure {
		cb.failures++
	}
	cb.head = (cb.head + 1) % len(cb.window)
}

func (cb *CircuitBreaker) failureRate() float64 {
	if cb.count == 0 {
		return 0
	}
	return float64(cb.failures) / float64(cb.count)
}

func (cb *CircuitBreaker) trip() {
	cb.state = StateOpen
	cb.openedAt = cb.now()
	cb.probesInFlight = 0
	cb.probeSuccesses = 0
}

func (cb *CircuitBreaker) resetClosed() {
	cb.state = StateClosed
	cb.head = 0
	cb.count = 0
	cb.failures = 0
	cb.probesInFlight = 0
	cb.probeSuccesses = 0
	for i := range cb.window {
		cb.window[i] = false
	}
}
