package k8s

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/kubeask/kubeask/internal/metrics"
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open: cluster API unavailable")

// CircuitBreakerState represents the state of a circuit breaker.
type CircuitBreakerState int

const (
	StateClosed   CircuitBreakerState = iota // Normal operation
	StateOpen                                // Circuit is open, failing fast
	StateHalfOpen                            // Testing if service recovered
)

// CircuitBreaker fails cluster API calls fast after repeated transport
// failures. It never retries a call; after the open window one probe call is
// let through.
type CircuitBreaker struct {
	mu sync.RWMutex

	failureThreshold int           // Consecutive failures before opening
	openDuration     time.Duration // Duration to keep circuit open
	halfOpenMaxCalls int           // Max calls allowed in half-open state

	state             CircuitBreakerState
	failureCount      int
	lastFailureTime   time.Time
	halfOpenCallCount int
	lastStateChange   time.Time
}

// NewCircuitBreaker creates a new circuit breaker with default settings.
func NewCircuitBreaker() *CircuitBreaker {
	cb := &CircuitBreaker{
		failureThreshold: 5,
		openDuration:     30 * time.Second,
		halfOpenMaxCalls: 1,
		state:            StateClosed,
		lastStateChange:  time.Now(),
	}
	metrics.CircuitBreakerState.Set(float64(StateClosed))
	return cb
}

// setState updates the circuit breaker state and records metrics
func (cb *CircuitBreaker) setState(newState CircuitBreakerState) {
	if cb.state != newState {
		metrics.CircuitBreakerTransitionsTotal.WithLabelValues(stateToString(cb.state), stateToString(newState)).Inc()
		metrics.CircuitBreakerState.Set(float64(newState))

		cb.state = newState
		cb.lastStateChange = time.Now()
	}
}

// stateToString converts CircuitBreakerState to string for metrics
func stateToString(state CircuitBreakerState) string {
	switch state {
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

// Execute executes a function with circuit breaker protection.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	cb.mu.RLock()
	state := cb.state
	cb.mu.RUnlock()

	switch state {
	case StateOpen:
		// Check if we should transition to half-open
		cb.mu.Lock()
		if time.Since(cb.lastFailureTime) >= cb.openDuration {
			cb.setState(StateHalfOpen)
			cb.halfOpenCallCount = 0
			state = StateHalfOpen
		}
		cb.mu.Unlock()

		if state == StateOpen {
			return ErrCircuitOpen
		}
		// Fall through to half-open logic

	case StateHalfOpen:
		cb.mu.Lock()
		if cb.halfOpenCallCount >= cb.halfOpenMaxCalls {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.halfOpenCallCount++
		cb.mu.Unlock()
	}

	// Execute the function; no lock is held across the remote call.
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		if isTransportError(err) {
			cb.failureCount++
			cb.lastFailureTime = time.Now()
			metrics.CircuitBreakerFailuresTotal.Inc()

			if cb.state == StateHalfOpen {
				// Half-open probe failed, go back to open
				cb.setState(StateOpen)
				cb.halfOpenCallCount = 0
			} else if cb.failureCount >= cb.failureThreshold {
				cb.setState(StateOpen)
				cb.lastFailureTime = time.Now()
			}
		} else {
			// API answered (e.g. 404, 403): the server is up, reset the count.
			cb.failureCount = 0
		}
		return err
	}

	// Success: reset failure count and close circuit if it was open/half-open
	cb.failureCount = 0
	if cb.state != StateClosed {
		cb.setState(StateClosed)
		cb.halfOpenCallCount = 0
	}

	return nil
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// FailureCount returns the current failure count.
func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failureCount
}

// isTransportError reports whether the error means the cluster API itself is
// unhealthy (timeouts, 5xx, 429, network errors) as opposed to a normal
// negative answer like 404.
func isTransportError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	if apierrors.IsTooManyRequests(err) || apierrors.IsInternalError(err) || apierrors.IsServerTimeout(err) {
		return true
	}
	var se *apierrors.StatusError
	if errors.As(err, &se) && se.ErrStatus.Code >= 500 {
		return true
	}

	errStr := err.Error()
	for _, sub := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"network",
		"unreachable",
		"no such host",
		"dial tcp",
		"i/o timeout",
	} {
		if strings.Contains(errStr, sub) {
			return true
		}
	}
	return false
}
