package circuitbreaker

import (
	"fmt"
	"sync"
	"time"
)

type state string

const (
	stateClosed   state = "closed"
	stateOpen     state = "open"
	stateHalfOpen state = "half-open"
)

type Settings struct {
	Name        string
	MaxFailures int
	Timeout     time.Duration
}

// CircuitBreaker trips after MaxFailures consecutive failures and
// stays open for Timeout before allowing a probe request through.
type CircuitBreaker struct {
	name        string
	maxFailures int
	timeout     time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       state
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	return &CircuitBreaker{
		name:        settings.Name,
		maxFailures: settings.MaxFailures,
		timeout:     settings.Timeout,
		state:       stateClosed,
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == stateOpen {
		if time.Since(cb.lastFailure) > cb.timeout {
			cb.state = stateHalfOpen
		} else {
			cb.mu.Unlock()
			return fmt.Errorf("circuit breaker %q is open", cb.name)
		}
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.state == stateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = stateOpen
		}
		return err
	}

	cb.state = stateClosed
	cb.failures = 0
	return nil
}
