package ai

import (
	"fmt"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

// AICircuitBreaker guards generate-content calls against a flapping
// AI backend. A nil *AICircuitBreaker is valid and means "disabled".
type AICircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
	name string
}

// ModelCircuitBreaker guards model metadata lookups.
type ModelCircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker[*genai.Model]
	name string
}

// NewAICircuitBreaker returns nil when the circuit breaker is disabled
// in configuration.
func NewAICircuitBreaker(operationType string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *AICircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	name := fmt.Sprintf("AI-%s", operationType)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"circuit_breaker", name,
					"from_state", from.String(),
					"to_state", to.String())
			}
		},
	}

	return &AICircuitBreaker{
		cb:   gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](settings),
		name: name,
	}
}

// NewModelCircuitBreaker returns nil when disabled.
func NewModelCircuitBreaker(operationType string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *ModelCircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	name := fmt.Sprintf("AI-Model-%s", operationType)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"circuit_breaker", name,
					"from_state", from.String(),
					"to_state", to.String())
			}
		},
	}

	return &ModelCircuitBreaker{
		cb:   gobreaker.NewCircuitBreaker[*genai.Model](settings),
		name: name,
	}
}

// Execute runs fn through the breaker. A nil receiver executes fn
// directly.
func (a *AICircuitBreaker) Execute(fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if a == nil || a.cb == nil {
		return fn()
	}
	return a.cb.Execute(fn)
}

// Execute runs fn through the breaker. A nil receiver executes fn
// directly.
func (m *ModelCircuitBreaker) Execute(fn func() (*genai.Model, error)) (*genai.Model, error) {
	if m == nil || m.cb == nil {
		return fn()
	}
	return m.cb.Execute(fn)
}

// GetStats reports the breaker's current state and counters.
func (a *AICircuitBreaker) GetStats() map[string]any {
	if a == nil || a.cb == nil {
		return map[string]any{"enabled": false}
	}
	counts := a.cb.Counts()
	return map[string]any{
		"enabled":              true,
		"name":                 a.name,
		"state":                a.cb.State().String(),
		"requests":             counts.Requests,
		"total_successes":      counts.TotalSuccesses,
		"total_failures":       counts.TotalFailures,
		"consecutive_failures": counts.ConsecutiveFailures,
	}
}

// GetStats reports the breaker's current state and counters.
func (m *ModelCircuitBreaker) GetStats() map[string]any {
	if m == nil || m.cb == nil {
		return map[string]any{"enabled": false}
	}
	counts := m.cb.Counts()
	return map[string]any{
		"enabled":              true,
		"name":                 m.name,
		"state":                m.cb.State().String(),
		"requests":             counts.Requests,
		"total_successes":      counts.TotalSuccesses,
		"total_failures":       counts.TotalFailures,
		"consecutive_failures": counts.ConsecutiveFailures,
	}
}

// IsHealthy reports whether the breaker is closed (or disabled).
func (a *AICircuitBreaker) IsHealthy() bool {
	if a == nil || a.cb == nil {
		return true
	}
	return a.cb.State() == gobreaker.StateClosed
}

// IsHealthy reports whether the breaker is closed (or disabled).
func (m *ModelCircuitBreaker) IsHealthy() bool {
	if m == nil || m.cb == nil {
		return true
	}
	return m.cb.State() == gobreaker.StateClosed
}
