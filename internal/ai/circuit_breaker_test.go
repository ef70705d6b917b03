package ai

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"google.golang.org/genai"

	"jobscout/internal/config"
	"jobscout/internal/errors"
)

var cbTestLogger = errors.NewLogger(slog.LevelDebug)

func enabledCBConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
}

func TestNewAICircuitBreaker(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		cb := NewAICircuitBreaker("summarize_reviews", enabledCBConfig(), cbTestLogger)
		if cb == nil {
			t.Fatal("expected a circuit breaker when enabled")
		}

		stats := cb.GetStats()
		if stats["name"] != "AI-summarize_reviews" {
			t.Errorf("expected name 'AI-summarize_reviews', got %v", stats["name"])
		}
		if stats["state"] != "closed" {
			t.Errorf("expected initial state 'closed', got %v", stats["state"])
		}
		if !cb.IsHealthy() {
			t.Error("new circuit breaker should be healthy")
		}
	})

	t.Run("disabled returns nil", func(t *testing.T) {
		cfg := enabledCBConfig()
		cfg.Enabled = false
		cb := NewAICircuitBreaker("summarize_reviews", cfg, cbTestLogger)
		if cb != nil {
			t.Error("expected nil circuit breaker when disabled")
		}
	})
}

func TestAICircuitBreakerNilSafety(t *testing.T) {
	var cb *AICircuitBreaker

	result, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	})
	if err != nil {
		t.Fatalf("nil breaker Execute should pass through, got error: %v", err)
	}
	if result == nil {
		t.Fatal("nil breaker Execute should return the function result")
	}

	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
	if enabled, _ := cb.GetStats()["enabled"].(bool); enabled {
		t.Error("nil breaker stats should report enabled=false")
	}
}

func TestAICircuitBreakerTripsOnFailures(t *testing.T) {
	cfg := enabledCBConfig()
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cb := NewAICircuitBreaker("extract_skills", cfg, cbTestLogger)

	failing := func() (*genai.GenerateContentResponse, error) {
		return nil, fmt.Errorf("backend unavailable")
	}
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(failing)
	}

	if cb.IsHealthy() {
		t.Error("circuit breaker should be open after consecutive failures")
	}
	if state := cb.GetStats()["state"]; state != "open" {
		t.Errorf("expected state 'open', got %v", state)
	}
}

func TestModelCircuitBreakerIndependence(t *testing.T) {
	cfg := enabledCBConfig()
	aiCB := NewAICircuitBreaker("compose_report", cfg, cbTestLogger)
	modelCB := NewModelCircuitBreaker("compose_report", cfg, cbTestLogger)

	if modelCB.GetStats()["name"] != "AI-Model-compose_report" {
		t.Errorf("expected model breaker name 'AI-Model-compose_report', got %v", modelCB.GetStats()["name"])
	}

	// Tripping the model breaker must not affect the AI breaker.
	for i := 0; i < 3; i++ {
		_, _ = modelCB.Execute(func() (*genai.Model, error) {
			return nil, fmt.Errorf("model lookup failed")
		})
	}

	if modelCB.IsHealthy() {
		t.Error("model breaker should be open")
	}
	if !aiCB.IsHealthy() {
		t.Error("AI breaker should remain healthy")
	}
}
