package ai

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"
)

func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

var svcTestLogger = errors.NewLogger(slog.LevelDebug)

// TestOperationConfigDerivation verifies that per-operation settings
// override globals while unset fields fall back.
func TestOperationConfigDerivation(t *testing.T) {
	cfg := &config.Config{
		AI: config.AIConfig{
			Provider:         "gemini",
			Model:            "global-model",
			Timeout:          60 * time.Second,
			APIKey:           "global-api-key",
			MaxRetries:       5,
			Temperature:      0.9,
			UseSystemPrompts: true,

			SummarizeReviews: config.OperationAIConfig{
				Model:       "reviews-model",
				Timeout:     timePtr(90 * time.Second),
				Temperature: float32Ptr(0.3),
			},
			ExtractSkills: config.OperationAIConfig{
				Model:      "skills-model",
				MaxRetries: intPtr(1),
			},
		},
	}

	t.Run("SummarizeReviews overrides", func(t *testing.T) {
		derived := cfg.GetSummarizeReviewsConfig()
		if derived.Model != "reviews-model" {
			t.Errorf("expected model 'reviews-model', got %q", derived.Model)
		}
		if *derived.Timeout != 90*time.Second {
			t.Errorf("expected timeout 90s, got %v", *derived.Timeout)
		}
		if derived.APIKey != "global-api-key" {
			t.Errorf("expected API key fallback, got %q", derived.APIKey)
		}
		if *derived.MaxRetries != 5 {
			t.Errorf("expected maxRetries fallback 5, got %d", *derived.MaxRetries)
		}
	})

	t.Run("ExtractSkills overrides", func(t *testing.T) {
		derived := cfg.GetExtractSkillsConfig()
		if derived.Model != "skills-model" {
			t.Errorf("expected model 'skills-model', got %q", derived.Model)
		}
		if *derived.MaxRetries != 1 {
			t.Errorf("expected maxRetries 1, got %d", *derived.MaxRetries)
		}
		if *derived.Timeout != 60*time.Second {
			t.Errorf("expected timeout fallback 60s, got %v", *derived.Timeout)
		}
	})

	t.Run("ComposeReport all fallbacks", func(t *testing.T) {
		derived := cfg.GetComposeReportConfig()
		if derived.Model != "global-model" {
			t.Errorf("expected model fallback, got %q", derived.Model)
		}
		if derived.APIKey != "global-api-key" {
			t.Errorf("expected API key fallback, got %q", derived.APIKey)
		}
	})
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	opCfg := &config.OperationAIConfig{
		Provider: "not-a-provider",
		APIKey:   "test-key",
	}
	if _, err := NewService(opCfg, "summarize_reviews", svcTestLogger); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewServiceRequiresAPIKey(t *testing.T) {
	opCfg := &config.OperationAIConfig{Provider: "gemini"}
	if _, err := NewService(opCfg, "summarize_reviews", svcTestLogger); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestServiceCircuitBreakerWiring(t *testing.T) {
	opCfg := &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "test-model",
		Timeout:          timePtr(30 * time.Second),
		APIKey:           "test-key",
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.5),
		UseSystemPrompts: boolPtr(true),
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.8,
		},
	}

	service, err := NewService(opCfg, "compose_report", svcTestLogger)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	defer func() { _ = service.Close() }()

	provider, ok := service.Provider.(*GeminiProvider)
	if !ok {
		t.Fatal("service provider is not *GeminiProvider")
	}

	stats := provider.GetCircuitBreakerStats()
	aiStats, ok := stats["ai_operations"].(map[string]any)
	if !ok {
		t.Fatal("AI operations stats should be a map")
	}
	if name, _ := aiStats["name"].(string); name != "AI-compose_report" {
		t.Errorf("expected breaker name 'AI-compose_report', got %q", name)
	}
	modelStats, ok := stats["model_operations"].(map[string]any)
	if !ok {
		t.Fatal("model operations stats should be a map")
	}
	if name, _ := modelStats["name"].(string); name != "AI-Model-compose_report" {
		t.Errorf("expected model breaker name 'AI-Model-compose_report', got %q", name)
	}
	if healthy, _ := stats["overall_healthy"].(bool); !healthy {
		t.Error("breakers should be healthy initially")
	}
}

func TestResolvePrompt(t *testing.T) {
	if got := resolvePrompt("from-file", "inline", "default"); got != "from-file" {
		t.Errorf("loaded prompt should win, got %q", got)
	}
	if got := resolvePrompt("", "inline", "default"); got != "inline" {
		t.Errorf("inline prompt should win over default, got %q", got)
	}
	if got := resolvePrompt("", "", "default"); got != "default" {
		t.Errorf("expected default prompt, got %q", got)
	}
}

func TestDefaultPromptsCoverAllOperations(t *testing.T) {
	for _, op := range []string{"summarize_reviews", "summarize_overview", "extract_skills", "compose_report"} {
		if defaultSystemPrompt(op) == "" {
			t.Errorf("missing default system prompt for %s", op)
		}
		if defaultUserPrompt(op) == "" {
			t.Errorf("missing default user prompt for %s", op)
		}
	}
	if defaultSystemPrompt("unknown") != "" {
		t.Error("unknown operation should have no default prompt")
	}
}

func TestOrPlaceholder(t *testing.T) {
	if got := orPlaceholder("  \n"); got != "(none)" {
		t.Errorf("expected placeholder for blank bucket, got %q", got)
	}
	if got := orPlaceholder("1. great pay"); got != "1. great pay" {
		t.Errorf("expected content passthrough, got %q", got)
	}
}

func TestFormatExperience(t *testing.T) {
	if got := formatExperience(types.ComposeReportInput{ExperienceKnown: false}); got != "unknown" {
		t.Errorf("expected 'unknown', got %q", got)
	}
	got := formatExperience(types.ComposeReportInput{ExperienceKnown: true, ExperienceYears: 4.5})
	if got != "4.50 years" {
		t.Errorf("expected '4.50 years', got %q", got)
	}
}

func TestFormatCompanyResearch(t *testing.T) {
	companies := []types.CompanyResearch{
		{
			Company:          "Acme",
			Overview:         "Makes widgets.",
			SentimentSummary: "Mostly positive.",
			ReviewCount:      8,
			Positives:        []string{"good pay"},
			Negatives:        []string{"long hours"},
		},
	}
	got := formatCompanyResearch(companies)
	for _, want := range []string{"### Acme", "Makes widgets.", "(8 reviews)", "good pay", "long hours"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted research missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCandidateProfileOrdersSections(t *testing.T) {
	input := types.ComposeReportInput{
		CandidateName: "Jordan Doe",
		Sections: map[string]string{
			"Skills":  "Go, SQL",
			"Summary": "Backend engineer.",
		},
	}
	got := formatCandidateProfile(input)
	if !strings.HasPrefix(got, "Name: Jordan Doe") {
		t.Errorf("profile should start with the candidate name:\n%s", got)
	}
	// Sections are emitted in sorted key order for determinism.
	if strings.Index(got, "## Skills") > strings.Index(got, "## Summary") {
		t.Errorf("sections out of order:\n%s", got)
	}
}
