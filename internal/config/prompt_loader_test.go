package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePromptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write prompt file: %v", err)
	}
	return path
}

func TestLoadPromptFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads and trims content", func(t *testing.T) {
		path := writePromptFile(t, dir, "system.txt", "  You summarize employee reviews.\n")
		got, err := loadPromptFromFile(path, "system", "summarizeReviews")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "You summarize employee reviews." {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadPromptFromFile(filepath.Join(dir, "nope.txt"), "system", "summarizeReviews")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writePromptFile(t, dir, "empty.txt", "   \n\t")
		_, err := loadPromptFromFile(path, "user", "composeReport")
		if err == nil || !strings.Contains(err.Error(), "is empty") {
			t.Errorf("expected empty-file error, got %v", err)
		}
	})
}

func TestValidatePromptFiles(t *testing.T) {
	dir := t.TempDir()
	existing := writePromptFile(t, dir, "prompt.txt", "content")

	t.Run("all files present", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.ExtractSkills.CustomPrompts.SystemFile = existing
		if err := cfg.validatePromptFiles(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing file reported per operation", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.ComposeReport.CustomPrompts.UserFile = filepath.Join(dir, "missing.txt")
		err := cfg.validatePromptFiles()
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "composeReport") {
			t.Errorf("error should name the operation: %v", err)
		}
	})
}

func TestLoadPromptsFromFiles(t *testing.T) {
	dir := t.TempDir()
	systemPath := writePromptFile(t, dir, "reviews_system.txt", "Summarize review sentiment.")

	cfg := validTestConfig()
	cfg.AI.SummarizeReviews.CustomPrompts.System = "inline system"
	cfg.AI.SummarizeReviews.CustomPrompts.SystemFile = systemPath
	cfg.AI.SummarizeOverview.CustomPrompts.User = "inline overview user"

	if err := cfg.loadPromptsFromFiles(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// File content overrides the inline value.
	if got := cfg.GetLoadedSummarizeReviewsPrompts().System; got != "Summarize review sentiment." {
		t.Errorf("system prompt = %q, want file content", got)
	}
	if got := cfg.GetLoadedSummarizeOverviewPrompts().User; got != "inline overview user" {
		t.Errorf("user prompt = %q, want inline value", got)
	}
	if got := GetPromptsForOperation("summarize_reviews").System; got != "Summarize review sentiment." {
		t.Errorf("GetPromptsForOperation = %q", got)
	}
}
