package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// operationPrompts pairs each operation's configured prompts with the slot
// the resolved content lands in.
func (c *Config) operationPrompts() []struct {
	Operation string
	Source    *PromptConfig
	Target    *OperationLoadedPrompts
} {
	return []struct {
		Operation string
		Source    *PromptConfig
		Target    *OperationLoadedPrompts
	}{
		{"summarizeReviews", &c.AI.SummarizeReviews.CustomPrompts, &loadedPrompts.SummarizeReviews},
		{"summarizeOverview", &c.AI.SummarizeOverview.CustomPrompts, &loadedPrompts.SummarizeOverview},
		{"extractSkills", &c.AI.ExtractSkills.CustomPrompts, &loadedPrompts.ExtractSkills},
		{"composeReport", &c.AI.ComposeReport.CustomPrompts, &loadedPrompts.ComposeReport},
	}
}

// loadPromptsFromFiles resolves custom prompts for every operation. Inline
// config values are used as-is; a configured file path overrides them.
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	for _, entry := range c.operationPrompts() {
		entry.Target.System = entry.Source.System
		entry.Target.User = entry.Source.User

		if entry.Source.SystemFile != "" {
			content, err := loadPromptFromFile(entry.Source.SystemFile, "system", entry.Operation)
			if err != nil {
				return err
			}
			entry.Target.System = content
		}
		if entry.Source.UserFile != "" {
			content, err := loadPromptFromFile(entry.Source.UserFile, "user", entry.Operation)
			if err != nil {
				return err
			}
			entry.Target.User = content
		}
	}

	c.logPromptLoadingSummary()
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	for _, entry := range c.operationPrompts() {
		validateFile(entry.Source.SystemFile, "system", entry.Operation)
		validateFile(entry.Source.UserFile, "user", entry.Operation)
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0
	for _, entry := range c.operationPrompts() {
		if entry.Target.System != "" {
			log.Printf("[CONFIG] %s system prompt: loaded from config/file", entry.Operation)
			promptCount++
		}
		if entry.Target.User != "" {
			log.Printf("[CONFIG] %s user prompt: loaded from config/file", entry.Operation)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
