package config

import (
	"sync"
)

var (
	loadedPrompts     AllLoadedPrompts
	loadedPromptsOnce sync.Once
)

// OperationLoadedPrompts holds the resolved prompt content for one operation
// after file loading, ready to hand to the AI provider.
type OperationLoadedPrompts struct {
	System string
	User   string
}

// AllLoadedPrompts holds resolved prompts for all operations
type AllLoadedPrompts struct {
	SummarizeReviews  OperationLoadedPrompts
	SummarizeOverview OperationLoadedPrompts
	ExtractSkills     OperationLoadedPrompts
	ComposeReport     OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	switch operationType {
	case "summarize_reviews":
		return loadedPrompts.SummarizeReviews
	case "summarize_overview":
		return loadedPrompts.SummarizeOverview
	case "extract_skills":
		return loadedPrompts.ExtractSkills
	case "compose_report":
		return loadedPrompts.ComposeReport
	default:
		return OperationLoadedPrompts{}
	}
}
