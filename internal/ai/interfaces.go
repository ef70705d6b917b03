package ai

import (
	"context"

	"jobscout/internal/types"
)

// TokenUsage tracks the token consumption of a single AI call.
type TokenUsage struct {
	InputTokens  int32 `json:"inputTokens"`
	OutputTokens int32 `json:"outputTokens"`
	TotalTokens  int32 `json:"totalTokens"`
}

// ModelInfo describes the backing model as reported by the provider.
type ModelInfo struct {
	Name             string `json:"name"`
	DisplayName      string `json:"displayName,omitempty"`
	Description      string `json:"description,omitempty"`
	InputTokenLimit  int32  `json:"inputTokenLimit,omitempty"`
	OutputTokenLimit int32  `json:"outputTokenLimit,omitempty"`
}

// AIProvider is the contract every AI backend must satisfy. Each
// operation returns its structured output together with the token
// usage of the underlying call.
type AIProvider interface {
	SummarizeReviews(ctx context.Context, input types.SummarizeReviewsInput) (types.SummarizeReviewsOutput, *TokenUsage, error)
	SummarizeOverview(ctx context.Context, input types.SummarizeOverviewInput) (types.SummarizeOverviewOutput, *TokenUsage, error)
	ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, *TokenUsage, error)
	ComposeReport(ctx context.Context, input types.ComposeReportInput) (types.ComposeReportOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) (*ModelInfo, error)
	Close() error
}
