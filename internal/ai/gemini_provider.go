package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"
)

const (
	defaultOperationTimeout = 60 * time.Second
	modelCheckTimeout       = 10 * time.Second
	maxBackoff              = 30 * time.Second
)

// GeminiProvider implements AIProvider against the Gemini API.
type GeminiProvider struct {
	client        *genai.Client
	config        *config.OperationAIConfig
	operationType string
	logger        *errors.Logger
	aiBreaker     *AICircuitBreaker
	modelBreaker  *ModelCircuitBreaker
}

// NewGeminiProvider creates a provider bound to one operation's
// configuration. The operation type names the circuit breakers and the
// loaded prompt set.
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(
			errors.ErrCodeMissingAPIKey,
			"AI API key is required",
			nil,
		)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewAIError(
			errors.ErrCodeAIServiceFailed,
			"failed to create Gemini client",
			err,
		)
	}

	return &GeminiProvider{
		client:        client,
		config:        cfg,
		operationType: operationType,
		logger:        logger,
		aiBreaker:     NewAICircuitBreaker(operationType, cfg.CircuitBreaker, logger),
		modelBreaker:  NewModelCircuitBreaker(operationType, cfg.CircuitBreaker, logger),
	}, nil
}

// Close releases provider resources. The genai client holds no
// connections that need explicit shutdown.
func (g *GeminiProvider) Close() error {
	return nil
}

// GetModelInfo fetches metadata for the configured model.
func (g *GeminiProvider) GetModelInfo(ctx context.Context) (*ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(ctx, g.config.Model, nil)
	})
	if err != nil {
		return nil, errors.NewAIError(
			errors.ErrCodeAIServiceFailed,
			fmt.Sprintf("failed to get model info for %s", g.config.Model),
			err,
		)
	}

	return &ModelInfo{
		Name:             model.Name,
		DisplayName:      model.DisplayName,
		Description:      model.Description,
		InputTokenLimit:  model.InputTokenLimit,
		OutputTokenLimit: model.OutputTokenLimit,
	}, nil
}

// GetCircuitBreakerStats reports both breakers and overall health.
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.aiBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetStats(),
		"overall_healthy":  g.aiBreaker.IsHealthy() && g.modelBreaker.IsHealthy(),
	}
}

// SummarizeReviews condenses bucketed employee reviews into a sentiment
// digest for one company.
func (g *GeminiProvider) SummarizeReviews(ctx context.Context, input types.SummarizeReviewsInput) (types.SummarizeReviewsOutput, *TokenUsage, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("ai.company", input.Company),
		attribute.Int("ai.positive_length", len(input.PositiveReviews)),
		attribute.Int("ai.negative_length", len(input.NegativeReviews)),
	)

	userPrompt := fmt.Sprintf(
		g.getUserPrompt("summarize_reviews"),
		input.Company,
		orPlaceholder(input.PositiveReviews),
		orPlaceholder(input.NegativeReviews),
	)

	out, usage, err := executeAIOperation[types.SummarizeReviewsOutput](
		ctx, g, "summarize_reviews", userPrompt, buildSummarizeReviewsSchema(),
	)
	if err != nil {
		return types.SummarizeReviewsOutput{}, usage, err
	}
	if out.Company == "" {
		out.Company = input.Company
	}
	return out, usage, nil
}

// SummarizeOverview condenses "About Us" content into a short company
// overview.
func (g *GeminiProvider) SummarizeOverview(ctx context.Context, input types.SummarizeOverviewInput) (types.SummarizeOverviewOutput, *TokenUsage, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("ai.company", input.Company),
		attribute.Int("ai.content_length", len(input.Content)),
	)

	userPrompt := fmt.Sprintf(
		g.getUserPrompt("summarize_overview"),
		input.Company,
		input.Content,
	)

	out, usage, err := executeAIOperation[types.SummarizeOverviewOutput](
		ctx, g, "summarize_overview", userPrompt, buildSummarizeOverviewSchema(),
	)
	if err != nil {
		return types.SummarizeOverviewOutput{}, usage, err
	}
	if out.Company == "" {
		out.Company = input.Company
	}
	return out, usage, nil
}

// ExtractSkills pulls classified skill entities out of resume section
// text.
func (g *GeminiProvider) ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, *TokenUsage, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("ai.section_text_length", len(input.SectionText)))

	userPrompt := fmt.Sprintf(g.getUserPrompt("extract_skills"), input.SectionText)

	return executeAIOperation[types.ExtractSkillsOutput](
		ctx, g, "extract_skills", userPrompt, buildExtractSkillsSchema(),
	)
}

// ComposeReport assembles the final candidate briefing from the parsed
// resume and the per-company research.
func (g *GeminiProvider) ComposeReport(ctx context.Context, input types.ComposeReportInput) (types.ComposeReportOutput, *TokenUsage, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("ai.companies", len(input.Companies)),
		attribute.Int("ai.skills", len(input.Skills)),
	)

	userPrompt := fmt.Sprintf(
		g.getUserPrompt("compose_report"),
		formatCandidateProfile(input),
		formatExperience(input),
		formatWeightedSkills(input.Skills),
		formatCompanyResearch(input.Companies),
	)

	return executeAIOperation[types.ComposeReportOutput](
		ctx, g, "compose_report", userPrompt, buildComposeReportSchema(),
	)
}

// executeAIOperation runs one structured-output generation call:
// tracing span, circuit breaker, retry with backoff, then JSON
// decoding of the model response into Out.
func executeAIOperation[Out any](
	ctx context.Context,
	g *GeminiProvider,
	operationType string,
	userPrompt string,
	schema *genai.Schema,
) (Out, *TokenUsage, error) {
	var zero Out

	tracer := otel.Tracer("jobscout.ai.gemini")
	ctx, span := tracer.Start(ctx, fmt.Sprintf("ai.%s", operationType),
		trace.WithAttributes(
			attribute.String("ai.operation", operationType),
			attribute.String("ai.model", g.config.Model),
			attribute.String("ai.provider", "gemini"),
		))
	defer span.End()

	timeout := defaultOperationTimeout
	if g.config.Timeout != nil {
		timeout = *g.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	if g.config.Temperature != nil && *g.config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(*g.config.Temperature)
	}
	if g.config.UseSystemPrompts == nil || *g.config.UseSystemPrompts {
		if systemPrompt := g.getSystemPrompt(operationType); systemPrompt != "" {
			genConfig.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			}
		}
	}

	result, err := g.executeWithRetry(ctx, operationType, func() (*genai.GenerateContentResponse, error) {
		return g.aiBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ctx.Err() == context.DeadlineExceeded {
			return zero, nil, errors.NewAIError(
				errors.ErrCodeAITimeout,
				fmt.Sprintf("%s timed out after %v", operationType, timeout),
				err,
			)
		}
		return zero, nil, errors.NewAIError(
			errors.ErrCodeAIServiceFailed,
			fmt.Sprintf("%s failed", operationType),
			err,
		)
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int("ai.tokens.input", int(usage.InputTokens)),
			attribute.Int("ai.tokens.output", int(usage.OutputTokens)),
			attribute.Int("ai.tokens.total", int(usage.TotalTokens)),
		)
	}

	var out Out
	if err := json.Unmarshal([]byte(result.Text()), &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "response decoding failed")
		return zero, usage, errors.NewAIError(
			errors.ErrCodeAIServiceFailed,
			fmt.Sprintf("failed to decode %s response", operationType),
			err,
		)
	}

	span.SetStatus(codes.Ok, "")
	return out, usage, nil
}

// executeWithRetry retries fn on transient failures with exponential
// backoff and random jitter.
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operationType string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	maxRetries := 0
	if g.config.MaxRetries != nil {
		maxRetries = *g.config.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			backoff += randomJitter(backoff / 2)

			g.logger.Warn("Retrying AI operation",
				"operation", operationType,
				"attempt", attempt,
				"max_retries", maxRetries,
				"backoff", backoff.String(),
				"error", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// randomJitter returns a cryptographically random duration in [0, max).
func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return max / 2
	}
	return time.Duration(n.Int64())
}

// isRetryableError reports whether the failure is transient: network
// timeouts, rate limiting, or server-side errors.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return true
	}
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "temporarily unavailable")
}

func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	return &TokenUsage{
		InputTokens:  result.UsageMetadata.PromptTokenCount,
		OutputTokens: result.UsageMetadata.CandidatesTokenCount,
		TotalTokens:  result.UsageMetadata.TotalTokenCount,
	}
}

// getSystemPrompt resolves the system prompt for an operation:
// file-loaded prompt first, then inline configuration, then the
// built-in default.
func (g *GeminiProvider) getSystemPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	return resolvePrompt(loaded.System, g.config.CustomPrompts.System, defaultSystemPrompt(operationType))
}

// getUserPrompt resolves the user prompt template the same way.
func (g *GeminiProvider) getUserPrompt(operationType string) string {
	loaded := config.GetPromptsForOperation(operationType)
	return resolvePrompt(loaded.User, g.config.CustomPrompts.User, defaultUserPrompt(operationType))
}

func resolvePrompt(loaded, configured, fallback string) string {
	if loaded != "" {
		return loaded
	}
	if configured != "" {
		return configured
	}
	return fallback
}

func defaultSystemPrompt(operationType string) string {
	switch operationType {
	case "summarize_reviews":
		return DefaultSystemPrompts.SummarizeReviews
	case "summarize_overview":
		return DefaultSystemPrompts.SummarizeOverview
	case "extract_skills":
		return DefaultSystemPrompts.ExtractSkills
	case "compose_report":
		return DefaultSystemPrompts.ComposeReport
	default:
		return ""
	}
}

func defaultUserPrompt(operationType string) string {
	switch operationType {
	case "summarize_reviews":
		return DefaultUserPrompts.SummarizeReviews
	case "summarize_overview":
		return DefaultUserPrompts.SummarizeOverview
	case "extract_skills":
		return DefaultUserPrompts.ExtractSkills
	case "compose_report":
		return DefaultUserPrompts.ComposeReport
	default:
		return ""
	}
}

func buildSummarizeReviewsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"company": {
				Type:        genai.TypeString,
				Description: "The company the reviews are about",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "Short overall sentiment summary",
			},
			"positives": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Recurring positive themes",
			},
			"negatives": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Recurring negative themes",
			},
		},
		Required: []string{"summary", "positives", "negatives"},
	}
}

func buildSummarizeOverviewSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"company": {
				Type:        genai.TypeString,
				Description: "The company name",
			},
			"overview": {
				Type:        genai.TypeString,
				Description: "Concise overview of what the company does",
			},
		},
		Required: []string{"overview"},
	}
}

func buildExtractSkillsSchema() *genai.Schema {
	entity := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"class": {
				Type:        genai.TypeString,
				Description: "Entity class, e.g. technical_skill or communication",
			},
			"text": {
				Type:        genai.TypeString,
				Description: "Exact text span as it appears in the resume",
			},
		},
		Required: []string{"class", "text"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skills": {
				Type:        genai.TypeArray,
				Items:       entity,
				Description: "Technical skill entities",
			},
			"softSkills": {
				Type:        genai.TypeArray,
				Items:       entity,
				Description: "Soft skill entities",
			},
		},
		Required: []string{"skills", "softSkills"},
	}
}

func buildComposeReportSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"report": {
				Type:        genai.TypeString,
				Description: "The full candidate briefing report",
			},
			"companyFits": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "One-line fit assessment per researched company, in input order",
			},
		},
		Required: []string{"report", "companyFits"},
	}
}

// orPlaceholder substitutes an explicit marker for an empty review
// bucket so the model is not handed a blank block.
func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func formatCandidateProfile(input types.ComposeReportInput) string {
	var b strings.Builder
	if input.CandidateName != "" {
		fmt.Fprintf(&b, "Name: %s\n", input.CandidateName)
	}
	keys := make([]string, 0, len(input.Sections))
	for k := range input.Sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "## %s\n%s\n", k, input.Sections[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatExperience(input types.ComposeReportInput) string {
	if !input.ExperienceKnown {
		return "unknown"
	}
	return fmt.Sprintf("%.2f years", input.ExperienceYears)
}

func formatWeightedSkills(skills []types.WeightedEntity) string {
	if len(skills) == 0 {
		return "(none extracted)"
	}
	var b strings.Builder
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s (%s, x%d)\n", s.Text, s.Class, s.Weight)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCompanyResearch(companies []types.CompanyResearch) string {
	if len(companies) == 0 {
		return "(no companies researched)"
	}
	var b strings.Builder
	for _, c := range companies {
		fmt.Fprintf(&b, "### %s\n", c.Company)
		if c.Overview != "" {
			fmt.Fprintf(&b, "Overview: %s\n", c.Overview)
		}
		if c.SentimentSummary != "" {
			fmt.Fprintf(&b, "Employee sentiment (%d reviews): %s\n", c.ReviewCount, c.SentimentSummary)
		}
		if len(c.Positives) > 0 {
			fmt.Fprintf(&b, "Positives: %s\n", strings.Join(c.Positives, "; "))
		}
		if len(c.Negatives) > 0 {
			fmt.Fprintf(&b, "Negatives: %s\n", strings.Join(c.Negatives, "; "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
