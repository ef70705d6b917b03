package common

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"jobscout/internal/ai"
	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/observability"
	"jobscout/internal/report"
	"jobscout/internal/research"
	"jobscout/internal/resume"
	"jobscout/internal/sentiment"
	"jobscout/internal/types"
)

// Engine wires the resume parser, the search client, the sentiment
// classifier and the AI services into the three pipeline operations the
// CLI and the HTTP server both expose: parse, research, report.
// Components not needed by a constructor stay nil; operations that need
// a missing component fail with a config error.
type Engine struct {
	cfg    *config.Config
	logger *errors.Logger
	obs    *observability.ObservabilityManager

	parser     *resume.Parser
	search     *research.Client
	classifier *sentiment.Classifier

	reviews  *ai.Service
	overview *ai.Service
	skills   *ai.Service
	compose  *ai.Service
}

// NewSectionEngine builds an engine that parses resumes without AI
// skill extraction.
func NewSectionEngine(cfg *config.Config, logger *errors.Logger) (*Engine, error) {
	e := &Engine{cfg: cfg, logger: logger}
	if err := e.initParser(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewParseEngine builds an engine for resume parsing and skill
// extraction only.
func NewParseEngine(cfg *config.Config, logger *errors.Logger) (*Engine, error) {
	e := &Engine{cfg: cfg, logger: logger}
	if err := e.initParser(); err != nil {
		return nil, err
	}

	skillsCfg := cfg.GetExtractSkillsConfig()
	skills, err := ai.NewService(&skillsCfg, "extract_skills", logger)
	if err != nil {
		return nil, err
	}
	e.skills = skills
	return e, nil
}

// NewResearchEngine builds an engine for company research: search,
// sentiment classification, and the two summarization services.
func NewResearchEngine(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*Engine, error) {
	e := &Engine{cfg: cfg, logger: logger}
	if err := e.initResearch(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngine builds the full pipeline: parse, research, and report
// composition.
func NewEngine(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*Engine, error) {
	e, err := NewParseEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := e.initResearch(ctx); err != nil {
		_ = e.Close()
		return nil, err
	}

	composeCfg := cfg.GetComposeReportConfig()
	compose, err := ai.NewService(&composeCfg, "compose_report", logger)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	e.compose = compose
	return e, nil
}

func (e *Engine) initParser() error {
	sections := make([]resume.SectionPattern, len(e.cfg.Resume.Sections))
	for i, s := range e.cfg.Resume.Sections {
		sections[i] = resume.SectionPattern{ID: s.ID, Pattern: s.Pattern}
	}
	spec, err := resume.NewSpec(sections, e.cfg.Resume.ExperienceKey)
	if err != nil {
		return err
	}
	e.parser = resume.NewParser(spec, e.logger)
	return nil
}

func (e *Engine) initResearch(ctx context.Context) error {
	search, err := research.NewClient(ctx, &e.cfg.Search, e.logger)
	if err != nil {
		return err
	}
	classifier, err := sentiment.NewClassifier(&e.cfg.Sentiment, e.logger)
	if err != nil {
		return err
	}

	reviewsCfg := e.cfg.GetSummarizeReviewsConfig()
	reviews, err := ai.NewService(&reviewsCfg, "summarize_reviews", e.logger)
	if err != nil {
		return err
	}
	overviewCfg := e.cfg.GetSummarizeOverviewConfig()
	overview, err := ai.NewService(&overviewCfg, "summarize_overview", e.logger)
	if err != nil {
		_ = reviews.Close()
		return err
	}

	e.search = search
	e.classifier = classifier
	e.reviews = reviews
	e.overview = overview
	return nil
}

// SetObservability attaches an observability manager so the engine
// emits token usage and parse metrics. Without one it only logs.
func (e *Engine) SetObservability(om *observability.ObservabilityManager) {
	e.obs = om
}

// Close releases all AI services held by the engine.
func (e *Engine) Close() error {
	var firstErr error
	for _, svc := range []*ai.Service{e.reviews, e.overview, e.skills, e.compose} {
		if svc == nil {
			continue
		}
		if err := svc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ParseResume loads a resume PDF, extracts its sections and experience
// duration, and enriches the result with weighted skill entities.
func (e *Engine) ParseResume(ctx context.Context, path string) (types.ParseResumeOutput, error) {
	var out types.ParseResumeOutput
	if e.parser == nil {
		return out, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"engine was not built for resume parsing", nil)
	}

	fp := NewFileProcessor(e.logger)
	if err := fp.ValidateResumeFile(path, e.cfg.App.MaxFileSize); err != nil {
		return out, err
	}

	pages, err := resume.LoadPages(path)
	if err != nil {
		return out, err
	}
	doc, err := e.parser.Parse(pages)
	if err != nil {
		return out, err
	}

	out.Sections = doc.Sections
	out.Experience = doc.Experience

	if e.obs != nil {
		e.obs.GetMetrics().RecordParseMetrics(ctx, len(pages), len(doc.Sections), doc.Experience.Known)
	}

	if e.skills != nil {
		skillsOut, usage, err := e.skills.Provider.ExtractSkills(ctx, types.ExtractSkillsInput{
			SectionText: e.sectionText(doc.Sections),
		})
		if err != nil {
			return types.ParseResumeOutput{}, err
		}
		e.recordUsage(ctx, "extract_skills", usage)
		out.Skills = report.WeightEntities(append(skillsOut.Skills, skillsOut.SoftSkills...))
	}

	return out, nil
}

// sectionText concatenates section bodies in configured order for the
// skill extractor.
func (e *Engine) sectionText(sections resume.Sections) string {
	var text string
	for _, id := range e.parser.Spec().IDs() {
		body := sections[id]
		if body == "" {
			continue
		}
		text += fmt.Sprintf("%s\n%s\n\n", id, body)
	}
	return text
}

// ResearchCompanies runs the research pipeline for each company: review
// search and filtering, sentiment classification and bucketing, review
// summarization, and overview retrieval and summarization.
func (e *Engine) ResearchCompanies(ctx context.Context, companies []string) (types.ResearchOutput, error) {
	var out types.ResearchOutput
	if e.search == nil || e.classifier == nil {
		return out, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"engine was not built for company research", nil)
	}

	companies, err := ValidateCompanies(companies)
	if err != nil {
		return out, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"invalid company list", err)
	}

	raw, err := e.search.SearchReviewsAll(ctx, companies)
	if err != nil {
		return out, err
	}
	reviews := capPerCompany(research.FilterReviews(raw), e.cfg.Search.MaxReviews)

	enriched, err := e.classifier.EnrichReviews(ctx, reviews)
	if err != nil {
		return out, err
	}

	buckets := make(map[string]types.SentimentBuckets)
	for _, b := range sentiment.BucketByCompany(enriched) {
		buckets[b.Company] = b
	}
	counts := make(map[string]int)
	for _, r := range enriched {
		counts[r.Company]++
	}

	overviews, err := e.search.OverviewAll(ctx, companies)
	if err != nil {
		return out, err
	}

	results := make([]types.CompanyResearch, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.researchConcurrency())
	for i, company := range companies {
		g.Go(func() error {
			merged, err := e.researchOne(gctx, company, buckets[company], counts[company], overviews[i])
			if err != nil {
				return err
			}
			results[i] = merged
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	out.Companies = results
	return out, nil
}

func (e *Engine) researchConcurrency() int {
	if e.cfg.Search.BatchSize > 0 {
		return e.cfg.Search.BatchSize
	}
	return 2
}

// researchOne summarizes one company's sentiment buckets and overview
// content into a merged research record.
func (e *Engine) researchOne(ctx context.Context, company string, bucket types.SentimentBuckets, reviewCount int, overview types.CompanyOverview) (types.CompanyResearch, error) {
	var revOut types.SummarizeReviewsOutput
	if bucket.Positive == "" && bucket.Negative == "" {
		revOut = types.SummarizeReviewsOutput{
			Company: company,
			Summary: "No employee reviews found.",
		}
	} else {
		var usage *ai.TokenUsage
		var err error
		revOut, usage, err = e.reviews.Provider.SummarizeReviews(ctx, types.SummarizeReviewsInput{
			Company:         company,
			PositiveReviews: bucket.Positive,
			NegativeReviews: bucket.Negative,
		})
		if err != nil {
			return types.CompanyResearch{}, err
		}
		e.recordUsage(ctx, "summarize_reviews", usage)
	}

	var ovOut types.SummarizeOverviewOutput
	if overview.URL == "" {
		// No relevant "About Us" content was found; keep the fallback text
		// instead of summarizing it.
		ovOut = types.SummarizeOverviewOutput{Company: company, Overview: overview.Content}
	} else {
		var usage *ai.TokenUsage
		var err error
		ovOut, usage, err = e.overview.Provider.SummarizeOverview(ctx, types.SummarizeOverviewInput{
			Company: company,
			Content: overview.Content,
		})
		if err != nil {
			return types.CompanyResearch{}, err
		}
		e.recordUsage(ctx, "summarize_overview", usage)
	}

	return report.MergeCompanyResearch(revOut, ovOut, reviewCount, overview.URL), nil
}

// BuildReport runs the full pipeline: parse the resume, research the
// companies, compose the briefing, and assemble the final artifact.
func (e *Engine) BuildReport(ctx context.Context, resumePath, candidateName string, companies []string) (types.CandidateReport, error) {
	var out types.CandidateReport
	if e.compose == nil {
		return out, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"engine was not built for report composition", nil)
	}

	parsed, err := e.ParseResume(ctx, resumePath)
	if err != nil {
		return out, err
	}
	researched, err := e.ResearchCompanies(ctx, companies)
	if err != nil {
		return out, err
	}

	composed, usage, err := e.compose.Provider.ComposeReport(ctx, types.ComposeReportInput{
		CandidateName:   candidateName,
		Sections:        parsed.Sections,
		ExperienceYears: parsed.Experience.Years,
		ExperienceKnown: parsed.Experience.Known,
		Skills:          parsed.Skills,
		Companies:       researched.Companies,
	})
	if err != nil {
		return out, err
	}
	e.recordUsage(ctx, "compose_report", usage)

	return report.BuildCandidateReport(parsed, researched, composed), nil
}

func (e *Engine) recordUsage(ctx context.Context, operation string, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	if e.logger != nil {
		e.logger.Info("AI token usage",
			"operation", operation,
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}
	if e.obs != nil {
		e.obs.GetMetrics().RecordAITokens(ctx, operation, &observability.TokenUsage{
			InputTokens:  int64(usage.InputTokens),
			OutputTokens: int64(usage.OutputTokens),
			TotalTokens:  int64(usage.TotalTokens),
		}, e.obs)
	}
}

// capPerCompany keeps at most maxReviews reviews per company, in input
// order. A non-positive limit keeps everything.
func capPerCompany(reviews []types.Review, maxReviews int) []types.Review {
	if maxReviews <= 0 {
		return reviews
	}
	kept := make([]types.Review, 0, len(reviews))
	perCompany := make(map[string]int)
	for _, r := range reviews {
		if perCompany[r.Company] >= maxReviews {
			continue
		}
		perCompany[r.Company]++
		kept = append(kept, r)
	}
	return kept
}
