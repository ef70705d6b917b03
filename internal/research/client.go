// Package research retrieves employee reviews and company "About Us" content
// through a web-search API and normalizes the results for sentiment
// classification and summarization.
package research

import (
	"context"
	"fmt"
	"sort"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Client wraps the Custom Search service with query pacing and the
// review-specific filtering the pipeline needs.
type Client struct {
	svc     *customsearch.Service
	cfg     *config.SearchConfig
	limiter *rate.Limiter
	logger  *errors.Logger
}

// NewClient creates a research client. The search API enforces its own
// quotas, so queries are paced client-side to stay under them.
func NewClient(ctx context.Context, cfg *config.SearchConfig, logger *errors.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"search API key is required", nil)
	}
	if cfg.EngineID == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"search engine ID is required", nil)
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.NewSearchError(errors.ErrCodeSearchFailed,
			"failed to create search service", err)
	}

	limit := rate.Limit(float64(cfg.QueriesPerMinute) / 60.0)
	if cfg.QueriesPerMinute <= 0 {
		limit = rate.Inf
	}

	return &Client{
		svc:     svc,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// SearchReviews fetches up to MaxReviews employee-review results for one
// company, restricted to the configured review sites, tags each result with
// the company name, and returns them sorted by score (descending).
func (c *Client) SearchReviews(ctx context.Context, company string) ([]types.Review, error) {
	tracer := otel.Tracer("jobscout.research")
	ctx, span := tracer.Start(ctx, "research.search_reviews")
	defer span.End()
	span.SetAttributes(attribute.String("research.company", company))

	query := fmt.Sprintf("%s employee reviews", company)
	items, err := c.search(ctx, query, c.cfg.ReviewSites, int64(c.cfg.MaxReviews))
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewSearchError(errors.ErrCodeSearchFailed,
			fmt.Sprintf("review search failed for %s", company), err)
	}

	reviews := make([]types.Review, 0, len(items))
	for rank, item := range items {
		reviews = append(reviews, types.Review{
			URL:     item.Link,
			Title:   item.Title,
			Content: item.Snippet,
			// The API returns rank order, not relevance scores; derive a
			// monotonically decreasing score so downstream ordering holds.
			Score:   1.0 - float64(rank)*0.05,
			Company: company,
		})
	}

	sort.Slice(reviews, func(i, j int) bool { return reviews[i].Score > reviews[j].Score })
	span.SetAttributes(attribute.Int("research.results", len(reviews)))
	return reviews, nil
}

// SearchReviewsAll runs SearchReviews for every company, BatchSize companies
// at a time, and returns a flat result list in input order.
func (c *Client) SearchReviewsAll(ctx context.Context, companies []string) ([]types.Review, error) {
	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 2
	}

	perCompany := make([][]types.Review, len(companies))
	for start := 0; start < len(companies); start += batchSize {
		end := min(start+batchSize, len(companies))

		if c.logger != nil {
			c.logger.Debug("Processing review search batch",
				"batch_start", start,
				"batch_end", end,
				"total_companies", len(companies))
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				reviews, err := c.SearchReviews(gctx, companies[i])
				if err != nil {
					return err
				}
				perCompany[i] = reviews
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var all []types.Review
	for _, reviews := range perCompany {
		all = append(all, reviews...)
	}
	return all, nil
}

// CompanyOverview fetches and formats a company's "About Us" page content.
// A company with no usable result yields an explicit fallback record rather
// than an error: missing marketing copy should not sink the whole research
// run.
func (c *Client) CompanyOverview(ctx context.Context, company string) (types.CompanyOverview, error) {
	tracer := otel.Tracer("jobscout.research")
	ctx, span := tracer.Start(ctx, "research.company_overview")
	defer span.End()
	span.SetAttributes(attribute.String("research.company", company))

	query := fmt.Sprintf("%s about us page", company)
	items, err := c.search(ctx, query, nil, int64(c.cfg.MaxOverviewResults))
	if err != nil {
		span.RecordError(err)
		return types.CompanyOverview{}, errors.NewSearchError(errors.ErrCodeSearchFailed,
			fmt.Sprintf("overview search failed for %s", company), err)
	}

	for _, item := range items {
		if item.Snippet == "" {
			continue
		}
		return types.CompanyOverview{
			Company: company,
			URL:     item.Link,
			Content: FormatOverview(item.Title, item.Snippet),
		}, nil
	}

	return types.CompanyOverview{
		Company: company,
		Content: "No relevant 'About Us' content found.",
	}, nil
}

// OverviewAll fetches overviews for all companies concurrently.
func (c *Client) OverviewAll(ctx context.Context, companies []string) ([]types.CompanyOverview, error) {
	overviews := make([]types.CompanyOverview, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	for i, company := range companies {
		g.Go(func() error {
			overview, err := c.CompanyOverview(gctx, company)
			if err != nil {
				return err
			}
			overviews[i] = overview
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overviews, nil
}

// search runs one paced query, optionally restricted to a site list.
func (c *Client) search(ctx context.Context, query string, sites []string, num int64) ([]*customsearch.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Cse.List().Context(ctx).Cx(c.cfg.EngineID).Q(siteQuery(query, sites))
	if num > 0 {
		if num > 10 {
			num = 10 // API maximum per request
		}
		call = call.Num(num)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// siteQuery appends OR-ed site: restrictions to a query.
func siteQuery(query string, sites []string) string {
	for i, site := range sites {
		if i == 0 {
			query += " site:" + site
		} else {
			query += " OR site:" + site
		}
	}
	return query
}
