// Package sentiment classifies review snippets through an external
// sentiment-analysis HTTP endpoint and buckets the results per company.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/types"

	"github.com/sony/gobreaker/v2"
)

// Prediction is one classified text: a POSITIVE/NEGATIVE label with the
// model's confidence.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier calls a sentiment-analysis inference endpoint. The endpoint
// accepts {"inputs": [...texts]} and returns one prediction per input.
type Classifier struct {
	endpoint   string
	apiKey     string
	batchSize  int
	maxRetries int
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]Prediction]
	logger     *errors.Logger
}

// NewClassifier creates a classifier from configuration.
func NewClassifier(cfg *config.SentimentConfig, logger *errors.Logger) (*Classifier, error) {
	if cfg.Endpoint == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"sentiment classifier endpoint is required", nil)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	c := &Classifier{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		batchSize:  batchSize,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}

	if cfg.CircuitBreaker.Enabled {
		settings := gobreaker.Settings{
			Name:        "SentimentClassifier",
			MaxRequests: cfg.CircuitBreaker.MaxRequests,
			Interval:    cfg.CircuitBreaker.Interval,
			Timeout:     cfg.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
					failureRatio >= cfg.CircuitBreaker.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String())
			},
		}
		c.cb = gobreaker.NewCircuitBreaker[[]Prediction](settings)
	}

	return c, nil
}

// Classify returns one prediction per input text, calling the endpoint in
// batches of the configured size.
func (c *Classifier) Classify(ctx context.Context, texts []string) ([]Prediction, error) {
	predictions := make([]Prediction, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))

		batch, err := c.execute(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, errors.NewNetworkError(errors.ErrCodeClassifierFailed,
				fmt.Sprintf("classifier returned %d predictions for %d inputs", len(batch), end-start), nil)
		}
		predictions = append(predictions, batch...)
	}
	return predictions, nil
}

// EnrichReviews classifies each review's content and returns the reviews
// with Label and SentimentScore set.
func (c *Classifier) EnrichReviews(ctx context.Context, reviews []types.Review) ([]types.Review, error) {
	if len(reviews) == 0 {
		return reviews, nil
	}

	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Content
	}

	predictions, err := c.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}

	enriched := make([]types.Review, len(reviews))
	for i, r := range reviews {
		r.Label = predictions[i].Label
		r.SentimentScore = predictions[i].Score
		enriched[i] = r
	}

	if c.logger != nil {
		c.logger.Debug("Classified reviews", "count", len(enriched))
	}
	return enriched, nil
}

// execute runs one batch through the circuit breaker.
func (c *Classifier) execute(ctx context.Context, texts []string) ([]Prediction, error) {
	call := func() ([]Prediction, error) {
		return c.classifyBatch(ctx, texts)
	}
	if c.cb != nil {
		return c.cb.Execute(call)
	}
	return call()
}

// classifyBatch posts one batch of texts, retrying transient failures.
func (c *Classifier) classifyBatch(ctx context.Context, texts []string) ([]Prediction, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		predictions, retryable, err := c.doRequest(ctx, texts)
		if err == nil {
			return predictions, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if c.logger != nil {
			c.logger.Warn("Classifier request failed, retrying",
				"attempt", attempt+1,
				"max_retries", c.maxRetries,
				"error", err.Error())
		}
	}

	return nil, errors.NewNetworkError(errors.ErrCodeClassifierFailed,
		"sentiment classification failed", lastErr)
}

// doRequest performs a single HTTP call. The second return reports whether
// the failure is worth retrying.
func (c *Classifier) doRequest(ctx context.Context, texts []string) ([]Prediction, bool, error) {
	body, err := json.Marshal(map[string][]string{"inputs": texts})
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		retryable := stderrors.As(err, &netErr) && netErr.Timeout()
		return nil, retryable, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	predictions, err := decodePredictions(raw)
	if err != nil {
		return nil, false, err
	}
	return predictions, false, nil
}

// decodePredictions accepts both a flat prediction list and the nested
// candidates-per-input shape some inference servers return, keeping the
// highest-scored candidate for each input in the nested case.
func decodePredictions(raw []byte) ([]Prediction, error) {
	var flat []Prediction
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	var nested [][]Prediction
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("unexpected classifier response: %s", truncate(string(raw), 200))
	}

	predictions := make([]Prediction, 0, len(nested))
	for _, candidates := range nested {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("classifier returned no candidates for an input")
		}
		best := candidates[0]
		for _, cand := range candidates[1:] {
			if cand.Score > best.Score {
				best = cand
			}
		}
		predictions = append(predictions, best)
	}
	return predictions, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
