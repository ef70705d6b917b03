package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobscout/internal/config"
	apperrors "jobscout/internal/errors"
	"jobscout/internal/types"
)

func testClassifierConfig(endpoint string) *config.SentimentConfig {
	return &config.SentimentConfig{
		Endpoint:   endpoint,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		BatchSize:  2,
	}
}

func testLogger(t *testing.T) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func newTestClassifier(t *testing.T, endpoint string) *Classifier {
	t.Helper()
	c, err := NewClassifier(testClassifierConfig(endpoint), testLogger(t))
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func classifierStub(t *testing.T, respond func(inputs []string) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(respond(req.Inputs))
	}))
}

func TestNewClassifierRequiresEndpoint(t *testing.T) {
	_, err := NewClassifier(&config.SentimentConfig{}, testLogger(t))
	if err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestClassifyBatches(t *testing.T) {
	var calls atomic.Int32
	srv := classifierStub(t, func(inputs []string) any {
		calls.Add(1)
		out := make([]Prediction, len(inputs))
		for i := range inputs {
			out[i] = Prediction{Label: "POSITIVE", Score: 0.9}
		}
		return out
	})
	defer srv.Close()

	c := newTestClassifier(t, srv.URL)
	predictions, err := c.Classify(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(predictions) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(predictions))
	}
	// Batch size 2 splits three inputs into two calls.
	if calls.Load() != 2 {
		t.Errorf("expected 2 batch calls, got %d", calls.Load())
	}
}

func TestClassifyCountMismatch(t *testing.T) {
	srv := classifierStub(t, func(inputs []string) any {
		return []Prediction{{Label: "POSITIVE", Score: 0.5}}
	})
	defer srv.Close()

	c := newTestClassifier(t, srv.URL)
	_, err := c.Classify(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error on prediction count mismatch")
	}
}

func TestClassifyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]Prediction{{Label: "NEGATIVE", Score: 0.8}})
	}))
	defer srv.Close()

	c := newTestClassifier(t, srv.URL)
	predictions, err := c.Classify(context.Background(), []string{"rough quarter"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if predictions[0].Label != "NEGATIVE" {
		t.Errorf("label = %q", predictions[0].Label)
	}
	if calls.Load() != 2 {
		t.Errorf("expected retry after 503, got %d calls", calls.Load())
	}
}

func TestEnrichReviews(t *testing.T) {
	srv := classifierStub(t, func(inputs []string) any {
		out := make([]Prediction, len(inputs))
		for i, text := range inputs {
			if text == "Great team" {
				out[i] = Prediction{Label: "POSITIVE", Score: 0.97}
			} else {
				out[i] = Prediction{Label: "NEGATIVE", Score: 0.91}
			}
		}
		return out
	})
	defer srv.Close()

	c := newTestClassifier(t, srv.URL)
	reviews := []types.Review{
		{Company: "Acme", Content: "Great team"},
		{Company: "Acme", Content: "No growth"},
	}

	enriched, err := c.EnrichReviews(context.Background(), reviews)
	if err != nil {
		t.Fatalf("EnrichReviews: %v", err)
	}
	if enriched[0].Label != "POSITIVE" || enriched[0].SentimentScore != 0.97 {
		t.Errorf("first review = %q/%v", enriched[0].Label, enriched[0].SentimentScore)
	}
	if enriched[1].Label != "NEGATIVE" {
		t.Errorf("second review label = %q", enriched[1].Label)
	}
	// Input slice stays untouched.
	if reviews[0].Label != "" {
		t.Errorf("input slice mutated: %q", reviews[0].Label)
	}
}

func TestDecodePredictions(t *testing.T) {
	t.Run("flat list", func(t *testing.T) {
		got, err := decodePredictions([]byte(`[{"label":"POSITIVE","score":0.9}]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Label != "POSITIVE" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("nested candidates keep best score", func(t *testing.T) {
		raw := []byte(`[[{"label":"NEGATIVE","score":0.2},{"label":"POSITIVE","score":0.8}]]`)
		got, err := decodePredictions(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Label != "POSITIVE" || got[0].Score != 0.8 {
			t.Errorf("got %+v", got[0])
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := decodePredictions([]byte(`{"error":"model loading"}`)); err == nil {
			t.Error("expected error for non-list response")
		}
	})
}
