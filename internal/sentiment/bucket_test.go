package sentiment

import (
	"testing"

	"jobscout/internal/types"
)

func TestBucketByCompany(t *testing.T) {
	reviews := []types.Review{
		{Company: "Acme", Content: "Great culture", Label: "POSITIVE"},
		{Company: "Globex", Content: "Long hours", Label: "NEGATIVE"},
		{Company: "Acme", Content: "Poor management", Label: "negative"},
		{Company: "Acme", Content: "Good benefits", Label: "POSITIVE"},
		{Company: "Globex", Content: "Unlabeled snippet"},
	}

	buckets := BucketByCompany(reviews)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(buckets))
	}

	// Companies keep first-seen order.
	if buckets[0].Company != "Acme" || buckets[1].Company != "Globex" {
		t.Fatalf("unexpected company order: %s, %s", buckets[0].Company, buckets[1].Company)
	}

	wantPositive := "1. Great culture\n2. Good benefits"
	if buckets[0].Positive != wantPositive {
		t.Errorf("Acme positive = %q, want %q", buckets[0].Positive, wantPositive)
	}
	if buckets[0].Negative != "1. Poor management" {
		t.Errorf("Acme negative = %q", buckets[0].Negative)
	}
	if buckets[1].Positive != "" {
		t.Errorf("Globex positive should be empty, got %q", buckets[1].Positive)
	}
	if buckets[1].Negative != "1. Long hours" {
		t.Errorf("Globex negative = %q", buckets[1].Negative)
	}
}

func TestBucketByCompanyEmpty(t *testing.T) {
	if buckets := BucketByCompany(nil); len(buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(buckets))
	}
}

func TestNumberedList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"only"}, "1. only"},
		{"multiple", []string{"a", "b", "c"}, "1. a\n2. b\n3. c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberedList(tt.items); got != tt.want {
				t.Errorf("numberedList = %q, want %q", got, tt.want)
			}
		})
	}
}
