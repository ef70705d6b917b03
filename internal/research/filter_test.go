package research

import (
	"strings"
	"testing"

	"jobscout/internal/types"
)

func TestFilterReviews(t *testing.T) {
	reviews := []types.Review{
		{URL: "https://www.glassdoor.com/Reviews/Acme-Reviews-E123.htm", Content: "Great - place -- to [1] work #"},
		{URL: "https://www.acme.com/careers", Content: "We are hiring"},
		{URL: "https://www.indeed.com/cmp/Acme/reviews", Content: "   "},
		{URL: "https://www.indeed.com/cmp/Acme/REVIEWS", Content: "Solid benefits"},
	}

	got := FilterReviews(reviews)
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews after filtering, got %d", len(got))
	}
	if got[0].Content != "Great place to work" {
		t.Errorf("unexpected cleaned content: %q", got[0].Content)
	}
	if got[1].Content != "Solid benefits" {
		t.Errorf("unexpected content: %q", got[1].Content)
	}
}

func TestCleanReviewContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"citations removed", "good pay [source: indeed] overall", "good pay overall"},
		{"dashes collapsed", "work-life balance --- fine", "work life balance fine"},
		{"markdown hash removed", "# Heading text", "Heading text"},
		{"whitespace collapsed", "a\n\t b   c", "a b c"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanReviewContent(tt.in); got != tt.want {
				t.Errorf("CleanReviewContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatOverview(t *testing.T) {
	got := FormatOverview("Acme | About Us", "Acme builds (probably) the best widgets [citation] — since 1999!")
	if !strings.HasPrefix(got, "#Acme | About Us:\n") {
		t.Fatalf("missing title block: %q", got)
	}
	body := strings.TrimPrefix(got, "#Acme | About Us:\n")
	if body != "Acme builds the best widgets since 1999" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestSiteQuery(t *testing.T) {
	if got := siteQuery("acme reviews", nil); got != "acme reviews" {
		t.Errorf("no sites should leave query unchanged, got %q", got)
	}
	got := siteQuery("acme reviews", []string{"glassdoor.com", "indeed.com"})
	want := "acme reviews site:glassdoor.com OR site:indeed.com"
	if got != want {
		t.Errorf("siteQuery = %q, want %q", got, want)
	}
}
