package research

import (
	"regexp"
	"strings"

	"jobscout/internal/types"
)

var (
	// Search snippets come back with markdown remnants, ellipses and
	// bracketed citations; classifiers choke on them.
	reviewCiteRe    = regexp.MustCompile(`\[.*?\]|#`)
	reviewSpaceRe   = regexp.MustCompile(`[\s-]+`)
	overviewCiteRe  = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	overviewNoiseRe = regexp.MustCompile(`[\s|!*:),(\-—=]+`)
)

// FilterReviews keeps only results whose URL actually points at a review
// page and rewrites their content into classifier-friendly plain text.
// Results left with no content after cleanup are dropped.
func FilterReviews(reviews []types.Review) []types.Review {
	filtered := make([]types.Review, 0, len(reviews))
	for _, r := range reviews {
		if !strings.Contains(strings.ToLower(r.URL), "review") {
			continue
		}
		r.Content = CleanReviewContent(r.Content)
		if r.Content == "" {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// CleanReviewContent strips markdown remnants and collapses whitespace and
// dash runs into single spaces.
func CleanReviewContent(s string) string {
	s = reviewCiteRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(reviewSpaceRe.ReplaceAllString(s, " "))
}

// FormatOverview renders an "About Us" snippet as a titled block after
// removing citations and collapsing separator noise.
func FormatOverview(title, content string) string {
	content = overviewCiteRe.ReplaceAllString(content, "")
	content = strings.TrimSpace(overviewNoiseRe.ReplaceAllString(content, " "))
	return "#" + title + ":\n" + content
}
