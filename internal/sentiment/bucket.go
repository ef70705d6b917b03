package sentiment

import (
	"fmt"
	"strings"

	"jobscout/internal/types"
)

// Sentiment labels produced by the classifier.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// BucketByCompany groups classified reviews by company and concatenates each
// label's contents into a numbered list ready for summarization. Companies
// appear in the order their first review appears. Reviews with other labels
// (including unclassified ones) are dropped.
func BucketByCompany(reviews []types.Review) []types.SentimentBuckets {
	type lists struct {
		positive []string
		negative []string
	}

	order := make([]string, 0)
	byCompany := make(map[string]*lists)

	for _, r := range reviews {
		l, ok := byCompany[r.Company]
		if !ok {
			l = &lists{}
			byCompany[r.Company] = l
			order = append(order, r.Company)
		}
		switch strings.ToUpper(r.Label) {
		case LabelPositive:
			l.positive = append(l.positive, r.Content)
		case LabelNegative:
			l.negative = append(l.negative, r.Content)
		}
	}

	buckets := make([]types.SentimentBuckets, 0, len(order))
	for _, company := range order {
		l := byCompany[company]
		buckets = append(buckets, types.SentimentBuckets{
			Company:  company,
			Positive: numberedList(l.positive),
			Negative: numberedList(l.negative),
		})
	}
	return buckets
}

// numberedList renders items as "1. ...\n2. ..." for prompt consumption.
func numberedList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}
