// Package report assembles the final candidate artifact: it weights
// extracted skill entities by occurrence, merges per-company sentiment
// and overview summaries, and combines everything with the composed
// report text.
package report

import (
	"sort"
	"strings"

	"jobscout/internal/types"
)

// WeightEntities collapses duplicate skill entities into weighted ones.
// Entities are identical when class and text match case-insensitively;
// the first-seen spelling is kept. The result is ordered by descending
// weight, then alphabetically by text for stable output.
func WeightEntities(entities []types.SkillEntity) []types.WeightedEntity {
	type key struct {
		class string
		text  string
	}

	order := make([]key, 0, len(entities))
	counts := make(map[key]*types.WeightedEntity, len(entities))

	for _, e := range entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		k := key{
			class: strings.ToLower(strings.TrimSpace(e.Class)),
			text:  strings.ToLower(text),
		}
		if w, ok := counts[k]; ok {
			w.Weight++
			continue
		}
		counts[k] = &types.WeightedEntity{
			Class:  e.Class,
			Text:   text,
			Weight: 1,
		}
		order = append(order, k)
	}

	weighted := make([]types.WeightedEntity, 0, len(order))
	for _, k := range order {
		weighted = append(weighted, *counts[k])
	}
	sort.SliceStable(weighted, func(i, j int) bool {
		if weighted[i].Weight != weighted[j].Weight {
			return weighted[i].Weight > weighted[j].Weight
		}
		return strings.ToLower(weighted[i].Text) < strings.ToLower(weighted[j].Text)
	})
	return weighted
}

// MergeCompanyResearch combines a company's review digest and overview
// summary into one research record.
func MergeCompanyResearch(reviews types.SummarizeReviewsOutput, overview types.SummarizeOverviewOutput, reviewCount int, overviewURL string) types.CompanyResearch {
	company := reviews.Company
	if company == "" {
		company = overview.Company
	}
	return types.CompanyResearch{
		Company:          company,
		SentimentSummary: reviews.Summary,
		Positives:        reviews.Positives,
		Negatives:        reviews.Negatives,
		Overview:         overview.Overview,
		OverviewURL:      overviewURL,
		ReviewCount:      reviewCount,
	}
}

// BuildCandidateReport assembles the final artifact from the parsed
// resume, the company research, and the composed report text. Company
// fit lines are paired with the researched companies in order; if the
// model returned fewer fits than companies, the remainder carry the
// bare company name.
func BuildCandidateReport(parsed types.ParseResumeOutput, research types.ResearchOutput, composed types.ComposeReportOutput) types.CandidateReport {
	fits := make([]string, 0, len(research.Companies))
	for i, c := range research.Companies {
		if i < len(composed.CompanyFits) && composed.CompanyFits[i] != "" {
			fits = append(fits, composed.CompanyFits[i])
			continue
		}
		fits = append(fits, c.Company)
	}

	return types.CandidateReport{
		Resume:    parsed,
		Research:  research,
		Report:    composed.Report,
		Companies: fits,
	}
}
