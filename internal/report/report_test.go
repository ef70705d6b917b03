package report

import (
	"reflect"
	"testing"

	"jobscout/internal/types"
)

func TestWeightEntities(t *testing.T) {
	tests := []struct {
		name     string
		entities []types.SkillEntity
		want     []types.WeightedEntity
	}{
		{
			name: "duplicates counted case-insensitively",
			entities: []types.SkillEntity{
				{Class: "technical_skill", Text: "Go"},
				{Class: "technical_skill", Text: "go"},
				{Class: "technical_skill", Text: "SQL"},
			},
			want: []types.WeightedEntity{
				{Class: "technical_skill", Text: "Go", Weight: 2},
				{Class: "technical_skill", Text: "SQL", Weight: 1},
			},
		},
		{
			name: "same text different class kept apart",
			entities: []types.SkillEntity{
				{Class: "technical_skill", Text: "mentoring"},
				{Class: "leadership", Text: "mentoring"},
			},
			want: []types.WeightedEntity{
				{Class: "technical_skill", Text: "mentoring", Weight: 1},
				{Class: "leadership", Text: "mentoring", Weight: 1},
			},
		},
		{
			name: "blank text dropped",
			entities: []types.SkillEntity{
				{Class: "technical_skill", Text: "   "},
				{Class: "technical_skill", Text: "Python"},
			},
			want: []types.WeightedEntity{
				{Class: "technical_skill", Text: "Python", Weight: 1},
			},
		},
		{
			name: "ordered by weight then text",
			entities: []types.SkillEntity{
				{Class: "technical_skill", Text: "Rust"},
				{Class: "technical_skill", Text: "Kubernetes"},
				{Class: "technical_skill", Text: "Kubernetes"},
				{Class: "technical_skill", Text: "Docker"},
			},
			want: []types.WeightedEntity{
				{Class: "technical_skill", Text: "Kubernetes", Weight: 2},
				{Class: "technical_skill", Text: "Docker", Weight: 1},
				{Class: "technical_skill", Text: "Rust", Weight: 1},
			},
		},
		{
			name:     "empty input",
			entities: nil,
			want:     []types.WeightedEntity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightEntities(tt.entities)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WeightEntities() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeCompanyResearch(t *testing.T) {
	reviews := types.SummarizeReviewsOutput{
		Company:   "Acme",
		Summary:   "Mostly positive.",
		Positives: []string{"good pay"},
		Negatives: []string{"long hours"},
	}
	overview := types.SummarizeOverviewOutput{
		Company:  "Acme",
		Overview: "Makes widgets.",
	}

	got := MergeCompanyResearch(reviews, overview, 12, "https://acme.example/about")

	if got.Company != "Acme" {
		t.Errorf("Company = %q, want Acme", got.Company)
	}
	if got.SentimentSummary != "Mostly positive." {
		t.Errorf("SentimentSummary = %q", got.SentimentSummary)
	}
	if got.Overview != "Makes widgets." {
		t.Errorf("Overview = %q", got.Overview)
	}
	if got.ReviewCount != 12 {
		t.Errorf("ReviewCount = %d, want 12", got.ReviewCount)
	}
	if got.OverviewURL != "https://acme.example/about" {
		t.Errorf("OverviewURL = %q", got.OverviewURL)
	}
}

func TestMergeCompanyResearchCompanyFallback(t *testing.T) {
	got := MergeCompanyResearch(
		types.SummarizeReviewsOutput{},
		types.SummarizeOverviewOutput{Company: "Globex", Overview: "Energy."},
		0, "",
	)
	if got.Company != "Globex" {
		t.Errorf("Company = %q, want overview company as fallback", got.Company)
	}
}

func TestBuildCandidateReport(t *testing.T) {
	research := types.ResearchOutput{
		Companies: []types.CompanyResearch{
			{Company: "Acme"},
			{Company: "Globex"},
			{Company: "Initech"},
		},
	}
	composed := types.ComposeReportOutput{
		Report:      "Full briefing text.",
		CompanyFits: []string{"Acme: strong fit", ""},
	}

	got := BuildCandidateReport(types.ParseResumeOutput{}, research, composed)

	if got.Report != "Full briefing text." {
		t.Errorf("Report = %q", got.Report)
	}
	want := []string{"Acme: strong fit", "Globex", "Initech"}
	if !reflect.DeepEqual(got.Companies, want) {
		t.Errorf("Companies = %v, want %v", got.Companies, want)
	}
}
