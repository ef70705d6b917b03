package types

import "jobscout/internal/resume"

// Review is one employee-review search result enriched, step by step, with
// the company it was retrieved for and its classified sentiment.
type Review struct {
	URL     string  `json:"url"`
	Title   string  `json:"title,omitempty"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Company string  `json:"company"`

	// Set by sentiment classification.
	Label          string  `json:"label,omitempty"`
	SentimentScore float64 `json:"sentimentScore,omitempty"`
}

// CompanyOverview is the cleaned "About Us" content retrieved for a company.
// URL is empty when no relevant content was found.
type CompanyOverview struct {
	Company string `json:"company"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

// SentimentBuckets groups a company's review contents by classified label,
// already concatenated into numbered lists ready for summarization.
type SentimentBuckets struct {
	Company  string `json:"company"`
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// SummarizeReviewsInput represents the input for summarizing a company's
// classified reviews
type SummarizeReviewsInput struct {
	Company         string `json:"company"`
	PositiveReviews string `json:"positiveReviews"`
	NegativeReviews string `json:"negativeReviews"`
}

// SummarizeReviewsOutput represents the output from review summarization
type SummarizeReviewsOutput struct {
	Company   string   `json:"company"`
	Summary   string   `json:"summary"`
	Positives []string `json:"positives"`
	Negatives []string `json:"negatives"`
}

// SummarizeOverviewInput represents the input for summarizing a company's
// "About Us" content
type SummarizeOverviewInput struct {
	Company string `json:"company"`
	Content string `json:"content"`
}

// SummarizeOverviewOutput represents the output from overview summarization
type SummarizeOverviewOutput struct {
	Company  string `json:"company"`
	Overview string `json:"overview"`
}

// SkillEntity is a single extracted skill span and its category
type SkillEntity struct {
	Class string `json:"class"` // e.g. "technical_skill", "communication", "leadership"
	Text  string `json:"text"`
}

// WeightedEntity is a skill entity with its occurrence count across the
// analyzed sections
type WeightedEntity struct {
	Class  string `json:"class"`
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// ExtractSkillsInput represents the input for skill entity extraction over
// concatenated resume sections
type ExtractSkillsInput struct {
	SectionText string `json:"sectionText"`
}

// ExtractSkillsOutput represents the output from skill entity extraction
type ExtractSkillsOutput struct {
	Skills     []SkillEntity `json:"skills"`
	SoftSkills []SkillEntity `json:"softSkills"`
}

// CompanyResearch is the merged research result for a single company
type CompanyResearch struct {
	Company          string   `json:"company"`
	SentimentSummary string   `json:"sentimentSummary"`
	Positives        []string `json:"positives,omitempty"`
	Negatives        []string `json:"negatives,omitempty"`
	Overview         string   `json:"overview"`
	OverviewURL      string   `json:"overviewUrl,omitempty"`
	ReviewCount      int      `json:"reviewCount"`
}

// ComposeReportInput represents the input for assembling the final candidate
// report
type ComposeReportInput struct {
	CandidateName   string            `json:"candidateName,omitempty"`
	Sections        map[string]string `json:"sections"`
	ExperienceYears float64           `json:"experienceYears"`
	ExperienceKnown bool              `json:"experienceKnown"`
	Skills          []WeightedEntity  `json:"skills"`
	Companies       []CompanyResearch `json:"companies"`
}

// ComposeReportOutput represents the final report text plus the per-company
// fit notes the model produced
type ComposeReportOutput struct {
	Report      string   `json:"report"`
	CompanyFits []string `json:"companyFits"`
}

// ParseResumeOutput is the CLI/server-facing result of the resume pipeline
type ParseResumeOutput struct {
	Sections   resume.Sections   `json:"sections"`
	Experience resume.Experience `json:"experience"`
	Skills     []WeightedEntity  `json:"skills,omitempty"`
}

// ResearchOutput is the CLI/server-facing result of company research
type ResearchOutput struct {
	Companies []CompanyResearch `json:"companies"`
}

// CandidateReport is the CLI/server-facing final artifact
type CandidateReport struct {
	Resume    ParseResumeOutput `json:"resume"`
	Research  ResearchOutput    `json:"research"`
	Report    string            `json:"report"`
	Companies []string          `json:"companies"`
}
