package ai

// SystemPrompts holds the built-in system instructions for every AI
// operation. They can be overridden per operation through configuration.
type SystemPrompts struct {
	SummarizeReviews  string
	SummarizeOverview string
	ExtractSkills     string
	ComposeReport     string
}

// UserPrompts holds the built-in user prompt templates. Each template
// is a fmt.Sprintf format string filled in by the provider.
type UserPrompts struct {
	SummarizeReviews  string
	SummarizeOverview string
	ExtractSkills     string
	ComposeReport     string
}

// DefaultSystemPrompts are used when neither a prompt file nor an
// inline prompt is configured for an operation.
var DefaultSystemPrompts = SystemPrompts{
	SummarizeReviews: `You are an employment research analyst. You summarize employee reviews of a company into a balanced, factual sentiment digest. You never invent claims that are not supported by the supplied reviews, and you keep the summary concise and neutral in tone.`,

	SummarizeOverview: `You are a company research assistant. You condense "About Us" web content into a short factual overview of what the company does, its size, and its domain. Ignore marketing superlatives and navigation noise.`,

	ExtractSkills: `You are a resume analysis engine. You extract skill entities from resume text and classify each one. Use the class "technical_skill" for tools, languages, frameworks and technologies, and classes such as "communication", "leadership", "teamwork" or "problem_solving" for soft skills. Extract the exact text spans as they appear; do not normalize or deduplicate.`,

	ComposeReport: `You are a career research assistant producing a candidate briefing. Given a candidate's resume profile and research on companies they may apply to, write a clear report that connects the candidate's experience and skills to each company's culture and sentiment. Be specific and grounded in the supplied data only.`,
}

// DefaultUserPrompts are the fallback user prompt templates.
var DefaultUserPrompts = UserPrompts{
	SummarizeReviews: `Summarize the employee sentiment for %s based on the reviews below.

Positive reviews:
%s

Negative reviews:
%s

Produce a short overall summary, plus the key recurring positive and negative themes as separate lists.`,

	SummarizeOverview: `Summarize what the company %s does based on this "About Us" content:

%s

Keep the overview to a few sentences focused on the company's business, products and domain.`,

	ExtractSkills: `Extract all skill entities from the following resume sections. Classify each entity, keeping technical skills separate from soft skills:

%s`,

	ComposeReport: `Compose a candidate briefing report.

Candidate profile:
%s

Experience: %s

Skills (with occurrence counts):
%s

Company research:
%s

Write the report, then give a one-line fit assessment for each researched company in the same order.`,
}
