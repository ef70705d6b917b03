package resume

import (
	"jobscout/internal/errors"
)

// Document is the structured result of parsing one resume: the per-section
// bodies and the experience duration derived from them. It is built once and
// never mutated after being returned.
type Document struct {
	Sections   Sections   `json:"sections"`
	Experience Experience `json:"experience"`
}

// Parser is the pipeline facade: locate headers, assemble sections, derive
// the experience span. The parsing itself is deterministic, CPU-bound text
// processing with no I/O; a Parser is safe to share across goroutines as
// long as distinct documents are parsed.
type Parser struct {
	spec   *Spec
	logger *errors.Logger
}

// NewParser returns a parser for the given section spec. The spec has already
// validated the experience key, so misconfiguration cannot reach Parse.
func NewParser(spec *Spec, logger *errors.Logger) *Parser {
	return &Parser{spec: spec, logger: logger}
}

// Parse runs the full pipeline over the raw page texts. Structural failures
// (no headers on a page, empty document) abort the document and propagate;
// data-quality failures in date tokens degrade to an unknown experience
// duration instead of failing the whole parse.
func (p *Parser) Parse(pages []string) (*Document, error) {
	sections, err := p.spec.Assemble(pages)
	if err != nil {
		return nil, err
	}

	experience := YearsOfExperience(sections[p.spec.ExperienceKey()])

	if p.logger != nil {
		p.logger.Debug("Parsed resume document",
			"pages", len(pages),
			"sections", len(sections),
			"experience_known", experience.Known,
			"experience_years", experience.Years)
	}

	return &Document{Sections: sections, Experience: experience}, nil
}

// Spec exposes the parser's section spec for callers that need the configured
// identifiers or experience key.
func (p *Parser) Spec() *Spec {
	return p.spec
}
