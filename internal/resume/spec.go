// Package resume recovers structured sections from the loosely-structured,
// layout-derived text of a resume PDF and infers a total experience duration
// from the date tokens found in the experience section.
package resume

import (
	"fmt"
	"regexp"

	"jobscout/internal/errors"
)

// SectionPattern pairs a section identifier with the regular expression that
// detects its header in page text. Patterns are configuration, not code, so
// layout conventions can be swapped without touching the assembler.
type SectionPattern struct {
	ID      string
	Pattern string
}

type compiledSection struct {
	id string
	re *regexp.Regexp
}

// Spec is the ordered list of sections expected in a document. Order matters:
// it determines which identifier a detected header is assigned to and which
// header is "next" when slicing a section's body. A Spec is immutable after
// construction and safe for concurrent use.
type Spec struct {
	sections      []compiledSection
	experienceKey string
}

// NewSpec compiles the configured section patterns and validates that
// experienceKey names one of them. An experienceKey outside the configured
// identifiers fails fast here, before any page is ever scanned.
func NewSpec(sections []SectionPattern, experienceKey string) (*Spec, error) {
	if len(sections) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidConfig,
			"at least one section pattern is required", nil)
	}

	compiled := make([]compiledSection, 0, len(sections))
	seen := make(map[string]bool, len(sections))
	found := false

	for _, s := range sections {
		if s.ID == "" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidConfig,
				"section identifier cannot be empty", nil)
		}
		if seen[s.ID] {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("duplicate section identifier: %s", s.ID), nil)
		}
		seen[s.ID] = true

		pattern := s.Pattern
		if pattern == "" {
			// Default to the identifier's literal appearance in page text.
			pattern = regexp.QuoteMeta(s.ID)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid pattern for section %s", s.ID), err)
		}

		compiled = append(compiled, compiledSection{id: s.ID, re: re})
		if s.ID == experienceKey {
			found = true
		}
	}

	if !found {
		return nil, errors.NewValidationError(errors.ErrCodeMissingExperienceKey,
			fmt.Sprintf("experience key %q is not among the configured sections", experienceKey), nil)
	}

	return &Spec{sections: compiled, experienceKey: experienceKey}, nil
}

// SpecFromIdentifiers builds a Spec whose patterns are the literal section
// names, matching the common case where headers appear verbatim in the text.
func SpecFromIdentifiers(ids []string, experienceKey string) (*Spec, error) {
	sections := make([]SectionPattern, len(ids))
	for i, id := range ids {
		sections[i] = SectionPattern{ID: id}
	}
	return NewSpec(sections, experienceKey)
}

// IDs returns the configured section identifiers in order.
func (s *Spec) IDs() []string {
	ids := make([]string, len(s.sections))
	for i, sec := range s.sections {
		ids[i] = sec.id
	}
	return ids
}

// ExperienceKey returns the identifier of the section that accumulates
// cross-page experience content.
func (s *Spec) ExperienceKey() string {
	return s.experienceKey
}
