package resume

import (
	"fmt"
	"regexp"
	"strings"

	"jobscout/internal/errors"
)

// Sections maps a section identifier to its accumulated body text. The
// experience section's body may be the concatenation of fragments harvested
// from multiple pages, joined in page order with a separating newline.
type Sections map[string]string

// jobEntryRe recognizes a dated job entry line: a non-bullet line ending in a
// "Month Year – Month Year" range (the closing month/year may be missing for
// current roles). Such a line opening a page before any header is an orphaned
// continuation of the experience section from the previous page.
var jobEntryRe = regexp.MustCompile(
	`(?m)^[^•\n].*?\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4}\s*[-–]\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s*)?\d{0,4}[ \t]*$`)

// Assemble slices every page into per-section bodies and merges them into a
// single Sections mapping.
//
// Identifiers are tracked as an ordered queue of not-yet-assigned sections,
// consumed in match order across pages. Each header match is assigned to its
// own identifier when that identifier is still unassigned; a repeated or
// misdetected header falls back to the queue front, preserving the positional
// assignment the layout convention implies. A section's body runs from its
// header's end offset to the next header's start offset (end of page for the
// last match), stripped of surrounding whitespace. On pages after the first,
// any dated job entry found before the page's earliest header is appended to
// the experience section.
//
// A page with zero header matches is a structural failure and yields a
// NO_SECTIONS_DETECTED error naming the page; absence of a single header on
// a single page is not (it just matches elsewhere).
func (s *Spec) Assemble(pages []string) (Sections, error) {
	if len(pages) == 0 {
		return nil, errors.NewParseError(errors.ErrCodeEmptyDocument,
			"document has no pages", nil)
	}

	sections := make(Sections, len(s.sections))
	queue := s.IDs()

	for i, page := range pages {
		pageNum := i + 1
		matches := s.Locate(page)
		if len(matches) == 0 {
			return nil, errors.NewParseError(errors.ErrCodeNoSectionsDetected,
				fmt.Sprintf("no section headers detected on page %d", pageNum), nil).
				WithContext("page", pageNum)
		}

		if pageNum > 1 {
			s.appendContinuation(sections, page, matches)
		}

		for idx, m := range matches {
			if len(queue) == 0 {
				// More header matches than configured sections; the
				// remaining slices have no identifier to belong to.
				break
			}

			var body string
			if idx+1 < len(matches) {
				body = page[m.End:matches[idx+1].Start]
			} else {
				body = page[m.End:]
			}

			id, ok := takeID(&queue, m.Section)
			if !ok {
				break
			}
			sections[id] = strings.TrimSpace(body)
		}
	}

	return sections, nil
}

// takeID removes and returns the identifier a match should fill: the matched
// section itself if it is still pending, otherwise the queue front.
func takeID(queue *[]string, section string) (string, bool) {
	q := *queue
	if len(q) == 0 {
		return "", false
	}
	for i, id := range q {
		if id == section {
			*queue = append(q[:i:i], q[i+1:]...)
			return id, true
		}
	}
	*queue = q[1:]
	return q[0], true
}

// appendContinuation harvests experience text that spilled onto a
// continuation page without repeating its header: everything from the first
// dated job entry up to the page's earliest detected header.
func (s *Spec) appendContinuation(sections Sections, page string, matches []Match) {
	minStart := matches[0].Start // Locate returns matches sorted by start

	loc := jobEntryRe.FindStringIndex(page)
	if loc == nil || loc[0] >= minStart {
		return
	}

	fragment := strings.TrimSpace(page[loc[0]:minStart])
	if fragment == "" {
		return
	}

	existing, ok := sections[s.experienceKey]
	if !ok || existing == "" {
		// No experience body harvested yet; fall back to the bare header
		// label so the fragment still lands under the right key.
		existing = s.experienceKey
	}
	sections[s.experienceKey] = existing + "\n" + fragment
}
