package resume

import "sort"

// Match records one detected header occurrence on a page: the section it
// belongs to and the character span of the header token itself. Matches only
// live for the duration of a single page's processing.
type Match struct {
	Section string
	Start   int
	End     int
}

// Locate scans one page's raw text for every configured section pattern and
// returns the matches found, sorted by start offset. A header that does not
// appear on the page simply contributes no match; a header may also match
// more than once, which downstream assembly treats positionally. An empty
// result is legal here — the assembler decides whether it is an error.
func (s *Spec) Locate(page string) []Match {
	var matches []Match
	for _, sec := range s.sections {
		for _, loc := range sec.re.FindAllStringIndex(page, -1) {
			matches = append(matches, Match{
				Section: sec.id,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}
