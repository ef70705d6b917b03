package resume

import (
	"strings"
	"testing"
)

func mustSpec(t *testing.T, ids []string, experienceKey string) *Spec {
	t.Helper()
	spec, err := SpecFromIdentifiers(ids, experienceKey)
	if err != nil {
		t.Fatalf("SpecFromIdentifiers: %v", err)
	}
	return spec
}

func TestLocate(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills", "Professional Experience"}, "Professional Experience")

	t.Run("matches sorted by offset", func(t *testing.T) {
		page := "Skills\nGo, Python\nSummary\nSeasoned engineer.\nProfessional Experience\nAcme Corp"

		matches := spec.Locate(page)
		if len(matches) != 3 {
			t.Fatalf("expected 3 matches, got %d: %v", len(matches), matches)
		}

		wantOrder := []string{"Skills", "Summary", "Professional Experience"}
		for i, want := range wantOrder {
			if matches[i].Section != want {
				t.Errorf("match %d = %s, want %s", i, matches[i].Section, want)
			}
		}
		for i := 1; i < len(matches); i++ {
			if matches[i].Start < matches[i-1].Start {
				t.Errorf("matches not sorted by start offset: %v", matches)
			}
		}
	})

	t.Run("spans cover the header token", func(t *testing.T) {
		page := "intro text\nSkills\nGo"

		matches := spec.Locate(page)
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if got := page[matches[0].Start:matches[0].End]; got != "Skills" {
			t.Errorf("span text = %q, want %q", got, "Skills")
		}
	})

	t.Run("absent headers yield no match", func(t *testing.T) {
		matches := spec.Locate("nothing resembling a header here")
		if len(matches) != 0 {
			t.Errorf("expected no matches, got %v", matches)
		}
	})

	t.Run("repeated header yields multiple matches", func(t *testing.T) {
		page := "Skills\nGo\nSkills\nPython"
		matches := spec.Locate(page)
		if len(matches) != 2 {
			t.Errorf("expected 2 matches, got %d", len(matches))
		}
	})
}

// Concatenating all bodies recovered from a single page, in offset order,
// reproduces the page text minus the header tokens themselves, modulo
// whitespace.
func TestSinglePageRoundTrip(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills", "Professional Experience"}, "Professional Experience")
	page := "Summary\nSeasoned engineer with ten years of experience.\n" +
		"Skills\nGo, Python, SQL\n" +
		"Professional Experience\nAcme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things"

	sections, err := spec.Assemble([]string{page})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var bodies []string
	for _, id := range spec.IDs() {
		bodies = append(bodies, sections[id])
	}
	got := normalizeWhitespace(strings.Join(bodies, " "))

	stripped := page
	for _, id := range spec.IDs() {
		stripped = strings.Replace(stripped, id, " ", 1)
	}
	want := normalizeWhitespace(stripped)

	if got != want {
		t.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
