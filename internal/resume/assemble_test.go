package resume

import (
	"errors"
	"strings"
	"testing"

	apperrors "jobscout/internal/errors"
)

const expKey = "Professional Experience"

func TestAssembleSinglePage(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills", expKey}, expKey)
	page := "Summary\nSeasoned engineer.\n" +
		"Skills\nGo, Python\n" +
		expKey + "\nAcme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things"

	sections, err := spec.Assemble([]string{page})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := map[string]string{
		"Summary": "Seasoned engineer.",
		"Skills":  "Go, Python",
		expKey:    "Acme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things",
	}
	for id, body := range want {
		if sections[id] != body {
			t.Errorf("section %q = %q, want %q", id, sections[id], body)
		}
	}
}

func TestAssembleTwoPageContinuation(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills", expKey, "Education", "Volunteering"}, expKey)

	page1 := "Summary\nSeasoned engineer.\n" +
		"Skills\nGo, Python\n" +
		expKey + "\nAcme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things"
	page2 := "Initech Senior Engineer    Apr 2022 – Jan 2024\n• Did more things\n" +
		"Education\nBSc Computing\n" +
		"Volunteering\nSoup kitchen"

	sections, err := spec.Assemble([]string{page1, page2})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Page-1 experience slice + newline + continuation text, in that order.
	wantExperience := "Acme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things" +
		"\n" +
		"Initech Senior Engineer    Apr 2022 – Jan 2024\n• Did more things"
	if sections[expKey] != wantExperience {
		t.Errorf("experience = %q, want %q", sections[expKey], wantExperience)
	}

	if sections["Education"] != "BSc Computing" {
		t.Errorf("Education = %q", sections["Education"])
	}
	if sections["Volunteering"] != "Soup kitchen" {
		t.Errorf("Volunteering = %q", sections["Volunteering"])
	}
}

func TestAssembleContinuationWithoutPriorExperience(t *testing.T) {
	// The experience header never appeared, but a continuation page opens
	// with a dated job entry: the fragment still lands under the experience
	// key, prefixed with the bare header label.
	spec := mustSpec(t, []string{"Summary", expKey, "Education"}, expKey)

	page1 := "Summary\nSeasoned engineer."
	page2 := "Initech Senior Engineer    Apr 2022 – Jan 2024\n• Did more things\n" +
		"Education\nBSc Computing"

	sections, err := spec.Assemble([]string{page1, page2})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := expKey + "\nInitech Senior Engineer    Apr 2022 – Jan 2024\n• Did more things"
	if sections[expKey] != want {
		t.Errorf("experience = %q, want %q", sections[expKey], want)
	}
}

func TestAssembleBulletedLinesAreNotContinuations(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Education"}, "Summary")

	page1 := "Summary\nGeneralist."
	page2 := "• stray bullet without a date range\nEducation\nBSc Computing"

	sections, err := spec.Assemble([]string{page1, page2})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sections["Summary"] != "Generalist." {
		t.Errorf("Summary should be untouched, got %q", sections["Summary"])
	}
}

func TestAssembleErrors(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills"}, "Skills")

	t.Run("no pages", func(t *testing.T) {
		_, err := spec.Assemble(nil)
		assertCode(t, err, apperrors.ErrCodeEmptyDocument)
	})

	t.Run("page without any header", func(t *testing.T) {
		_, err := spec.Assemble([]string{"free text with no recognizable structure"})
		assertCode(t, err, apperrors.ErrCodeNoSectionsDetected)
	})

	t.Run("error names the offending page", func(t *testing.T) {
		_, err := spec.Assemble([]string{"Summary\nfine\nSkills\nalso fine", "nothing here"})
		assertCode(t, err, apperrors.ErrCodeNoSectionsDetected)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected AppError, got %T", err)
		}
		if page, ok := appErr.Context["page"]; !ok || page != 2 {
			t.Errorf("expected page 2 in error context, got %v", appErr.Context)
		}
	})
}

func TestAssembleEmptySectionBody(t *testing.T) {
	// Some resumes legitimately omit optional sections; an empty body is a
	// value, not an error.
	spec := mustSpec(t, []string{"Summary", "Volunteering", "Skills"}, "Skills")
	page := "Summary\nSeasoned engineer.\nVolunteering\nSkills\nGo"

	sections, err := spec.Assemble([]string{page})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if body, ok := sections["Volunteering"]; !ok || body != "" {
		t.Errorf("Volunteering = %q (present=%v), want empty string", body, ok)
	}
}

func TestAssembleMoreMatchesThanSections(t *testing.T) {
	spec := mustSpec(t, []string{"Summary"}, "Summary")
	page := "Summary\nfirst\nSummary\nsecond"

	sections, err := spec.Assemble([]string{page})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.HasPrefix(sections["Summary"], "first") {
		t.Errorf("Summary = %q, want body from the first match", sections["Summary"])
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}
