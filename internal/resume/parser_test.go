package resume

import (
	"testing"

	apperrors "jobscout/internal/errors"
)

func TestNewSpecValidation(t *testing.T) {
	tests := []struct {
		name          string
		sections      []SectionPattern
		experienceKey string
		wantCode      string
	}{
		{
			name:          "experience key must be a configured section",
			sections:      []SectionPattern{{ID: "Summary"}, {ID: "Skills"}},
			experienceKey: "Professional Experience",
			wantCode:      apperrors.ErrCodeMissingExperienceKey,
		},
		{
			name:          "no sections",
			sections:      nil,
			experienceKey: "Skills",
			wantCode:      apperrors.ErrCodeInvalidConfig,
		},
		{
			name:          "duplicate identifier",
			sections:      []SectionPattern{{ID: "Skills"}, {ID: "Skills"}},
			experienceKey: "Skills",
			wantCode:      apperrors.ErrCodeInvalidConfig,
		},
		{
			name:          "empty identifier",
			sections:      []SectionPattern{{ID: ""}},
			experienceKey: "",
			wantCode:      apperrors.ErrCodeInvalidConfig,
		},
		{
			name:          "broken pattern",
			sections:      []SectionPattern{{ID: "Skills", Pattern: "["}},
			experienceKey: "Skills",
			wantCode:      apperrors.ErrCodeInvalidConfig,
		},
		{
			name:          "custom pattern accepted",
			sections:      []SectionPattern{{ID: "Skills", Pattern: `(?i)skills?`}},
			experienceKey: "Skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpec(tt.sections, tt.experienceKey)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestParserParse(t *testing.T) {
	spec := mustSpec(t, []string{"Summary", "Skills", expKey}, expKey)
	parser := NewParser(spec, nil)

	t.Run("full pipeline", func(t *testing.T) {
		page := "Summary\nSeasoned engineer.\n" +
			"Skills\nGo, Python\n" +
			expKey + "\nAcme Corp Software Engineer    Jan 2019 – Mar 2022\n• Built things"

		doc, err := parser.Parse([]string{page})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		if len(doc.Sections) != 3 {
			t.Errorf("expected 3 sections, got %d: %v", len(doc.Sections), doc.Sections)
		}
		if !doc.Experience.Known {
			t.Fatal("expected a known experience duration")
		}
		if doc.Experience.Years != 3.16 {
			t.Errorf("Years = %v, want 3.16", doc.Experience.Years)
		}
	})

	t.Run("dateless experience degrades to unknown", func(t *testing.T) {
		page := "Summary\nGeneralist.\n" +
			"Skills\nGo\n" +
			expKey + "\nVarious roles over the years"

		doc, err := parser.Parse([]string{page})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if doc.Experience.Known {
			t.Errorf("expected unknown duration, got %v", doc.Experience)
		}
	})

	t.Run("structural failure propagates", func(t *testing.T) {
		_, err := parser.Parse([]string{"no headers at all"})
		assertCode(t, err, apperrors.ErrCodeNoSectionsDetected)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := parser.Parse(nil)
		assertCode(t, err, apperrors.ErrCodeEmptyDocument)
	})
}
