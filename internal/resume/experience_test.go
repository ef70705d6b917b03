package resume

import (
	"testing"
)

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantKnown  bool
		wantYears  float64
	}{
		{
			name:      "single range",
			text:      "Acme Corp Software Engineer    Jan 2019 – Mar 2022",
			wantKnown: true,
			// 1155 days between 2019-01-01 and 2022-03-01, / 365, 2dp
			wantYears: 3.16,
		},
		{
			name:      "full month names",
			text:      "January 2019 – March 2022",
			wantKnown: true,
			wantYears: 3.16,
		},
		{
			name:      "multiple jobs chronological",
			text:      "Jan 2019 – Mar 2022 then Apr 2022 – Jan 2024",
			wantKnown: true,
			// 2019-01-01 to 2024-01-01 is 1826 days
			wantYears: 5.0,
		},
		{
			name:      "multiple jobs reverse chronological",
			text:      "Apr 2022 – Jan 2024 previously Jan 2019 – Mar 2022",
			wantKnown: true,
			wantYears: 5.0,
		},
		{
			name:      "open-ended range still yields span of located tokens",
			text:      "Jun 2020 – Present and before that Jun 2018 – May 2020",
			wantKnown: true,
			wantYears: 2.0,
		},
		{
			name:      "hyphen and slash separators",
			text:      "Feb-2021 to Feb/2023",
			wantKnown: true,
			wantYears: 2.0,
		},
		{
			name:      "no date tokens",
			text:      "Led a team of five engineers across two offices.",
			wantKnown: false,
		},
		{
			name:      "reversed range is illogical",
			text:      "Mar 2022 – Jan 2019",
			wantKnown: false,
		},
		{
			name:      "empty text",
			text:      "",
			wantKnown: false,
		},
		{
			name:      "year out of recognized range ignored",
			text:      "Jan 1850 was a long time ago",
			wantKnown: false,
		},
		{
			name:      "same month twice",
			text:      "Jul 2021 and again Jul 2021",
			wantKnown: true,
			wantYears: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearsOfExperience(tt.text)

			if got.Known != tt.wantKnown {
				t.Fatalf("Known = %v, want %v (years=%v)", got.Known, tt.wantKnown, got.Years)
			}
			if tt.wantKnown && got.Years != tt.wantYears {
				t.Errorf("Years = %v, want %v", got.Years, tt.wantYears)
			}
			if !tt.wantKnown && got.Years != 0 {
				t.Errorf("unknown duration must report zero years, got %v", got.Years)
			}
			if got.Years < 0 {
				t.Errorf("duration must never be negative, got %v", got.Years)
			}
		})
	}
}

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		year      string
		wantError bool
	}{
		{name: "abbreviated", month: "Jan", year: "2019"},
		{name: "full name", month: "September", year: "1998"},
		{name: "mixed case", month: "dEcEmBeR", year: "2020"},
		{name: "unknown month", month: "Mai", year: "2019", wantError: true},
		{name: "garbage year", month: "Jan", year: "20x9", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := parseMonthYear(tt.month, tt.year)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got %v", date)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if date.Day() != 1 {
				t.Errorf("expected first-of-month date, got day %d", date.Day())
			}
		})
	}
}
