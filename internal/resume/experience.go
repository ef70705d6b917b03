package resume

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Experience is the inferred total experience duration. Known reports whether
// a value could be derived at all; when it is false, Years is zero and the
// duration is "unknown" rather than a wrong number.
type Experience struct {
	Years float64 `json:"years"`
	Known bool    `json:"known"`
}

// monthYearRe captures month-name-plus-year tokens: abbreviated or full month
// names, years in the nineteen-hundred or two-thousand range, with space,
// dash, or slash separators.
var monthYearRe = regexp.MustCompile(
	`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)[-\s/]*((?:19|20)\d{2})\b`)

// monthYearRangeRe matches an explicit "Month Year – Month Year" range so
// inverted ranges can be rejected before the span computation.
var monthYearRangeRe = regexp.MustCompile(
	`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)[-\s/]*((?:19|20)\d{2})\s*[-–]\s*(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)[-\s/]*((?:19|20)\d{2})\b`)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// daysPerYear is the simple divisor the duration estimate uses; leap days are
// deliberately not accounted for.
const daysPerYear = 365

// YearsOfExperience scans the assembled experience-section text for every
// month-year token, parses each as a first-of-month date, and returns the
// span between the earliest and latest dates in years, rounded to two
// decimals.
//
// The result is unknown when the text is empty, no tokens are found, any
// single token fails to parse, or the computed span is negative. Treating
// earliest-to-latest as total experience is a simplifying approximation: it
// does not subtract employment gaps.
func YearsOfExperience(text string) Experience {
	if strings.TrimSpace(text) == "" {
		return Experience{}
	}

	tokens := monthYearRe.FindAllStringSubmatch(text, -1)
	if len(tokens) == 0 {
		return Experience{}
	}

	// A range written backwards ("Mar 2022 – Jan 2019") means the document's
	// dates cannot be trusted; an unknown duration beats a wrong one.
	for _, r := range monthYearRangeRe.FindAllStringSubmatch(text, -1) {
		from, err := parseMonthYear(r[1], r[2])
		if err != nil {
			return Experience{}
		}
		to, err := parseMonthYear(r[3], r[4])
		if err != nil {
			return Experience{}
		}
		if from.After(to) {
			return Experience{}
		}
	}

	var earliest, latest time.Time
	for i, tok := range tokens {
		date, err := parseMonthYear(tok[1], tok[2])
		if err != nil {
			// One malformed token invalidates the whole computation; a
			// partial answer from a garbled document is worse than none.
			return Experience{}
		}
		if i == 0 || date.Before(earliest) {
			earliest = date
		}
		if i == 0 || date.After(latest) {
			latest = date
		}
	}

	days := latest.Sub(earliest).Hours() / 24
	if days < 0 {
		return Experience{}
	}

	years := math.Round(days/daysPerYear*100) / 100
	return Experience{Years: years, Known: true}
}

// parseMonthYear resolves a captured month name and year to the first of
// that month, UTC.
func parseMonthYear(monthName, yearText string) (time.Time, error) {
	prefix := strings.ToLower(monthName)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	month, ok := monthsByPrefix[prefix]
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized month name: %s", monthName)
	}

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q: %w", yearText, err)
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}
