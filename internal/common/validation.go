package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ValidateCompanies rejects an empty company list and blank entries, and
// returns the trimmed names.
func ValidateCompanies(companies []string) ([]string, error) {
	if len(companies) == 0 {
		return nil, fmt.Errorf("at least one company name is required")
	}

	trimmed := make([]string, 0, len(companies))
	for _, company := range companies {
		name := strings.TrimSpace(company)
		if name == "" {
			return nil, fmt.Errorf("company name cannot be blank")
		}
		trimmed = append(trimmed, name)
	}
	return trimmed, nil
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
