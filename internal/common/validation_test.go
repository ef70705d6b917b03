package common

import (
	"reflect"
	"testing"

	"jobscout/internal/types"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "valid format - json",
			format:           "json",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "valid format - markdown",
			format:           "markdown",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      false,
		},
		{
			name:             "invalid format - xml",
			format:           "xml",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'xml'. Supported formats: [json text markdown]",
		},
		{
			name:             "case sensitive - JSON uppercase",
			format:           "JSON",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "no restrictions configured",
			format:           "anything",
			supportedFormats: nil,
			expectError:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("error = %q, want %q", err.Error(), tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCompanies(t *testing.T) {
	tests := []struct {
		name        string
		companies   []string
		want        []string
		expectError bool
	}{
		{
			name:      "trims whitespace",
			companies: []string{" Acme ", "Globex"},
			want:      []string{"Acme", "Globex"},
		},
		{
			name:        "empty list rejected",
			companies:   nil,
			expectError: true,
		},
		{
			name:        "blank entry rejected",
			companies:   []string{"Acme", "   "},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCompanies(tt.companies)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapPerCompany(t *testing.T) {
	reviews := []types.Review{
		{Company: "Acme", URL: "a1"},
		{Company: "Acme", URL: "a2"},
		{Company: "Acme", URL: "a3"},
		{Company: "Globex", URL: "g1"},
	}

	capped := capPerCompany(reviews, 2)
	if len(capped) != 3 {
		t.Fatalf("expected 3 reviews after capping, got %d", len(capped))
	}
	if capped[0].URL != "a1" || capped[1].URL != "a2" || capped[2].URL != "g1" {
		t.Errorf("unexpected reviews kept: %+v", capped)
	}

	if got := capPerCompany(reviews, 0); len(got) != len(reviews) {
		t.Errorf("non-positive limit should keep everything, got %d", len(got))
	}
}
