package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"jobscout/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ParseResumeOutput", &ParseTextFormatter{})
	registry.RegisterFormatter("markdown", "ParseResumeOutput", &ParseMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResearchOutput", &ResearchTextFormatter{})
	registry.RegisterFormatter("markdown", "ResearchOutput", &ResearchMarkdownFormatter{})
	registry.RegisterFormatter("text", "CandidateReport", &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", "CandidateReport", &ReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ParseResumeOutput:
		return "ParseResumeOutput"
	case types.ResearchOutput:
		return "ResearchOutput"
	case types.CandidateReport:
		return "CandidateReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ParseTextFormatter handles text formatting for parsed resumes
type ParseTextFormatter struct{}

func (ptf *ParseTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParseResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ParseResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SECTIONS ===\n\n")
	for _, section := range sortedSectionKeys(result.Sections) {
		output.WriteString(fmt.Sprintf("--- %s ---\n", section))
		output.WriteString(result.Sections[section])
		output.WriteString("\n\n")
	}

	output.WriteString("=== EXPERIENCE ===\n")
	if result.Experience.Known {
		output.WriteString(fmt.Sprintf("Years of experience: %.2f\n", result.Experience.Years))
	} else {
		output.WriteString("Years of experience: unknown\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("\n=== SKILLS ===\n")
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- %s (%s, x%d)\n", skill.Text, skill.Class, skill.Weight))
		}
	}

	return output.String(), nil
}

func (ptf *ParseTextFormatter) SupportedType() string {
	return "ParseResumeOutput"
}

// ParseMarkdownFormatter handles markdown formatting for parsed resumes
type ParseMarkdownFormatter struct{}

func (pmf *ParseMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParseResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ParseResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Parsed Resume\n\n")
	for _, section := range sortedSectionKeys(result.Sections) {
		output.WriteString(fmt.Sprintf("## %s\n\n", section))
		output.WriteString(result.Sections[section])
		output.WriteString("\n\n")
	}

	output.WriteString("## Experience\n\n")
	if result.Experience.Known {
		output.WriteString(fmt.Sprintf("**Years of experience:** %.2f\n", result.Experience.Years))
	} else {
		output.WriteString("**Years of experience:** unknown\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("\n## Skills\n\n")
		for _, skill := range result.Skills {
			output.WriteString(fmt.Sprintf("- **%s** (%s, ×%d)\n", skill.Text, skill.Class, skill.Weight))
		}
	}

	return output.String(), nil
}

func (pmf *ParseMarkdownFormatter) SupportedType() string {
	return "ParseResumeOutput"
}

// ResearchTextFormatter handles text formatting for company research results
type ResearchTextFormatter struct{}

func (rtf *ResearchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResearchOutput)
	if !ok {
		return "", fmt.Errorf("expected ResearchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COMPANY RESEARCH ===\n\n")
	for _, company := range result.Companies {
		output.WriteString(fmt.Sprintf("--- %s ---\n", company.Company))
		if company.Overview != "" {
			output.WriteString("Overview:\n")
			output.WriteString(company.Overview)
			output.WriteString("\n\n")
		}
		output.WriteString(fmt.Sprintf("Employee sentiment (%d reviews):\n", company.ReviewCount))
		output.WriteString(company.SentimentSummary)
		output.WriteString("\n")
		if len(company.Positives) > 0 {
			output.WriteString("\nPositives:\n")
			for _, p := range company.Positives {
				output.WriteString(fmt.Sprintf("- %s\n", p))
			}
		}
		if len(company.Negatives) > 0 {
			output.WriteString("\nNegatives:\n")
			for _, n := range company.Negatives {
				output.WriteString(fmt.Sprintf("- %s\n", n))
			}
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResearchTextFormatter) SupportedType() string {
	return "ResearchOutput"
}

// ResearchMarkdownFormatter handles markdown formatting for company research results
type ResearchMarkdownFormatter struct{}

func (rmf *ResearchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResearchOutput)
	if !ok {
		return "", fmt.Errorf("expected ResearchOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Company Research\n\n")
	for _, company := range result.Companies {
		output.WriteString(fmt.Sprintf("## %s\n\n", company.Company))
		if company.Overview != "" {
			output.WriteString("### Overview\n\n")
			output.WriteString(company.Overview)
			output.WriteString("\n\n")
		}
		output.WriteString(fmt.Sprintf("### Employee Sentiment (%d reviews)\n\n", company.ReviewCount))
		output.WriteString(company.SentimentSummary)
		output.WriteString("\n\n")
		if len(company.Positives) > 0 {
			output.WriteString("**Positives:**\n")
			for _, p := range company.Positives {
				output.WriteString(fmt.Sprintf("- %s\n", p))
			}
			output.WriteString("\n")
		}
		if len(company.Negatives) > 0 {
			output.WriteString("**Negatives:**\n")
			for _, n := range company.Negatives {
				output.WriteString(fmt.Sprintf("- %s\n", n))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (rmf *ResearchMarkdownFormatter) SupportedType() string {
	return "ResearchOutput"
}

// ReportTextFormatter handles text formatting for the final candidate report
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CandidateReport)
	if !ok {
		return "", fmt.Errorf("expected CandidateReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE REPORT ===\n\n")
	output.WriteString(result.Report)
	output.WriteString("\n\n")

	if len(result.Companies) > 0 {
		output.WriteString("=== COMPANY FIT ===\n")
		for i, fit := range result.Companies {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, fit))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== EXPERIENCE ===\n")
	if result.Resume.Experience.Known {
		output.WriteString(fmt.Sprintf("Years of experience: %.2f\n", result.Resume.Experience.Years))
	} else {
		output.WriteString("Years of experience: unknown\n")
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "CandidateReport"
}

// ReportMarkdownFormatter handles markdown formatting for the final candidate report
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CandidateReport)
	if !ok {
		return "", fmt.Errorf("expected CandidateReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Candidate Report\n\n")
	output.WriteString(result.Report)
	output.WriteString("\n\n")

	if len(result.Companies) > 0 {
		output.WriteString("## Company Fit\n\n")
		for i, fit := range result.Companies {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, fit))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Experience\n\n")
	if result.Resume.Experience.Known {
		output.WriteString(fmt.Sprintf("**Years of experience:** %.2f\n", result.Resume.Experience.Years))
	} else {
		output.WriteString("**Years of experience:** unknown\n")
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "CandidateReport"
}

func sortedSectionKeys(sections map[string]string) []string {
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()

