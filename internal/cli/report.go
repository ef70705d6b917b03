package cli

import (
	"context"
	"fmt"

	"jobscout/internal/common"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [resume-pdf] [company]...",
	Short: "Build a full candidate report for a resume and target companies",
	Long: `Run the full pipeline: parse the resume PDF, research each target
company's employee sentiment and overview, and compose a candidate briefing
that connects the candidate's experience and skills to each company.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if reportConfig.OutputFormat == "" {
			reportConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(reportConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runReport,
}

var (
	reportConfig        common.CommandConfig
	reportCandidateName string
)

func init() {
	reportCmd.Flags().StringVarP(&reportConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	reportCmd.Flags().StringVar(&reportConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	reportCmd.Flags().StringVar(&reportCandidateName, "name", "", "Candidate name to include in the report")

	_ = reportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := common.NewEngine(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create report engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	logger.Info("Starting candidate report",
		"file", args[0],
		"companies", len(args)-1,
		"output_format", reportConfig.OutputFormat)

	err = common.RunCommand(cmd.Context(), logger, reportConfig,
		func(ctx context.Context) (types.CandidateReport, error) {
			return engine.BuildReport(ctx, args[0], reportCandidateName, args[1:])
		})
	if err != nil {
		return fmt.Errorf("failed to build candidate report: %w", err)
	}

	logger.Info("Candidate report completed successfully")
	return nil
}
