package cli

import (
	"context"
	"fmt"

	"jobscout/internal/common"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-pdf]",
	Short: "Parse a resume PDF into sections and experience duration",
	Long: `Parse a resume PDF into its configured sections, infer the total years
of experience from the date ranges in the experience section, and extract
weighted skill entities. Use --skills=false to skip AI skill extraction and
run the purely local section/experience pipeline.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var (
	parseConfig common.CommandConfig
	parseSkills bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	parseCmd.Flags().BoolVar(&parseSkills, "skills", true, "Extract weighted skill entities with AI")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	var (
		engine *common.Engine
		err    error
	)
	if parseSkills {
		engine, err = common.NewParseEngine(cfg, logger)
	} else {
		engine, err = common.NewSectionEngine(cfg, logger)
	}
	if err != nil {
		return fmt.Errorf("failed to create parse engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	logger.Info("Starting resume parsing",
		"file", args[0],
		"skills", parseSkills,
		"output_format", parseConfig.OutputFormat)

	err = common.RunCommand(cmd.Context(), logger, parseConfig,
		func(ctx context.Context) (types.ParseResumeOutput, error) {
			return engine.ParseResume(ctx, args[0])
		})
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	logger.Info("Resume parsing completed successfully")
	return nil
}
