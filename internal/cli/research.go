package cli

import (
	"context"
	"fmt"

	"jobscout/internal/common"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research [company]...",
	Short: "Research employee sentiment and overviews for companies",
	Long: `Research one or more companies: retrieve employee reviews from review
sites, classify their sentiment, summarize the positive and negative themes,
and fetch a condensed "About Us" overview for each company.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if researchConfig.OutputFormat == "" {
			researchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(researchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runResearch,
}

var researchConfig common.CommandConfig

func init() {
	researchCmd.Flags().StringVarP(&researchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	researchCmd.Flags().StringVar(&researchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = researchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := common.NewResearchEngine(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create research engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	logger.Info("Starting company research",
		"companies", len(args),
		"output_format", researchConfig.OutputFormat)

	err = common.RunCommand(cmd.Context(), logger, researchConfig,
		func(ctx context.Context) (types.ResearchOutput, error) {
			return engine.ResearchCompanies(ctx, args)
		})
	if err != nil {
		return fmt.Errorf("failed to research companies: %w", err)
	}

	logger.Info("Company research completed successfully")
	return nil
}
