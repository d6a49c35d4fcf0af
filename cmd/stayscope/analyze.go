package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stayscope/stayscope/internal/analysis"
	"github.com/stayscope/stayscope/internal/cli"
	"github.com/stayscope/stayscope/internal/common"
	"github.com/stayscope/stayscope/internal/config"
	"github.com/stayscope/stayscope/internal/export"
	"github.com/stayscope/stayscope/internal/ingest"
	"github.com/stayscope/stayscope/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [csv-file]",
		Short: "Filter, summarize, and rank Airbnb listings from a CSV file",
		Long: `Analyze loads an Airbnb listings CSV, applies optional numeric filters,
prints summary statistics and a hosts-by-listing-count ranking, and can
export the filtered set to a new CSV file.

Values not given as flags are prompted for interactively; a blank answer
leaves that bound unset.

Examples:
  # Fully interactive session
  stayscope analyze

  # Prompt only for the filter criteria
  stayscope analyze ~/data/lisbon.csv

  # Unattended run
  stayscope analyze --no-input -i listings.csv --min-price 50 --max-rooms 4 -o filtered.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("input", "i", "", "path to the listings CSV file")
	cmd.Flags().StringP("output", "o", "", "export path for the filtered listings")
	cmd.Flags().Float64("min-price", 0, "minimum nightly price")
	cmd.Flags().Float64("max-price", 0, "maximum nightly price")
	cmd.Flags().Int("min-rooms", 0, "minimum guest capacity (accommodates)")
	cmd.Flags().Int("max-rooms", 0, "maximum guest capacity (accommodates)")
	cmd.Flags().Float64("min-review-score", 0, "minimum review score rating")
	cmd.Flags().Int("top", analysis.DefaultTopHosts, "number of hosts in the ranking")
	cmd.Flags().Bool("no-input", false, "never prompt; unset values stay unset")

	_ = viper.BindPFlag("analysis.top_hosts", cmd.Flags().Lookup("top"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	noInput, _ := cmd.Flags().GetBool("no-input")
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	inputPath, err := resolveInputPath(ctx, cmd, args, prompter, noInput)
	if err != nil {
		return err
	}

	// Load and parse failures are fatal: the session cannot proceed
	// without data and the process must exit non-zero.
	src, err := ingest.NewLoader().Load(ctx, inputPath)
	if err != nil {
		return err
	}

	listings := ingest.NewNormalizer(cmd.OutOrStdout()).Normalize(src)

	criteria, err := resolveCriteria(ctx, cmd, prompter, noInput)
	if err != nil {
		return err
	}

	filtered := analysis.Filter(listings, criteria)
	stats := analysis.ComputeStatistics(filtered)
	ranking := analysis.RankHosts(filtered, viper.GetInt("analysis.top_hosts"))

	if err := prompter.DisplayStatistics(stats); err != nil {
		return err
	}
	if err := prompter.DisplayRanking(ranking); err != nil {
		return err
	}

	outputPath, err := resolveOutputPath(ctx, cmd, prompter, noInput)
	if err != nil {
		return err
	}
	if outputPath == "" {
		return nil
	}

	// Export failures are reported but never fail the session: the
	// analysis results are already on screen.
	if exportErr := export.NewWriter().Write(outputPath, filtered); exportErr != nil {
		if errors.Is(exportErr, common.ErrNoListings) {
			fmt.Fprintln(prompter.Writer(), cli.FormatWarning("Nothing to export: the filtered set is empty."))
			return nil
		}
		common.LogError(exportErr, "Export failed", common.Fields{"path": outputPath})
		fmt.Fprintln(prompter.Writer(), cli.FormatError("Export failed: "+exportErr.Error()))
		return nil
	}

	fmt.Fprintln(prompter.Writer(), cli.FormatSuccess(fmt.Sprintf("Exported %d listings to %s", len(filtered), outputPath)))
	return nil
}

// resolveInputPath takes the CSV path from the positional argument or
// the --input flag, and otherwise prompts until a non-blank answer.
func resolveInputPath(ctx context.Context, cmd *cobra.Command, args []string, prompter *cli.Prompter, noInput bool) (string, error) {
	path, _ := cmd.Flags().GetString("input")
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		if noInput {
			return "", common.NewUserError("an input CSV file is required with --no-input", common.ErrMissingConfig)
		}
		var err error
		if path, err = prompter.PromptRequiredString(ctx, "CSV file path"); err != nil {
			return "", err
		}
	}
	return config.ExpandPath(path), nil
}

// resolveCriteria builds the filter criteria bound by bound: an
// explicitly set flag wins, anything else is prompted for unless
// prompting is disabled.
func resolveCriteria(ctx context.Context, cmd *cobra.Command, prompter *cli.Prompter, noInput bool) (model.FilterCriteria, error) {
	var criteria model.FilterCriteria
	var err error

	if criteria.MinPrice, err = resolveFloatBound(ctx, cmd, prompter, noInput, "min-price", "Minimum price"); err != nil {
		return model.FilterCriteria{}, err
	}
	if criteria.MaxPrice, err = resolveFloatBound(ctx, cmd, prompter, noInput, "max-price", "Maximum price"); err != nil {
		return model.FilterCriteria{}, err
	}
	if criteria.MinRooms, err = resolveIntBound(ctx, cmd, prompter, noInput, "min-rooms", "Minimum rooms"); err != nil {
		return model.FilterCriteria{}, err
	}
	if criteria.MaxRooms, err = resolveIntBound(ctx, cmd, prompter, noInput, "max-rooms", "Maximum rooms"); err != nil {
		return model.FilterCriteria{}, err
	}
	if criteria.MinReviewScore, err = resolveFloatBound(ctx, cmd, prompter, noInput, "min-review-score", "Minimum review score"); err != nil {
		return model.FilterCriteria{}, err
	}

	return criteria, nil
}

func resolveFloatBound(ctx context.Context, cmd *cobra.Command, prompter *cli.Prompter, noInput bool, flag, label string) (*float64, error) {
	if cmd.Flags().Changed(flag) {
		v, err := cmd.Flags().GetFloat64(flag)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	if noInput {
		return nil, nil
	}
	return prompter.PromptOptionalFloat(ctx, label)
}

func resolveIntBound(ctx context.Context, cmd *cobra.Command, prompter *cli.Prompter, noInput bool, flag, label string) (*int, error) {
	if cmd.Flags().Changed(flag) {
		v, err := cmd.Flags().GetInt(flag)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	if noInput {
		return nil, nil
	}
	return prompter.PromptOptionalInt(ctx, label)
}

// resolveOutputPath returns the export destination, or an empty string
// when export is skipped. A blank prompt answer skips export.
func resolveOutputPath(ctx context.Context, cmd *cobra.Command, prompter *cli.Prompter, noInput bool) (string, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" && !noInput {
		var err error
		if path, err = prompter.PromptString(ctx, "Export path (blank to skip)"); err != nil {
			return "", err
		}
	}
	if path == "" {
		return "", nil
	}
	return config.ExpandPath(path), nil
}
