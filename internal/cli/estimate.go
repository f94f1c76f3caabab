package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/harness"
	"github.com/cortexbench/cortexbench/internal/seq"
)

// EstimateOptions holds flags for the estimate command.
type EstimateOptions struct {
	*RootOptions
	Model     string
	Timeframe int
	Seed      int64
	Limit     int
}

// Estimate is the estimate command's result.
type Estimate struct {
	Model      string `json:"model"`
	Difficulty int    `json:"difficulty"`
	Timeframe  int    `json:"timeframe"`
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions, models map[string]cortexbench.Factory) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the hardest sequence length a model family can learn",
		Long: `Probe increasing sequence lengths until the family stops adapting
within the timeframe, and report the last length that still worked. This is
the value a run with length 0 would use.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := resolveModel(models, opts.Model)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to resolve model", err)
			}

			difficulty := harness.EstimateDifficulty(
				seq.NewGenerator(opts.Seed), factory, opts.Timeframe, opts.Limit)

			if rootOpts.Format == "json" {
				f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
				return f.Success(Estimate{
					Model:      opts.Model,
					Difficulty: difficulty,
					Timeframe:  opts.Timeframe,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "estimated difficulty for %s: %d\n", opts.Model, difficulty)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Model, "model", "", "registered model family to probe (required)")
	cmd.Flags().IntVar(&opts.Timeframe, "timeframe", 500, "adaptation step budget per probe")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "generator seed")
	cmd.Flags().IntVar(&opts.Limit, "limit", 16, "largest length to probe")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
