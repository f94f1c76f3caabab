package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/harness"
	"github.com/cortexbench/cortexbench/internal/journal"
)

// ReproduceOptions holds flags for the reproduce command.
type ReproduceOptions struct {
	*RootOptions
	ConfigPath string
	Model      string
	Seed       int64
	RunID      string
	Journal    string
}

// NewReproduceCommand creates the reproduce command.
func NewReproduceCommand(rootOpts *RootOptions, models map[string]cortexbench.Factory) *cobra.Command {
	opts := &ReproduceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reproduce [check]",
		Short: "Replay a single check repetition with an explicit seed",
		Long: `Replay one repetition of a check against a model family.

The trial coordinates come either from the command line (check name plus
--seed) or from a journaled run (--run plus --journal), in which case the
failing trial of that run is replayed.

Example:
  cortexbench reproduce RefractoryPeriod --model assoc --seed 3000042
  cortexbench reproduce --model assoc --journal runs.db --run 0198c2...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reproduceTrial(opts, models, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML configuration")
	cmd.Flags().StringVar(&opts.Model, "model", "", "registered model family to bench (required)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "trial seed to replay")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "journaled run whose failing trial to replay")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite journal path")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func reproduceTrial(opts *ReproduceOptions, models map[string]cortexbench.Factory, cmd *cobra.Command, args []string) error {
	log := setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	factory, err := resolveModel(models, opts.Model)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve model", err)
	}

	check, seed, err := trialCoordinates(opts, cmd, args)
	if err != nil {
		return err
	}

	runner := &harness.Runner{Config: cfg, Factory: factory, Log: log}

	log.Info("replaying trial", "check", check, "seed", seed, "model", opts.Model)
	runErr := runner.RunOne(check, seed)

	out := cmd.OutOrStdout()
	switch {
	case runErr == nil:
		fmt.Fprintf(out, "ok   %s seed %d: the failure did not reproduce\n", check, seed)
		return nil
	case harness.IsViolation(runErr):
		fmt.Fprintf(out, "FAIL %s seed %d\n     %s\n", check, seed, runErr.Error())
		return WrapExitError(ExitFailure, "failure reproduced", runErr)
	default:
		return WrapExitError(ExitCommandError, "replay aborted", runErr)
	}
}

// trialCoordinates resolves which trial to replay: an explicit check/seed
// pair, or the failing trial of a journaled run.
func trialCoordinates(opts *ReproduceOptions, cmd *cobra.Command, args []string) (string, int64, error) {
	if opts.RunID != "" {
		if opts.Journal == "" {
			return "", 0, WrapExitError(ExitCommandError, "missing journal", fmt.Errorf("--run requires --journal"))
		}

		store, err := journal.Open(opts.Journal)
		if err != nil {
			return "", 0, WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer store.Close()

		trial, found, err := store.FailedTrial(opts.RunID)
		if err != nil {
			return "", 0, WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		if !found {
			return "", 0, WrapExitError(ExitCommandError, "nothing to reproduce",
				fmt.Errorf("run %s has no failed trial", opts.RunID))
		}
		return trial.Check, trial.Seed, nil
	}

	if len(args) != 1 {
		return "", 0, WrapExitError(ExitCommandError, "missing check",
			fmt.Errorf("name a check to replay, or use --run"))
	}
	if !cmd.Flags().Changed("seed") {
		return "", 0, WrapExitError(ExitCommandError, "missing seed",
			fmt.Errorf("--seed is required without --run"))
	}
	return args[0], opts.Seed, nil
}
