package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/config"
	"github.com/cortexbench/cortexbench/internal/harness"
	"github.com/cortexbench/cortexbench/internal/journal"
	"github.com/cortexbench/cortexbench/internal/latency"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigPath string
	Model      string
	Seed       int64
	Repeats    int
	Length     int
	Journal    string

	// Clock allows overriding the latency clock (for testing). If nil,
	// the real monotonic clock is used.
	Clock latency.Clock
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions, models map[string]cortexbench.Factory) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full conformance battery against a model family",
		Long: `Run every check of the conformance battery against the named model
family, fail-fast. With a journal configured, every trial's seed and outcome
is recorded so a failure can later be replayed with 'reproduce'.

Example:
  cortexbench run --model assoc
  cortexbench run --model assoc --config bench.yaml --journal runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBattery(opts, models, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML configuration")
	cmd.Flags().StringVar(&opts.Model, "model", "", "registered model family to bench (required)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "base seed (overrides config)")
	cmd.Flags().IntVar(&opts.Repeats, "repeats", 0, "structural check repetitions (overrides config)")
	cmd.Flags().IntVar(&opts.Length, "length", 0, "sequence length, 0 = estimate (overrides config)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite journal path (overrides config)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runBattery(opts *RunOptions, models map[string]cortexbench.Factory, cmd *cobra.Command) error {
	log := setupLogging(opts.Verbose)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if flags.Changed("repeats") {
		cfg.Repeats = opts.Repeats
	}
	if flags.Changed("length") {
		cfg.Length = opts.Length
	}
	if flags.Changed("journal") {
		cfg.Journal = opts.Journal
	}

	factory, err := resolveModel(models, opts.Model)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve model", err)
	}

	runID := uuid.NewString()
	runner := &harness.Runner{
		Config:  cfg,
		Factory: factory,
		Log:     log,
		Clock:   opts.Clock,
		RunID:   runID,
	}

	var store *journal.Store
	if cfg.Journal != "" {
		store, err = journal.Open(cfg.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				log.Error("error closing journal", "error", closeErr)
			}
		}()

		if err := beginJournaledRun(store, runID, cfg); err != nil {
			return WrapExitError(ExitCommandError, "failed to journal run", err)
		}
		runner.Journal = &runSink{store: store, runID: runID}
	}

	ctx, stop := signalContext(cmd, log)
	defer stop()

	log.Info("benching model family", "model", opts.Model, "run_id", runID)
	report, runErr := runner.Run(ctx)
	finishJournaledRun(store, runID, report, log)

	// An aborted run (signal, journal failure) has no verdict to render.
	if runErr == nil || report.Failure != nil {
		if err := printReport(opts, cmd, report); err != nil {
			return err
		}
	}

	switch {
	case runErr == nil:
		return nil
	case harness.IsViolation(runErr):
		return WrapExitError(ExitFailure, "conformance claim rejected", runErr)
	default:
		return WrapExitError(ExitCommandError, "run aborted", runErr)
	}
}

// setupLogging installs the process-wide text logger and returns it.
func setupLogging(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// loadConfig reads the file at path, or the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// signalContext derives a context cancelled by SIGINT/SIGTERM from the
// command's context.
func signalContext(cmd *cobra.Command, log *slog.Logger) (context.Context, func()) {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, aborting run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// runSink binds a journal store to one run ID.
type runSink struct {
	store *journal.Store
	runID string
}

func (s *runSink) RecordTrial(t journal.Trial) error {
	return s.store.RecordTrial(s.runID, t)
}

func beginJournaledRun(store *journal.Store, runID string, cfg config.Config) error {
	rendered, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	return store.BeginRun(journal.Run{
		ID:        runID,
		StartedAt: time.Now(),
		Config:    string(rendered),
	})
}

func finishJournaledRun(store *journal.Store, runID string, report *harness.Report, log *slog.Logger) {
	if store == nil {
		return
	}
	outcome := journal.OutcomeAborted
	switch {
	case report.Passed:
		outcome = journal.OutcomePass
	case report.Failure != nil:
		outcome = journal.OutcomeFail
	}
	if err := store.FinishRun(runID, outcome); err != nil {
		log.Error("error finishing journaled run", "error", err)
	}
}

func printReport(opts *RunOptions, cmd *cobra.Command, report *harness.Report) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Render())
	return nil
}
