// Package cli implements the cortexbench command tree.
package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cortexbench/cortexbench"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. The models map names every
// capability family the binary can put on the bench; callers register
// built-in reference models and any families of their own.
func NewRootCommand(models map[string]cortexbench.Factory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cortexbench",
		Short: "Conformance battery for temporal predictive models",
		Long: `cortexbench runs a battery of behavioral checks against a model family
and reports the first check whose claim the family violates. Every trial
is seeded and journaled, so any failure can be replayed exactly.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts, models))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewReproduceCommand(opts, models))
	cmd.AddCommand(NewEstimateCommand(opts, models))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// resolveModel looks a family up by name, with a helpful error listing the
// registered names.
func resolveModel(models map[string]cortexbench.Factory, name string) (cortexbench.Factory, error) {
	if f, ok := models[name]; ok {
		return f, nil
	}
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, n)
	}
	return nil, fmt.Errorf("unknown model %q: registered models are %v", name, sorted(names))
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
