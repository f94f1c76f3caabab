package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortexbench/cortexbench/internal/axiom"
)

// CheckInfo is one battery entry in list output.
type CheckInfo struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the checks of the conformance battery",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			battery := axiom.Battery(1)

			if rootOpts.Format == "json" {
				infos := make([]CheckInfo, 0, len(battery))
				for _, c := range battery {
					infos = append(infos, CheckInfo{Name: c.Name, Doc: c.Doc})
				}
				f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
				return f.Success(infos)
			}

			for _, c := range battery {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", c.Name, c.Doc)
			}
			return nil
		},
	}
}
