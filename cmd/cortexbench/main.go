// Command cortexbench runs the conformance battery for temporal predictive
// models.
package main

import (
	"os"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/cli"
	"github.com/cortexbench/cortexbench/internal/refmodel"
)

func main() {
	models := map[string]cortexbench.Factory{
		"assoc": refmodel.New,
	}

	cmd := cli.NewRootCommand(models)
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
