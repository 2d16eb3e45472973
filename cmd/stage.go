package cmd

import (
	"fmt"
	"os"

	"github.com/osnoire/noiresh/commands"
	"github.com/osnoire/noiresh/core"
	"github.com/spf13/cobra"
)

// stageCmd is the entrypoint of child processes that run built-ins and
// nested redirections. The interpreter passes its state through the
// environment.
var stageCmd = &cobra.Command{
	Use:                "stage -- ARGV...",
	Short:              "Run a single pipeline stage.",
	Hidden:             true,
	DisableFlagParsing: true,
}

func runStage(cmd *cobra.Command, args []string) {
	self, err := stageSelf()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "stage: %v\n", err)
		os.Exit(core.StatusCantRun)
	}

	os.Exit(core.RunStage(commands.NewRegistry, self, stageArgs(args)))
}

// stageSelf is the argv prefix that re-executes this binary as a stage.
func stageSelf() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return []string{exe, stageCmd.Name(), "--"}, nil
}

func stageArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle through stageSelf.
	stageCmd.Run = runStage
	rootCmd.AddCommand(stageCmd)
}
