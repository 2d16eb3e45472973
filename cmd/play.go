package cmd

import (
	"fmt"
	"os"

	"github.com/osnoire/noiresh/commands"
	"github.com/osnoire/noiresh/core"
	"github.com/spf13/cobra"
)

// playCmd runs the interpreter on the terminal.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interpreter (the default).",
	Args:  cobra.ExactArgs(0),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ResolveCaseDir(); err != nil {
		return err
	}

	self, err := stageSelf()
	if err != nil {
		return err
	}

	interp, err := core.NewInterpreter(cfg, commands.NewRegistry(cfg), self, core.Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return err
	}
	defer interp.Close()

	if status := interp.Run(); status != 0 {
		return fmt.Errorf("interpreter exited with status %d", status)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(playCmd)
}
