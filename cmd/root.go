package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/osnoire/noiresh/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

// loadConfig reads the configuration from --config, falling back to the
// built-in defaults when none has been written yet.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger := log.New(cmd.ErrOrStderr(), "", 0)
		logger.Printf("No configuration in %q, using defaults. Run init to write one.", cfgPath)
		return config.Default(cfgPath)
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noiresh",
	Short: "LA Noire detective shell",
	Long: `A minimal command interpreter wrapped in a 1947 murder mystery.

Lines are split on whitespace and run as built-ins or external programs,
with one output redirection (cmd > file) or one pipe (cmd1 | cmd2).`,
	Args: cobra.ExactArgs(0),
	RunE: runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
