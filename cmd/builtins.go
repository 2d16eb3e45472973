package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/osnoire/noiresh/commands"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands the interpreter knows and how each runs.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, entry := range commands.NewRegistry(cfg).List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Name, entry.Kind, entry.Short)
		}

		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
