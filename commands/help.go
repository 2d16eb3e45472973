package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
)

// Help lists the commands and operators.
func Help(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "help",
		Short: "Show the available commands.",
	}

	return cmd.Run(p, func() int {
		w := p.Stdout

		fmt.Fprintln(w)
		game.ColorBoldYellow.Fprintln(w, "COMMANDS:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, entry := range NewRegistry(p.Config).List() {
			fmt.Fprintf(tw, "  %s\t%s\n", entry.Name, entry.Short)
		}
		tw.Flush()

		fmt.Fprintln(w)
		game.ColorBoldYellow.Fprintln(w, "REDIRECTION:")
		fmt.Fprintln(w, "  command > file - Redirect output to file")
		fmt.Fprintln(w, "  command1 | command2 - Pipe output")
		fmt.Fprintln(w)
		return 0
	})
}

var _ CommandFunc = Help

func init() {
	addSubprocessCmd("help", "Show this message", Help)
}
