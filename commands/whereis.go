package commands

import (
	"fmt"
	"strings"

	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
)

// Whereis finds a suspect.
func Whereis(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "whereis NAME",
		Short: "Find a suspect's location.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintf(p.Stderr, "usage: %s\n", cmd.Use)
			return 1
		}

		game.Whereis(p.Stdout, strings.Join(args, " "))
		return 0
	})
}

var _ CommandFunc = Whereis

func init() {
	addSubprocessCmd("whereis", "Find a suspect's location", Whereis)
}
