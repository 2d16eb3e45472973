package commands

import (
	"fmt"
	"strings"

	"github.com/osnoire/noiresh/core/proc"
)

// Move takes the detective to another location.
func Move(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "move LOCATION",
		Short: "Go to another location.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintf(p.Stderr, "usage: %s\n", cmd.Use)
			return 1
		}

		p.Game.Move(p.Stdout, strings.Join(args, " "))
		return 0
	})
}

var _ CommandFunc = Move

func init() {
	addInProcessCmd("move", "Go to another location", Move)
}
