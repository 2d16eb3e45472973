package commands

import (
	"fmt"
	"strings"

	"github.com/osnoire/noiresh/core/proc"
)

// Accuse makes the final charge, which ends the game either way.
func Accuse(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "accuse NAME",
		Short: "Make your final charge.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintf(p.Stderr, "usage: %s\n", cmd.Use)
			return 1
		}

		solved := p.Game.Accuse(p.Stdout, strings.Join(args, " "))
		p.Exit()
		if !solved {
			return 1
		}
		return 0
	})
}

var _ CommandFunc = Accuse

func init() {
	addInProcessCmd("accuse", "Make your final charge", Accuse)
}
