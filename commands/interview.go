package commands

import (
	"fmt"
	"strings"

	"github.com/osnoire/noiresh/core/proc"
)

// Interview questions a suspect at the detective's location.
func Interview(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "interview NAME",
		Short: "Question a suspect.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintf(p.Stderr, "usage: %s\n", cmd.Use)
			return 1
		}

		p.Game.Interview(p.Stdout, strings.Join(args, " "))
		return 0
	})
}

var _ CommandFunc = Interview

func init() {
	addInProcessCmd("interview", "Question suspects", Interview)
}
