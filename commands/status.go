package commands

import (
	"github.com/osnoire/noiresh/core/proc"
)

// Status shows the case progress.
func Status(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "status",
		Short: "Show case progress.",
	}

	return cmd.Run(p, func() int {
		p.Game.Status(p.Stdout)
		return 0
	})
}

var _ CommandFunc = Status

func init() {
	addSubprocessCmd("status", "Show case progress", Status)
}
