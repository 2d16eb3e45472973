package commands

import (
	"github.com/osnoire/noiresh/core/proc"
)

// Investigate searches for the next clue and files it in the case directory.
func Investigate(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "investigate",
		Short: "Search for clues.",
	}

	return cmd.RunE(p, func() error {
		return p.Game.Investigate(p.Stdout, p.CaseFiles)
	})
}

var _ CommandFunc = Investigate

func init() {
	addInProcessCmd("investigate", "Search for clues", Investigate)
}
