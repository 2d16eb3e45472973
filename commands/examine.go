package commands

import (
	"fmt"

	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
)

// Examine reviews a piece of evidence from the case files.
func Examine(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "examine ITEM",
		Short: "Review evidence, e.g. ledger or tox_report.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return fmt.Errorf("usage: %s", cmd.Use)
		}

		return game.Examine(p.Stdout, p.CaseFiles, args[0])
	})
}

var _ CommandFunc = Examine

func init() {
	addSubprocessCmd("examine", "Review evidence", Examine)
}
