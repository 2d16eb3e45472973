package commands

import (
	"fmt"

	"github.com/osnoire/noiresh/core/proc"
)

// Exit abandons the case.
func Exit(p *proc.Proc) int {
	fmt.Fprintln(p.Stdout, "\nCase abandoned. The streets remain unsafe...")
	p.Exit()
	return 0
}

var _ CommandFunc = Exit

func init() {
	addInProcessCmd("exit", "Quit the game", Exit)
}
