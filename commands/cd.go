package commands

import (
	"fmt"
	"os"

	"github.com/osnoire/noiresh/core/proc"
)

// Cd changes the interpreter's working directory, the case directory by
// default.
func Cd(p *proc.Proc) int {
	args := p.Args
	switch len(args) {
	case 1:
		args = append(args, p.Config.CaseDir)
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", args[0], err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(p.Stderr, "%s: too many arguments\n", args[0])
		return 1
	}
}

var _ CommandFunc = Cd

func init() {
	addInProcessCmd("cd", "Change directory", Cd)
}
