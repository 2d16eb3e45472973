package commands

import (
	"fmt"
	"os"

	"github.com/osnoire/noiresh/core/proc"
)

// Mv renames a file relative to the working directory.
func Mv(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "mv SOURCE DEST",
		Short: "Rename SOURCE to DEST.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) != 2 {
			return fmt.Errorf("usage: %s", cmd.Use)
		}

		if err := os.Rename(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(p.Stdout, "Moved %s to %s\n", args[0], args[1])
		return nil
	})
}

var _ CommandFunc = Mv

func init() {
	addInProcessCmd("mv", "Move or rename a file", Mv)
}
