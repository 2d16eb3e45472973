package commands

import (
	"fmt"
	"io"

	"github.com/osnoire/noiresh/core/proc"
)

// Cat implements the UNIX cat command over the case files.
func Cat(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]...",
		Short: "Concatenate case files to standard output, or standard input without any.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			io.Copy(p.Stdout, p.Stdin)
			return 0
		}

		exitCode := 0
		for _, arg := range args {
			fd, err := p.CaseFiles.Open(arg)
			if err != nil {
				fmt.Fprintf(p.Stderr, "cat: %v\n", err)
				exitCode = 1
				continue
			}

			io.Copy(p.Stdout, fd)
			fd.Close()
		}

		return exitCode
	})
}

var _ CommandFunc = Cat

func init() {
	addSubprocessCmd("cat", "Print case files", Cat)
}
