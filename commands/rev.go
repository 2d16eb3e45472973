package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/osnoire/noiresh/core/proc"
)

func reverseLines(w io.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		runes := []rune(scanner.Text())
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		fmt.Fprintln(w, string(runes))
	}
	return scanner.Err()
}

// Rev reverses the characters of every line.
func Rev(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "rev [FILE]...",
		Short: "Reverse lines of case files, or of standard input without any.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return reverseLines(p.Stdout, p.Stdin)
		}

		for _, arg := range args {
			fd, err := p.CaseFiles.Open(arg)
			if err != nil {
				return err
			}
			err = reverseLines(p.Stdout, fd)
			fd.Close()
			if err != nil {
				return err
			}
		}
		return nil
	})
}

var _ CommandFunc = Rev

func init() {
	addSubprocessCmd("rev", "Reverse the lines of a case file", Rev)
}
