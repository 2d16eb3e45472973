package commands

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/osnoire/noiresh/core/proc"
)

// Seq prints a sequence of numbers, one per line.
func Seq(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "seq [FIRST] LAST",
		Short: "Print numbers from FIRST (default 1) to LAST.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()

		var bounds []int
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid number: %q", arg)
			}
			bounds = append(bounds, n)
		}

		first, last := 1, 0
		switch len(bounds) {
		case 1:
			last = bounds[0]
		case 2:
			first, last = bounds[0], bounds[1]
		default:
			return fmt.Errorf("usage: %s", cmd.Use)
		}

		w := bufio.NewWriter(p.Stdout)
		for i := first; i <= last; i++ {
			fmt.Fprintln(w, i)
		}
		return w.Flush()
	})
}

var _ CommandFunc = Seq

func init() {
	addSubprocessCmd("seq", "Print a sequence of numbers", Seq)
}
