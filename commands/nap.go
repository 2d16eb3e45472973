package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/osnoire/noiresh/core/proc"
)

const napName = "_nap"

// maxChildren bounds how many children a single diagnostic may start.
const maxChildren = 64

// Nap sleeps then exits with the requested status. It's the child the
// process diagnostics start.
func Nap(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   napName + " [-s DURATION] [-x STATUS] [-b TEXT] [-a TEXT]",
		Short: "Sleep, then exit with STATUS. {pid} in TEXT is replaced with the process ID.",
	}

	opts := cmd.Flags()
	sleep := opts.StringLong("sleep", 's', "0s", "how long to sleep")
	status := opts.IntLong("exit", 'x', 0, "exit status")
	before := opts.StringLong("before", 'b', "", "line to print before sleeping")
	after := opts.StringLong("after", 'a', "", "line to print after sleeping")

	return cmd.Run(p, func() int {
		duration, err := time.ParseDuration(*sleep)
		if err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Args[0], err)
			return 2
		}

		say := func(line string) {
			if line != "" {
				fmt.Fprintln(p.Stdout, strings.ReplaceAll(line, "{pid}", strconv.Itoa(os.Getpid())))
			}
		}

		say(*before)
		time.Sleep(duration)
		say(*after)
		return *status
	})
}

var _ CommandFunc = Nap

func init() {
	addHiddenCmd(napName, Nap)
}

// napCommand prepares a child running Nap with the given flags, writing to
// the caller's streams.
func napCommand(p *proc.Proc, flags ...string) (*exec.Cmd, error) {
	if p.Spawner == nil {
		return nil, errors.New("can't create child processes here")
	}

	child, err := p.Spawner.Command(append([]string{napName}, flags...))
	if err != nil {
		return nil, err
	}
	child.Stdout, child.Stderr = p.Stdout, p.Stderr
	return child, nil
}

// startNaps starts n Nap children, stopping at the first failure. Children
// that started are returned even with an error and must be waited.
func startNaps(p *proc.Proc, n int, flags func(i int) []string) ([]*exec.Cmd, error) {
	if n < 1 || n > maxChildren {
		return nil, fmt.Errorf("child count must be between 1 and %d, got %d", maxChildren, n)
	}

	var started []*exec.Cmd
	for i := 0; i < n; i++ {
		child, err := napCommand(p, flags(i)...)
		if err == nil {
			err = child.Start()
		}
		if err != nil {
			return started, fmt.Errorf("fork failed: %w", err)
		}
		started = append(started, child)
	}
	return started, nil
}

// waitStatus reaps child and returns its exit status, -1 if it was killed.
func waitStatus(child *exec.Cmd) int {
	_ = child.Wait()
	if child.ProcessState == nil {
		return -1
	}
	return child.ProcessState.ExitCode()
}
