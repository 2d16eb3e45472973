package commands

import (
	"fmt"
	"time"

	"github.com/osnoire/noiresh/core/proc"
)

// Spawn starts children that sleep then exit, and reaps each of them.
func Spawn(p *proc.Proc) int {
	diag := p.Config.Diagnostics
	cmd := &SimpleCommand{
		Use:   "spawn [-n CHILDREN] [-s DURATION]",
		Short: "Start children that sleep then exit, and report how each was reaped.",
	}

	opts := cmd.Flags()
	children := opts.IntLong("children", 'n', diag.SpawnChildren, "number of children to start")
	sleep := opts.StringLong("sleep", 's', diag.ChildLifetime().String(), "how long each child sleeps")

	return cmd.RunE(p, func() error {
		if _, err := time.ParseDuration(*sleep); err != nil {
			return err
		}

		started, err := startNaps(p, *children, func(int) []string {
			return []string{"--sleep", *sleep}
		})
		for i, child := range started {
			fmt.Fprintf(p.Stdout, "Started child %d (PID: %d)\n", i+1, child.Process.Pid)
		}
		for i, child := range started {
			status := waitStatus(child)
			fmt.Fprintf(p.Stdout, "Reaped child %d (PID: %d), exit status %d\n", i+1, child.Process.Pid, status)
		}
		return err
	})
}

var _ CommandFunc = Spawn

func init() {
	addInProcessCmd("spawn", "Start children and reap them", Spawn)
}
