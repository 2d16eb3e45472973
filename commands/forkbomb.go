package commands

import (
	"fmt"

	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
)

// Forkbomb is a bounded fan-out: it starts the configured number of
// children and waits for every one of them.
func Forkbomb(p *proc.Proc) int {
	diag := p.Config.Diagnostics
	cmd := &SimpleCommand{
		Use:   "forkbomb",
		Short: fmt.Sprintf("Controlled fork bomb demonstration (%d max).", diag.ForkbombChildren),
	}

	return cmd.RunE(p, func() error {
		w := p.Stdout
		fmt.Fprintln(w)
		game.ColorBoldRed.Fprintln(w, "CONTROLLED FORKBOMB DEMONSTRATION")
		fmt.Fprintf(w, "This will create %d processes then stop automatically\n", diag.ForkbombChildren)
		fmt.Fprintf(w, "All processes will terminate after %v\n", diag.ChildLifetime())

		started, err := startNaps(p, diag.ForkbombChildren, func(i int) []string {
			return []string{
				"--sleep", diag.ChildLifetime().String(),
				"--before", fmt.Sprintf("Fork bomb child %d created (PID: {pid})", i+1),
			}
		})
		for _, child := range started {
			waitStatus(child)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "\nFork bomb test complete. System stable.")
		fmt.Fprintln(w)
		return nil
	})
}

var _ CommandFunc = Forkbomb

func init() {
	addInProcessCmd("forkbomb", "Controlled fork bomb demonstration", Forkbomb)
}
