package commands

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/osnoire/noiresh/core/proc"
)

// WaitDemo reaps a child that exits with a known status.
func WaitDemo(p *proc.Proc) int {
	diag := p.Config.Diagnostics
	cmd := &SimpleCommand{
		Use:   "waitdemo",
		Short: "Demonstrate waiting for a child's exit status.",
	}

	return cmd.RunE(p, func() error {
		fmt.Fprintln(p.Stdout, "\nDemonstrating waitpid() system call:")

		child, err := napCommand(p,
			"--sleep", diag.ChildLifetime().String(),
			"--exit", strconv.Itoa(diag.WaitDemoExitCode),
			"--before", "Child process working...",
			"--after", "Child process done")
		if err == nil {
			err = child.Start()
		}
		if err != nil {
			return fmt.Errorf("fork failed: %w", err)
		}

		fmt.Fprintf(p.Stdout, "Child exited with status: %d\n\n", waitStatus(child))
		return nil
	})
}

// ExecDemo runs ls on the case directory in a child.
func ExecDemo(p *proc.Proc) int {
	return execDemo(p, "exec()", []string{"ls", p.Config.CaseDir})
}

// ExecvpDemo runs ls -l on the case directory in a child.
func ExecvpDemo(p *proc.Proc) int {
	return execDemo(p, "execvp()", []string{"ls", "-l", p.Config.CaseDir})
}

func execDemo(p *proc.Proc, call string, argv []string) int {
	cmd := &SimpleCommand{
		Use:   p.Args[0],
		Short: fmt.Sprintf("Demonstrate the %s system call.", call),
	}

	return cmd.RunE(p, func() error {
		fmt.Fprintf(p.Stdout, "\nDemonstrating %s system call:\n", call)
		fmt.Fprintf(p.Stdout, "Child will now execute '%s'\n", strings.Join(argv, " "))

		child := exec.Command(argv[0], argv[1:]...)
		child.Stdout, child.Stderr = p.Stdout, p.Stderr
		if err := child.Start(); err != nil {
			return fmt.Errorf("exec failed: %w", err)
		}
		waitStatus(child)

		fmt.Fprintln(p.Stdout, "Parent process continuing")
		fmt.Fprintln(p.Stdout)
		return nil
	})
}

var (
	_ CommandFunc = WaitDemo
	_ CommandFunc = ExecDemo
	_ CommandFunc = ExecvpDemo
)

func init() {
	addInProcessCmd("waitdemo", "Demonstrate waiting for a child", WaitDemo)
	addInProcessCmd("execdemo", "Demonstrate exec", ExecDemo)
	addInProcessCmd("execvpdemo", "Demonstrate execvp", ExecvpDemo)
}
