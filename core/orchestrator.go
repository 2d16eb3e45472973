package core

import (
	"errors"
	"os"
	"os/exec"

	"github.com/osnoire/noiresh/core/logger"
	"github.com/osnoire/noiresh/core/proc"
	"github.com/osnoire/noiresh/core/shell"
	"go.uber.org/zap"
)

// Stage names used in logs and errors.
const (
	StageStandalone = "standalone"
	StageRedirect   = "redirect"
	StageLeft       = "left"
	StageRight      = "right"
)

// Orchestrator runs argument vectors: built-ins in the interpreter, everything
// else in waited child processes wired to files and pipes.
//
// Every command name is resolved before any descriptor is created so a bad
// line never leaves a truncated file or a half built pipeline behind. The
// interpreter's copies of files and pipe ends are closed as soon as the
// children holding them have started.
type Orchestrator struct {
	Registry *proc.Registry

	// Self is the program and leading arguments that re-execute this binary
	// as a stage child. The stage's argument vector is appended.
	Self []string

	// Standard streams of the interpreter, children inherit them unless
	// rewired. Nil means the process's own.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	Log    *zap.Logger
	Events *logger.SessionLogger
}

func (o *Orchestrator) stdin() *os.File {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

func (o *Orchestrator) stdout() *os.File {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o *Orchestrator) stderr() *os.File {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

func (o *Orchestrator) record(event logger.Event) {
	if o.Events == nil {
		return
	}
	if err := o.Events.Record(event); err != nil {
		o.logger().Warn("couldn't record event", zap.String("type", event.Type()), zap.Error(err))
	}
}

// Execute runs one tokenized line. A pipe takes precedence over a
// redirection, an empty line is a no-op.
func (o *Orchestrator) Execute(base *proc.Proc, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	if req, ok, err := shell.SplitPipeline(argv); ok {
		if err == nil {
			err = checkRedirects(req.Left, req.Right)
		}
		if err != nil {
			o.record(logger.SyntaxError{Command: argv, Error: err.Error()})
			return err
		}
		return o.Pipeline(base, req)
	}

	if req, ok, err := shell.SplitRedirect(argv); ok {
		if err != nil {
			o.record(logger.SyntaxError{Command: argv, Error: err.Error()})
			return err
		}
		return o.Redirect(base, req)
	}

	return o.Dispatch(base, argv)
}

// checkRedirects rejects a malformed redirection on any side of a pipe
// before anything is started.
func checkRedirects(stages ...[]string) error {
	for _, argv := range stages {
		if _, ok, err := shell.SplitRedirect(argv); ok && err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) lookup(argv []string) (proc.Entry, error) {
	entry, ok := o.Registry.Lookup(argv[0])
	if !ok {
		o.record(logger.UnknownCommand{Command: argv})
		return proc.Entry{}, &CommandNotFoundError{Name: argv[0]}
	}
	o.record(logger.RunCommand{Command: argv, Kind: entry.Kind.String()})
	return entry, nil
}

// Dispatch runs a vector with no operators. In-process built-ins run here,
// anything else runs in a child that's waited before returning.
func (o *Orchestrator) Dispatch(base *proc.Proc, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	entry, err := o.lookup(argv)
	if err != nil {
		return err
	}

	if entry.Kind == proc.InProcess {
		status := entry.Func(o.procFor(base, argv))
		o.logger().Debug("built-in returned", zap.Strings("argv", argv), zap.Int("status", status))
		return nil
	}

	cmd, err := o.childCmd(base, argv, entry)
	if err != nil {
		return o.processError(StageStandalone, argv, err)
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = o.stdin(), o.stdout(), o.stderr()

	if err := o.start(StageStandalone, cmd, argv); err != nil {
		return err
	}
	o.wait(StageStandalone, cmd, argv)
	return nil
}

// Redirect runs req.Command in a child whose standard output is req.Target,
// created or truncated with mode 0644.
func (o *Orchestrator) Redirect(base *proc.Proc, req shell.RedirectionRequest) error {
	entry, err := o.lookup(req.Command)
	if err != nil {
		return err
	}

	cmd, err := o.childCmd(base, req.Command, entry)
	if err != nil {
		return o.processError(StageRedirect, req.Command, err)
	}

	file, err := os.OpenFile(req.Target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		o.record(logger.IOError{Path: req.Target, Error: errorReason(err)})
		return &IOError{Op: "open", Path: req.Target, Err: err}
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = o.stdin(), file, o.stderr()

	err = o.start(StageRedirect, cmd, req.Command)
	// The child has its own copy of the descriptor.
	file.Close()
	if err != nil {
		return err
	}

	o.wait(StageRedirect, cmd, req.Command)
	return nil
}

// Pipeline connects the standard output of req.Left to the standard input
// of req.Right and waits for both.
func (o *Orchestrator) Pipeline(base *proc.Proc, req shell.PipelineRequest) error {
	leftEntry, err := o.lookup(req.Left)
	if err != nil {
		return err
	}
	rightEntry, err := o.lookup(req.Right)
	if err != nil {
		return err
	}

	left, err := o.childCmd(base, req.Left, leftEntry)
	if err != nil {
		return o.processError(StageLeft, req.Left, err)
	}
	right, err := o.childCmd(base, req.Right, rightEntry)
	if err != nil {
		return o.processError(StageRight, req.Right, err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		o.record(logger.IOError{Error: errorReason(err)})
		return &IOError{Op: "pipe", Err: err}
	}
	closePipe := func() {
		r.Close()
		w.Close()
	}

	left.Stdin, left.Stdout, left.Stderr = o.stdin(), w, o.stderr()
	right.Stdin, right.Stdout, right.Stderr = r, o.stdout(), o.stderr()

	if err := o.start(StageLeft, left, req.Left); err != nil {
		closePipe()
		return err
	}

	if err := o.start(StageRight, right, req.Right); err != nil {
		// Closing the pipe lets the writer see EPIPE or finish on its own.
		closePipe()
		o.wait(StageLeft, left, req.Left)
		return err
	}

	// Only the children may hold the pipe now, or the reader never sees EOF.
	closePipe()

	o.wait(StageLeft, left, req.Left)
	o.wait(StageRight, right, req.Right)
	return nil
}

func (o *Orchestrator) procFor(base *proc.Proc, argv []string) *proc.Proc {
	p := base.WithArgs(argv)
	p.Stdin, p.Stdout, p.Stderr = o.stdin(), o.stdout(), o.stderr()
	p.Spawner = &spawner{orchestrator: o, base: base}
	p.Log = o.logger()
	return p
}

// childCmd prepares the child for one stage. External programs are executed
// directly unless the stage has its own redirection to perform, everything
// else re-executes this binary.
func (o *Orchestrator) childCmd(base *proc.Proc, argv []string, entry proc.Entry) (*exec.Cmd, error) {
	if entry.Kind == proc.External && !shell.HasOperator(argv, shell.RedirectOperator) {
		full := append(append([]string(nil), entry.Argv...), argv[1:]...)
		return exec.Command(full[0], full[1:]...), nil
	}
	return o.stageCmd(base, argv)
}

func (o *Orchestrator) stageCmd(base *proc.Proc, argv []string) (*exec.Cmd, error) {
	if len(o.Self) == 0 {
		return nil, errors.New("no stage executable")
	}

	env, err := (&StageContext{Config: base.Config, Game: base.Game}).Encode()
	if err != nil {
		return nil, err
	}

	args := append(append([]string(nil), o.Self[1:]...), argv...)
	cmd := exec.Command(o.Self[0], args...)
	cmd.Env = append(os.Environ(), EnvStageContext+"="+env)
	return cmd, nil
}

func (o *Orchestrator) start(stage string, cmd *exec.Cmd, argv []string) error {
	if err := cmd.Start(); err != nil {
		return o.processError(stage, argv, err)
	}

	pid := cmd.Process.Pid
	o.logger().Debug("started child", zap.String("stage", stage), zap.Int("pid", pid), zap.Strings("argv", argv))
	o.record(logger.Spawn{Stage: stage, Pid: pid, Command: argv})
	return nil
}

// wait reaps a started child and returns its exit status, -1 if it was
// killed by a signal.
func (o *Orchestrator) wait(stage string, cmd *exec.Cmd, argv []string) int {
	err := cmd.Wait()

	status := -1
	if cmd.ProcessState != nil {
		status = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		o.logger().Warn("wait failed", zap.String("stage", stage), zap.Strings("argv", argv), zap.Error(err))
	}

	o.logger().Debug("reaped child",
		zap.String("stage", stage),
		zap.Int("pid", cmd.Process.Pid),
		zap.Strings("argv", argv),
		zap.Int("status", status))
	o.record(logger.Exit{Stage: stage, Pid: cmd.Process.Pid, Command: argv, Status: status})
	return status
}

func (o *Orchestrator) processError(stage string, argv []string, err error) error {
	o.logger().Warn("couldn't start child", zap.String("stage", stage), zap.Strings("argv", argv), zap.Error(err))
	o.record(logger.ProcessError{Stage: stage, Error: err.Error()})
	return &ProcessError{Stage: stage, Command: argv[0], Err: err}
}

func errorReason(err error) string {
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		return unwrapped.Error()
	}
	return err.Error()
}

// spawner lets built-ins create children that behave like pipeline stages.
type spawner struct {
	orchestrator *Orchestrator
	base         *proc.Proc
}

var _ proc.Spawner = (*spawner)(nil)

func (s *spawner) Command(argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	o := s.orchestrator
	entry, ok := o.Registry.Lookup(argv[0])
	if !ok {
		return nil, &CommandNotFoundError{Name: argv[0]}
	}

	cmd, err := o.childCmd(s.base, argv, entry)
	if err != nil {
		return nil, err
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = o.stdin(), o.stdout(), o.stderr()
	return cmd, nil
}
