package core

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
	"github.com/osnoire/noiresh/core/shell"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

// EnvStageContext carries the StageContext from the interpreter to a stage
// child.
const EnvStageContext = "NOIRESH_STAGE_CONTEXT"

// Exit statuses of a stage child that couldn't run its command.
const (
	StatusSyntaxError = 2
	StatusCantRun     = 126
	StatusNotFound    = 127
)

// StageContext is the snapshot of interpreter state a stage child starts
// with. Changes the child makes to it are discarded when the child exits.
type StageContext struct {
	Config *config.Configuration `json:"config"`
	Game   *game.State           `json:"game,omitempty"`
}

// Encode serializes the context for the environment.
func (sc *StageContext) Encode() (string, error) {
	out, err := yaml.Marshal(sc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeStageContext parses a value produced by Encode.
func DecodeStageContext(value string) (*StageContext, error) {
	if value == "" {
		return nil, fmt.Errorf("%s isn't set", EnvStageContext)
	}

	var out StageContext
	if err := yaml.UnmarshalStrict([]byte(value), &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", EnvStageContext, err)
	}
	if out.Config == nil {
		return nil, errors.New("stage context has no configuration")
	}
	return &out, nil
}

// IsStageChild reports whether this process was started as a stage child.
func IsStageChild() bool {
	_, ok := os.LookupEnv(EnvStageContext)
	return ok
}

// RegistryFunc builds the command table for a configuration.
type RegistryFunc func(cfg *config.Configuration) *proc.Registry

// RunStage runs argv inside a stage child using the context from the
// environment and returns the exit status.
func RunStage(newRegistry RegistryFunc, self []string, argv []string) int {
	sc, err := DecodeStageContext(os.Getenv(EnvStageContext))
	if err != nil {
		fmt.Fprintf(os.Stderr, "stage: %v\n", err)
		return StatusCantRun
	}

	caseFiles, err := sc.Config.CaseFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stage: %v\n", err)
		return StatusCantRun
	}

	ApplyColor(sc.Config.Color, os.Stdout)

	o := &Orchestrator{
		Registry: newRegistry(sc.Config),
		Self:     self,
		Log:      zap.NewNop(),
	}
	base := &proc.Proc{
		Game:      sc.Game,
		Config:    sc.Config,
		CaseFiles: caseFiles,
	}
	return o.runStage(base, argv)
}

// runStage performs the single vector path inside a child: a nested
// redirection, a built-in, or an external program.
func (o *Orchestrator) runStage(base *proc.Proc, argv []string) int {
	if len(argv) == 0 {
		return 0
	}

	if req, ok, err := shell.SplitRedirect(argv); ok {
		if err != nil {
			fmt.Fprintln(o.stderr(), err)
			return StatusSyntaxError
		}
		if err := o.Redirect(base, req); err != nil {
			fmt.Fprintln(o.stderr(), err)
			return exitStatus(err)
		}
		return 0
	}

	entry, ok := o.Registry.Lookup(argv[0])
	if !ok {
		fmt.Fprintln(o.stderr(), &CommandNotFoundError{Name: argv[0]})
		return StatusNotFound
	}

	if entry.Builtin() {
		return entry.Func(o.procFor(base, argv))
	}

	cmd, err := o.childCmd(base, argv, entry)
	if err != nil {
		fmt.Fprintln(o.stderr(), o.processError(StageStandalone, argv, err))
		return StatusCantRun
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = o.stdin(), o.stdout(), o.stderr()
	if err := o.start(StageStandalone, cmd, argv); err != nil {
		fmt.Fprintln(o.stderr(), err)
		return exitStatus(err)
	}
	return o.wait(StageStandalone, cmd, argv)
}

func exitStatus(err error) int {
	var notFound *CommandNotFoundError
	var procErr *ProcessError
	switch {
	case errors.As(err, &notFound):
		return StatusNotFound
	case errors.As(err, &procErr) && errors.Is(procErr.Err, exec.ErrNotFound):
		return StatusNotFound
	default:
		return 1
	}
}
