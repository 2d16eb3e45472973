// Package proc defines the environment commands run in and the table they
// are looked up from.
package proc

import (
	"io"
	"os/exec"

	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/game"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ProcessFunc is the entrypoint of a built-in command, it returns the exit
// status.
type ProcessFunc func(p *Proc) int

// Spawner creates child processes on behalf of a command.
type Spawner interface {
	// Command prepares an unstarted child that runs argv the way a pipeline
	// stage would. The child's standard streams default to the interpreter's.
	Command(argv []string) (*exec.Cmd, error)
}

// Proc is the environment a built-in runs in.
type Proc struct {
	// Args holds the command name followed by its arguments.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Game is the live state in the interpreter, or a snapshot in a child.
	Game   *game.State
	Config *config.Configuration
	// CaseFiles is rooted at the case directory.
	CaseFiles afero.Fs

	Spawner Spawner
	Log     *zap.Logger

	// Quit asks the read loop to stop after the current line.
	Quit func()
}

// WithArgs returns a copy of p that runs argv.
func (p *Proc) WithArgs(argv []string) *Proc {
	out := *p
	out.Args = argv
	return &out
}

// Exit requests the interpreter to stop, it's a no-op without a read loop.
func (p *Proc) Exit() {
	if p.Quit != nil {
		p.Quit()
	}
}

// Logger returns the diagnostic logger, never nil.
func (p *Proc) Logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}
