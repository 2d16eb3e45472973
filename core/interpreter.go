package core

import (
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/logger"
	"github.com/osnoire/noiresh/core/proc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interpreter is a configured read loop plus the logs it writes to.
type Interpreter struct {
	Shell *Shell

	stdout  io.Writer
	toClose listCloser
}

// Streams are the interpreter's standard streams.
type Streams struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// NewInterpreter sets up logging, the case directory and line editing. A
// terminal on stdin gets readline, anything else is read line by line
// without a prompt.
func NewInterpreter(cfg *config.Configuration, reg *proc.Registry, self []string, streams Streams) (*Interpreter, error) {
	interp := &Interpreter{stdout: streams.Stdout}

	ApplyColor(cfg.Color, streams.Stdout)

	appLog, closeAppLog, err := newAppLog(cfg)
	if err != nil {
		return nil, err
	}
	interp.toClose = append(interp.toClose, closeAppLog)

	events := logger.Nop().NewSession()
	if cfg.EventLog != "" {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			interp.Close()
			return nil, err
		}
		interp.toClose = append(interp.toClose, fd)
		events = logger.NewJsonLinesLogRecorder(fd).NewSession()
	}
	appLog = appLog.With(zap.String("session_id", events.SessionID()))

	caseFiles, err := cfg.CaseFiles()
	if err != nil {
		interp.Close()
		return nil, err
	}

	reader, err := newReader(streams)
	if err != nil {
		interp.Close()
		return nil, err
	}
	if closer, ok := reader.(io.Closer); ok {
		interp.toClose = append(interp.toClose, closer)
	}

	orchestrator := &Orchestrator{
		Registry: reg,
		Self:     self,
		Stdin:    streams.Stdin,
		Stdout:   streams.Stdout,
		Stderr:   streams.Stderr,
		Log:      appLog,
		Events:   events,
	}
	env := &proc.Proc{
		Game:      game.NewState(),
		Config:    cfg,
		CaseFiles: caseFiles,
	}
	interp.Shell = NewShell(orchestrator, env, reader)

	appLog.Info("interpreter started", zap.String("case_dir", cfg.CaseDir))
	return interp, nil
}

// Run prints the case briefing and runs the read loop.
func (i *Interpreter) Run() int {
	game.Welcome(i.stdout)
	return i.Shell.Run()
}

// Close releases line editing and flushes the logs.
func (i *Interpreter) Close() error {
	return i.toClose.Close()
}

func newAppLog(cfg *config.Configuration) (*zap.Logger, io.Closer, error) {
	if cfg.AppLog == "" {
		return zap.NewNop(), closerFunc(func() error { return nil }), nil
	}

	fd, err := cfg.OpenAppLog()
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(fd),
		zap.DebugLevel,
	)
	appLog := zap.New(core)
	return appLog, closerFunc(func() error {
		_ = appLog.Sync()
		return fd.Close()
	}), nil
}

func newReader(streams Streams) (LineReader, error) {
	if !IsTerminal(streams.Stdin) {
		return NewLineReader(streams.Stdin, nil), nil
	}

	// readline only reads stdin while a line is being edited: its terminal
	// loop parks after Enter until the next Readline, so children that read
	// the terminal get every key typed while they run.
	cfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(streams.Stdin),
		Stdout:       streams.Stdout,
		Stderr:       streams.Stderr,
		HistoryLimit: -1,
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
