package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/abiosoft/readline"
	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
	"github.com/osnoire/noiresh/core/shell"
	"go.uber.org/zap"
)

// LineReader supplies the read loop with lines, *readline.Instance
// satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Shell is the interactive read loop.
type Shell struct {
	Orchestrator *Orchestrator
	Reader       LineReader
	Tokenizer    shell.Tokenizer
	// Env is the interpreter's own environment, in-process built-ins change
	// its game state.
	Env *proc.Proc

	quit bool
}

// NewShell creates a read loop; env.Quit is pointed at the loop.
func NewShell(o *Orchestrator, env *proc.Proc, reader LineReader) *Shell {
	s := &Shell{
		Orchestrator: o,
		Reader:       reader,
		Env:          env,
	}
	if env.Config != nil {
		s.Tokenizer.MaxArgs = env.Config.MaxArgs
	}
	env.Quit = s.Quit
	return s
}

// Quit stops the loop after the current line.
func (s *Shell) Quit() {
	s.quit = true
}

// Done reports whether the loop should stop.
func (s *Shell) Done() bool {
	return s.quit || (s.Env.Game != nil && s.Env.Game.Over)
}

// Prompt shows the detective's location.
func (s *Shell) Prompt() string {
	location := ""
	if s.Env.Game != nil {
		location = s.Env.Game.CurrentLocation()
	}
	user, host := "detective", "LA-Noire"
	if cfg := s.Env.Config; cfg != nil {
		user, host = cfg.PromptUser, cfg.PromptHost
	}
	return game.ColorBoldRed.Sprintf("[%s] %s@%s:~$ ", location, user, host)
}

// RunLine tokenizes and executes one line, reporting problems on the
// interpreter's standard error.
func (s *Shell) RunLine(line string) {
	argv, dropped := s.Tokenizer.Split(line)
	stderr := s.Orchestrator.stderr()
	if dropped > 0 {
		fmt.Fprintf(stderr, "noiresh: too many arguments, %d ignored\n", dropped)
	}

	if err := s.Orchestrator.Execute(s.Env, argv); err != nil {
		fmt.Fprintln(stderr, err)
	}
}

// Run reads and executes lines until input ends or a command quits. It
// returns the interpreter's exit status.
func (s *Shell) Run() int {
	for !s.Done() {
		s.Reader.SetPrompt(s.Prompt())
		line, err := s.Reader.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case errors.Is(err, readline.ErrInterrupt):
			continue // Discard the line like a terminal would.

		case err != nil:
			s.Orchestrator.logger().Error("reading input", zap.Error(err))
			return 1

		default:
			s.RunLine(line)
		}
	}
	return 0
}

// NewLineReader reads lines from r one byte at a time so nothing past the
// newline is consumed, children that inherit the descriptor see the rest of
// the input. The prompt is written to promptOut unless it's nil.
func NewLineReader(r io.Reader, promptOut io.Writer) LineReader {
	return &lineReader{in: r, out: promptOut}
}

type lineReader struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

func (l *lineReader) SetPrompt(prompt string) {
	l.prompt = prompt
}

func (l *lineReader) Readline() (string, error) {
	if l.out != nil {
		fmt.Fprint(l.out, l.prompt)
	}

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := l.in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return string(line), nil
			}
			line = append(line, buf[0])
		}

		switch {
		case err == io.EOF && len(line) > 0:
			return string(line), nil
		case err != nil:
			return "", err
		}
	}
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
