package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/proc"
	getopt "github.com/pborman/getopt/v2"
	"go.uber.org/zap"
)

type CommandFunc = proc.ProcessFunc

// BuiltinCommand is a command implemented by this package.
type BuiltinCommand struct {
	Name   string
	Kind   proc.Kind
	Short  string
	Hidden bool
	Main   CommandFunc
}

// AllCommands holds a list of all registered built-ins.
var AllCommands = make(map[string]BuiltinCommand)

func mustAddCmd(cmd BuiltinCommand) {
	if _, ok := AllCommands[cmd.Name]; ok {
		panic(fmt.Sprintf("duplicate command %q", cmd.Name))
	}
	AllCommands[cmd.Name] = cmd
}

// addInProcessCmd adds a command that changes the interpreter's state.
func addInProcessCmd(name, short string, cmd CommandFunc) {
	mustAddCmd(BuiltinCommand{Name: name, Kind: proc.InProcess, Short: short, Main: cmd})
}

// addSubprocessCmd adds a command that always runs in a child.
func addSubprocessCmd(name, short string, cmd CommandFunc) {
	mustAddCmd(BuiltinCommand{Name: name, Kind: proc.Subprocess, Short: short, Main: cmd})
}

// addHiddenCmd adds a subprocess command that's left out of listings.
func addHiddenCmd(name string, cmd CommandFunc) {
	mustAddCmd(BuiltinCommand{Name: name, Kind: proc.Subprocess, Hidden: true, Main: cmd})
}

// ListBuiltinCommands returns the built-ins sorted by name.
func ListBuiltinCommands() []BuiltinCommand {
	var out []BuiltinCommand
	for _, cmd := range AllCommands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// NewRegistry builds the frozen command table: every built-in plus the
// external programs named in the configuration. A configured program
// replaces a built-in of the same name.
func NewRegistry(cfg *config.Configuration) *proc.Registry {
	r := proc.NewRegistry()
	for _, cmd := range ListBuiltinCommands() {
		r.Register(proc.Entry{
			Name:   cmd.Name,
			Kind:   cmd.Kind,
			Func:   cmd.Main,
			Short:  cmd.Short,
			Hidden: cmd.Hidden,
		})
	}

	for name := range cfg.External {
		argv, _ := cfg.ExternalArgv(name, nil)
		r.Register(proc.Entry{
			Name:  name,
			Kind:  proc.External,
			Argv:  argv,
			Short: "Run " + strings.Join(argv, " "),
		})
	}

	return r.Freeze()
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(p *proc.Proc, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(p.Args, nil)
	if err != nil {
		p.Logger().Debug("invalid invocation", zap.Strings("argv", p.Args), zap.Error(err))
	}

	if err != nil && !s.NeverBail {
		fmt.Fprintf(p.Stderr, "error: %s\n\n", err)

		s.PrintHelp(p.Stdout)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout)
		return 0
	}

	return callback()
}

// RunE is like Run but the callback reports failure with an error, which
// is printed prefixed with the command name.
func (s *SimpleCommand) RunE(p *proc.Proc, callback func() error) int {
	return s.Run(p, func() int {
		if err := callback(); err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Args[0], err)
			return 1
		}
		return 0
	})
}
