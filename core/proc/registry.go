package proc

import (
	"fmt"
	"sort"
)

// Kind is how a command is run.
type Kind int

const (
	// InProcess commands run inside the interpreter when invoked on their own
	// so they can change its state.
	InProcess Kind = iota
	// Subprocess commands are built-ins that always run in a child process
	// so redirection and pipes apply to them like to any program.
	Subprocess
	// External commands execute a program.
	External
)

func (k Kind) String() string {
	switch k {
	case InProcess:
		return "in-process"
	case Subprocess:
		return "subprocess"
	case External:
		return "external"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is what a command name resolves to.
type Entry struct {
	Name string
	Kind Kind
	// Func implements InProcess and Subprocess commands.
	Func ProcessFunc
	// Argv is the program and leading arguments of an External command.
	Argv []string
	// Short is a one line description shown by help listings.
	Short string
	// Hidden entries are left out of listings.
	Hidden bool
}

// Builtin reports whether the entry is implemented by a ProcessFunc.
func (e Entry) Builtin() bool {
	return e.Kind != External
}

// Registry maps command names to entries. It is built once and frozen
// before the read loop starts.
type Registry struct {
	entries map[string]Entry
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry, replacing one with the same name.
func (r *Registry) Register(e Entry) {
	if r.frozen {
		panic(fmt.Sprintf("registry: register %q after freeze", e.Name))
	}
	switch {
	case e.Name == "":
		panic("registry: entry without a name")
	case e.Kind == External && len(e.Argv) == 0:
		panic(fmt.Sprintf("registry: external %q without a program", e.Name))
	case e.Kind != External && e.Func == nil:
		panic(fmt.Sprintf("registry: built-in %q without a function", e.Name))
	}
	r.entries[e.Name] = e
}

// Freeze prevents further registration and returns r.
func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

// Lookup finds the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// List returns the visible entries sorted by name.
func (r *Registry) List() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
