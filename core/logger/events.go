package logger

// Event is something worth recording about a session.
type Event interface {
	// Type names the event in the recorded entry.
	Type() string

	fields() map[string]interface{}
}

const (
	TypeRunCommand     = "run_command"
	TypeUnknownCommand = "unknown_command"
	TypeSyntaxError    = "syntax_error"
	TypeSpawn          = "spawn"
	TypeExit           = "exit"
	TypeIOError        = "io_error"
	TypeProcessError   = "process_error"
)

// RunCommand is logged when a line is dispatched.
type RunCommand struct {
	Command []string
	// Kind is how the command ran: in-process, subprocess or external.
	Kind string
}

func (RunCommand) Type() string { return TypeRunCommand }

func (e RunCommand) fields() map[string]interface{} {
	return map[string]interface{}{
		"command": toList(e.Command),
		"kind":    e.Kind,
	}
}

// UnknownCommand is logged when nothing is registered under a name.
type UnknownCommand struct {
	Command []string
}

func (UnknownCommand) Type() string { return TypeUnknownCommand }

func (e UnknownCommand) fields() map[string]interface{} {
	return map[string]interface{}{
		"command": toList(e.Command),
	}
}

// SyntaxError is logged for malformed lines.
type SyntaxError struct {
	Command []string
	Error   string
}

func (SyntaxError) Type() string { return TypeSyntaxError }

func (e SyntaxError) fields() map[string]interface{} {
	return map[string]interface{}{
		"command": toList(e.Command),
		"error":   e.Error,
	}
}

// Spawn is logged when a child process starts.
type Spawn struct {
	Stage   string
	Pid     int
	Command []string
}

func (Spawn) Type() string { return TypeSpawn }

func (e Spawn) fields() map[string]interface{} {
	return map[string]interface{}{
		"stage":   e.Stage,
		"pid":     e.Pid,
		"command": toList(e.Command),
	}
}

// Exit is logged when a child process has been waited.
type Exit struct {
	Stage   string
	Pid     int
	Command []string
	Status  int
}

func (Exit) Type() string { return TypeExit }

func (e Exit) fields() map[string]interface{} {
	return map[string]interface{}{
		"stage":   e.Stage,
		"pid":     e.Pid,
		"command": toList(e.Command),
		"status":  e.Status,
	}
}

// IOError is logged when a descriptor can't be opened.
type IOError struct {
	Path  string
	Error string
}

func (IOError) Type() string { return TypeIOError }

func (e IOError) fields() map[string]interface{} {
	return map[string]interface{}{
		"path":  e.Path,
		"error": e.Error,
	}
}

// ProcessError is logged when a child can't be created.
type ProcessError struct {
	Stage string
	Error string
}

func (ProcessError) Type() string { return TypeProcessError }

func (e ProcessError) fields() map[string]interface{} {
	return map[string]interface{}{
		"stage": e.Stage,
		"error": e.Error,
	}
}
