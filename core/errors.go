package core

import (
	"errors"
	"fmt"
	"io/fs"
)

// CommandNotFoundError is returned when nothing is registered under a name.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: Command not recognized. Type 'help' for options.", e.Name)
}

// IOError is returned when a descriptor can't be created.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	reason := e.Err
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		reason = pathErr.Err
	}

	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, reason)
	}
	return fmt.Sprintf("%s failed: %s: %v", e.Op, e.Path, reason)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ProcessError is returned when a child process can't be created.
type ProcessError struct {
	// Stage is the role of the child: standalone, redirect, left or right.
	Stage   string
	Command string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("fork failed: %s: %v", e.Command, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
