package core

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/osnoire/noiresh/core/config"
)

// ApplyColor turns colored output on or off for the process. In auto mode
// color is used only when out is a terminal.
func ApplyColor(mode string, out *os.File) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("TERM") == "dumb" || !IsTerminal(out)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
