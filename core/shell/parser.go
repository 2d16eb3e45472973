// Package shell turns an input line into argument vectors.
//
// The grammar is a small subset of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html:
//
// 1. The line is broken into words on blanks. There is no quoting, escaping or
// expansion, a literal blank can't be part of a word.
//
// 2. At most one pipe operator splits the words into two simple commands.
//
// 3. At most one output redirection operator names the file standard output is
// written to. The operator and its operand are removed from the command's
// arguments.
package shell

import (
	"strings"
)

const (
	// PipeOperator separates the two stages of a pipeline.
	PipeOperator = "|"
	// RedirectOperator sends standard output to the file named by the next word.
	RedirectOperator = ">"

	// DefaultMaxArgs is the argument vector capacity, one slot is reserved so a
	// line keeps at most DefaultMaxArgs-1 words.
	DefaultMaxArgs = 64
)

// Tokenizer splits lines into argument vectors.
type Tokenizer struct {
	// MaxArgs is the vector capacity, zero means DefaultMaxArgs.
	MaxArgs int
}

func (t Tokenizer) limit() int {
	if t.MaxArgs < 2 {
		return DefaultMaxArgs - 1
	}
	return t.MaxArgs - 1
}

// Split breaks line into words on runs of spaces, tabs and newlines.
// Words past the limit are dropped and their count is returned.
func (t Tokenizer) Split(line string) (argv []string, dropped int) {
	fields := strings.FieldsFunc(line, isBlank)
	if len(fields) == 0 {
		return nil, 0
	}
	if max := t.limit(); len(fields) > max {
		return fields[:max], len(fields) - max
	}
	return fields, 0
}

func isBlank(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Tokenize splits line with the default limit.
func Tokenize(line string) []string {
	argv, _ := Tokenizer{}.Split(line)
	return argv
}

// PipelineRequest is a two stage pipeline, Left's standard output feeds
// Right's standard input.
type PipelineRequest struct {
	Left  []string
	Right []string
}

// SplitPipeline looks for the first pipe operator in argv.
//
// ok is false when there is no operator. Only the first operator is honored:
// a second one stays in Right as a literal word.
func SplitPipeline(argv []string) (req PipelineRequest, ok bool, err error) {
	idx := indexOf(argv, PipeOperator)
	if idx < 0 {
		return PipelineRequest{}, false, nil
	}

	left, right := argv[:idx], argv[idx+1:]
	if len(left) == 0 || len(right) == 0 {
		return PipelineRequest{}, true, &SyntaxError{Msg: "Invalid pipe syntax"}
	}

	return PipelineRequest{
		Left:  append([]string(nil), left...),
		Right: append([]string(nil), right...),
	}, true, nil
}

// RedirectionRequest sends Command's standard output to Target.
type RedirectionRequest struct {
	Command []string
	Target  string
}

// SplitRedirect looks for the first redirect operator in argv.
//
// ok is false when there is no operator. Words after the target are
// discarded.
func SplitRedirect(argv []string) (req RedirectionRequest, ok bool, err error) {
	idx := indexOf(argv, RedirectOperator)
	if idx < 0 {
		return RedirectionRequest{}, false, nil
	}

	if idx == 0 || idx+1 >= len(argv) {
		return RedirectionRequest{}, true, &SyntaxError{Msg: "Invalid redirection syntax"}
	}

	return RedirectionRequest{
		Command: append([]string(nil), argv[:idx]...),
		Target:  argv[idx+1],
	}, true, nil
}

// HasOperator reports whether argv contains op as a word.
func HasOperator(argv []string, op string) bool {
	return indexOf(argv, op) >= 0
}

func indexOf(argv []string, word string) int {
	for i, arg := range argv {
		if arg == word {
			return i
		}
	}
	return -1
}
