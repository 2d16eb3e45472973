package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osnoire/noiresh/core/proc"
)

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
}

// unescape expands backslash escapes the way echo -e does. stop is true
// when \c asked for the rest of the output to be suppressed.
func unescape(s string) (out string, stop bool) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}

		next := s[i+1]
		if b, ok := simpleEscapes[next]; ok {
			sb.WriteByte(b)
			i++
			continue
		}

		switch next {
		case 'c':
			return sb.String(), true
		case '0':
			digits := leadingDigits(s[i+2:], 3, "01234567")
			v, _ := strconv.ParseUint("0"+digits, 8, 16)
			sb.WriteByte(byte(v))
			i += 1 + len(digits)
		case 'x':
			digits := leadingDigits(s[i+2:], 2, "0123456789abcdefABCDEF")
			if digits == "" {
				sb.WriteByte('\\')
				continue
			}
			v, _ := strconv.ParseUint(digits, 16, 8)
			sb.WriteByte(byte(v))
			i += 1 + len(digits)
		default:
			sb.WriteByte('\\')
		}
	}
	return sb.String(), false
}

func leadingDigits(s string, max int, digits string) string {
	n := 0
	for n < len(s) && n < max && strings.IndexByte(digits, s[n]) >= 0 {
		n++
	}
	return s[:n]
}

// Echo writes its arguments separated by spaces.
func Echo(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "echo [-en] [ARG] ...",
		Short: "Display a line of text.",
	}

	opt := cmd.Flags()
	escaped := opt.Bool('e', "interpret backslash escapes")
	noNewline := opt.Bool('n', "do not output the trailing newline")

	return cmd.Run(p, func() int {
		line := strings.Join(opt.Args(), " ")
		newline := !*noNewline
		if *escaped {
			var stop bool
			line, stop = unescape(line)
			newline = newline && !stop
		}

		fmt.Fprint(p.Stdout, line)
		if newline {
			fmt.Fprintln(p.Stdout)
		}
		return 0
	})
}

var _ CommandFunc = Echo

func init() {
	addSubprocessCmd("echo", "Display a line of text", Echo)
}
