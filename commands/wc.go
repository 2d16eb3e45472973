package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/osnoire/noiresh/core/proc"
)

// wcTally holds the counts for one input.
type wcTally struct {
	name  string
	lines int
	words int
	bytes int
	chars int
}

func (t *wcTally) add(other wcTally) {
	t.lines += other.lines
	t.words += other.words
	t.bytes += other.bytes
	t.chars += other.chars
}

// tallyReader counts r rune by rune, invalid UTF-8 bytes count as one
// character each.
func tallyReader(name string, r io.Reader) (wcTally, error) {
	tally := wcTally{name: name}
	br := bufio.NewReader(r)
	inWord := false
	for {
		c, size, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return tally, nil
		}
		if err != nil {
			return tally, err
		}

		tally.bytes += size
		tally.chars++
		if c == '\n' {
			tally.lines++
		}

		switch space := unicode.IsSpace(c); {
		case space:
			inWord = false
		case !inWord:
			inWord = true
			tally.words++
		}
	}
}

// Wc counts standard input or case files.
// https://pubs.opengroup.org/onlinepubs/009695399/utilities/wc.html
func Wc(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "wc [-c|-m] [-lw] [FILE...]",
		Short: "Write the number of newlines, words, and bytes in each input.",
	}

	opts := cmd.Flags()
	lines := opts.Bool('l', "write the number of newlines")
	words := opts.Bool('w', "write the number of words")
	bytes := opts.Bool('c', "write the number of bytes")
	chars := opts.Bool('m', "write the number of characters")

	return cmd.Run(p, func() int {
		if *bytes && *chars {
			fmt.Fprintln(p.Stderr, "wc: -c and -m are mutually exclusive")
			return 1
		}
		if !*lines && !*words && !*bytes && !*chars {
			*lines, *words, *bytes = true, true, true
		}

		format := func(t wcTally) string {
			var cols []string
			for _, col := range []struct {
				on    bool
				count int
			}{
				{*lines, t.lines},
				{*words, t.words},
				{*bytes, t.bytes},
				{*chars, t.chars},
			} {
				if col.on {
					cols = append(cols, fmt.Sprint(col.count))
				}
			}
			if t.name != "" {
				cols = append(cols, t.name)
			}
			return strings.Join(cols, " ")
		}

		files := opts.Args()
		if len(files) == 0 {
			tally, err := tallyReader("", p.Stdin)
			if err != nil {
				fmt.Fprintf(p.Stderr, "wc: %v\n", err)
				return 1
			}
			fmt.Fprintln(p.Stdout, format(tally))
			return 0
		}

		exitCode := 0
		total := wcTally{name: "total"}
		for _, name := range files {
			tally, err := tallyFile(p, name)
			if err != nil {
				fmt.Fprintf(p.Stderr, "wc: %v\n", err)
				exitCode = 1
				continue
			}
			total.add(tally)
			fmt.Fprintln(p.Stdout, format(tally))
		}
		if len(files) > 1 {
			fmt.Fprintln(p.Stdout, format(total))
		}
		return exitCode
	})
}

func tallyFile(p *proc.Proc, name string) (wcTally, error) {
	fd, err := p.CaseFiles.Open(name)
	if err != nil {
		return wcTally{}, err
	}
	defer fd.Close()
	return tallyReader(name, fd)
}

var _ CommandFunc = Wc

func init() {
	addSubprocessCmd("wc", "Count lines, words and bytes", Wc)
}
