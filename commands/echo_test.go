package commands

import (
	"testing"
)

func TestEcho(t *testing.T) {
	cases := goldenTestSuite{
		"hello":      {[]string{"echo", "hello", "world"}},
		"no-newline": {[]string{"echo", "-n", "hi"}},
		"escapes":    {[]string{"echo", "-e", `a\tb`}},
		"stop":       {[]string{"echo", "-e", `case\cclosed`}},
	}

	cases.Run(t, Echo)
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`a\nb`:   "a\nb",
		`\\`:     `\`,
		`\x41`:   "A",
		`\0101`:  "A",
		`plain`:  "plain",
		`tab\tx`: "tab\tx",
		`\q`:     `\q`,
		`\xZ`:    `\xZ`,
		`end\`:   `end\`,
	}

	for in, want := range cases {
		got, stop := unescape(in)
		if got != want || stop {
			t.Errorf("unescape(%q) = %q, %v, want %q", in, got, stop, want)
		}
	}

	got, stop := unescape(`a\cb`)
	if got != "a" || !stop {
		t.Errorf("unescape(`a\\cb`) = %q, %v, want \"a\", true", got, stop)
	}
}
