package commands

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNap(t *testing.T) {
	p, out := newTestProc(t, napName, "-x", "3", "-b", "pid {pid}", "-a", "done")

	assert.Equal(t, 3, Nap(p))
	assert.Equal(t, fmt.Sprintf("pid %d\ndone\n", os.Getpid()), out.String())

	out.Reset()
	assert.Equal(t, 2, Nap(p.WithArgs([]string{napName, "-s", "soon"})))
	assert.Contains(t, out.String(), napName+": ")
}

func TestNapCommand_noSpawner(t *testing.T) {
	p, _ := newTestProc(t, "forkbomb")

	_, err := napCommand(p)
	assert.Error(t, err)
}

func TestForkbomb(t *testing.T) {
	cfg := testConfig(t)
	cfg.Diagnostics.ForkbombChildren = 4
	cfg.Diagnostics.ChildLifetimeMs = 10
	interp := newInterpreter(t, cfg)

	interp.run(t, "forkbomb")
	out := interp.output(t)

	childLine := regexp.MustCompile(`Fork bomb child (\d+) created \(PID: (\d+)\)`)
	matches := childLine.FindAllStringSubmatch(out, -1)
	require.Len(t, matches, 4, out)

	children := make(map[string]bool)
	pids := make(map[string]bool)
	for _, m := range matches {
		children[m[1]] = true
		pids[m[2]] = true
	}
	assert.Equal(t, map[string]bool{"1": true, "2": true, "3": true, "4": true}, children)
	assert.Len(t, pids, 4)

	// Every child was waited before the summary.
	done := strings.Index(out, "Fork bomb test complete. System stable.")
	require.NotEqual(t, -1, done)
	for _, m := range matches {
		assert.Less(t, strings.Index(out, m[0]), done)
	}
	assert.Empty(t, interp.errors(t))
}

func TestSpawn(t *testing.T) {
	interp := newInterpreter(t, testConfig(t))

	interp.run(t, "spawn -n 2 -s 1ms")
	out := interp.output(t)

	assert.Contains(t, out, "Started child 1 (PID: ")
	assert.Contains(t, out, "Started child 2 (PID: ")
	assert.Regexp(t, `Reaped child 1 \(PID: \d+\), exit status 0`, out)
	assert.Regexp(t, `Reaped child 2 \(PID: \d+\), exit status 0`, out)
}

func TestSpawn_invalid(t *testing.T) {
	cases := map[string]string{
		"zero":     "spawn -n 0",
		"too-many": "spawn -n " + strconv.Itoa(maxChildren+1),
		"sleep":    "spawn -s forever",
	}

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			interp := newInterpreter(t, testConfig(t))
			interp.run(t, line)

			assert.True(t, strings.HasPrefix(interp.errors(t), "spawn: "), interp.errors(t))
			assert.NotContains(t, interp.output(t), "Started child")
		})
	}
}

func TestWaitDemo(t *testing.T) {
	cfg := testConfig(t)
	cfg.Diagnostics.ChildLifetimeMs = 10
	interp := newInterpreter(t, cfg)

	interp.run(t, "waitdemo")

	assert.Equal(t, strings.Join([]string{
		"",
		"Demonstrating waitpid() system call:",
		"Child process working...",
		"Child process done",
		"Child exited with status: 42",
		"",
		"",
	}, "\n"), interp.output(t))
}

func TestExecDemo(t *testing.T) {
	if _, err := exec.LookPath("ls"); err != nil {
		t.Skip("ls isn't installed")
	}

	for _, name := range []string{"execdemo", "execvpdemo"} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			interp := newInterpreter(t, cfg)
			require.NoError(t, os.WriteFile(cfg.CaseDir+"/ledger.txt", []byte("ledger"), 0644))

			interp.run(t, name)
			out := interp.output(t)

			assert.Contains(t, out, "Child will now execute 'ls")
			assert.Contains(t, out, "ledger.txt")
			assert.True(t, strings.HasSuffix(out, "Parent process continuing\n\n"), out)
		})
	}
}

func TestPipelineWithBuiltins(t *testing.T) {
	interp := newInterpreter(t, testConfig(t))

	interp.run(t, "seq 5 | wc -l")
	interp.run(t, "echo Room #47 | rev")

	assert.Equal(t, "5\n74# mooR\n", interp.output(t))
}

func TestRedirectBuiltin(t *testing.T) {
	cfg := testConfig(t)
	interp := newInterpreter(t, cfg)

	interp.run(t, "investigate")
	interp.run(t, "status > "+cfg.CaseDir+"/status.txt")
	interp.run(t, "cat status.txt | wc -l")

	assert.Equal(t, 1, interp.env.Game.Progress)
	out, err := os.ReadFile(cfg.CaseDir + "/status.txt")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Evidence found: 1/6")
	assert.Contains(t, interp.output(t), "=== Crime Scene Report ===")
}
