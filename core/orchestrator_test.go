package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/logger"
	"github.com/osnoire/noiresh/core/proc"
	"github.com/osnoire/noiresh/core/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type harness struct {
	dir    string
	o      *Orchestrator
	env    *proc.Proc
	stdout *os.File
	stderr *os.File
	events *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	cfg, err := config.Default(dir)
	require.NoError(t, err)
	cfg.CaseDir = filepath.Join(dir, "case_files")
	caseFiles, err := cfg.CaseFiles()
	require.NoError(t, err)

	stdin, err := os.Open(os.DevNull)
	require.NoError(t, err)
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	t.Cleanup(func() {
		stdin.Close()
		stdout.Close()
		stderr.Close()
	})

	events := &bytes.Buffer{}
	return &harness{
		dir: dir,
		o: &Orchestrator{
			Registry: testRegistry(),
			Self:     testSelf(),
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   stderr,
			Log:      zaptest.NewLogger(t),
			Events:   logger.NewJsonLinesLogRecorder(events).NewSession(),
		},
		env: &proc.Proc{
			Game:      game.NewState(),
			Config:    cfg,
			CaseFiles: caseFiles,
		},
		stdout: stdout,
		stderr: stderr,
		events: events,
	}
}

func (h *harness) run(line string) error {
	return h.o.Execute(h.env, shell.Tokenize(line))
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	out, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(out)
}

func (h *harness) output(t *testing.T) string {
	return readFile(t, h.stdout.Name())
}

// countEvents tallies recorded events by type.
func (h *harness) countEvents(t *testing.T) map[string]int {
	t.Helper()
	out := make(map[string]int)
	require.NoError(t, logger.ReadJSONLinesLog(bytes.NewReader(h.events.Bytes()), func(le *logger.LogEntry) {
		out[logger.EntryType(le)]++
	}))
	return out
}

func (h *harness) exitStatuses(t *testing.T) []int {
	t.Helper()
	var out []int
	require.NoError(t, logger.ReadJSONLinesLog(bytes.NewReader(h.events.Bytes()), func(le *logger.LogEntry) {
		if logger.EntryType(le) == logger.TypeExit {
			out = append(out, int(le.GetFields()["status"].GetNumberValue()))
		}
	}))
	return out
}

func TestExecute_empty(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.o.Execute(h.env, nil))
	assert.Empty(t, h.events.String())
}

func TestDispatch_subprocess(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("echo a  b"))
	assert.Equal(t, "a b\n", h.output(t))

	events := h.countEvents(t)
	assert.Equal(t, 1, events[logger.TypeSpawn])
	assert.Equal(t, 1, events[logger.TypeExit])
}

func TestDispatch_nonZeroExit(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.run("fail"))
	assert.Equal(t, []int{3}, h.exitStatuses(t))
}

func TestDispatch_inProcessChangesState(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("solve"))
	require.NoError(t, h.run("solve"))
	assert.Equal(t, 2, h.env.Game.Progress)
	assert.Equal(t, "1\n2\n", h.output(t))
	assert.Zero(t, h.countEvents(t)[logger.TypeSpawn])
}

func TestDispatch_external(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("hello world"))
	assert.Equal(t, "hi world\n", h.output(t))
}

func TestDispatch_missingProgram(t *testing.T) {
	h := newHarness(t)
	err := h.run("ghost")

	var procErr *ProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, StageStandalone, procErr.Stage)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), "fork failed")
}

func TestDispatch_spawner(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("twice"))
	assert.Equal(t, "x\nx\n", h.output(t))
}

func TestCommandNotFound(t *testing.T) {
	cases := []string{
		"fly",
		"fly > out.txt",
		"fly | count",
		"echo hi | fly",
	}

	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(line)

			var notFound *CommandNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, "fly", notFound.Name)
			assert.Contains(t, err.Error(), "Command not recognized")

			assert.NoFileExists(t, h.path("out.txt"))
			assert.Zero(t, h.countEvents(t)[logger.TypeSpawn])
		})
	}
}

func TestRedirect(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("echo hello > "+target))
	assert.Equal(t, "hello\n", readFile(t, target))
	assert.Empty(t, h.output(t))

	info, err := os.Stat(target)
	require.NoError(t, err)
	// The umask may only remove bits.
	assert.Zero(t, info.Mode().Perm()&^0644)
}

func TestRedirect_truncates(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")
	require.NoError(t, os.WriteFile(target, []byte("a much longer previous report\n"), 0644))

	require.NoError(t, h.run("echo hello > "+target))
	assert.Equal(t, "hello\n", readFile(t, target))
}

func TestRedirect_extraWordsIgnored(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("echo hello > "+target+" "+h.path("other.txt")))
	assert.Equal(t, "hello\n", readFile(t, target))
	assert.NoFileExists(t, h.path("other.txt"))
}

func TestRedirect_inProcessRunsOnSnapshot(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("solve"))
	require.NoError(t, h.run("solve > "+target))

	assert.Equal(t, "2\n", readFile(t, target))
	assert.Equal(t, 1, h.env.Game.Progress)
}

func TestRedirect_external(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("hello there > "+target))
	assert.Equal(t, "hi there\n", readFile(t, target))
}

func TestRedirect_openFails(t *testing.T) {
	h := newHarness(t)
	target := h.path("missing/out.txt")

	err := h.run("echo hello > " + target)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "open failed: "+target+": no such file or directory", err.Error())
	assert.Zero(t, h.countEvents(t)[logger.TypeSpawn])
}

func TestSyntaxErrors(t *testing.T) {
	cases := map[string]string{
		"missing target": "echo >",
		"leading arrow":  "> out.txt",
		"empty right":    "echo hi |",
		"empty left":     "| count",
		"right redirect": "seq 3 | count >",
		"left redirect":  "seq 3 > | count",
	}

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			h := newHarness(t)
			before, err := os.ReadDir(h.dir)
			require.NoError(t, err)

			err = h.run(line)
			assert.True(t, shell.IsSyntaxError(err), "got %v", err)

			after, err := os.ReadDir(h.dir)
			require.NoError(t, err)
			assert.Equal(t, len(before), len(after))

			events := h.countEvents(t)
			assert.Zero(t, events[logger.TypeSpawn])
			assert.Equal(t, 1, events[logger.TypeSyntaxError])
		})
	}
}

func TestPipeline_slowStagesAreReaped(t *testing.T) {
	cases := map[string]string{
		"slow producer": "slowseq 5 | count",
		"slow consumer": "seq 5 | slowcount",
		"both slow":     "slowseq 5 | slowcount",
	}

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			h := newHarness(t)

			start := time.Now()
			require.NoError(t, h.run(line))
			assert.GreaterOrEqual(t, time.Since(start), slowStageDelay)

			assert.Equal(t, "5\n", h.output(t))
			assert.Equal(t, []int{0, 0}, h.exitStatuses(t))

			events := h.countEvents(t)
			assert.Equal(t, 2, events[logger.TypeSpawn])
			assert.Equal(t, 2, events[logger.TypeExit])
		})
	}
}

func TestPipeline_count(t *testing.T) {
	for _, n := range []int{0, 1, 100} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run("seq "+strconv.Itoa(n)+" | count"))
			assert.Equal(t, strconv.Itoa(n)+"\n", h.output(t))

			events := h.countEvents(t)
			assert.Equal(t, 2, events[logger.TypeSpawn])
			assert.Equal(t, 2, events[logger.TypeExit])
		})
	}
}

func TestPipeline_external(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("hello a b | count"))
	assert.Equal(t, "1\n", h.output(t))
}

func TestPipeline_rightRedirect(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("seq 3 | count > "+target))
	assert.Equal(t, "3\n", readFile(t, target))
	assert.Empty(t, h.output(t))
}

func TestPipeline_leftRedirect(t *testing.T) {
	h := newHarness(t)
	target := h.path("out.txt")

	require.NoError(t, h.run("seq 3 > "+target+" | count"))
	assert.Equal(t, "1\n2\n3\n", readFile(t, target))
	assert.Equal(t, "0\n", h.output(t))
}

func TestPipeline_rightStartFails(t *testing.T) {
	h := newHarness(t)
	err := h.run("seq 5 | ghost")

	var procErr *ProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, StageRight, procErr.Stage)

	// The left child was still reaped.
	events := h.countEvents(t)
	assert.Equal(t, 1, events[logger.TypeSpawn])
	assert.Equal(t, 1, events[logger.TypeExit])
}

func TestNoDescriptorLeak(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("no /proc/self/fd")
	}
	h := newHarness(t)
	target := h.path("out.txt")

	openFds := func() int {
		entries, err := os.ReadDir("/proc/self/fd")
		require.NoError(t, err)
		return len(entries)
	}

	// Warm up anything opened lazily.
	require.NoError(t, h.run("seq 1 | count"))
	before := openFds()

	for i := 0; i < 20; i++ {
		require.NoError(t, h.run("seq 10 | count"))
		require.NoError(t, h.run("echo leak > "+target))
		assert.Error(t, h.run("seq 1 | ghost"))
		assert.Error(t, h.run("echo x > "+h.path("missing/out.txt")))
	}

	assert.Equal(t, before, openFds())
}

func TestStageContext(t *testing.T) {
	cfg, err := config.Default(t.TempDir())
	require.NoError(t, err)
	state := game.NewState()
	state.Progress = 3
	state.Interviewed[2] = true

	in := &StageContext{Config: cfg, Game: state}
	encoded, err := in.Encode()
	require.NoError(t, err)

	out, err := DecodeStageContext(encoded)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, cmpopts.IgnoreUnexported(config.Configuration{})); diff != "" {
		t.Errorf("round trip (-want, +got):\n%s", diff)
	}
}

func TestDecodeStageContext_invalid(t *testing.T) {
	_, err := DecodeStageContext("")
	assert.Error(t, err)

	_, err = DecodeStageContext("game: {}\n")
	assert.Error(t, err)

	_, err = DecodeStageContext("bogus: 1\n")
	assert.Error(t, err)
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, StatusNotFound, exitStatus(&CommandNotFoundError{Name: "x"}))
	assert.Equal(t, StatusNotFound, exitStatus(&ProcessError{Err: exec.ErrNotFound}))
	assert.Equal(t, 1, exitStatus(errors.New("boom")))
}
