package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/osnoire/noiresh/core"
	"github.com/osnoire/noiresh/core/config"
	"github.com/osnoire/noiresh/core/game"
	"github.com/osnoire/noiresh/core/proc"
	"github.com/osnoire/noiresh/core/shell"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	color.NoColor = true
}

func ExampleBytesToHuman() {

	// < 1k is presented directly
	fmt.Println(BytesToHuman(512))

	// Multiples > 10 are shown without decimal.
	fmt.Println(BytesToHuman(23 * 10e8))

	// Multiples < 10 are shown with decimal.
	fmt.Println(BytesToHuman(5 * 1024))

	// Output: 512
	// 23G
	// 5.1K
}

func TestAllCommands(t *testing.T) {
	for _, cmdEntry := range ListBuiltinCommands() {
		t.Run(cmdEntry.Name, func(t *testing.T) {
			if cmdEntry.Main == nil {
				t.Fatal("nil command", cmdEntry.Name)
			}
			if !cmdEntry.Hidden && cmdEntry.Short == "" {
				t.Error("missing description", cmdEntry.Name)
			}
		})
	}
}

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()
	cfg, err := config.Default(t.TempDir())
	require.NoError(t, err)
	cfg.CaseDir = filepath.Join(t.TempDir(), "case_files")
	return cfg
}

func TestNewRegistry(t *testing.T) {
	cfg := testConfig(t)
	reg := NewRegistry(cfg)

	kinds := map[string]proc.Kind{
		"investigate": proc.InProcess,
		"cd":          proc.InProcess,
		"forkbomb":    proc.InProcess,
		"ls":          proc.Subprocess,
		"wc":          proc.Subprocess,
		"_nap":        proc.Subprocess,
		"date":        proc.External,
		"du":          proc.External,
	}
	for name, kind := range kinds {
		entry, ok := reg.Lookup(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, kind, entry.Kind, name)
		}
	}

	du, _ := reg.Lookup("du")
	assert.Equal(t, []string{"du", "-sh", cfg.CaseDir}, du.Argv)

	for _, entry := range reg.List() {
		assert.NotEqual(t, napName, entry.Name)
	}

	assert.Panics(t, func() {
		reg.Register(proc.Entry{Name: "late", Kind: proc.InProcess, Func: Exit})
	})
}

func TestNewRegistry_externalOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.External["ls"] = []string{"ls", "-1", config.CaseDirPlaceholder}

	entry, ok := NewRegistry(cfg).Lookup("ls")
	require.True(t, ok)
	assert.Equal(t, proc.External, entry.Kind)
	assert.Equal(t, []string{"ls", "-1", cfg.CaseDir}, entry.Argv)
}

// newTestProc creates an environment that writes to a buffer and keeps case
// files in memory.
func newTestProc(t *testing.T, args ...string) (*proc.Proc, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &proc.Proc{
		Args:      args,
		Stdin:     strings.NewReader(""),
		Stdout:    out,
		Stderr:    out,
		Game:      game.NewState(),
		Config:    testConfig(t),
		CaseFiles: afero.NewMemMapFs(),
		Log:       zaptest.NewLogger(t),
	}, out
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

func (gts goldenTestSuite) Run(t *testing.T, cmd CommandFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		p, out := newTestProc(t, tc.Args...)
		cmd(p)

		g.Assert(t, tn, out.Bytes())
	}
}

// interpreter runs lines through an orchestrator with the real command
// table, output lands in files so children write to it directly.
type interpreter struct {
	o      *core.Orchestrator
	env    *proc.Proc
	stdout *os.File
	stderr *os.File
}

func newInterpreter(t *testing.T, cfg *config.Configuration) *interpreter {
	t.Helper()
	dir := t.TempDir()

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

	return &interpreter{
		o: &core.Orchestrator{
			Registry: NewRegistry(cfg),
			Self:     testSelf(),
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   stderr,
			Log:      zaptest.NewLogger(t),
		},
		env: &proc.Proc{
			Game:      game.NewState(),
			Config:    cfg,
			CaseFiles: caseFiles,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (i *interpreter) run(t *testing.T, line string) {
	t.Helper()
	require.NoError(t, i.o.Execute(i.env, shell.Tokenize(line)))
}

func (i *interpreter) output(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(i.stdout.Name())
	require.NoError(t, err)
	return string(out)
}

func (i *interpreter) errors(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(i.stderr.Name())
	require.NoError(t, err)
	return string(out)
}
