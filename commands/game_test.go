package commands

import (
	"testing"

	"github.com/osnoire/noiresh/core/game"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestigate(t *testing.T) {
	p, out := newTestProc(t, "investigate")

	assert.Equal(t, 0, Investigate(p))
	assert.Equal(t, 1, p.Game.Progress)
	assert.Contains(t, out.String(), "=== Crime Scene Report ===")

	exists, err := afero.Exists(p.CaseFiles, game.Clues[0].File)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInvestigate_readOnly(t *testing.T) {
	p, out := newTestProc(t, "investigate")
	p.CaseFiles = afero.NewReadOnlyFs(afero.NewMemMapFs())

	assert.Equal(t, 1, Investigate(p))
	assert.Equal(t, 0, p.Game.Progress)
	assert.Contains(t, out.String(), "investigate: ")
}

func TestExamine(t *testing.T) {
	p, out := newTestProc(t, "investigate")
	require.Equal(t, 0, Investigate(p))
	out.Reset()

	assert.Equal(t, 0, Examine(p.WithArgs([]string{"examine", game.Evidence[0].Name})))
	assert.Contains(t, out.String(), game.Clues[0].Contents)
	assert.Contains(t, out.String(), game.Evidence[0].Note)

	out.Reset()
	assert.Equal(t, 1, Examine(p.WithArgs([]string{"examine"})))
	assert.Equal(t, "examine: usage: examine ITEM\n", out.String())
}

func TestMoveInterviewWhereis(t *testing.T) {
	p, out := newTestProc(t, "move", "Velvet", "Nightclub")

	assert.Equal(t, 0, Move(p))
	assert.Equal(t, "Velvet Nightclub", p.Game.CurrentLocation())
	assert.Contains(t, out.String(), "Moved to Velvet Nightclub")

	out.Reset()
	assert.Equal(t, 0, Interview(p.WithArgs([]string{"interview", "Victoria"})))
	assert.True(t, p.Game.Interviewed[1])
	assert.Contains(t, out.String(), "responses:")

	out.Reset()
	assert.Equal(t, 0, Whereis(p.WithArgs([]string{"whereis", "Tony"})))
	assert.Contains(t, out.String(), "Tony 'Fingers' Moretti is at the")

	for _, cmd := range []CommandFunc{Move, Interview, Whereis} {
		out.Reset()
		assert.Equal(t, 1, cmd(p.WithArgs([]string{"x"})))
		assert.Contains(t, out.String(), "usage: ")
	}
}

func TestStatus(t *testing.T) {
	p, out := newTestProc(t, "status")

	assert.Equal(t, 0, Status(p))
	assert.Contains(t, out.String(), "Evidence found: 0/6")
}

func TestAccuse(t *testing.T) {
	cases := map[string]struct {
		name   string
		status int
	}{
		"culprit": {"Victoria", 0},
		"wrong":   {"Tony", 1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			quit := false
			p, _ := newTestProc(t, "accuse", tc.name)
			p.Quit = func() { quit = true }

			assert.Equal(t, tc.status, Accuse(p))
			assert.True(t, p.Game.Over)
			assert.True(t, quit)
		})
	}
}

func TestExit(t *testing.T) {
	quit := false
	p, out := newTestProc(t, "exit")
	p.Quit = func() { quit = true }

	assert.Equal(t, 0, Exit(p))
	assert.True(t, quit)
	assert.Equal(t, "\nCase abandoned. The streets remain unsafe...\n", out.String())
}

func TestHelp(t *testing.T) {
	p, out := newTestProc(t, "help")

	assert.Equal(t, 0, Help(p))
	for _, want := range []string{"COMMANDS:", "investigate", "forkbomb", "date", "REDIRECTION:", "command1 | command2"} {
		assert.Contains(t, out.String(), want)
	}
	assert.NotContains(t, out.String(), napName)
}
