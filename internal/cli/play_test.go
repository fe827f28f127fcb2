package cli

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweep/internal/mines"
)

func newTestGame(t *testing.T, params mines.GameParams) *mines.GameSession {
	t.Helper()
	game, err := mines.NewGameSession(
		params, rand.New(rand.NewPCG(1, 2)),
	)
	require.NoError(t, err)
	return game
}

func TestPlayQuit(t *testing.T) {
	t.Parallel()

	game := newTestGame(t, mines.Easy)
	var out strings.Builder

	err := play(strings.NewReader("q\n"), &out, game)
	require.NoError(t, err)

	assert.Equal(t, mines.StatusNotStarted, game.Status)
	assert.Contains(t, out.String(), "not_started")
}

func TestPlayResign(t *testing.T) {
	t.Parallel()

	game := newTestGame(t, mines.Easy)
	var out strings.Builder

	err := play(strings.NewReader("r\n"), &out, game)
	require.NoError(t, err)

	assert.Equal(t, mines.StatusLost, game.Status)
	assert.Contains(t, out.String(), "lost")
}

func TestRunPlayerCommand(t *testing.T) {
	t.Parallel()

	t.Run("flag before first reveal", func(t *testing.T) {
		t.Parallel()

		game := newTestGame(t, mines.Easy)
		err := runPlayerCommand(game, "f 2 3")
		require.NoError(t, err)
		assert.Equal(t, 1, game.FlagsPlaced)
		assert.Equal(t, mines.StatusNotStarted, game.Status)
	})

	t.Run("open starts the game", func(t *testing.T) {
		t.Parallel()

		game := newTestGame(t, mines.Easy)
		err := runPlayerCommand(game, "o 5 5")
		require.NoError(t, err)
		assert.True(t, game.Status == mines.StatusPlaying ||
			game.Status == mines.StatusWon)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		game := newTestGame(t, mines.Easy)
		assert.Error(t, runPlayerCommand(game, "z 1 2"))
		assert.Error(t, runPlayerCommand(game, "o 1"))
		assert.Error(t, runPlayerCommand(game, "o one two"))
		assert.Error(t, runPlayerCommand(game, "o 100 100"))
	})
}

func TestPlayOptionsGameParams(t *testing.T) {
	t.Parallel()

	params, err := playOptions{preset: "medium"}.gameParams()
	require.NoError(t, err)
	assert.Equal(t, mines.Medium, params)

	params, err = playOptions{width: 5, height: 4, mineCount: 3}.gameParams()
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Width: 5, Height: 4, MineCount: 3}, params)

	_, err = playOptions{preset: "nope"}.gameParams()
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	_, err = playOptions{width: 2, height: 2, mineCount: 4}.gameParams()
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
}
