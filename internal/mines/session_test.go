package mines

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinSession builds an unstarted session whose mines sit at known cells, so
// tests can script exact games.
func pinSession(t *testing.T, params GameParams, points ...Point) *GameSession {
	t.Helper()
	s, err := NewGameSession(params, nil)
	require.NoError(t, err)
	s.Board = pinMines(t, params, points...)
	return s
}

func TestNewGameSessionRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	_, err := NewGameSession(GameParams{Width: 3, Height: 3, MineCount: 9}, r)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestFirstRevealStartsGameAndIsNeverAMine(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		r := rand.New(rand.NewPCG(seed, seed+1))
		s, err := NewGameSession(Easy, r)
		require.NoError(t, err)

		assert.Equal(t, StatusNotStarted, s.Status)
		assert.False(t, s.Board.MinesPlaced)

		res, err := s.Reveal(Point{4, 4})
		require.NoError(t, err)

		assert.NotEqual(t, RevealedMine, res.Outcome)
		assert.Equal(t, StatusPlaying, s.Status)
		assert.True(t, s.Board.MinesPlaced)
		assert.NotEmpty(t, res.Opened)
	}
}

func TestFlagBeforeFirstRevealDoesNotPlaceMines(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewGameSession(Easy, r)
	require.NoError(t, err)

	res, err := s.ToggleFlag(Point{3, 3})
	require.NoError(t, err)

	assert.Equal(t, NowFlagged, res.Outcome)
	assert.Equal(t, 1, res.FlagsPlaced)
	assert.False(t, s.Board.MinesPlaced)
	assert.Equal(t, StatusNotStarted, s.Status)
}

func TestFlagToggleIsIdempotent(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	p := Point{0, 0}

	res, err := s.ToggleFlag(p)
	require.NoError(t, err)
	assert.Equal(t, NowFlagged, res.Outcome)
	assert.Equal(t, 1, s.FlagsPlaced)
	assert.Equal(t, 0, s.MinesRemaining())

	res, err = s.ToggleFlag(p)
	require.NoError(t, err)
	assert.Equal(t, NowHidden, res.Outcome)
	assert.Equal(t, 0, s.FlagsPlaced)
	assert.Equal(t, 1, s.MinesRemaining())
}

func TestFlagRejectedOnRevealedCell(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)

	res, err := s.ToggleFlag(Point{1, 1})
	require.NoError(t, err)
	assert.Equal(t, FlagRejected, res.Outcome)
	assert.Equal(t, 0, s.FlagsPlaced)
}

func TestWinOnLastSafeCell(t *testing.T) {
	t.Parallel()

	// 3x3 with a single corner mine. The three numbered cells around it
	// are opened one by one; the final zero-cell reveal cascades through
	// the remaining five safe cells and must win exactly then.
	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})

	for _, p := range []Point{{1, 1}, {2, 1}, {1, 2}} {
		res, err := s.Reveal(p)
		require.NoError(t, err)
		assert.Equal(t, RevealedSafe, res.Outcome)
		assert.Equal(t, StatusPlaying, s.Status, "won before the board was cleared")
		assert.Nil(t, s.ScoreRecord())
	}

	res, err := s.Reveal(Point{0, 0})
	require.NoError(t, err)

	assert.Equal(t, RevealedSafe, res.Outcome)
	assert.Equal(t, StatusWon, res.Status)
	assert.Len(t, res.Opened, 5)

	record := s.ScoreRecord()
	require.NotNil(t, record)
	assert.Equal(t, s.Board.GameParams, record.GameParams)
}

func TestLossRevealsAllMinesAndEndsGame(t *testing.T) {
	t.Parallel()

	s := pinSession(t,
		GameParams{Width: 3, Height: 3, MineCount: 2},
		Point{0, 0}, Point{2, 2},
	)

	res, err := s.Reveal(Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RevealedMine, res.Outcome)
	assert.Equal(t, StatusLost, s.Status)

	// both mines are exposed for display, not just the one that went off
	assert.Equal(t, Revealed, s.Board.CellAt(Point{0, 0}).State)
	assert.Equal(t, Revealed, s.Board.CellAt(Point{2, 2}).State)
	require.NotNil(t, s.Exploded)
	assert.Equal(t, Point{0, 0}, *s.Exploded)

	// terminal state rejects every further action
	_, err = s.Reveal(Point{1, 1})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.ToggleFlag(Point{1, 1})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Chord(Point{1, 1})
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, s.Forfeit(), ErrGameOver)

	assert.Nil(t, s.ScoreRecord())
}

func TestOutOfBoundsRejected(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := s.Reveal(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "reveal at %s", p)
		_, err = s.ToggleFlag(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "flag at %s", p)
	}
	// nothing changed
	assert.Equal(t, StatusNotStarted, s.Status)
}

func TestTickAccumulatesOnlyWhilePlaying(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})

	s.Tick(time.Second)
	assert.Zero(t, s.Elapsed, "clock ran before the first reveal")

	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)
	s.Tick(2 * time.Second)
	s.Tick(500 * time.Millisecond)
	s.Tick(-time.Second)
	assert.Equal(t, 2500*time.Millisecond, s.Elapsed)

	require.NoError(t, s.Forfeit())
	s.Tick(time.Second)
	assert.Equal(t, 2500*time.Millisecond, s.Elapsed, "clock ran after game over")
}

func TestForfeitExposesField(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)

	require.NoError(t, s.Forfeit())

	assert.Equal(t, StatusLost, s.Status)
	assert.Equal(t, Revealed, s.Board.CellAt(Point{2, 2}).State)
	assert.Nil(t, s.Exploded)
}

func TestChordThroughSession(t *testing.T) {
	t.Parallel()

	s := pinSession(t,
		GameParams{Width: 3, Height: 3, MineCount: 2},
		Point{0, 0}, Point{2, 0},
	)
	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)
	_, err = s.ToggleFlag(Point{0, 0})
	require.NoError(t, err)
	_, err = s.ToggleFlag(Point{2, 0})
	require.NoError(t, err)

	res, err := s.Chord(Point{1, 1})
	require.NoError(t, err)

	assert.Equal(t, RevealedSafe, res.Outcome)
	assert.Equal(t, StatusWon, s.Status)
}

func TestScoreRecordImproves(t *testing.T) {
	t.Parallel()

	record := ScoreRecord{GameParams: Easy, Playtime: 40 * time.Second}

	assert.True(t, record.Improves(nil))

	slower := 50 * time.Second
	assert.True(t, record.Improves(&slower))

	faster := 30 * time.Second
	assert.False(t, record.Improves(&faster))

	equal := 40 * time.Second
	assert.False(t, record.Improves(&equal))
}

func TestSessionGobRoundTrip(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)
	_, err = s.ToggleFlag(Point{2, 2})
	require.NoError(t, err)
	s.Tick(3 * time.Second)

	buf, err := s.Bytes()
	require.NoError(t, err)

	restored, err := DecodeGameSession(buf, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.Equal(t, s.Status, restored.Status)
	assert.Equal(t, s.Elapsed, restored.Elapsed)
	assert.Equal(t, s.FlagsPlaced, restored.FlagsPlaced)
	assert.Equal(t, s.Board.Cells, restored.Board.Cells)
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}
