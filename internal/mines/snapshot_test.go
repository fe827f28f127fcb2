package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHidesMinesWhilePlaying(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	_, err := s.Reveal(Point{1, 1})
	require.NoError(t, err)
	_, err = s.ToggleFlag(Point{0, 0})
	require.NoError(t, err)

	grid := s.Snapshot()

	assert.Equal(t, Flag, grid[0])
	assert.Equal(t, CellInfo(1), grid[4])
	assert.Equal(t, Unknown, grid[8], "mine leaked into a live snapshot")
}

func TestSnapshotAfterLoss(t *testing.T) {
	t.Parallel()

	// mines at 0:0 and 2:2, a right flag on 0:0 and a wrong one on 1:0
	s := pinSession(t,
		GameParams{Width: 3, Height: 3, MineCount: 2},
		Point{0, 0}, Point{2, 2},
	)
	_, err := s.ToggleFlag(Point{0, 0})
	require.NoError(t, err)
	_, err = s.ToggleFlag(Point{1, 0})
	require.NoError(t, err)

	res, err := s.Reveal(Point{2, 2})
	require.NoError(t, err)
	require.Equal(t, RevealedMine, res.Outcome)

	grid := s.Snapshot()

	assert.Equal(t, CorrectFlag, grid[0])
	assert.Equal(t, WrongFlag, grid[1])
	assert.Equal(t, ExplodedMine, grid[8])
}

func TestSnapshotAfterWin(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 3, Height: 3, MineCount: 1}, Point{2, 2})
	for _, p := range []Point{{1, 1}, {2, 1}, {1, 2}, {0, 0}} {
		_, err := s.Reveal(p)
		require.NoError(t, err)
	}
	require.Equal(t, StatusWon, s.Status)

	grid := s.Snapshot()

	// the never-flagged mine is pointed out on the cleared board
	assert.Equal(t, UnflaggedMine, grid[8])
	assert.Equal(t, CellInfo(0), grid[0])
}

func TestGridInfoToString(t *testing.T) {
	t.Parallel()

	s := pinSession(t, GameParams{Width: 2, Height: 2, MineCount: 1}, Point{1, 1})
	_, err := s.ToggleFlag(Point{1, 1})
	require.NoError(t, err)
	_, err = s.Reveal(Point{0, 0})
	require.NoError(t, err)

	rendered := s.Snapshot().ToString(2)
	assert.Equal(t, "1   \n  * \n", rendered)
}
