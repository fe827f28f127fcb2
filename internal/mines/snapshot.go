package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellInfo is a single cell as visible to the player.
type CellInfo int8

const (
	Unknown CellInfo = -2
	Flag    CellInfo = -1
	/*
	 * 0 to 8 mean the cell is open and carries its surrounding mine
	 * count. The remaining values only appear once the game is over,
	 * when the full layout is exposed.
	 */
	CorrectFlag   CellInfo = 64
	ExplodedMine  CellInfo = 65
	WrongFlag     CellInfo = 66
	UnflaggedMine CellInfo = 67
)

func (s CellInfo) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flag || s == CorrectFlag:
		return "*"
	case s == WrongFlag:
		return "x"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// GridInfo is the read-only view of a whole board, row-major.
type GridInfo []CellInfo

func (g GridInfo) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// Snapshot renders the player-visible view of the board. While the game is
// running mines stay hidden behind their cell state; once it ends the full
// layout is exposed, including which flags were right, which were wrong, and
// which mine went off.
func (s *GameSession) Snapshot() GridInfo {
	grid := make(GridInfo, len(s.Board.Cells))
	over := s.Status.Over()
	for i := range s.Board.Cells {
		c := &s.Board.Cells[i]
		switch {
		case c.State == Flagged:
			if !over {
				grid[i] = Flag
			} else if c.Mine {
				grid[i] = CorrectFlag
			} else {
				grid[i] = WrongFlag
			}
		case c.Mine && c.State == Revealed:
			p := Point{X: i % s.Board.Width, Y: i / s.Board.Width}
			if s.Exploded != nil && *s.Exploded == p {
				grid[i] = ExplodedMine
			} else {
				grid[i] = UnflaggedMine
			}
		case c.Mine:
			// A hidden mine is only ever shown on a won game, where the
			// player cleared everything without flagging it.
			if over {
				grid[i] = UnflaggedMine
			} else {
				grid[i] = Unknown
			}
		case c.State == Revealed:
			grid[i] = CellInfo(c.Adjacent)
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
