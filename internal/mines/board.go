package mines

import (
	"iter"
	"math/rand/v2"
)

// Board owns a rectangular grid of cells. Mines are not placed at
// construction: the first reveal places them, which guarantees the opening
// click never lands on a mine. The board never mutates itself; every
// transition goes through the owning [GameSession].
type Board struct {
	GameParams
	Cells       []Cell
	MinesPlaced bool
}

// NewBoard allocates a board of hidden, mine-free cells. Params are assumed
// to be validated by the caller.
func NewBoard(params GameParams) *Board {
	return &Board{
		GameParams: params,
		Cells:      make([]Cell, params.CellCount()),
	}
}

func (b *Board) CellAt(p Point) *Cell {
	return &b.Cells[p.Y*b.Width+p.X]
}

// Neighbors yields the in-bounds neighbors of p, between 3 (corner) and 8
// (interior) of them. The sequence is pure and restartable.
func (b *Board) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := Point{X: p.X + dx, Y: p.Y + dy}
				if !b.InBounds(n) {
					continue
				}
				if !yield(n) {
					return
				}
			}
		}
	}
}

// PlaceMines scatters exactly MineCount mines across the board and computes
// adjacency counts for every safe cell. The cell at exclude never receives a
// mine, and neither does its neighborhood when the board has room to spare.
// Placement happens at most once per board; a second call is a programming
// error.
func (b *Board) PlaceMines(exclude Point, r *rand.Rand) {
	if b.MinesPlaced {
		panic(AssertionError{"mines placed twice on one board"})
	}

	candidates := b.mineCandidates(exclude)

	// Pick MineCount candidates off the list at random, shrinking the
	// pickable range as we go.
	k := len(candidates)
	for range b.MineCount {
		i := r.IntN(k)
		b.Cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	b.MinesPlaced = true
	b.computeAdjacency()
}

// mineCandidates lists the cells allowed to hold a mine. The opening cell
// and its whole neighborhood stay clear so the first reveal always cascades;
// cramped boards fall back to sparing the opening cell alone.
func (b *Board) mineCandidates(exclude Point) []int {
	candidates := make([]int, 0, b.CellCount())
	for y := range b.Height {
		for x := range b.Width {
			if absDiff(exclude.Y, y) > 1 || absDiff(exclude.X, x) > 1 {
				candidates = append(candidates, y*b.Width+x)
			}
		}
	}
	if len(candidates) >= b.MineCount {
		return candidates
	}

	candidates = candidates[:0]
	excluded := exclude.Y*b.Width + exclude.X
	for i := range b.Cells {
		if i != excluded {
			candidates = append(candidates, i)
		}
	}
	return candidates
}

func (b *Board) computeAdjacency() {
	for y := range b.Height {
		for x := range b.Width {
			p := Point{X: x, Y: y}
			if b.CellAt(p).Mine {
				continue
			}
			n := 0
			for q := range b.Neighbors(p) {
				if b.CellAt(q).Mine {
					n++
				}
			}
			b.CellAt(p).Adjacent = n
		}
	}
}

// FullyCleared reports whether every safe cell has been revealed, which is
// the win condition. Mines do not have to be flagged.
func (b *Board) FullyCleared() bool {
	for i := range b.Cells {
		if !b.Cells[i].Mine && b.Cells[i].State != Revealed {
			return false
		}
	}
	return true
}

// revealMines exposes every mine so the full layout can be shown once the
// game is lost or conceded. Flags stay put; rendering decides how to mark
// them against the real mine positions.
func (b *Board) revealMines() {
	for i := range b.Cells {
		if b.Cells[i].Mine && b.Cells[i].State == Hidden {
			b.Cells[i].State = Revealed
		}
	}
}
