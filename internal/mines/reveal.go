package mines

import "math/rand/v2"

// Reveal opens the cell at p. The first reveal of a board places the mines,
// keeping p clear. Opening a cell with no adjacent mines cascades outwards
// breadth-first through connected zero-count cells, also exposing the
// numbered rim around them. The returned slice holds every newly revealed
// cell exactly once, in open order.
func (b *Board) Reveal(p Point, r *rand.Rand) ([]Point, RevealOutcome) {
	if !b.MinesPlaced {
		b.PlaceMines(p, r)
	}

	cell := b.CellAt(p)
	outcome := cell.reveal()
	switch outcome {
	case AlreadyRevealed, RevealRejected:
		return nil, outcome
	case RevealedMine:
		return []Point{p}, outcome
	}

	opened := []Point{p}
	if cell.Adjacent > 0 {
		return opened, outcome
	}

	// Iterative cascade with an explicit work queue. A cell joins the queue
	// only at the moment it flips to Revealed, which doubles as the visited
	// guard: the neighbor relation is symmetric, and without the guard the
	// walk would revisit cells forever. Flagged cells are never
	// force-revealed, and mines are unreachable since a zero-count cell has
	// no mined neighbors.
	queue := []Point{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for q := range b.Neighbors(cur) {
			nc := b.CellAt(q)
			if nc.State != Hidden {
				continue
			}
			nc.State = Revealed
			opened = append(opened, q)
			if nc.Adjacent == 0 {
				queue = append(queue, q)
			}
		}
	}

	return opened, outcome
}

// Chord opens every unflagged hidden neighbor of a revealed numbered cell in
// one action. It is only honored when the player has flagged exactly as many
// neighbors as the cell's count; a misplaced flag makes a chord fatal.
func (b *Board) Chord(p Point, r *rand.Rand) ([]Point, RevealOutcome) {
	cell := b.CellAt(p)
	if cell.State != Revealed || cell.Adjacent < 1 {
		return nil, RevealRejected
	}

	flags := 0
	targets := make([]Point, 0, 8)
	for q := range b.Neighbors(p) {
		switch b.CellAt(q).State {
		case Flagged:
			flags++
		case Hidden:
			targets = append(targets, q)
		}
	}
	if flags != cell.Adjacent {
		return nil, RevealRejected
	}

	var opened []Point
	for _, q := range targets {
		if b.CellAt(q).State != Hidden {
			continue // already opened by an earlier cascade
		}
		ps, outcome := b.Reveal(q, r)
		opened = append(opened, ps...)
		if outcome == RevealedMine {
			return opened, RevealedMine
		}
	}
	return opened, RevealedSafe
}
