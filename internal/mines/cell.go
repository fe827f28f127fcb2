package mines

// CellState is the player-facing state of a single cell. The three states
// are mutually exclusive; whether the cell holds a mine is tracked
// separately and never changes once mines are placed.
type CellState int8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

// RevealOutcome describes what a single-cell reveal did.
type RevealOutcome int8

const (
	RevealedSafe RevealOutcome = iota
	RevealedMine
	AlreadyRevealed
	RevealRejected // cell is flagged, flags protect against misclicks
)

// FlagOutcome describes what a flag toggle did.
type FlagOutcome int8

const (
	NowFlagged FlagOutcome = iota
	NowHidden
	FlagRejected // cell is already revealed
)

// Cell is the atomic unit of board state. Fields are exported for gob
// serialization; outside this package cells are only observed through
// [GameSession.Snapshot].
type Cell struct {
	Mine     bool
	State    CellState
	Adjacent int // mines among the up-to-8 neighbors, 0 for mine cells
}

func (c *Cell) reveal() RevealOutcome {
	switch {
	case c.State == Revealed:
		return AlreadyRevealed
	case c.State == Flagged:
		return RevealRejected
	case c.Mine:
		c.State = Revealed
		return RevealedMine
	default:
		c.State = Revealed
		return RevealedSafe
	}
}

func (c *Cell) toggleFlag() FlagOutcome {
	switch c.State {
	case Hidden:
		c.State = Flagged
		return NowFlagged
	case Flagged:
		c.State = Hidden
		return NowHidden
	default:
		return FlagRejected
	}
}
