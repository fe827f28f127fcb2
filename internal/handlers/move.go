package handlers

import (
	"fmt"

	"github.com/vancomm/minesweep/internal/mines"
)

type GameMove int

const (
	MoveOpen GameMove = iota
	MoveFlag
	MoveChord
)

var ErrUnknownMove = fmt.Errorf("unknown move")

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open":
		return MoveOpen, nil
	case "flag":
		return MoveFlag, nil
	case "chord":
		return MoveChord, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMove, s)
}

func (m GameMove) String() string {
	switch m {
	case MoveOpen:
		return "open"
	case MoveFlag:
		return "flag"
	case MoveChord:
		return "chord"
	}
	return "unknown"
}

// Apply executes the move against a live game.
func (m GameMove) Apply(game *mines.GameSession, p mines.Point) error {
	var err error
	switch m {
	case MoveOpen:
		_, err = game.Reveal(p)
	case MoveFlag:
		_, err = game.ToggleFlag(p)
	case MoveChord:
		_, err = game.Chord(p)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownMove, int(m))
	}
	return err
}
