package mines

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Status tracks the session lifecycle. Won and Lost are terminal: a new game
// requires a fresh session.
type Status int8

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// Over reports whether the session has reached a terminal state.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusLost
}

var (
	ErrGameOver    = errors.New("game is over")
	ErrOutOfBounds = errors.New("cell is out of bounds")
)

// RevealResult is everything a presentation layer needs to react to a reveal
// or chord: which cells opened, what the opening did, and where the session
// ended up.
type RevealResult struct {
	Opened  []Point
	Outcome RevealOutcome
	Status  Status
}

// FlagResult reports a flag toggle together with the running flag counter.
type FlagResult struct {
	Outcome     FlagOutcome
	FlagsPlaced int
}

// GameSession wraps a single board with lifecycle state: the status machine,
// the game clock and the flag counter. It is the sole mutator of its board.
// Sessions are not safe for concurrent use; callers serialize their calls.
type GameSession struct {
	Board       *Board
	Status      Status
	Elapsed     time.Duration
	FlagsPlaced int
	Exploded    *Point // the mine that ended a lost game

	rnd *rand.Rand
}

// NewGameSession validates params and builds a fresh, unstarted session.
// Mines are deferred until the first reveal, so r is kept for later; seed it
// deterministically to make placement reproducible.
func NewGameSession(params GameParams, r *rand.Rand) (*GameSession, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &GameSession{Board: NewBoard(params), rnd: r}, nil
}

// DecodeGameSession restores a session from its gob form. The random source
// is not part of the wire form and must be supplied again.
func DecodeGameSession(buf []byte, r *rand.Rand) (*GameSession, error) {
	var session GameSession
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&session); err != nil {
		return nil, err
	}
	session.rnd = r
	return &session, nil
}

// Bytes serializes the session for an external store. The engine defines the
// codec but never touches storage itself.
func (s GameSession) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GameSession) guard(p Point) error {
	if s.Status.Over() {
		return ErrGameOver
	}
	if !s.Board.InBounds(p) {
		return fmt.Errorf(
			"%w: %s is outside a %dx%d board",
			ErrOutOfBounds, p, s.Board.Width, s.Board.Height,
		)
	}
	return nil
}

// Reveal opens a cell. The very first reveal places the mines and starts the
// game clock. Hitting a mine loses the game and exposes the rest of the
// mines; clearing the last safe cell wins it.
func (s *GameSession) Reveal(p Point) (*RevealResult, error) {
	if err := s.guard(p); err != nil {
		return nil, err
	}
	if s.Status == StatusNotStarted {
		s.Status = StatusPlaying
	}
	opened, outcome := s.Board.Reveal(p, s.rnd)
	s.settle(opened, outcome)
	return &RevealResult{Opened: opened, Outcome: outcome, Status: s.Status}, nil
}

// Chord opens all unflagged neighbors of a satisfied numbered cell. It never
// starts a game: before the first reveal there is nothing revealed to chord
// on, so the board rejects it.
func (s *GameSession) Chord(p Point) (*RevealResult, error) {
	if err := s.guard(p); err != nil {
		return nil, err
	}
	opened, outcome := s.Board.Chord(p, s.rnd)
	if outcome != RevealRejected {
		s.settle(opened, outcome)
	}
	return &RevealResult{Opened: opened, Outcome: outcome, Status: s.Status}, nil
}

// settle folds a reveal outcome into the lifecycle state machine.
func (s *GameSession) settle(opened []Point, outcome RevealOutcome) {
	if outcome == RevealedMine {
		s.Status = StatusLost
		if len(opened) > 0 {
			p := opened[len(opened)-1]
			s.Exploded = &p
		}
		s.Board.revealMines()
		return
	}
	if s.Status == StatusPlaying && s.Board.FullyCleared() {
		s.Status = StatusWon
	}
}

// ToggleFlag flags or unflags a hidden cell. Flagging is permitted before
// the first reveal and neither places mines nor starts the clock; it never
// changes the session status.
func (s *GameSession) ToggleFlag(p Point) (*FlagResult, error) {
	if err := s.guard(p); err != nil {
		return nil, err
	}
	outcome := s.Board.CellAt(p).toggleFlag()
	switch outcome {
	case NowFlagged:
		s.FlagsPlaced++
	case NowHidden:
		s.FlagsPlaced--
	}
	return &FlagResult{Outcome: outcome, FlagsPlaced: s.FlagsPlaced}, nil
}

// Tick advances the game clock. The engine runs no timers of its own; the
// caller feeds it wall-clock deltas, which accumulate only while the game is
// actually being played.
func (s *GameSession) Tick(delta time.Duration) {
	if s.Status == StatusPlaying && delta > 0 {
		s.Elapsed += delta
	}
}

// MinesRemaining is the counter shown next to the board: mines minus placed
// flags. It goes negative when the player has overflagged.
func (s *GameSession) MinesRemaining() int {
	return s.Board.MineCount - s.FlagsPlaced
}

// Forfeit concedes a running game. It counts as a loss and exposes the whole
// field.
func (s *GameSession) Forfeit() error {
	if s.Status.Over() {
		return ErrGameOver
	}
	s.Status = StatusLost
	s.Board.revealMines()
	return nil
}

// ScoreRecord returns the candidate best-time record for a won game, or nil
// while there is nothing to report. Whether the record is worth storing is
// the persistence layer's call, via [ScoreRecord.Improves].
func (s *GameSession) ScoreRecord() *ScoreRecord {
	if s.Status != StatusWon {
		return nil
	}
	return &ScoreRecord{GameParams: s.Board.GameParams, Playtime: s.Elapsed}
}
