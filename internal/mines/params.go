package mines

import (
	"errors"
	"fmt"
	"strings"
)

// GameParams describes the shape of a game: board dimensions and how many
// mines it hides. A valid value always satisfies 0 <= MineCount < Width*Height,
// so at least one cell stays safe to step on.
type GameParams struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

// Standard difficulty presets, plus the custom-game default.
var (
	Easy          = GameParams{Width: 10, Height: 10, MineCount: 10}
	Medium        = GameParams{Width: 16, Height: 16, MineCount: 40}
	Hard          = GameParams{Width: 30, Height: 16, MineCount: 99}
	DefaultCustom = GameParams{Width: 45, Height: 24, MineCount: 150}
)

// Preset resolves a difficulty name to its params.
func Preset(name string) (GameParams, bool) {
	switch strings.ToLower(name) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return GameParams{}, false
}

var ErrInvalidParams = errors.New("invalid game params")

func (p GameParams) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: board must be at least 1x1", ErrInvalidParams)
	}
	if p.MineCount < 0 {
		return fmt.Errorf("%w: mine count must not be negative", ErrInvalidParams)
	}
	if p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"%w: %d mines do not fit a %dx%d board",
			ErrInvalidParams, p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) InBounds(pt Point) bool {
	return 0 <= pt.X && pt.X < p.Width && 0 <= pt.Y && pt.Y < p.Height
}

// Seed is a compact textual form of the params, usable in URLs and CLI args.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf("%w: bad seed %q", ErrInvalidParams, seed)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
