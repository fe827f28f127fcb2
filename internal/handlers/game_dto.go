package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweep/internal/mines"
	"github.com/vancomm/minesweep/internal/repository"
)

// NewGameDTO carries the query parameters of a new-game request: either a
// named preset or explicit board dimensions.
type NewGameDTO struct {
	Preset    string `schema:"preset"`
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameParams resolves the request to validated board params.
func (dto NewGameDTO) GameParams() (mines.GameParams, error) {
	if dto.Preset != "" {
		params, ok := mines.Preset(dto.Preset)
		if !ok {
			return mines.GameParams{}, fmt.Errorf(
				"%w: unknown preset %q", mines.ErrInvalidParams, dto.Preset,
			)
		}
		return params, nil
	}
	params := mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	return params, params.Validate()
}

// ParseGameParams decodes explicit board dimensions straight into validated
// params; all three fields are required.
func ParseGameParams(src map[string][]string) (mines.GameParams, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var params mines.GameParams
	if err := dec.Decode(&params, src); err != nil {
		return mines.GameParams{}, err
	}
	return params, params.Validate()
}

func ParsePoint(src map[string][]string) (mines.Point, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var p mines.Point
	err := dec.Decode(&p, src)
	return p, err
}

type GameSessionDTO struct {
	GameSessionID  string         `json:"game_session_id"`
	Grid           mines.GridInfo `json:"grid"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	MineCount      int            `json:"mine_count"`
	Status         string         `json:"status"`
	FlagsPlaced    int            `json:"flags_placed"`
	MinesRemaining int            `json:"mines_remaining"`
	ElapsedMs      int64          `json:"elapsed_ms"`
	StartedAt      int64          `json:"started_at"`
	EndedAt        *int64         `json:"ended_at,omitempty"`
	NewBest        bool           `json:"new_best,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, game *mines.GameSession,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionID:  strconv.FormatInt(session.GameSessionID, 10),
		Grid:           game.Snapshot(),
		Width:          game.Board.Width,
		Height:         game.Board.Height,
		MineCount:      game.Board.MineCount,
		Status:         game.Status.String(),
		FlagsPlaced:    game.FlagsPlaced,
		MinesRemaining: game.MinesRemaining(),
		ElapsedMs:      game.Elapsed.Milliseconds(),
		StartedAt:      session.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}
