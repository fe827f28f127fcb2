package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweep/internal/mines"
)

// GameSession is a stored game: the gob-encoded engine state plus columns
// denormalized for querying.
type GameSession struct {
	GameSessionID int64
	PlayerID      *int64
	Width         int
	Height        int
	MineCount     int
	Status        string
	State         []byte
	StartedAt     time.Time
	EndedAt       *time.Time
	PlaytimeMs    *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q Queries) CreateGameSession(
	ctx context.Context, game *mines.GameSession, playerID *int64,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":  playerID,
		"width":      game.Board.Width,
		"height":     game.Board.Height,
		"mine_count": game.Board.MineCount,
		"status":     game.Status.String(),
		"state":      state,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, status, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @status, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q Queries) GetGameSession(ctx context.Context, gameSessionID int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// UpdateGameSession persists the session state after a move. Terminal
// sessions get their end timestamp and playtime fixed on the first update
// that sees them finished.
func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionID int64, game *mines.GameSession,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"game_session_id": gameSessionID,
		"status":          game.Status.String(),
		"state":           state,
		"finished":        game.Status.Over(),
		"playtime_ms":     float64(game.Elapsed.Milliseconds()),
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session SET
			status = @status,
			state = @state,
			ended_at = CASE
				WHEN @finished AND ended_at IS NULL THEN now()
				ELSE ended_at
			END,
			playtime_ms = CASE
				WHEN @finished AND playtime_ms IS NULL THEN @playtime_ms
				ELSE playtime_ms
			END,
			updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}
