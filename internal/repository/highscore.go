package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweep/internal/mines"
)

// maxHighscoresPerBoard caps how many entries a leaderboard keeps per board
// shape.
const maxHighscoresPerBoard = 3

type Highscore struct {
	GameSessionID int64   `json:"game_session_id"`
	Username      *string `json:"username"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MineCount     int     `json:"mine_count"`
	PlaytimeMs    float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *mines.GameParams
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mineCount"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		username,
		width,
		height,
		mine_count,
		playtime_ms
	FROM game_session
		LEFT OUTER JOIN player USING (player_id)
	WHERE
		status = 'won'
		AND playtime_ms IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms LIMIT @limit;"
	args["limit"] = maxHighscoresPerBoard

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}

// BestTime returns the fastest stored win for a board shape, or nil when no
// one has won it yet. This is the collaborator side of the engine's
// [mines.ScoreRecord.Improves] contract.
func (q Queries) BestTime(
	ctx context.Context, params mines.GameParams,
) (*time.Duration, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT playtime_ms FROM game_session
		WHERE
			status = 'won'
			AND playtime_ms IS NOT NULL
			AND width = $1 AND height = $2 AND mine_count = $3
		ORDER BY playtime_ms
		LIMIT 1;`,
		params.Width, params.Height, params.MineCount,
	)
	ms, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[float64])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	best := time.Duration(ms * float64(time.Millisecond))
	return &best, nil
}
