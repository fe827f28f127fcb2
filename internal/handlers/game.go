package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweep/internal/config"
	"github.com/vancomm/minesweep/internal/middleware"
	"github.com/vancomm/minesweep/internal/mines"
	"github.com/vancomm/minesweep/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	repo *repository.Queries,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repo,
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidParams),
		errors.Is(err, ErrUnknownMove):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h GameHandler) sendError(w http.ResponseWriter, err error) {
	w.WriteHeader(statusForError(err))
	sendJSONOrLog(w, h.logger, wrapError(err))
}

func (h GameHandler) gameSessionID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// loadGame fetches a stored session and rehydrates the engine state,
// advancing the clock by the time the session spent at rest.
func (h GameHandler) loadGame(
	r *http.Request,
) (*repository.GameSession, *mines.GameSession, error) {
	id, err := h.gameSessionID(r)
	if err != nil {
		return nil, nil, pgx.ErrNoRows
	}
	session, err := h.repo.GetGameSession(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	game, err := mines.DecodeGameSession(session.State, h.rnd)
	if err != nil {
		return nil, nil, err
	}
	game.Tick(time.Since(session.UpdatedAt))
	return session, game, nil
}

// ownedBy rejects moves on another player's session. Anonymous sessions are
// open to whoever holds the link.
func ownedBy(session *repository.GameSession, r *http.Request) bool {
	if session.PlayerID == nil {
		return true
	}
	claims, ok := middleware.PlayerClaims(r.Context())
	return ok && claims.PlayerID == *session.PlayerID
}

// NewGame starts a session. Mines are not placed yet: the first reveal does
// that, so no starting coordinates are required here.
func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		h.sendError(w, err)
		return
	}
	params, err := dto.GameParams()
	if err != nil {
		h.sendError(w, err)
		return
	}

	game, err := mines.NewGameSession(params, h.rnd)
	if err != nil {
		h.sendError(w, err)
		return
	}

	var playerID *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		playerID = &claims.PlayerID
	}

	session, err := h.repo.CreateGameSession(r.Context(), game, playerID)
	if err != nil {
		h.logger.Error("unable to create game session", slog.Any("error", err))
		h.sendError(w, err)
		return
	}

	sendJSONOrLog(w, h.logger, NewGameSessionDTO(session, game))
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game, err := h.loadGame(r)
	if err != nil {
		h.sendError(w, err)
		return
	}
	sendJSONOrLog(w, h.logger, NewGameSessionDTO(session, game))
}

// MakeAMove applies one move to a session and persists the result. A win is
// checked against the stored best time for the board shape before the move
// itself is written, so the response can flag a new record.
func (h GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	session, game, err := h.loadGame(r)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if !ownedBy(session, r) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	move, err := ParseGameMove(r.URL.Query().Get("move"))
	if err != nil {
		h.sendError(w, err)
		return
	}
	p, err := ParsePoint(r.URL.Query())
	if err != nil {
		h.sendError(w, err)
		return
	}

	if err = move.Apply(game, p); err != nil {
		h.sendError(w, err)
		return
	}

	var newBest bool
	if record := game.ScoreRecord(); record != nil {
		best, err := h.repo.BestTime(r.Context(), record.GameParams)
		if err != nil {
			h.logger.Error("unable to look up best time", slog.Any("error", err))
		} else {
			newBest = record.Improves(best)
		}
	}

	session, err = h.repo.UpdateGameSession(r.Context(), session.GameSessionID, game)
	if err != nil {
		h.logger.Error("unable to update game session", slog.Any("error", err))
		h.sendError(w, err)
		return
	}

	dto := NewGameSessionDTO(session, game)
	dto.NewBest = newBest
	sendJSONOrLog(w, h.logger, dto)
}

// Forfeit concedes a running game, recording it as a loss.
func (h GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game, err := h.loadGame(r)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if !ownedBy(session, r) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err = game.Forfeit(); err != nil {
		h.sendError(w, err)
		return
	}

	session, err = h.repo.UpdateGameSession(r.Context(), session.GameSessionID, game)
	if err != nil {
		h.logger.Error("unable to update game session", slog.Any("error", err))
		h.sendError(w, err)
		return
	}

	sendJSONOrLog(w, h.logger, NewGameSessionDTO(session, game))
}
