package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweep/internal/mines"
	"github.com/vancomm/minesweep/internal/repository"
)

type HighscoreHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewHighscoreHandler(
	logger *slog.Logger, repo *repository.Queries,
) *HighscoreHandler {
	return &HighscoreHandler{logger: logger, repo: repo}
}

// Leaderboard lists the fastest wins, optionally narrowed to a username
// and/or a board shape (via ?preset= or explicit dimensions).
func (h HighscoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	var filter repository.HighscoreFilter

	query := r.URL.Query()
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	switch {
	case query.Has("preset"):
		params, ok := mines.Preset(query.Get("preset"))
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf(
				"%w: unknown preset %q", mines.ErrInvalidParams, query.Get("preset"),
			)))
			return
		}
		filter.GameParams = &params
	case query.Has("width"):
		params, err := ParseGameParams(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, h.logger, wrapError(err))
			return
		}
		filter.GameParams = &params
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		h.logger.Error("unable to fetch highscores", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}
