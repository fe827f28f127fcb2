package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweep/internal/config"
	"github.com/vancomm/minesweep/internal/middleware"
	"github.com/vancomm/minesweep/internal/repository"
)

type AuthHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
}

func NewAuthHandler(
	logger *slog.Logger, repo *repository.Queries, cookies *config.Cookies,
) *AuthHandler {
	return &AuthHandler{logger: logger, repo: repo, cookies: cookies}
}

func credentials(r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username = r.PostForm.Get("username")
	password = r.PostForm.Get("password")
	return username, password, username != "" && password != ""
}

func (h AuthHandler) authorize(w http.ResponseWriter, player *repository.Player) {
	claims := config.NewPlayerClaims(player.PlayerID, player.Username)
	if err := h.cookies.Authorize(w, claims); err != nil {
		h.logger.Error("unable to authorize player", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	sendJSONOrLog(w, h.logger, claims)
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("unable to hash password", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		w.WriteHeader(http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.Error("unable to create player", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.authorize(w, player)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("unable to fetch player", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.authorize(w, player)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Status reports who the auth cookies belong to, refreshing nothing.
func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	sendJSONOrLog(w, h.logger, claims)
}
