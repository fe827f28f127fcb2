package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/vancomm/minesweep/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// prefixPattern mounts a ServeMux pattern under a base path, keeping any
// method prefix in place.
func prefixPattern(basePath, pattern string) string {
	base := strings.Trim(basePath, "/")
	if base == "" {
		return pattern
	}
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		return "/" + base + pattern
	}
	return method + " /" + base + path
}

func (a *App) handle(pattern string, handler http.HandlerFunc) {
	a.router.HandleFunc(prefixPattern(a.cfg.BasePath, pattern), handler)
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.repo, a.cookies, a.ws, createRand(),
	)
	highscores := handlers.NewHighscoreHandler(a.logger, a.repo)
	auth := handlers.NewAuthHandler(a.logger, a.repo, a.cookies)

	a.handle("POST /game", game.NewGame)
	a.handle("GET /game/{id}", game.Fetch)
	a.handle("POST /game/{id}/move", game.MakeAMove)
	a.handle("POST /game/{id}/forfeit", game.Forfeit)
	a.handle("/game/{id}/connect", game.ConnectWS)

	a.handle("GET /highscores", highscores.Leaderboard)

	a.handle("POST /register", auth.Register)
	a.handle("POST /login", auth.Login)
	a.handle("POST /logout", auth.Logout)
	a.handle("GET /status", auth.Status)
}
