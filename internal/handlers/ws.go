package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweep/internal/mines"
)

// wsCommand is one line of the socket protocol: a single-letter verb with a
// fixed number of integer arguments.
//
//	o x y   open a cell
//	f x y   toggle a flag
//	c x y   chord on a numbered cell
//	g       fetch the current state
//	r       resign the game
type wsCommand struct {
	verb string
	args []int
}

var wsCommandNargs = map[string]int{
	"o": 2,
	"f": 2,
	"c": 2,
	"g": 0,
	"r": 0,
}

func parseWSCommand(line string) (*wsCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb := fields[0]
	nargs, ok := wsCommandNargs[verb]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", verb)
	}
	if len(fields)-1 != nargs {
		return nil, fmt.Errorf(
			"command %q takes %d argument(s), got %d", verb, nargs, len(fields)-1,
		)
	}
	args := make([]int, nargs)
	for i, f := range fields[1:] {
		arg, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q: %w", f, err)
		}
		args[i] = arg
	}
	return &wsCommand{verb: verb, args: args}, nil
}

func (c wsCommand) point() mines.Point {
	return mines.Point{X: c.args[0], Y: c.args[1]}
}

// mutates reports whether the command changes game state and so needs to be
// persisted after it runs.
func (c wsCommand) mutates() bool {
	return c.verb != "g"
}

func (c wsCommand) run(game *mines.GameSession) error {
	switch c.verb {
	case "o":
		_, err := game.Reveal(c.point())
		return err
	case "f":
		_, err := game.ToggleFlag(c.point())
		return err
	case "c":
		_, err := game.Chord(c.point())
		return err
	case "g":
		return nil
	case "r":
		return game.Forfeit()
	}
	return fmt.Errorf("unknown command %q", c.verb)
}

// wsGame drives one game over a command stream, charging the wall-clock
// time between commands to the game clock so a websocket win records an
// honest playtime.
type wsGame struct {
	game *mines.GameSession
	last time.Time
}

func newWSGame(game *mines.GameSession) *wsGame {
	return &wsGame{game: game, last: time.Now()}
}

// exec ticks the clock by the time since the previous command, then parses
// and runs the line. A nil command with a non-nil error is a parse failure.
func (g *wsGame) exec(line string, now time.Time) (*wsCommand, error) {
	g.game.Tick(now.Sub(g.last))
	g.last = now

	cmd, err := parseWSCommand(line)
	if err != nil {
		return nil, err
	}
	return cmd, cmd.run(g.game)
}

// ConnectWS serves a session over a websocket. Each text message is one
// command; each command is answered with either the full session state or
// an error payload. State is written back to the store after every mutating
// command, so a dropped connection loses nothing.
func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, err := h.loadGame(r)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if !ownedBy(session, r) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(slog.Int64("game_session_id", session.GameSessionID))
	logger.Debug("websocket connected")

	wsg := newWSGame(game)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				logger.Warn("websocket closed abruptly", slog.Any("error", err))
			}
			return
		}

		cmd, err := wsg.exec(string(message), time.Now())
		if cmd == nil && err != nil {
			h.sendWS(conn, logger, wrapError(err))
			continue
		}
		if err != nil {
			if !recoverable(err) {
				logger.Error("unable to run command", slog.Any("error", err))
				return
			}
			h.sendWS(conn, logger, wrapError(err))
			continue
		}

		if cmd.mutates() {
			session, err = h.repo.UpdateGameSession(
				r.Context(), session.GameSessionID, game,
			)
			if err != nil {
				logger.Error("unable to persist session", slog.Any("error", err))
				return
			}
		}

		h.sendWS(conn, logger, NewGameSessionDTO(session, game))
	}
}

// recoverable distinguishes player mistakes, which the connection survives,
// from real failures.
func recoverable(err error) bool {
	return errors.Is(err, mines.ErrGameOver) ||
		errors.Is(err, mines.ErrOutOfBounds)
}

func (h GameHandler) sendWS(conn *websocket.Conn, logger *slog.Logger, v any) {
	if err := conn.WriteJSON(v); err != nil {
		logger.Error("unable to write websocket message", slog.Any("error", err))
	}
}
