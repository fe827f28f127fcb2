package cli

import (
	"bufio"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweep/internal/mines"
)

type playOptions struct {
	preset    string
	width     int
	height    int
	mineCount int
}

func (o playOptions) gameParams() (mines.GameParams, error) {
	if o.preset != "" {
		params, ok := mines.Preset(o.preset)
		if !ok {
			return mines.GameParams{}, fmt.Errorf(
				"%w: unknown preset %q", mines.ErrInvalidParams, o.preset,
			)
		}
		return params, nil
	}
	params := mines.GameParams{
		Width:     o.width,
		Height:    o.height,
		MineCount: o.mineCount,
	}
	return params, params.Validate()
}

func newPlayCommand(logger *slog.Logger) *cobra.Command {
	opts := &playOptions{preset: "easy"}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game on stdin/stdout",
		Long: `Play an interactive game. Commands, one per line:

  o x y   open a cell
  f x y   toggle a flag
  c x y   chord on a numbered cell
  g       reprint the board
  r       resign
  q       quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := opts.gameParams()
			if err != nil {
				return err
			}
			rnd := rand.New(rand.NewPCG(
				new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
			))
			game, err := mines.NewGameSession(params, rnd)
			if err != nil {
				return err
			}
			logger.Debug("game created", slog.String("seed", params.Seed()))
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), game)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "easy", "difficulty preset (easy, medium, hard)")
	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "board width (overrides preset)")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "board height (overrides preset)")
	cmd.Flags().IntVarP(&opts.mineCount, "mines", "m", 0, "mine count (overrides preset)")

	return cmd
}

func play(in io.Reader, out io.Writer, game *mines.GameSession) error {
	render(out, game)

	lastInput := time.Now()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		game.Tick(time.Since(lastInput))
		lastInput = time.Now()

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			return nil
		}

		if err := runPlayerCommand(game, line); err != nil {
			fmt.Fprintf(out, "! %s\n", err)
			continue
		}

		render(out, game)

		if game.Status.Over() {
			return nil
		}
	}
	return scanner.Err()
}

func runPlayerCommand(game *mines.GameSession, line string) error {
	fields := strings.Fields(line)
	verb := fields[0]

	switch verb {
	case "g":
		return nil
	case "r":
		return game.Forfeit()
	case "o", "f", "c":
	default:
		return fmt.Errorf("unknown command %q", verb)
	}

	if len(fields) != 3 {
		return fmt.Errorf("command %q takes 2 arguments, got %d", verb, len(fields)-1)
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad argument %q: %w", fields[1], err)
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("bad argument %q: %w", fields[2], err)
	}
	p := mines.Point{X: x, Y: y}

	switch verb {
	case "o":
		_, err = game.Reveal(p)
	case "f":
		_, err = game.ToggleFlag(p)
	case "c":
		_, err = game.Chord(p)
	}
	return err
}

func render(out io.Writer, game *mines.GameSession) {
	fmt.Fprint(out, game.Snapshot().ToString(game.Board.Width))
	fmt.Fprintf(
		out,
		"%s | mines left %d | %s\n",
		game.Status, game.MinesRemaining(), game.Elapsed.Round(time.Second),
	)
}
