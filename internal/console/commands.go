package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"ctchen222/tictactoe-console/internal/config"
	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/validator"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoGame is returned by start_game before init_game was run.
var ErrNoGame = errors.New("game was not initialized (use init_game)")

type initGameArgs struct {
	Size       int    `validate:"min=1,max=26"`
	NoughtName string `validate:"required,max=32"`
	CrossName  string `validate:"required,max=32"`
}

func (c *Console) initGame(ctx context.Context, args []string) (bool, error) {
	ctx, span := tracer.Start(ctx, "console.initGame")
	defer span.End()

	if len(args) > 1 {
		return false, errors.New("usage: init_game [size]")
	}

	size := c.cfg.Game.DefaultSize
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("board size must be a decimal number, got %q", args[0])
		}
		size = n
	}
	if err := validator.GetValidator().Var(size, "min=1,max=26"); err != nil {
		return false, fmt.Errorf("board size must be between 1 and %d, got %d", config.MaxBoardSize, size)
	}

	fmt.Fprintf(c.out, "Creating board of size %d\n", size)
	nought, err := c.askName(fmt.Sprintf("Nought Player Name (%s): ", c.cfg.Game.DefaultNoughtName), c.cfg.Game.DefaultNoughtName)
	if err != nil {
		return false, err
	}
	cross, err := c.askName(fmt.Sprintf("Cross Player Name (%s): ", c.cfg.Game.DefaultCrossName), c.cfg.Game.DefaultCrossName)
	if err != nil {
		return false, err
	}

	a := initGameArgs{Size: size, NoughtName: nought, CrossName: cross}
	if err := validator.Struct(a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid game settings")
		return false, fmt.Errorf("invalid game settings: %w", err)
	}

	board, err := game.NewBoard(a.Size, c.cfg.Game.Starting())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create board")
		return false, err
	}

	c.board = board
	c.gameID = uuid.NewString()
	c.nought = c.newPlayer(a.NoughtName, c.in, c.out)
	c.cross = c.newPlayer(a.CrossName, c.in, c.out)
	c.recorded = false

	span.SetAttributes(
		attribute.String("game.id", c.gameID),
		attribute.Int("board.size", a.Size),
	)
	slog.InfoContext(ctx, "game initialized",
		"game.id", c.gameID,
		"board.size", a.Size,
		"player.cross", a.CrossName,
		"player.nought", a.NoughtName,
		"symbol.starting", board.CurrentSymbol().String(),
	)
	fmt.Fprintf(c.out, "%s versus %s\n", c.nought.Name(), c.cross.Name())
	return false, nil
}

func (c *Console) askName(question, fallback string) (string, error) {
	fmt.Fprint(c.out, question)
	name, err := c.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read player name: %w", err)
	}
	if name = strings.TrimSpace(name); name == "" {
		return fallback, nil
	}
	return name, nil
}

func (c *Console) startGame(ctx context.Context, _ []string) (bool, error) {
	if c.board == nil {
		return false, ErrNoGame
	}
	if c.recorded {
		fmt.Fprintln(c.out, "Game is over (use init_game to start a new one)")
		return false, nil
	}
	return false, c.play(ctx)
}

func (c *Console) printBoard(_ context.Context, _ []string) (bool, error) {
	if c.board == nil {
		fmt.Fprintln(c.out, "No Board")
		return false, nil
	}
	return false, c.renderer.Render(c.board)
}

func (c *Console) score(ctx context.Context, _ []string) (bool, error) {
	ctx, span := tracer.Start(ctx, "console.score")
	defer span.End()

	standings, err := c.results.Standings(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load standings")
		return false, err
	}
	span.SetAttributes(attribute.Int("standings.count", len(standings)))

	if len(standings) == 0 {
		fmt.Fprintln(c.out, "No games finished yet")
		return false, nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tWINS\tLOSSES\tDRAWS")
	for _, s := range standings {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", s.Name, s.Wins, s.Losses, s.Draws)
	}
	return false, w.Flush()
}

func (c *Console) clear(_ context.Context, _ []string) (bool, error) {
	c.out.ClearScreen()
	return false, nil
}

func (c *Console) help(_ context.Context, _ []string) (bool, error) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", cmd.usage, cmd.help)
	}
	return false, w.Flush()
}

func (c *Console) exit(_ context.Context, _ []string) (bool, error) {
	return true, nil
}

func gameAttributes(id string, b *game.Board) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("game.id", id),
		attribute.Int("board.size", b.Size()),
	)
}
