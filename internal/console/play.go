package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/player"
	"ctchen222/tictactoe-console/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// play asks the players for turns until the board has a winner, can no
// longer be won, or a player quits. The outcome is recorded once.
func (c *Console) play(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "console.play", gameAttributes(c.gameID, c.board))
	defer span.End()

	b := c.board
	var notice string
	for !b.HasWinner() && b.IsWinnable() {
		c.out.ClearScreen()
		if err := c.renderer.Render(b); err != nil {
			return err
		}
		if notice != "" {
			fmt.Fprintln(c.out, notice)
			notice = ""
		}

		current := c.playerFor(b.CurrentSymbol())
		fmt.Fprintf(c.out, "Its %s turn! (symbol=%s)\n", current.Name(), b.CurrentSymbol())

		addr, err := current.NextTurn(ctx, b)
		if errors.Is(err, player.ErrQuit) {
			fmt.Fprintf(c.out, "Game was terminated by %s\n", current.Name())
			slog.InfoContext(ctx, "game terminated by player", "game.id", c.gameID, "player.name", current.Name())
			return c.finish(ctx, repository.OutcomeAborted)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to get next turn")
			if recErr := c.finish(context.WithoutCancel(ctx), repository.OutcomeAborted); recErr != nil {
				return errors.Join(err, recErr)
			}
			return fmt.Errorf("failed to get turn from %s: %w", current.Name(), err)
		}

		if err := c.playTurn(ctx, current, addr); err != nil {
			notice = err.Error()
		}
	}

	if err := c.renderer.Render(b); err != nil {
		return err
	}
	winner, ok := b.Winner()
	if ok {
		fmt.Fprintf(c.out, "Congratulations %s, You have WON the game!\n", c.playerFor(winner).Name())
		if winner == game.Cross {
			return c.finish(ctx, repository.OutcomeCross)
		}
		return c.finish(ctx, repository.OutcomeNought)
	}

	fmt.Fprintln(c.out, "board is not winnable")
	fmt.Fprintln(c.out, "Its a tie!")
	return c.finish(ctx, repository.OutcomeDraw)
}

func (c *Console) playTurn(ctx context.Context, p player.Player, addr game.SquareAddress) error {
	symbol := c.board.CurrentSymbol()
	ctx, span := tracer.Start(ctx, "console.playTurn", trace.WithAttributes(
		attribute.String("game.id", c.gameID),
		attribute.String("player.name", p.Name()),
		attribute.String("move.symbol", symbol.String()),
		attribute.Int("move.row", addr.Row),
		attribute.Int("move.col", addr.Column),
	))
	defer span.End()

	if err := c.board.PlayTurn(addr); err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.name", p.Name(), "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		c.metrics.turnRejected(ctx, err)
		return err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	c.metrics.turnPlayed(ctx, symbol)
	return nil
}

func (c *Console) finish(ctx context.Context, outcome repository.Outcome) error {
	ctx, span := tracer.Start(ctx, "console.finish", gameAttributes(c.gameID, c.board))
	defer span.End()
	span.SetAttributes(attribute.String("game.outcome", string(outcome)))

	c.recorded = true
	c.metrics.gameFinished(ctx, c.board.Size(), outcome)

	result := &repository.GameResult{
		GameID:     c.gameID,
		BoardSize:  c.board.Size(),
		CrossName:  c.cross.Name(),
		NoughtName: c.nought.Name(),
		Outcome:    outcome,
		Turns:      c.board.FullSquaresAmount(),
		FinishedAt: time.Now(),
	}
	if err := c.results.Record(ctx, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to record game result")
		return err
	}

	slog.InfoContext(ctx, "game finished",
		"game.id", c.gameID,
		"game.outcome", string(outcome),
		"game.turns", result.Turns,
	)
	return nil
}
