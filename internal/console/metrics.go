package console

import (
	"context"
	"errors"
	"fmt"

	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	turnsPlayed   metric.Int64Counter
	turnsRejected metric.Int64Counter
	gamesFinished metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	meter := otel.Meter("console")

	turnsPlayed, err := meter.Int64Counter("tictactoe.turns.played",
		metric.WithDescription("Turns accepted by the board"),
		metric.WithUnit("{turn}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create turns played counter: %w", err)
	}
	turnsRejected, err := meter.Int64Counter("tictactoe.turns.rejected",
		metric.WithDescription("Turns rejected by the board"),
		metric.WithUnit("{turn}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create turns rejected counter: %w", err)
	}
	gamesFinished, err := meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that reached an outcome"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games finished counter: %w", err)
	}

	return &metrics{
		turnsPlayed:   turnsPlayed,
		turnsRejected: turnsRejected,
		gamesFinished: gamesFinished,
	}, nil
}

func (m *metrics) turnPlayed(ctx context.Context, s game.Symbol) {
	m.turnsPlayed.Add(ctx, 1, metric.WithAttributes(attribute.String("symbol", s.String())))
}

func (m *metrics) turnRejected(ctx context.Context, err error) {
	m.turnsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
}

func (m *metrics) gameFinished(ctx context.Context, size int, outcome repository.Outcome) {
	m.gamesFinished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.Int("board.size", size),
	))
}

func rejectReason(err error) string {
	var (
		invalid  *game.InvalidAddressError
		inUse    *game.SquareInUseError
		gameOver *game.GameOverError
	)
	switch {
	case errors.As(err, &invalid):
		return "invalid_address"
	case errors.As(err, &inUse):
		return "square_in_use"
	case errors.As(err, &gameOver):
		return "game_over"
	}
	return "unknown"
}
