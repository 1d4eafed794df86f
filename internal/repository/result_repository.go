package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.result")

// Outcome is how a recorded game ended.
type Outcome string

const (
	OutcomeCross   Outcome = "cross"
	OutcomeNought  Outcome = "nought"
	OutcomeDraw    Outcome = "draw"
	OutcomeAborted Outcome = "aborted"
)

// GameResult is one finished game of the session.
type GameResult struct {
	GameID     string    `db:"game_id"`
	BoardSize  int       `db:"board_size"`
	CrossName  string    `db:"cross_name"`
	NoughtName string    `db:"nought_name"`
	Outcome    Outcome   `db:"outcome"`
	Turns      int       `db:"turns"`
	FinishedAt time.Time `db:"finished_at"`
}

// Standing is one player's record over the session.
type Standing struct {
	Name   string `db:"name"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Draws  int    `db:"draws"`
}

// ResultRepository defines the interface for session result operations.
type ResultRepository interface {
	Record(ctx context.Context, result *GameResult) error
	Count(ctx context.Context) (int, error)
	Standings(ctx context.Context) ([]Standing, error)
}

type sqliteResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new SQLite-based ResultRepository.
func NewResultRepository(db *sqlx.DB) ResultRepository {
	return &sqliteResultRepository{db: db}
}

// Record stores a finished game.
func (r *sqliteResultRepository) Record(ctx context.Context, result *GameResult) error {
	ctx, span := tracer.Start(ctx, "ResultRepository.Record", trace.WithAttributes(
		attribute.String("game.id", result.GameID),
		attribute.String("game.outcome", string(result.Outcome)),
	))
	defer span.End()

	query := `INSERT INTO game_results (game_id, board_size, cross_name, nought_name, outcome, turns, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		result.GameID,
		result.BoardSize,
		result.CrossName,
		result.NoughtName,
		string(result.Outcome),
		result.Turns,
		result.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to record game result")
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}

// Count returns how many games were recorded, aborted ones included.
func (r *sqliteResultRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "ResultRepository.Count")
	defer span.End()

	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM game_results`); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to count game results")
		return 0, fmt.Errorf("failed to count game results: %w", err)
	}
	return n, nil
}

// Standings returns wins, losses and draws per player name, best first.
// Aborted games are not counted.
func (r *sqliteResultRepository) Standings(ctx context.Context) ([]Standing, error) {
	ctx, span := tracer.Start(ctx, "ResultRepository.Standings")
	defer span.End()

	query := `
	SELECT name,
		SUM(CASE WHEN result = 'win' THEN 1 ELSE 0 END) AS wins,
		SUM(CASE WHEN result = 'loss' THEN 1 ELSE 0 END) AS losses,
		SUM(CASE WHEN result = 'draw' THEN 1 ELSE 0 END) AS draws
	FROM (
		SELECT cross_name AS name,
			CASE outcome WHEN 'cross' THEN 'win' WHEN 'nought' THEN 'loss' ELSE 'draw' END AS result
		FROM game_results WHERE outcome != 'aborted'
		UNION ALL
		SELECT nought_name AS name,
			CASE outcome WHEN 'nought' THEN 'win' WHEN 'cross' THEN 'loss' ELSE 'draw' END AS result
		FROM game_results WHERE outcome != 'aborted'
	)
	GROUP BY name
	ORDER BY wins DESC, draws DESC, name ASC`

	standings := []Standing{}
	if err := r.db.SelectContext(ctx, &standings, query); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load standings")
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	span.SetAttributes(attribute.Int("standings.count", len(standings)))
	return standings, nil
}
