package player

//go:generate mockgen -source=player.go -destination=mock_player.go -package=player

import (
	"context"
	"errors"

	"ctchen222/tictactoe-console/internal/game"
)

// ErrQuit is returned by NextTurn when the player ends the game.
var ErrQuit = errors.New("player quit the game")

// Player produces the next turn for the board it is given.
type Player interface {
	Name() string
	NextTurn(ctx context.Context, board *game.Board) (game.SquareAddress, error)
}
