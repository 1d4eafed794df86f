package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTurn is matched by every error PlayTurn returns.
	ErrIllegalTurn = errors.New("illegal turn")
	// ErrInvalidConfiguration is matched by ConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid board configuration")
)

// ConfigurationError is returned by NewBoard for a non-positive size or an
// invalid starting symbol.
type ConfigurationError struct {
	Size     int
	Starting Symbol
}

func (e *ConfigurationError) Error() string {
	if e.Size <= 0 {
		return fmt.Sprintf("board size %d is lower or equal to zero", e.Size)
	}
	return fmt.Sprintf("starting symbol %s is not a player symbol", e.Starting)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// InvalidAddressError rejects an address outside the board.
type InvalidAddressError struct {
	Address SquareAddress
	Symbol  Symbol
	Size    int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("the address %s is invalid (negative or exceeds board size %d)", e.Address, e.Size)
}

func (e *InvalidAddressError) Is(target error) bool {
	return target == ErrIllegalTurn
}

// SquareInUseError rejects an address that is already occupied.
type SquareInUseError struct {
	Address  SquareAddress
	Symbol   Symbol
	Occupant SquareValue
}

func (e *SquareInUseError) Error() string {
	return fmt.Sprintf("can't add symbol %s to %s because the address is already in use by %s", e.Symbol, e.Address, e.Occupant)
}

func (e *SquareInUseError) Is(target error) bool {
	return target == ErrIllegalTurn
}

// GameOverError rejects any turn once the board has a winner or can no
// longer be won.
type GameOverError struct {
	Address SquareAddress
	Symbol  Symbol
	Winner  Symbol
	Drawn   bool
}

func (e *GameOverError) Error() string {
	if e.Drawn {
		return fmt.Sprintf("can't add symbol %s to %s because the game ended in a draw", e.Symbol, e.Address)
	}
	return fmt.Sprintf("can't add symbol %s to %s because %s already won", e.Symbol, e.Address, e.Winner)
}

func (e *GameOverError) Is(target error) bool {
	return target == ErrIllegalTurn
}
