package game

import (
	"fmt"
	"math/rand/v2"
)

// SquareValue is the content of a single square: a player's mark or nothing.
type SquareValue string

const (
	Empty        SquareValue = ""
	CrossSquare  SquareValue = "X"
	NoughtSquare SquareValue = "O"
)

// Symbol is a player's symbol. Only Cross and Nought are valid; the zero
// value is not, so a Symbol can never stand for an empty square.
type Symbol struct {
	square SquareValue
}

var (
	Cross  = Symbol{square: CrossSquare}
	Nought = Symbol{square: NoughtSquare}
)

// Valid reports whether s is Cross or Nought.
func (s Symbol) Valid() bool {
	return s == Cross || s == Nought
}

// Square returns the square value a turn by s places on the board.
func (s Symbol) Square() SquareValue {
	return s.square
}

// Opponent returns the other player's symbol.
func (s Symbol) Opponent() Symbol {
	if s == Cross {
		return Nought
	}
	return Cross
}

func (s Symbol) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return string(s.square)
}

// SymbolOf maps a non-empty square value back to its symbol.
func SymbolOf(v SquareValue) (Symbol, bool) {
	switch v {
	case CrossSquare:
		return Cross, true
	case NoughtSquare:
		return Nought, true
	}
	return Symbol{}, false
}

// ParseSymbol parses "X" or "O".
func ParseSymbol(s string) (Symbol, error) {
	if sym, ok := SymbolOf(SquareValue(s)); ok {
		return sym, nil
	}
	return Symbol{}, fmt.Errorf("unknown symbol %q", s)
}

// RandomSymbol picks the starting symbol at random.
func RandomSymbol() Symbol {
	if rand.IntN(2) == 0 {
		return Cross
	}
	return Nought
}

// SquareAddress is a (row, column) coordinate. It is not validated on its
// own; whether it is in range depends on the board size.
type SquareAddress struct {
	Row    int
	Column int
}

func (a SquareAddress) String() string {
	return fmt.Sprintf("(%d, %d)", a.Row, a.Column)
}
