package game

// Status is the phase a board is in.
type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
	Drawn      Status = "drawn"
)

// ClassicSize is the size of a standard Tic-Tac-Toe board.
const ClassicSize = 3

// Board is an N x N Tic-Tac-Toe board with a turn cursor.
//
// A Board is not safe for concurrent use: calls to PlayTurn must be
// serialized by the caller. Queries only read.
type Board struct {
	size    int
	squares []SquareValue // row-major
	current Symbol
	filled  int
}

// NewBoard creates an empty board of the given size where starting plays first.
func NewBoard(size int, starting Symbol) (*Board, error) {
	if size <= 0 || !starting.Valid() {
		return nil, &ConfigurationError{Size: size, Starting: starting}
	}

	return &Board{
		size:    size,
		squares: make([]SquareValue, size*size),
		current: starting,
	}, nil
}

// NewClassicBoard creates a 3x3 board where Cross plays first.
func NewClassicBoard() *Board {
	b, _ := NewBoard(ClassicSize, Cross)
	return b
}

// Size returns N for an N x N board.
func (b *Board) Size() int {
	return b.size
}

// CurrentSymbol returns the symbol the next turn will place.
func (b *Board) CurrentSymbol() Symbol {
	return b.current
}

// SquaresAmount returns the total number of squares.
func (b *Board) SquaresAmount() int {
	return b.size * b.size
}

// FullSquaresAmount returns the number of occupied squares.
func (b *Board) FullSquaresAmount() int {
	return b.filled
}

// IsLastTurn reports whether exactly one square is still empty.
func (b *Board) IsLastTurn() bool {
	return b.SquaresAmount()-b.filled == 1
}

// Contains reports whether addr lies on the board.
func (b *Board) Contains(addr SquareAddress) bool {
	return addr.Row >= 0 && addr.Row < b.size && addr.Column >= 0 && addr.Column < b.size
}

// Square returns the value at addr. ok is false when addr is off the board.
func (b *Board) Square(addr SquareAddress) (v SquareValue, ok bool) {
	if !b.Contains(addr) {
		return Empty, false
	}
	return b.squares[b.index(addr)], true
}

// Rows returns a copy of the grid, one slice per row.
func (b *Board) Rows() [][]SquareValue {
	rows := make([][]SquareValue, b.size)
	for r := range rows {
		rows[r] = make([]SquareValue, b.size)
		copy(rows[r], b.squares[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Status reports whether the game is still going, won, or drawn.
func (b *Board) Status() Status {
	if b.HasWinner() {
		return Won
	}
	if !b.IsWinnable() {
		return Drawn
	}
	return InProgress
}

// PlayTurn places the current symbol at addr and passes the turn.
// On error the board is left untouched.
func (b *Board) PlayTurn(addr SquareAddress) error {
	if err := b.validateTurn(addr); err != nil {
		return err
	}

	b.squares[b.index(addr)] = b.current.Square()
	b.filled++
	b.current = b.current.Opponent()
	return nil
}

func (b *Board) validateTurn(addr SquareAddress) error {
	if winner, ok := b.Winner(); ok {
		return &GameOverError{Address: addr, Symbol: b.current, Winner: winner}
	}
	if !b.IsWinnable() {
		return &GameOverError{Address: addr, Symbol: b.current, Drawn: true}
	}
	if !b.Contains(addr) {
		return &InvalidAddressError{Address: addr, Symbol: b.current, Size: b.size}
	}
	if occupant := b.squares[b.index(addr)]; occupant != Empty {
		return &SquareInUseError{Address: addr, Symbol: b.current, Occupant: occupant}
	}
	return nil
}

func (b *Board) index(addr SquareAddress) int {
	return addr.Row*b.size + addr.Column
}
