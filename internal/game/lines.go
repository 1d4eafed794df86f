package game

// Line is a set of addresses that wins the game when all of them hold the
// same player's symbol.
type Line []SquareAddress

// Lines returns every winning line of the board: the rows, the columns, the
// main diagonal and the anti-diagonal, 2N+2 in total.
func (b *Board) Lines() []Line {
	n := b.size
	lines := make([]Line, 0, 2*n+2)
	for pos := 0; pos < n; pos++ {
		row := make(Line, n)
		col := make(Line, n)
		for i := 0; i < n; i++ {
			row[i] = SquareAddress{Row: pos, Column: i}
			col[i] = SquareAddress{Row: i, Column: pos}
		}
		lines = append(lines, row, col)
	}

	diag := make(Line, n)
	anti := make(Line, n)
	for pos := 0; pos < n; pos++ {
		diag[pos] = SquareAddress{Row: pos, Column: pos}
		anti[pos] = SquareAddress{Row: n - 1 - pos, Column: pos}
	}
	return append(lines, diag, anti)
}

// lineContent summarizes the distinct values found on a line.
type lineContent struct {
	cross, nought, empty bool
}

func (b *Board) content(line Line) lineContent {
	var c lineContent
	for _, addr := range line {
		switch b.squares[b.index(addr)] {
		case CrossSquare:
			c.cross = true
		case NoughtSquare:
			c.nought = true
		default:
			c.empty = true
		}
	}
	return c
}

// alive reports whether at most one player's symbol is on the line.
func (c lineContent) alive() bool {
	return !(c.cross && c.nought)
}

// only reports whether no symbol other than s is on the line.
func (c lineContent) only(s Symbol) bool {
	if s == Cross {
		return !c.nought
	}
	return !c.cross
}

// Winner returns the symbol filling an entire line, if any.
func (b *Board) Winner() (Symbol, bool) {
	for _, line := range b.Lines() {
		c := b.content(line)
		if c.empty || !c.alive() {
			continue
		}
		if c.cross {
			return Cross, true
		}
		return Nought, true
	}
	return Symbol{}, false
}

// HasWinner reports whether some line is filled by one symbol.
func (b *Board) HasWinner() bool {
	_, ok := b.Winner()
	return ok
}

// IsWinnable reports whether some sequence of legal turns can still produce
// a winner. It is false on a forced draw, even when empty squares remain.
//
// A line holding both symbols is dead. On the last turn only the current
// player moves again, so a line only counts if it carries no symbol other
// than the current one.
func (b *Board) IsWinnable() bool {
	if b.HasWinner() {
		return true
	}

	lastTurn := b.IsLastTurn()
	for _, line := range b.Lines() {
		c := b.content(line)
		if !c.alive() {
			continue
		}
		if !lastTurn || c.only(b.current) {
			return true
		}
	}
	return false
}
