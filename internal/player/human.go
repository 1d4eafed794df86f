package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ctchen222/tictactoe-console/internal/game"
)

// ExitChar typed at either prompt ends the game.
const ExitChar = "q"

// HumanPlayer asks for a row and a column on out and reads them from in.
type HumanPlayer struct {
	name string
	in   *bufio.Reader
	out  io.Writer
}

// NewHumanPlayer creates a player reading from in. The reader is shared with
// the caller so buffered input is not lost between prompts.
func NewHumanPlayer(name string, in *bufio.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{name: name, in: in, out: out}
}

func (h *HumanPlayer) Name() string {
	return h.name
}

// NextTurn prompts until both coordinates parse as decimal numbers. Range
// checking is left to the board.
func (h *HumanPlayer) NextTurn(ctx context.Context, _ *game.Board) (game.SquareAddress, error) {
	for {
		row, err := h.ask(ctx, "Row: ")
		if err != nil {
			return game.SquareAddress{}, err
		}
		column, err := h.ask(ctx, "Column: ")
		if err != nil {
			return game.SquareAddress{}, err
		}

		r, rowErr := strconv.Atoi(row)
		c, colErr := strconv.Atoi(column)
		if rowErr != nil || colErr != nil {
			fmt.Fprintln(h.out, "column and row must be a decimal number")
			continue
		}
		return game.SquareAddress{Row: r, Column: c}, nil
	}
}

func (h *HumanPlayer) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(h.out, prompt)

	line, err := h.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", fmt.Errorf("%s stopped answering: %w", h.name, io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("failed to read turn for %s: %w", h.name, err)
	}

	answer := strings.TrimSpace(line)
	if answer == ExitChar {
		return "", ErrQuit
	}
	return answer, nil
}
