package render

import (
	"io"
	"strings"

	"ctchen222/tictactoe-console/internal/config"
	"ctchen222/tictactoe-console/internal/game"

	"github.com/muesli/termenv"
)

// Renderer draws a board as a bordered table, one cell per square.
type Renderer struct {
	out     *termenv.Output
	padding int
	color   bool
	cross   termenv.Color
	nought  termenv.Color
}

// NewRenderer creates a renderer for out. Colors are only emitted when
// enabled in cfg and supported by the terminal profile of out.
func NewRenderer(out *termenv.Output, cfg config.RenderConfig) *Renderer {
	return &Renderer{
		out:     out,
		padding: cfg.Padding,
		color:   cfg.Color,
		cross:   out.Color(cfg.CrossColor),
		nought:  out.Color(cfg.NoughtColor),
	}
}

// Render writes the table for b to the renderer's output.
func (r *Renderer) Render(b *game.Board) error {
	_, err := io.WriteString(r.out, r.String(b))
	return err
}

// String returns the table for b:
//
//	+-----+-----+
//	|  X  |  O  |
//	+-----+-----+
//	|     |  X  |
//	+-----+-----+
func (r *Renderer) String(b *game.Board) string {
	width := 2*r.padding + 1
	pad := strings.Repeat(" ", r.padding)
	border := "+" + strings.Repeat(strings.Repeat("-", width)+"+", b.Size()) + "\n"

	var sb strings.Builder
	sb.WriteString(border)
	for _, row := range b.Rows() {
		sb.WriteString("|")
		for _, v := range row {
			sb.WriteString(pad)
			sb.WriteString(r.cell(v))
			sb.WriteString(pad)
			sb.WriteString("|")
		}
		sb.WriteString("\n")
		sb.WriteString(border)
	}
	return sb.String()
}

func (r *Renderer) cell(v game.SquareValue) string {
	switch v {
	case game.CrossSquare:
		return r.style(string(v), r.cross)
	case game.NoughtSquare:
		return r.style(string(v), r.nought)
	}
	return " "
}

func (r *Renderer) style(s string, c termenv.Color) string {
	if !r.color {
		return s
	}
	return r.out.String(s).Foreground(c).Bold().String()
}
