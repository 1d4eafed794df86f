package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ctchen222/tictactoe-console/internal/config"
	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/player"
	"ctchen222/tictactoe-console/internal/render"
	"ctchen222/tictactoe-console/internal/repository"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel"
)

const (
	prompt = "(tictactoe) "
	intro  = "Welcome to Tic-Tac-Toe. Type help to list commands."
)

var tracer = otel.Tracer("console")

// PlayerFactory creates the player that will answer for name.
type PlayerFactory func(name string, in *bufio.Reader, out io.Writer) player.Player

// HumanPlayers is the default PlayerFactory.
func HumanPlayers(name string, in *bufio.Reader, out io.Writer) player.Player {
	return player.NewHumanPlayer(name, in, out)
}

type command struct {
	name  string
	usage string
	help  string
	run   func(c *Console, ctx context.Context, args []string) (bool, error)
}

var commands []command

func init() {
	commands = []command{
		{"init_game", "init_game [size]", "create a new board and name both players", (*Console).initGame},
		{"start_game", "start_game", "play the initialized game until it ends", (*Console).startGame},
		{"print_board", "print_board", "print the current board", (*Console).printBoard},
		{"score", "score", "print the standings of this session", (*Console).score},
		{"clear", "clear", "clear the screen", (*Console).clear},
		{"help", "help", "list the commands", (*Console).help},
		{"exit", "exit", "leave the game", (*Console).exit},
	}
}

// Option configures a Console.
type Option func(*Console)

// WithPlayerFactory replaces the factory used by init_game.
func WithPlayerFactory(f PlayerFactory) Option {
	return func(c *Console) {
		c.newPlayer = f
	}
}

// Console is the interactive command loop. It is not safe for concurrent use.
type Console struct {
	cfg       config.Config
	in        *bufio.Reader
	out       *termenv.Output
	renderer  *render.Renderer
	results   repository.ResultRepository
	newPlayer PlayerFactory
	metrics   *metrics

	board    *game.Board
	gameID   string
	cross    player.Player
	nought   player.Player
	recorded bool
}

// New creates a console reading commands from in and writing to out.
func New(cfg config.Config, in io.Reader, out *termenv.Output, results repository.ResultRepository, opts ...Option) (*Console, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	c := &Console{
		cfg:       cfg,
		in:        bufio.NewReader(in),
		out:       out,
		renderer:  render.NewRenderer(out, cfg.Render),
		results:   results,
		newPlayer: HumanPlayers,
		metrics:   m,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run reads and executes commands until exit, end of input or until ctx is
// done. Command failures are reported and the loop continues.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, intro)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, prompt)

		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		stop, err := c.Execute(ctx, line)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			slog.ErrorContext(ctx, "command failed", "command", line, "error", err)
			fmt.Fprintf(c.out, "*** %v\n", err)
		}
		if stop {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the loop should
// stop.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := fields[0], fields[1:]
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(c, ctx, args)
		}
	}
	fmt.Fprintf(c.out, "*** Unknown syntax: %s\n", line)
	return false, nil
}

// readLine returns the next line without its line ending. io.EOF is only
// returned when nothing was left to read.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) playerFor(s game.Symbol) player.Player {
	if s == game.Cross {
		return c.cross
	}
	return c.nought
}
