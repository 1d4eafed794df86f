package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ctchen222/tictactoe-console/internal/config"
	"ctchen222/tictactoe-console/internal/db"
	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/player"
	"ctchen222/tictactoe-console/internal/repository"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	console *Console
	out     *bytes.Buffer
	results repository.ResultRepository
}

func newHarness(t *testing.T, input string, opts ...Option) *harness {
	t.Helper()

	pool, err := db.OpenSession(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	results := repository.NewResultRepository(pool)

	out := &bytes.Buffer{}
	cfg := config.Default()
	cfg.Render.Padding = 1
	c, err := New(cfg, strings.NewReader(input), termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii)), results, opts...)
	require.NoError(t, err)

	return &harness{console: c, out: out, results: results}
}

// scripted returns a mock player answering with addrs in order and quitting
// once they run out.
func scripted(ctrl *gomock.Controller, name string, addrs ...game.SquareAddress) *player.MockPlayer {
	p := player.NewMockPlayer(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().NextTurn(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *game.Board) (game.SquareAddress, error) {
			if len(addrs) == 0 {
				return game.SquareAddress{}, player.ErrQuit
			}
			next := addrs[0]
			addrs = addrs[1:]
			return next, nil
		},
	).AnyTimes()
	return p
}

func withPlayers(players ...player.Player) Option {
	byName := make(map[string]player.Player, len(players))
	for _, p := range players {
		byName[p.Name()] = p
	}
	return WithPlayerFactory(func(name string, _ *bufio.Reader, _ io.Writer) player.Player {
		return byName[name]
	})
}

func addr(row, column int) game.SquareAddress {
	return game.SquareAddress{Row: row, Column: column}
}

func TestConsole_Help(t *testing.T) {
	h := newHarness(t, "")

	stop, err := h.console.Execute(context.Background(), "help")
	require.NoError(t, err)
	assert.False(t, stop)

	for _, cmd := range commands {
		assert.Contains(t, h.out.String(), cmd.usage)
	}
}

func TestConsole_WithoutBoard(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "")

	_, err := h.console.Execute(ctx, "print_board")
	require.NoError(t, err)
	assert.Equal(t, "No Board\n", h.out.String())

	_, err = h.console.Execute(ctx, "start_game")
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestConsole_UnknownCommand(t *testing.T) {
	h := newHarness(t, "")

	stop, err := h.console.Execute(context.Background(), "resign now")
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, "*** Unknown syntax: resign now\n", h.out.String())
}

func TestConsole_EmptyLineAndExit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "")

	stop, err := h.console.Execute(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, stop)

	stop, err = h.console.Execute(ctx, "exit")
	require.NoError(t, err)
	assert.True(t, stop)
}

func TestConsole_InitGame(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		input      string
		wantSize   int
		wantOutput []string
		wantErr    bool
	}{
		{
			name:       "defaults",
			line:       "init_game",
			input:      "\n\n",
			wantSize:   3,
			wantOutput: []string{"Creating board of size 3", "Nought Player Name (player_1): ", "Cross Player Name (player_2): ", "player_1 versus player_2"},
		},
		{
			name:       "size and names",
			line:       "init_game 5",
			input:      "alice\n  bob \n",
			wantSize:   5,
			wantOutput: []string{"Creating board of size 5", "alice versus bob"},
		},
		{
			name:     "single square",
			line:     "init_game 1",
			input:    "\n\n",
			wantSize: 1,
		},
		{name: "zero size", line: "init_game 0", wantErr: true},
		{name: "too large", line: "init_game 27", wantErr: true},
		{name: "not a number", line: "init_game three", wantErr: true},
		{name: "too many arguments", line: "init_game 3 4", wantErr: true},
		{name: "input closed", line: "init_game", input: "alice\n", wantErr: true},
		{name: "name too long", line: "init_game", input: strings.Repeat("a", 33) + "\n\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input)

			_, err := h.console.Execute(context.Background(), tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, h.console.board)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, h.console.board)
			assert.Equal(t, tt.wantSize, h.console.board.Size())
			assert.Equal(t, game.Cross, h.console.board.CurrentSymbol())
			assert.NotEmpty(t, h.console.gameID)
			for _, want := range tt.wantOutput {
				assert.Contains(t, h.out.String(), want)
			}
		})
	}
}

func TestConsole_RunHumanGame(t *testing.T) {
	input := strings.Join([]string{
		"init_game",
		"alice", // nought
		"bob",   // cross
		"start_game",
		"0", "0",
		"1", "0",
		"0", "1",
		"1", "1",
		"0", "2",
		"score",
		"exit",
	}, "\n") + "\n"
	h := newHarness(t, input)

	require.NoError(t, h.console.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Its bob turn! (symbol=X)")
	assert.Contains(t, out, "Its alice turn! (symbol=O)")
	assert.Contains(t, out, "| X | X | X |")
	assert.Contains(t, out, "Congratulations bob, You have WON the game!")
	assert.Regexp(t, `bob\s+1\s+0\s+0`, out)
	assert.Regexp(t, `alice\s+0\s+1\s+0`, out)

	status := h.console.board.Status()
	assert.Equal(t, game.Won, status)
}

func TestConsole_Tie(t *testing.T) {
	ctrl := gomock.NewController(t)
	cross := scripted(ctrl, "bob", addr(0, 0), addr(0, 2), addr(2, 1), addr(1, 0))
	nought := scripted(ctrl, "alice", addr(1, 1), addr(0, 1), addr(1, 2), addr(2, 0))
	h := newHarness(t, "alice\nbob\n", withPlayers(cross, nought))
	ctx := context.Background()

	_, err := h.console.Execute(ctx, "init_game")
	require.NoError(t, err)
	_, err = h.console.Execute(ctx, "start_game")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "board is not winnable")
	assert.Contains(t, out, "Its a tie!")
	assert.NotContains(t, out, "Congratulations")
	assert.Equal(t, 8, h.console.board.FullSquaresAmount())

	standings, err := h.results.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repository.Standing{
		{Name: "alice", Draws: 1},
		{Name: "bob", Draws: 1},
	}, standings)
}

func TestConsole_RejectedTurnsAndQuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cross := scripted(ctrl, "bob", addr(0, 0))
	nought := scripted(ctrl, "alice", addr(0, 0), addr(5, 5), addr(-1, 0), addr(1, 1))
	h := newHarness(t, "alice\nbob\n", withPlayers(cross, nought))
	ctx := context.Background()

	_, err := h.console.Execute(ctx, "init_game")
	require.NoError(t, err)
	_, err = h.console.Execute(ctx, "start_game")
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "can't add symbol O to (0, 0) because the address is already in use by X")
	assert.Contains(t, out, "the address (5, 5) is invalid (negative or exceeds board size 3)")
	assert.Contains(t, out, "the address (-1, 0) is invalid (negative or exceeds board size 3)")
	assert.Contains(t, out, "Game was terminated by bob")
	assert.Equal(t, 2, h.console.board.FullSquaresAmount())

	n, err := h.results.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	standings, err := h.results.Standings(ctx)
	require.NoError(t, err)
	assert.Empty(t, standings)

	h.out.Reset()
	_, err = h.console.Execute(ctx, "start_game")
	require.NoError(t, err)
	assert.Equal(t, "Game is over (use init_game to start a new one)\n", h.out.String())
}

func TestConsole_PlayerFailureAbortsGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	readErr := errors.New("terminal gone")

	cross := player.NewMockPlayer(ctrl)
	cross.EXPECT().Name().Return("bob").AnyTimes()
	cross.EXPECT().NextTurn(gomock.Any(), gomock.Any()).Return(game.SquareAddress{}, readErr)
	nought := scripted(ctrl, "alice")

	h := newHarness(t, "alice\nbob\n", withPlayers(cross, nought))
	ctx := context.Background()

	_, err := h.console.Execute(ctx, "init_game")
	require.NoError(t, err)
	_, err = h.console.Execute(ctx, "start_game")
	require.ErrorIs(t, err, readErr)

	n, err := h.results.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestConsole_ScoreAcrossGames(t *testing.T) {
	ctrl := gomock.NewController(t)
	// Nought wins the first game on the middle row, cross the second on the bottom row.
	first := []player.Player{
		scripted(ctrl, "bob", addr(0, 0), addr(0, 1), addr(2, 2)),
		scripted(ctrl, "alice", addr(1, 0), addr(1, 1), addr(1, 2)),
	}
	second := []player.Player{
		scripted(ctrl, "carol", addr(2, 0), addr(2, 1), addr(2, 2)),
		scripted(ctrl, "alice", addr(0, 0), addr(1, 1)),
	}

	games := [][]player.Player{first, second}
	created := 0
	factory := func(name string, _ *bufio.Reader, _ io.Writer) player.Player {
		g := games[created/2]
		created++
		for _, p := range g {
			if p.Name() == name {
				return p
			}
		}
		return nil
	}

	h := newHarness(t, "alice\nbob\nalice\ncarol\n", WithPlayerFactory(factory))
	ctx := context.Background()

	for range games {
		_, err := h.console.Execute(ctx, "init_game")
		require.NoError(t, err)
		_, err = h.console.Execute(ctx, "start_game")
		require.NoError(t, err)
	}
	assert.Contains(t, h.out.String(), "Congratulations alice, You have WON the game!")
	assert.Contains(t, h.out.String(), "Congratulations carol, You have WON the game!")

	h.out.Reset()
	_, err := h.console.Execute(ctx, "score")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^PLAYER\s+WINS\s+LOSSES\s+DRAWS$`, lines[0])
	assert.Regexp(t, `^alice\s+1\s+1\s+0$`, lines[1])
	assert.Regexp(t, `^carol\s+1\s+0\s+0$`, lines[2])
	assert.Regexp(t, `^bob\s+0\s+1\s+0$`, lines[3])
}

func TestConsole_ScoreWithoutGames(t *testing.T) {
	h := newHarness(t, "")

	_, err := h.console.Execute(context.Background(), "score")
	require.NoError(t, err)
	assert.Equal(t, "No games finished yet\n", h.out.String())
}

func TestConsole_RunStopsOnEOF(t *testing.T) {
	h := newHarness(t, "print_board")

	require.NoError(t, h.console.Run(context.Background()))
	assert.Contains(t, h.out.String(), intro)
	assert.Contains(t, h.out.String(), prompt+"No Board")
}

func TestConsole_RunReportsCommandErrors(t *testing.T) {
	h := newHarness(t, "start_game\nexit\n")

	require.NoError(t, h.console.Run(context.Background()))
	assert.Contains(t, h.out.String(), "*** game was not initialized (use init_game)")
}

func TestConsole_RunCanceled(t *testing.T) {
	h := newHarness(t, "help\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.console.Run(ctx), context.Canceled)
}
