package engine

import (
	"errors"
	"testing"

	"crosses/board"
	"crosses/cell"
	"crosses/experiments/metrics"
	"crosses/game"

	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, width, height int) *game.Game {
	t.Helper()
	g, err := game.NewStandard(width, height, 3)
	require.NoError(t, err)
	return g
}

func moveList(r Result) []board.Index {
	moves := make([]board.Index, 0, len(r.Moves))
	for _, m := range r.Moves {
		moves = append(moves, board.Index{X: m.X, Y: m.Y})
	}
	return moves
}

// requireConsistent checks that every counter matches the sources around
// its cell and that liveness and scratch flags agree with the board.
func requireConsistent(t *testing.T, b *board.Board) {
	t.Helper()
	maxX, maxY := b.Size()
	for x := 0; x < maxX; x++ {
		for y := 0; y < maxY; y++ {
			idx := board.Index{X: x, Y: y}
			c := b.Get(idx)
			require.False(t, c.Checked(), "%s should be unchecked", idx)

			saturated := false
			for _, p := range []cell.Player{cell.Blue, cell.Red} {
				sources := 0
				for _, n := range board.Adjacent(idx) {
					nc := b.Get(n)
					if (nc.Kind() == cell.Cross || nc.Kind() == cell.Filled && nc.Alive()) && nc.Owner() == p {
						sources++
					}
				}
				require.Equal(t, min(sources, cell.MaxActivation), int(c.Activation(p)), "%s activation of %s", p, idx)
				saturated = saturated || c.Activation(p) == cell.MaxActivation
			}
			require.Equal(t, saturated, c.Overheated(), "%s overheat flag", idx)

			if c.Kind() == cell.Filled {
				owner := c.Owner()
				_, supported := b.Search(idx, func(b *board.Board, n board.Index) (board.Index, bool) {
					nc := b.Get(n)
					return n, nc.Kind() == cell.Cross && nc.Owner() == owner
				})
				require.Equal(t, supported, c.Alive(), "%s liveness", idx)
			}
		}
	}
}

func TestRun(t *testing.T) {
	t.Run("plays a game to the end", func(t *testing.T) {
		g := newGame(t, 10, 10)

		result, err := Local(g, WithSeed(1)).Run()
		require.NoError(t, err)

		require.NotNil(t, result.Over, "Random play on a finite board should finish")
		winner, ok := result.Winner()
		require.True(t, ok)
		require.Equal(t, result.Over.Loser.Opponent(), winner)
		require.Equal(t, winner.String(), result.Game.Winner)
		require.Equal(t, g.CurrentMove(), result.Game.TotalMoves)
		require.Len(t, result.Moves, result.Game.TotalMoves)
		require.Equal(t, "blue", result.Game.StartingPlayer)

		_, ended := g.Ended()
		require.True(t, ended)
		require.ErrorAs(t, g.MakeMove(0, 1), &result.Over, "Finished game should refuse moves")
		requireConsistent(t, g.Board())
	})

	t.Run("same seed same game", func(t *testing.T) {
		first, err := Local(newGame(t, 8, 8), WithSeed(7)).Run()
		require.NoError(t, err)
		second, err := Local(newGame(t, 8, 8), WithSeed(7)).Run()
		require.NoError(t, err)

		require.Equal(t, moveList(first), moveList(second))
		require.Equal(t, *first.Over, *second.Over)
	})

	t.Run("stops at the move limit", func(t *testing.T) {
		g := newGame(t, 10, 10)

		result, err := Local(g, WithSeed(3), WithMaxMoves(5)).Run()
		require.NoError(t, err)

		require.Nil(t, result.Over)
		_, ok := result.Winner()
		require.False(t, ok)
		require.Len(t, result.Moves, 5)
		require.Equal(t, 5, g.CurrentMove())
		require.Empty(t, result.Game.Winner)
	})

	t.Run("records captures and options", func(t *testing.T) {
		g := newGame(t, 6, 6)

		result, err := Local(g, WithSeed(11)).Run()
		require.NoError(t, err)

		for i, m := range result.Moves {
			require.Equal(t, i, m.Step)
			require.Positive(t, m.Options, "Move %d had no options", i)
			kind := g.Board().Get(board.Index{X: m.X, Y: m.Y}).Kind()
			if m.Capture {
				require.Equal(t, cell.Filled, kind, "Captured cells stay filled")
			}
		}
	})
}

func TestRunWithRewind(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		plain := newGame(t, 7, 7)
		expected, err := Local(plain, WithSeed(seed)).Run()
		require.NoError(t, err)

		rewound := newGame(t, 7, 7)
		result, err := Local(rewound, WithSeed(seed), WithRewind(1)).Run()
		require.NoError(t, err)

		require.Equal(t, moveList(expected), moveList(result), "Rewinding should not change the game, seed %d", seed)
		require.Equal(t, result.Game.TotalMoves, result.Game.Rewinds)
		require.Equal(t, plain.Board().String(), rewound.Board().String())
		require.Equal(t, plain.Board().MovesCounter, rewound.Board().MovesCounter)
		requireConsistent(t, rewound.Board())
	}
}

// firstMove always plays the first legal move.
type firstMove struct {
	calls int
	err   error
}

func (a *firstMove) FindMove(g *game.Game) (board.Index, metrics.SearchMetric, error) {
	a.calls++
	if a.err != nil {
		return board.Index{}, metrics.SearchMetric{}, a.err
	}
	return g.Board().LegalMoves(g.CurrentPlayer())[0], metrics.SearchMetric{Episodes: a.calls}, nil
}

func TestRunWithAgent(t *testing.T) {
	t.Run("agent moves for its player only", func(t *testing.T) {
		g := newGame(t, 8, 8)
		agent := &firstMove{}

		result, err := Local(g, WithSeed(2), WithAgent(cell.Red, agent)).Run()
		require.NoError(t, err)

		replay := newGame(t, 8, 8)
		redMoves := 0
		for _, m := range result.Moves {
			if m.Player == cell.Red.String() {
				redMoves++
				require.Equal(t, replay.Board().LegalMoves(cell.Red)[0], board.Index{X: m.X, Y: m.Y}, "Step %d", m.Step)
				require.Equal(t, redMoves, m.Search.Episodes, "Search metrics should be recorded")
			} else {
				require.Zero(t, m.Search.Episodes, "Random moves carry no search metrics")
			}
			require.NoError(t, replay.MakeMove(m.X, m.Y))
		}
		require.Equal(t, redMoves, agent.calls)
		require.Positive(t, redMoves)
	})

	t.Run("agent errors stop the game", func(t *testing.T) {
		boom := errors.New("boom")
		g := newGame(t, 8, 8)

		_, err := Local(g, WithAgent(cell.Blue, &firstMove{err: boom})).Run()

		require.ErrorIs(t, err, boom)
		require.Equal(t, 0, g.CurrentMove())
	})
}
