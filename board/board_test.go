package board

import (
	"encoding/json"
	"testing"

	"crosses/cell"

	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, maxX, maxY int) *Board {
	t.Helper()
	b, err := New(maxX, maxY)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Run("seeds opposite corners", func(t *testing.T) {
		b := newBoard(t, 10, 10)

		seedBlue := b.Get(Index{0, 0})
		require.Equal(t, cell.Cross, seedBlue.Kind())
		require.Equal(t, cell.Blue, seedBlue.Owner())
		seedRed := b.Get(Index{9, 9})
		require.Equal(t, cell.Cross, seedRed.Kind())
		require.Equal(t, cell.Red, seedRed.Owner())

		require.Equal(t, [2]int{0, 0}, b.MovesCounter)
		require.Equal(t, [2]int{1, 1}, b.CrossesCounter)
	})

	t.Run("seeds activate their neighbourhood", func(t *testing.T) {
		b := newBoard(t, 10, 10)

		for _, idx := range []Index{{1, 0}, {0, 1}, {1, 1}} {
			require.True(t, b.Get(idx).IsActive(cell.Blue), "%s should be reachable for blue", idx)
			require.False(t, b.Get(idx).IsActive(cell.Red), "%s should not be reachable for red", idx)
		}
		require.True(t, b.Get(Index{8, 8}).IsActive(cell.Red))
		require.False(t, b.Get(Index{2, 2}).IsActive(cell.Blue))
	})

	t.Run("everything else is empty", func(t *testing.T) {
		b := newBoard(t, 3, 2)
		require.Equal(t, cell.Empty, b.Get(Index{1, 0}).Kind())
		require.Equal(t, cell.Empty, b.Get(Index{2, 0}).Kind())
	})

	t.Run("rejects bad sizes", func(t *testing.T) {
		for _, size := range [][2]int{{1, 5}, {5, 1}, {0, 0}, {Capacity + 1, 4}} {
			_, err := New(size[0], size[1])
			require.ErrorIs(t, err, ErrInvalidSize, "size %v should be rejected", size)
		}
	})
}

func TestGet(t *testing.T) {
	b := newBoard(t, 4, 3)

	t.Run("out of range reads as border", func(t *testing.T) {
		for _, idx := range []Index{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {Capacity, Capacity}} {
			require.Equal(t, cell.Border, b.Get(idx).Kind(), "%s should be a border", idx)
		}
	})

	t.Run("mutable access outside panics", func(t *testing.T) {
		require.Panics(t, func() { b.At(Index{4, 0}) })
	})

	t.Run("mutable access writes through", func(t *testing.T) {
		b.At(Index{2, 1}).SetOverheated(true)
		require.True(t, b.Get(Index{2, 1}).Overheated())
	})
}

func TestAdjacent(t *testing.T) {
	got := Adjacent(Index{5, 5})
	want := [8]Index{{4, 4}, {5, 4}, {6, 4}, {4, 5}, {6, 5}, {4, 6}, {5, 6}, {6, 6}}
	require.Equal(t, want, got, "Neighbours should follow NW, N, NE, W, E, SW, S, SE")
}

func TestLegalMoves(t *testing.T) {
	b := newBoard(t, 4, 4)

	require.Equal(t, []Index{{1, 0}, {0, 1}, {1, 1}}, b.LegalMoves(cell.Blue))
	require.Equal(t, []Index{{2, 2}, {3, 2}, {2, 3}}, b.LegalMoves(cell.Red))
	require.True(t, b.HasMove(cell.Blue))

	t.Run("legal moves are accepted", func(t *testing.T) {
		for _, idx := range b.LegalMoves(cell.Red) {
			probe := *b
			require.NoError(t, probe.MakeMove(idx, cell.Red), "%s should be playable", idx)
		}
	})

	t.Run("enemy crosses within reach are legal", func(t *testing.T) {
		require.NoError(t, b.MakeMove(Index{1, 1}, cell.Blue))
		require.NoError(t, b.MakeMove(Index{2, 2}, cell.Blue))
		require.Contains(t, b.LegalMoves(cell.Blue), Index{3, 3})
		require.NotContains(t, b.LegalMoves(cell.Blue), Index{1, 1}, "Own crosses are never legal")
	})
}

func TestString(t *testing.T) {
	b := newBoard(t, 3, 2)
	require.Equal(t, "x..\n..o\n", b.String())
}

func TestBoardJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := newBoard(t, 5, 4)
		require.NoError(t, b.MakeMove(Index{1, 1}, cell.Blue))
		require.NoError(t, b.MakeMove(Index{3, 2}, cell.Red))

		data, err := json.Marshal(b)
		require.NoError(t, err)

		var restored Board
		require.NoError(t, json.Unmarshal(data, &restored))
		require.Equal(t, *b, restored, "Restored board should match the original")

		require.NoError(t, restored.MakeMove(Index{2, 2}, cell.Blue))
		require.NoError(t, b.MakeMove(Index{2, 2}, cell.Blue))
		require.Equal(t, *b, restored, "Restored board should behave like the original")
	})

	t.Run("rejects bad records", func(t *testing.T) {
		records := map[string]string{
			"too small":      `{"max_x":1,"max_y":4,"cells":[["2000","2000","2000","2000"]]}`,
			"missing column": `{"max_x":2,"max_y":2,"cells":[["2000","2000"]]}`,
			"short column":   `{"max_x":2,"max_y":2,"cells":[["2000","2000"],["2000"]]}`,
			"border inside":  `{"max_x":2,"max_y":2,"cells":[["2000","0000"],["2000","2000"]]}`,
		}
		for name, data := range records {
			var b Board
			require.ErrorIs(t, json.Unmarshal([]byte(data), &b), ErrInvalidBoard, name)
		}
	})
}
