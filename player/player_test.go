package player

import (
	"testing"

	"crosses/cell"

	"github.com/stretchr/testify/require"
)

func never(cell.Player) bool { return false }

func TestPlayerAt(t *testing.T) {
	t.Run("three moves per turn", func(t *testing.T) {
		m := NewManager(3)
		var got []cell.Player
		for move := 0; move < 8; move++ {
			got = append(got, m.PlayerAt(move))
		}
		want := []cell.Player{cell.Blue, cell.Blue, cell.Blue, cell.Red, cell.Red, cell.Red, cell.Blue, cell.Blue}
		require.Equal(t, want, got, "Turns should alternate every three moves")
	})

	t.Run("single move turns", func(t *testing.T) {
		m := NewManager(1)
		require.Equal(t, cell.Blue, m.PlayerAt(0))
		require.Equal(t, cell.Red, m.PlayerAt(1))
		require.Equal(t, cell.Blue, m.PlayerAt(2))
	})

	t.Run("rejects empty turns", func(t *testing.T) {
		require.Panics(t, func() { NewManager(0) })
	})
}

func TestAdvance(t *testing.T) {
	t.Run("moves on without a loser", func(t *testing.T) {
		m := NewManager(3)
		for i := 0; i < 3; i++ {
			m.Advance(never, never)
		}
		require.Equal(t, 3, m.CurrentMove())
		require.Equal(t, cell.Red, m.CurrentPlayer())
		_, ended := m.Ended()
		require.False(t, ended)
	})

	t.Run("only the player to move is checked", func(t *testing.T) {
		m := NewManager(3)
		redStuck := func(p cell.Player) bool { return p == cell.Red }

		m.Advance(redStuck, never)
		_, ended := m.Ended()
		require.False(t, ended, "Blue is still to move")

		m.Advance(never, never)
		m.Advance(redStuck, never)
		over, ended := m.Ended()
		require.True(t, ended)
		require.Equal(t, GameOver{Loser: cell.Red, Reason: NoMoves, AtMove: 3}, over)
		require.Equal(t, cell.Blue, over.Winner())
	})

	t.Run("missing crosses take precedence", func(t *testing.T) {
		m := NewManager(1)
		always := func(cell.Player) bool { return true }

		m.Advance(always, always)

		over, ended := m.Ended()
		require.True(t, ended)
		require.Equal(t, NoCrosses, over.Reason)
		require.Equal(t, cell.Red, over.Loser)
		require.EqualError(t, &over, "game over at move 1: red lost with no crosses left")
	})
}

func TestReverse(t *testing.T) {
	t.Run("reopens a decided game", func(t *testing.T) {
		m := NewManager(1)
		m.Advance(never, never)
		m.Advance(never, func(p cell.Player) bool { return true })
		_, ended := m.Ended()
		require.True(t, ended)

		m.Reverse()

		require.Equal(t, 1, m.CurrentMove())
		_, ended = m.Ended()
		require.False(t, ended, "Stepping back before the result should reopen the game")
	})

	t.Run("stops at the first move", func(t *testing.T) {
		m := NewManager(3)
		m.Reverse()
		require.Equal(t, 0, m.CurrentMove())
	})
}
