package game

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"crosses/board"
	"crosses/player"

	"github.com/stretchr/testify/require"
)

func save(t *testing.T, g *Game) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))
	return buf.Bytes()
}

func TestSaveLoad(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		g := newGame(t, 6, 5, 2)
		play(t, g, board.Index{X: 1, Y: 1}, board.Index{X: 2, Y: 2}, board.Index{X: 4, Y: 3}, board.Index{X: 3, Y: 3})
		require.NoError(t, g.Back())

		loaded, err := Load(bytes.NewReader(save(t, g)))
		require.NoError(t, err)

		require.Equal(t, *g.Board(), *loaded.Board())
		require.Equal(t, g.Log(), loaded.Log())
		require.Equal(t, g.CurrentMove(), loaded.CurrentMove())
		require.Equal(t, g.CurrentPlayer(), loaded.CurrentPlayer())

		require.NoError(t, g.Forward())
		require.NoError(t, loaded.Forward(), "Replay history should survive saving")
		require.Equal(t, *g.Board(), *loaded.Board())
	})

	t.Run("keeps the result", func(t *testing.T) {
		g := newGame(t, 2, 2, 1)
		play(t, g, board.Index{X: 1, Y: 1})

		loaded, err := Load(bytes.NewReader(save(t, g)))
		require.NoError(t, err)

		over, ended := loaded.Ended()
		require.True(t, ended)
		require.Equal(t, player.NoMoves, over.Reason)
	})

	t.Run("other policies cannot be saved", func(t *testing.T) {
		b, err := board.New(4, 4)
		require.NoError(t, err)
		g := New(b, struct{ *player.Manager }{player.NewManager(3)})

		require.ErrorIs(t, g.Save(&bytes.Buffer{}), ErrUnsaveable)
	})
}

func TestLoadInvalid(t *testing.T) {
	g := newGame(t, 4, 4, 3)
	play(t, g, board.Index{X: 1, Y: 1})
	valid := save(t, g)

	edit := func(t *testing.T, change func(rec map[string]any)) string {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(valid, &rec))
		change(rec)
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		return string(data)
	}

	tests := map[string]string{
		"not json":    "{",
		"empty":       "{}",
		"bad board":   edit(t, func(rec map[string]any) { rec["board"] = map[string]any{"max_x": 1, "max_y": 1} }),
		"no turns":    edit(t, func(rec map[string]any) { rec["players"].(map[string]any)["moves_per_turn"] = 0 }),
		"cursor past": edit(t, func(rec map[string]any) { rec["players"].(map[string]any)["move"] = 2 }),
		"off board":   edit(t, func(rec map[string]any) { rec["log"] = []any{map[string]any{"x": 4, "y": 0}} }),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(data))
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}
