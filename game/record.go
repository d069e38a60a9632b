package game

import (
	"encoding/json"
	"fmt"
	"io"

	"crosses/board"
	"crosses/player"
)

type record struct {
	Board   *board.Board    `json:"board"`
	Players *player.Manager `json:"players"`
	Log     []board.Index   `json:"log"`
}

// Save writes the session as JSON. Only games driven by a player.Manager can
// be saved.
func (g *Game) Save(w io.Writer) error {
	m, ok := g.players.(*player.Manager)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsaveable, g.players)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record{Board: g.board, Players: m, Log: g.log}); err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	return nil
}

// Load reads a session written by Save.
func Load(r io.Reader) (*Game, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if rec.Board == nil || rec.Players == nil {
		return nil, fmt.Errorf("%w: missing board or players", ErrInvalidRecord)
	}
	if rec.Players.MovesPerTurn < 1 {
		return nil, fmt.Errorf("%w: %d moves per turn", ErrInvalidRecord, rec.Players.MovesPerTurn)
	}
	if rec.Players.Move < 0 || rec.Players.Move > len(rec.Log) {
		return nil, fmt.Errorf("%w: move %d with %d logged moves", ErrInvalidRecord, rec.Players.Move, len(rec.Log))
	}
	for _, idx := range rec.Log {
		if !rec.Board.InBounds(idx) {
			return nil, fmt.Errorf("%w: logged move %s is off the board", ErrInvalidRecord, idx)
		}
	}
	return &Game{board: rec.Board, players: rec.Players, log: rec.Log}, nil
}
