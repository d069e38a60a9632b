package game

import (
	"fmt"

	"crosses/board"
	"crosses/cell"
	"crosses/player"
)

// Position is a detached copy of a session's board and turn state for
// look-ahead. Copying a Position copies the whole game state; it keeps no log
// and does not log.
type Position struct {
	Board board.Board
	Turn  player.Manager
}

// Position snapshots the session. Only games driven by a player.Manager can
// be copied.
func (g *Game) Position() (Position, error) {
	m, ok := g.players.(*player.Manager)
	if !ok {
		return Position{}, fmt.Errorf("%w: %T", ErrUnsaveable, g.players)
	}
	return Position{Board: *g.board, Turn: *m}, nil
}

func (p *Position) CurrentPlayer() cell.Player {
	return p.Turn.CurrentPlayer()
}

func (p *Position) Ended() (player.GameOver, bool) {
	return p.Turn.Ended()
}

// LegalMoves is empty once the game is over.
func (p *Position) LegalMoves() []board.Index {
	if _, ended := p.Turn.Ended(); ended {
		return nil
	}
	return p.Board.LegalMoves(p.Turn.CurrentPlayer())
}

func (p *Position) Play(idx board.Index) error {
	if over, ended := p.Turn.Ended(); ended {
		return &over
	}
	if err := p.Board.MakeMove(idx, p.Turn.CurrentPlayer()); err != nil {
		return err
	}
	p.Turn.Advance(noMoves(&p.Board), noCrosses(&p.Board))
	return nil
}
