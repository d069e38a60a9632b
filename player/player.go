package player

import (
	"fmt"

	"crosses/cell"
)

type LoseReason int

const (
	NoCrosses LoseReason = iota + 1
	NoMoves
)

func (r LoseReason) String() string {
	switch r {
	case NoCrosses:
		return "no crosses left"
	case NoMoves:
		return "no moves left"
	default:
		return fmt.Sprintf("LoseReason(%d)", int(r))
	}
}

// GameOver is the result of a finished game. It is returned as an error by
// sessions that refuse to go on.
type GameOver struct {
	Loser  cell.Player `json:"loser"`
	Reason LoseReason  `json:"reason"`
	AtMove int         `json:"at_move"`
}

func (g *GameOver) Error() string {
	return fmt.Sprintf("game over at move %d: %s lost with %s", g.AtMove, g.Loser, g.Reason)
}

func (g *GameOver) Winner() cell.Player {
	return g.Loser.Opponent()
}

// Manager hands out turns of MovesPerTurn consecutive moves, starting with
// blue, and decides when the player to move has lost.
type Manager struct {
	MovesPerTurn int       `json:"moves_per_turn"`
	Move         int       `json:"move"`
	Result       *GameOver `json:"result,omitempty"`
}

func NewManager(movesPerTurn int) *Manager {
	if movesPerTurn < 1 {
		panic(fmt.Sprintf("player: %d moves per turn", movesPerTurn))
	}
	return &Manager{MovesPerTurn: movesPerTurn}
}

func (m *Manager) CurrentMove() int {
	return m.Move
}

// PlayerAt returns the player who makes the given move.
func (m *Manager) PlayerAt(move int) cell.Player {
	return cell.Player((move / m.MovesPerTurn) % 2)
}

func (m *Manager) CurrentPlayer() cell.Player {
	return m.PlayerAt(m.Move)
}

func (m *Manager) Ended() (GameOver, bool) {
	if m.Result == nil {
		return GameOver{}, false
	}
	return *m.Result, true
}

// Advance counts a played move and checks whether the player now to move
// has lost.
func (m *Manager) Advance(noMoves, noCrosses func(cell.Player) bool) {
	m.Move++
	p := m.CurrentPlayer()
	switch {
	case noCrosses(p):
		m.Result = &GameOver{Loser: p, Reason: NoCrosses, AtMove: m.Move}
	case noMoves(p):
		m.Result = &GameOver{Loser: p, Reason: NoMoves, AtMove: m.Move}
	}
}

// Reverse steps back one move, reopening a game decided after it.
func (m *Manager) Reverse() {
	if m.Move == 0 {
		return
	}
	m.Move--
	if m.Result != nil && m.Result.AtMove > m.Move {
		m.Result = nil
	}
}
