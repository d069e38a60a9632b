package game

import (
	"fmt"

	"crosses/board"
	"crosses/cell"
	"crosses/player"

	"github.com/rs/zerolog/log"
)

// Policy decides whose move it is and when the game is over.
type Policy interface {
	CurrentMove() int
	CurrentPlayer() cell.Player
	PlayerAt(move int) cell.Player
	Ended() (player.GameOver, bool)
	// Advance counts a played move. The predicates describe the board after
	// the move.
	Advance(noMoves, noCrosses func(cell.Player) bool)
	Reverse()
}

// Game is a session: a board, the policy driving it and the log of moves
// played so far. Moves after the cursor can be replayed with Forward until a
// different move is made.
type Game struct {
	board   *board.Board
	players Policy
	log     []board.Index
}

func New(b *board.Board, players Policy) *Game {
	return &Game{
		board:   b,
		players: players,
	}
}

// NewStandard starts a game on a fresh board with the default turn policy.
func NewStandard(width, height, movesPerTurn int) (*Game, error) {
	b, err := board.New(width, height)
	if err != nil {
		return nil, err
	}
	return New(b, player.NewManager(movesPerTurn)), nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) CurrentPlayer() cell.Player {
	return g.players.CurrentPlayer()
}

func (g *Game) CurrentMove() int {
	return g.players.CurrentMove()
}

func (g *Game) Ended() (player.GameOver, bool) {
	return g.players.Ended()
}

// Log returns a copy of the move log, including moves past the cursor.
func (g *Game) Log() []board.Index {
	return append([]board.Index(nil), g.log...)
}

func (g *Game) CanBack() bool {
	return g.players.CurrentMove() > 0
}

func (g *Game) CanForward() bool {
	return g.players.CurrentMove() < len(g.log)
}

// MakeMove plays (x, y) for the player to move. Moves past the cursor are
// forgotten.
func (g *Game) MakeMove(x, y int) error {
	if over, ended := g.players.Ended(); ended {
		return &over
	}
	idx := board.Index{X: x, Y: y}
	p := g.players.CurrentPlayer()
	if err := g.board.MakeMove(idx, p); err != nil {
		return fmt.Errorf("move %s by %s: %w", idx, p, err)
	}

	move := g.players.CurrentMove()
	if move > len(g.log) {
		move = len(g.log)
	}
	g.log = append(g.log[:move], idx)
	g.players.Advance(noMoves(g.board), noCrosses(g.board))

	log.Debug().
		Int("move", move).
		Stringer("player", p).
		Stringer("cell", idx).
		Stringer("kind", g.board.Get(idx).Kind()).
		Msg("move played")
	g.logResult()
	return nil
}

// Back takes back the move before the cursor.
func (g *Game) Back() error {
	move := g.players.CurrentMove()
	if move == 0 {
		return ErrBack
	}
	if len(g.log) < move {
		return g.corrupted(fmt.Errorf("%w: %d logged moves at move %d", ErrCorruptedLog, len(g.log), move))
	}

	idx := g.log[move-1]
	c := g.board.Get(idx)
	mover := g.players.PlayerAt(move - 1)
	if k := c.Kind(); k != cell.Cross && k != cell.Filled {
		return g.corrupted(fmt.Errorf("%w: %s at %s for move %d", ErrCorruptedLog, k, idx, move-1))
	}
	if c.Owner() != mover {
		return g.corrupted(fmt.Errorf("%w: %s owns %s, played by %s", ErrCorruptedLog, c.Owner(), idx, mover))
	}

	// Only the opponent's crosses can be captured.
	previous := func() cell.Player { return mover.Opponent() }
	if err := g.board.CancelMove(idx, previous); err != nil {
		return g.corrupted(fmt.Errorf("%w: %w", ErrCorruptedLog, err))
	}
	g.players.Reverse()

	log.Debug().
		Int("move", move-1).
		Stringer("player", mover).
		Stringer("cell", idx).
		Msg("move taken back")
	return nil
}

// Forward replays the logged move at the cursor.
func (g *Game) Forward() error {
	move := g.players.CurrentMove()
	if move >= len(g.log) {
		return ErrForward
	}
	if over, ended := g.players.Ended(); ended {
		return &over
	}

	idx := g.log[move]
	p := g.players.CurrentPlayer()
	if err := g.board.MakeMove(idx, p); err != nil {
		return g.corrupted(fmt.Errorf("%w: replaying %s by %s: %w", ErrCorruptedLog, idx, p, err))
	}
	g.players.Advance(noMoves(g.board), noCrosses(g.board))

	log.Debug().
		Int("move", move).
		Stringer("player", p).
		Stringer("cell", idx).
		Msg("move replayed")
	g.logResult()
	return nil
}

func noMoves(b *board.Board) func(cell.Player) bool {
	return func(p cell.Player) bool {
		return !b.HasMove(p)
	}
}

func noCrosses(b *board.Board) func(cell.Player) bool {
	return func(p cell.Player) bool {
		return b.CrossesCounter[p] == 0
	}
}

func (g *Game) logResult() {
	if over, ended := g.players.Ended(); ended {
		log.Debug().
			Int("move", over.AtMove).
			Stringer("loser", over.Loser).
			Stringer("reason", over.Reason).
			Msg("game over")
	}
}

func (g *Game) corrupted(err error) error {
	log.Warn().Err(err).Int("move", g.players.CurrentMove()).Msg("cannot use move log")
	return err
}
