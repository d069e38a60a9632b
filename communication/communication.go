// Package communication holds what an interaction layer exchanges with a
// running game: snapshots of the board with per-cell diagnostics going out,
// actions coming in.
package communication

import (
	"errors"
	"fmt"

	"crosses/board"
	"crosses/cell"
	"crosses/game"
	"crosses/player"
)

var ErrUnknownAction = errors.New("unknown action")

type ActionType string

const (
	MoveAction    ActionType = "move"
	BackAction    ActionType = "back"
	ForwardAction ActionType = "forward"
)

// Action is a request to change the game. X and Y are only read for moves.
type Action struct {
	Type ActionType `json:"type"`
	X    int        `json:"x,omitempty"`
	Y    int        `json:"y,omitempty"`
}

// Apply performs a on g.
func (a Action) Apply(g *game.Game) error {
	switch a.Type {
	case MoveAction:
		return g.MakeMove(a.X, a.Y)
	case BackAction:
		return g.Back()
	case ForwardAction:
		return g.Forward()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}

// Cell is the diagnostic view of one board cell. Owner and Important are
// only set for crosses and territory, Alive only for territory.
type Cell struct {
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Kind       string   `json:"kind"`
	Owner      string   `json:"owner,omitempty"`
	Important  bool     `json:"important,omitempty"`
	Alive      bool     `json:"alive,omitempty"`
	Overheated bool     `json:"overheated,omitempty"`
	Activation [2]uint8 `json:"activation"`
}

// State is everything needed to draw the game and offer the next action.
type State struct {
	Width          int              `json:"width"`
	Height         int              `json:"height"`
	Move           int              `json:"move"`
	Player         string           `json:"player"`
	MovesCounter   [2]int           `json:"moves_counter"`
	CrossesCounter [2]int           `json:"crosses_counter"`
	CanBack        bool             `json:"can_back"`
	CanForward     bool             `json:"can_forward"`
	Over           *player.GameOver `json:"over,omitempty"`
	Cells          []Cell           `json:"cells"`
}

// Snapshot describes g as it is now. Cells are listed row by row.
func Snapshot(g *game.Game) State {
	b := g.Board()
	width, height := b.Size()
	s := State{
		Width:          width,
		Height:         height,
		Move:           g.CurrentMove(),
		Player:         g.CurrentPlayer().String(),
		MovesCounter:   b.MovesCounter,
		CrossesCounter: b.CrossesCounter,
		CanBack:        g.CanBack(),
		CanForward:     g.CanForward(),
		Cells:          make([]Cell, 0, width*height),
	}
	if over, ended := g.Ended(); ended {
		s.Over = &over
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s.Cells = append(s.Cells, describe(b, board.Index{X: x, Y: y}))
		}
	}
	return s
}

// At returns the cell view at (x, y), or false when it lies outside.
func (s State) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height || len(s.Cells) != s.Width*s.Height {
		return Cell{}, false
	}
	return s.Cells[y*s.Width+x], true
}

func describe(b *board.Board, idx board.Index) Cell {
	c := b.Get(idx)
	view := Cell{
		X:          idx.X,
		Y:          idx.Y,
		Kind:       c.Kind().String(),
		Overheated: c.Overheated(),
		Activation: [2]uint8{c.Activation(cell.Blue), c.Activation(cell.Red)},
	}
	switch c.Kind() {
	case cell.Cross:
		view.Owner = c.Owner().String()
		view.Important = c.Important()
	case cell.Filled:
		view.Owner = c.Owner().String()
		view.Important = c.Important()
		view.Alive = c.Alive()
	}
	return view
}

// Reply answers an action. Error is set when the action was rejected, State
// is the game after the action either way.
type Reply struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}
