package board

import (
	"fmt"
	"strings"

	"crosses/cell"
)

// Capacity is the largest supported side of a board.
const Capacity = 16

// Index addresses a cell by column and row.
type Index struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (i Index) String() string {
	return fmt.Sprintf("(%d, %d)", i.X, i.Y)
}

// Board is a maxX by maxY field embedded in a fixed backing grid. Anything
// outside the live rectangle reads as a border cell.
type Board struct {
	cells          [Capacity][Capacity]cell.Cell
	maxX           int
	maxY           int
	MovesCounter   [2]int // Remaining move budget per player, may go negative
	CrossesCounter [2]int // Outstanding crosses per player
}

// New creates a board with a seed cross for each player in opposite corners.
func New(maxX, maxY int) (*Board, error) {
	if maxX < 2 || maxY < 2 || maxX > Capacity || maxY > Capacity {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, maxX, maxY)
	}
	b := &Board{
		maxX:           maxX,
		maxY:           maxY,
		CrossesCounter: [2]int{1, 1},
	}
	for x := 0; x < maxX; x++ {
		for y := 0; y < maxY; y++ {
			b.cells[x][y] = cell.New()
		}
	}
	b.seed(Index{0, 0}, cell.Blue)
	b.seed(Index{maxX - 1, maxY - 1}, cell.Red)
	return b, nil
}

func (b *Board) seed(idx Index, p cell.Player) {
	b.At(idx).CrossOut(p)
	overheat := b.activateAround(idx, p)
	b.At(idx).SetImportant(overheat)
}

// Size returns the live dimensions.
func (b *Board) Size() (maxX, maxY int) {
	return b.maxX, b.maxY
}

func (b *Board) InBounds(idx Index) bool {
	return idx.X >= 0 && idx.Y >= 0 && idx.X < b.maxX && idx.Y < b.maxY
}

// Get never fails: out of range indices yield a border cell.
func (b *Board) Get(idx Index) cell.Cell {
	if !b.InBounds(idx) {
		return cell.BorderCell
	}
	return b.cells[idx.X][idx.Y]
}

// At gives mutable access to a live cell and panics outside the board.
func (b *Board) At(idx Index) *cell.Cell {
	if !b.InBounds(idx) {
		panic(fmt.Sprintf("board: index %s outside %dx%d board", idx, b.maxX, b.maxY))
	}
	return &b.cells[idx.X][idx.Y]
}

// Adjacent lists the Moore neighbourhood in NW, N, NE, W, E, SW, S, SE order.
// Entries may lie outside the board.
func Adjacent(idx Index) [8]Index {
	x, y := idx.X, idx.Y
	return [8]Index{
		{x - 1, y - 1},
		{x, y - 1},
		{x + 1, y - 1},
		{x - 1, y},
		{x + 1, y},
		{x - 1, y + 1},
		{x, y + 1},
		{x + 1, y + 1},
	}
}

// ClearChecked resets the traversal mark on every cell.
func (b *Board) ClearChecked() {
	for x := range b.cells {
		for y := range b.cells[x] {
			b.cells[x][y].SetChecked(false)
		}
	}
}

// LegalMoves returns every cell p may currently play, row by row.
func (b *Board) LegalMoves(p cell.Player) []Index {
	var moves []Index
	for y := 0; y < b.maxY; y++ {
		for x := 0; x < b.maxX; x++ {
			if b.playable(Index{x, y}, p) {
				moves = append(moves, Index{x, y})
			}
		}
	}
	return moves
}

// HasMove reports whether p has at least one legal move.
func (b *Board) HasMove(p cell.Player) bool {
	for y := 0; y < b.maxY; y++ {
		for x := 0; x < b.maxX; x++ {
			if b.playable(Index{x, y}, p) {
				return true
			}
		}
	}
	return false
}

func (b *Board) playable(idx Index, p cell.Player) bool {
	c := b.Get(idx)
	switch c.Kind() {
	case cell.Empty:
		return c.IsActive(p)
	case cell.Cross:
		return c.Owner() != p && c.IsActive(p)
	default:
		return false
	}
}

// String draws the board one row per line: '.' empty, 'x'/'o' crosses of
// blue/red, 'X'/'O' living territory and '#'/'@' dead territory.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.maxY; y++ {
		for x := 0; x < b.maxX; x++ {
			sb.WriteByte(glyph(b.cells[x][y]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(c cell.Cell) byte {
	switch c.Kind() {
	case cell.Empty:
		return '.'
	case cell.Cross:
		if c.Owner() == cell.Blue {
			return 'x'
		}
		return 'o'
	case cell.Filled:
		switch {
		case c.Owner() == cell.Blue && c.Alive():
			return 'X'
		case c.Owner() == cell.Blue:
			return '#'
		case c.Alive():
			return 'O'
		default:
			return '@'
		}
	default:
		return ' '
	}
}
