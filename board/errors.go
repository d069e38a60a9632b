package board

import "errors"

var (
	ErrOutOfReach   = errors.New("cell is out of reach")
	ErrSelfFill     = errors.New("cannot fill own cross")
	ErrDoubleFill   = errors.New("cell is already filled")
	ErrBorderHit    = errors.New("cell is outside the board")
	ErrEmptyCancel  = errors.New("nothing to cancel on an empty cell")
	ErrInvalidSize  = errors.New("invalid board size")
	ErrInvalidBoard = errors.New("invalid board record")
)
