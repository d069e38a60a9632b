package game

import "errors"

var (
	ErrBack          = errors.New("no move to take back")
	ErrForward       = errors.New("no move to replay")
	ErrCorruptedLog  = errors.New("move log does not match the board")
	ErrInvalidRecord = errors.New("invalid game record")
	ErrUnsaveable    = errors.New("game policy cannot be saved")
)
