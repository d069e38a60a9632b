// meta/meta.go
package meta

// BOARD_WIDTH and BOARD_HEIGHT define the default board size.
const BOARD_WIDTH = 10
const BOARD_HEIGHT = 10

// MOVES_PER_TURN defines how many moves a player makes before the turn passes.
const MOVES_PER_TURN = 3

// GAMES defines the number of self-play games per run.
const GAMES = 10

// MAX_MOVES caps the length of a self-play game.
const MAX_MOVES = 1000

const OUTPUT_DIR = "results"

const LOG_LEVEL = "info"

// GO_ROUTINES defines the number of goroutines a searching agent uses.
const GO_ROUTINES = 8

// WITH_CUTOFF defines the rollout depth after which MCTS evaluates the board.
const WITH_CUTOFF = 100
