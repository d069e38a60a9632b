package engine

import (
	"crosses/cell"
	"crosses/experiments/metrics"
	"crosses/player"
)

// Result of a self-play game.
type Result struct {
	Over  *player.GameOver // nil when the game hit the move limit
	Game  metrics.GameMetric
	Moves []metrics.MoveMetric
}

func (r Result) Winner() (cell.Player, bool) {
	if r.Over == nil {
		return cell.Blue, false
	}
	return r.Over.Winner(), true
}
