package searcher

import (
	"math"

	"crosses/cell"
)

// Hyperparameters for MCTS

const C_SQUARED = 2.0 // Exploration constant

// Rewards estimate the chance of winning
const WIN = 1.0
const LOSS = 1 - WIN

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 { // Prevent division by zero
		panic("cannot compute UCB1: 0 visits")
	}
	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

func rewarder(winner cell.Player) func(p cell.Player) float64 {
	return func(p cell.Player) float64 {
		if p == winner {
			return WIN
		}
		return LOSS
	}
}
