package searcher

import (
	"crosses/board"
	"crosses/cell"
)

// Evaluate scores an unfinished game for player p within [LOSS, WIN].
type Evaluate func(b *board.Board, p cell.Player) float64

// EvaluateTerritory compares the crosses and living territory of both
// players. Dead territory does not count.
func EvaluateTerritory(b *board.Board, p cell.Player) float64 {
	var held [2]int
	maxX, maxY := b.Size()
	for x := 0; x < maxX; x++ {
		for y := 0; y < maxY; y++ {
			c := b.Get(board.Index{X: x, Y: y})
			switch {
			case c.Kind() == cell.Cross, c.Kind() == cell.Filled && c.Alive():
				held[c.Owner()]++
			}
		}
	}
	total := held[cell.Blue] + held[cell.Red]
	if total == 0 {
		return (WIN + LOSS) / 2
	}
	share := float64(held[p]) / float64(total)
	return LOSS + share*(WIN-LOSS)
}
