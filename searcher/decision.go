package searcher

import (
	"math"
	"sync"

	"crosses/board"
	"crosses/cell"
	"crosses/game"
)

// decision is a search tree node. Its statistics are kept from the point of
// view of mover, the player whose move led to it, so that parents pick the
// child best for whoever moves.
type decision struct {
	sync.RWMutex
	parent   *decision
	mover    cell.Player
	moves    []board.Index // children[i] follows moves[i]
	children []*decision
	rewards  float64
	visits   int
}

func newDecision(parent *decision, mover cell.Player, pos *game.Position) *decision {
	moves := pos.LegalMoves()
	return &decision{
		parent:   parent,
		mover:    mover,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// selectOrExpand advances pos by one move down the tree. It adds a child
// while untried moves remain, otherwise it follows the child with the best
// UCB1 score. Terminal nodes return themselves.
func (d *decision) selectOrExpand(pos *game.Position) (child *decision, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, false
	}

	mover := pos.CurrentPlayer()
	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		mustPlay(pos, move)
		child = newDecision(d, mover, pos)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, true
	}

	// Fully expanded node
	ith := d.pickChild()
	mustPlay(pos, d.moves[ith])
	child = d.children[ith]
	child.applyLoss()
	return child, false
}

func (d *decision) pickChild() int {
	normalizer := C_SQUARED * math.Log(float64(max(d.visits, 1)))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(normalizer); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss counts a pending visit as a loss so that concurrent episodes
// spread over other children until backup settles it.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// backup adds an episode's outcome and returns the parent.
func (d *decision) backup(reward func(cell.Player) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}
	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

func (d *decision) value() int {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// bestMove returns the most visited move.
func (d *decision) bestMove() board.Index {
	if len(d.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxValue := d.children[0].value()
	for i, child := range d.children[1:] {
		if v := child.value(); v > maxValue {
			maxValue = v
			bestIndex = i + 1
		}
	}
	return d.moves[bestIndex]
}

func mustPlay(pos *game.Position, move board.Index) {
	if err := pos.Play(move); err != nil {
		panic(err)
	}
}
