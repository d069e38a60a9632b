package board

import "crosses/cell"

// Visitor is called once for every cell a traversal reaches. Returning
// stop=true ends the traversal with found as its result. Visitors may mutate
// the board but must not start another traversal.
type Visitor func(b *Board, idx Index) (found Index, stop bool)

// Traverse runs a breadth-first flood fill from seed. Every unchecked
// in-range neighbour of a dequeued cell is visited, and it is expanded further
// only if it is filled territory of the seed's owner. Border cells are never
// visited.
func (b *Board) Traverse(seed Index, visit Visitor) (Index, bool) {
	b.ClearChecked()
	defer b.ClearChecked()

	owner := b.Get(seed).Owner()
	b.At(seed).SetChecked(true)
	if found, stop := visit(b, seed); stop {
		return found, true
	}

	queue := []Index{seed}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range Adjacent(current) {
			if !b.InBounds(next) || b.Get(next).Checked() {
				continue
			}
			if found, stop := visit(b, next); stop {
				return found, true
			}
			c := b.At(next)
			if c.Kind() == cell.Filled && c.Owner() == owner {
				queue = append(queue, next)
			}
			c.SetChecked(true)
		}
	}
	return Index{}, false
}

// Revive runs fn over a whole region without stopping early.
func (b *Board) Revive(seed Index, fn func(b *Board, idx Index)) {
	b.Traverse(seed, func(b *Board, idx Index) (Index, bool) {
		fn(b, idx)
		return Index{}, false
	})
}

// Kill runs fn over a whole region without stopping early.
func (b *Board) Kill(seed Index, fn func(b *Board, idx Index)) {
	b.Traverse(seed, func(b *Board, idx Index) (Index, bool) {
		fn(b, idx)
		return Index{}, false
	})
}

// Search runs visit over a region until it reports a hit.
func (b *Board) Search(seed Index, visit Visitor) (Index, bool) {
	return b.Traverse(seed, visit)
}
