package board

import "crosses/cell"

type CounterKind int

const (
	Moves CounterKind = iota
	Crosses
)

type CounterOp int

const (
	Add CounterOp = iota
	Sub
)

func (b *Board) updateCounter(p cell.Player, kind CounterKind, op CounterOp) {
	delta := 1
	if op == Sub {
		delta = -1
	}
	switch kind {
	case Moves:
		b.MovesCounter[p] += delta
	case Crosses:
		b.CrossesCounter[p] += delta
	}
}

// MakeMove plays p on idx: an empty cell becomes p's cross, an enemy cross
// becomes p's territory. Nothing is changed when an error is returned.
func (b *Board) MakeMove(idx Index, p cell.Player) error {
	c := b.Get(idx)
	switch c.Kind() {
	case cell.Empty:
		if !c.IsActive(p) {
			return ErrOutOfReach
		}
		b.At(idx).CrossOut(p)
		important := b.activateAround(idx, p)
		b.reviveAround(idx, p)
		b.At(idx).SetImportant(important)
		b.updateCounter(p, Crosses, Add)
		b.updateCounter(p, Moves, Sub)

	case cell.Cross:
		if c.Owner() == p {
			return ErrSelfFill
		}
		if !c.IsActive(p) {
			return ErrOutOfReach
		}
		wasImportant := c.Important()
		previous := c.Owner()
		b.At(idx).Fill(p)
		b.updateCounter(p, Crosses, Sub)
		b.updateCounter(previous, Moves, Sub)

		b.deactivateAround(idx, previous, wasImportant)
		b.withdrawSupport(idx, previous)

		isolated := !b.aliveFilledAround(idx, p)
		if isolated {
			b.markAdjacentImportant(idx, p, cell.Cross)
		}
		b.reviveAround(idx, p)
		overheat := b.activateAround(idx, p)
		b.At(idx).SetImportant(overheat || isolated)

	case cell.Filled:
		return ErrDoubleFill
	default:
		return ErrBorderHit
	}
	return nil
}

// CancelMove takes back the last move played on idx. For filled cells,
// previous names the player whose cross was captured.
func (b *Board) CancelMove(idx Index, previous func() cell.Player) error {
	c := b.Get(idx)
	switch c.Kind() {
	case cell.Empty:
		return ErrEmptyCancel

	case cell.Cross:
		wasImportant := c.Important()
		owner := c.Owner()
		b.At(idx).RemoveCross()
		b.updateCounter(owner, Crosses, Sub)
		b.updateCounter(owner, Moves, Add)
		b.deactivateAround(idx, owner, wasImportant)
		b.withdrawSupport(idx, owner)

	case cell.Filled:
		restored := previous()
		wasImportant := c.Important()
		wasAlive := c.Alive()
		capturer := c.Owner()
		b.At(idx).RemoveFill(restored)
		b.updateCounter(capturer, Crosses, Add)
		b.updateCounter(restored, Moves, Add)
		if wasAlive {
			b.deactivateAround(idx, capturer, wasImportant)
		}
		b.withdrawSupport(idx, capturer)

		// The cross gets back the importance it had when captured, whatever
		// re-energizing reports.
		b.activateAround(idx, restored)
		b.reviveAround(idx, restored)

	default:
		return ErrBorderHit
	}
	return nil
}

// energizes reports whether c counts towards p's activation of its
// neighbours: p's crosses and p's living territory do.
func energizes(c cell.Cell, p cell.Player) bool {
	switch c.Kind() {
	case cell.Cross:
		return c.Owner() == p
	case cell.Filled:
		return c.Owner() == p && c.Alive()
	default:
		return false
	}
}

// activateAround adds idx as a source of p to all its neighbours and reports
// whether any of them overheated.
func (b *Board) activateAround(idx Index, p cell.Player) bool {
	overheat := false
	for _, n := range Adjacent(idx) {
		if !b.InBounds(n) {
			continue
		}
		c := b.At(n)
		if c.Activate(p) == cell.Overheat {
			c.SetOverheated(true)
			overheat = true
		}
	}
	return overheat
}

// deactivateAround withdraws idx as a source of p. Saturated counters no
// longer know their true value, so they are recounted, as is every neighbour
// of an important source.
func (b *Board) deactivateAround(idx Index, p cell.Player, exact bool) {
	for _, n := range Adjacent(idx) {
		if !b.InBounds(n) {
			continue
		}
		c := b.At(n)
		if exact || c.Overheated() {
			b.recount(n, p)
			continue
		}
		c.Deactivate(p)
	}
}

// recount rebuilds p's counter on idx from its neighbourhood. Must run after
// the board already reflects the removed source.
func (b *Board) recount(idx Index, p cell.Player) {
	sources := 0
	for _, n := range Adjacent(idx) {
		if energizes(b.Get(n), p) {
			sources++
		}
	}
	c := b.At(idx)
	c.SetActivation(p, sources)
	c.SetOverheated(c.Activation(cell.Blue) == cell.MaxActivation ||
		c.Activation(cell.Red) == cell.MaxActivation)
}

// aliveFilledAround reports whether idx touches living territory of p.
func (b *Board) aliveFilledAround(idx Index, p cell.Player) bool {
	for _, n := range Adjacent(idx) {
		c := b.Get(n)
		if c.Kind() == cell.Filled && c.Owner() == p && c.Alive() {
			return true
		}
	}
	return false
}

func (b *Board) markAdjacentImportant(idx Index, p cell.Player, kind cell.Kind) {
	for _, n := range Adjacent(idx) {
		c := b.Get(n)
		if c.Kind() == kind && c.Owner() == p {
			b.At(n).SetImportant(true)
		}
	}
}

// supported reports whether the region of the filled cell at idx touches a
// cross of its owner.
func (b *Board) supported(idx Index) bool {
	owner := b.Get(idx).Owner()
	_, found := b.Search(idx, func(b *Board, n Index) (Index, bool) {
		c := b.Get(n)
		return n, c.Kind() == cell.Cross && c.Owner() == owner
	})
	return found
}

// withdrawSupport kills every living region of p next to idx that lost its
// last cross when idx stopped being one of p's sources.
func (b *Board) withdrawSupport(idx Index, p cell.Player) {
	for _, n := range Adjacent(idx) {
		c := b.Get(n)
		if c.Kind() != cell.Filled || c.Owner() != p || !c.Alive() {
			continue
		}
		if !b.supported(n) {
			b.killRegion(n)
		}
	}
}

func (b *Board) killRegion(seed Index) {
	owner := b.Get(seed).Owner()
	b.Kill(seed, func(b *Board, idx Index) {
		c := b.At(idx)
		if c.Kind() != cell.Filled || c.Owner() != owner || !c.Alive() {
			return
		}
		c.SetAlive(false)
		b.deactivateAround(idx, owner, c.Important())
	})
}

// reviveAround brings back every dead region of p next to idx.
func (b *Board) reviveAround(idx Index, p cell.Player) {
	for _, n := range Adjacent(idx) {
		c := b.Get(n)
		if c.Kind() == cell.Filled && c.Owner() == p && !c.Alive() {
			b.reviveRegion(n)
		}
	}
}

func (b *Board) reviveRegion(seed Index) {
	owner := b.Get(seed).Owner()
	b.Revive(seed, func(b *Board, idx Index) {
		c := b.At(idx)
		if c.Kind() != cell.Filled || c.Owner() != owner || c.Alive() {
			return
		}
		c.SetAlive(true)
		if b.activateAround(idx, owner) {
			c.SetImportant(true)
		}
	})
}
