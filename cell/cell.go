package cell

import (
	"encoding/hex"
	"fmt"
)

// Kind is the state a cell is in. Cells only move along
// Empty -> Cross -> Filled and back through cancellation.
type Kind uint8

const (
	Border Kind = iota
	Empty
	Cross
	Filled
)

func (k Kind) String() string {
	switch k {
	case Border:
		return "border"
	case Empty:
		return "empty"
	case Cross:
		return "cross"
	case Filled:
		return "filled"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Player identifies one of the two sides.
type Player uint8

const (
	Blue Player = 0
	Red  Player = 1
)

func (p Player) Opponent() Player {
	return p ^ 1
}

func (p Player) String() string {
	if p == Red {
		return "red"
	}
	return "blue"
}

// Bit positions inside the state byte.
const (
	checkedBit    = 0
	overheatBit   = 1
	aliveBit      = 2
	importanceBit = 3
	playerBit     = 4
	kindShift     = 5
	savedBit      = 7

	kindMask = 0b11
)

// Cell packs a grid cell into two bytes: kind, owner and flags in state,
// two saturating 2-bit counters (one per player) in activity.
type Cell struct {
	state    uint8
	activity uint8
}

// BorderCell is what the board hands out for coordinates outside its bounds.
var BorderCell = Cell{}

// New returns an unowned Empty cell.
func New() Cell {
	return Cell{state: uint8(Empty) << kindShift}
}

func (c Cell) Kind() Kind {
	return Kind(c.state >> kindShift & kindMask)
}

// Owner is only defined for crosses and filled cells.
func (c Cell) Owner() Player {
	c.mustBe("owner", Cross, Filled)
	return Player(c.state >> playerBit & 1)
}

func (c Cell) Important() bool {
	c.mustBe("importance", Cross, Filled)
	return c.get(importanceBit)
}

func (c *Cell) SetImportant(v bool) {
	c.mustBe("importance", Cross, Filled)
	c.set(importanceBit, v)
}

func (c Cell) Alive() bool {
	c.mustBe("liveness", Filled)
	return c.get(aliveBit)
}

func (c *Cell) SetAlive(v bool) {
	c.mustBe("liveness", Filled)
	c.set(aliveBit, v)
}

func (c Cell) Overheated() bool {
	return c.get(overheatBit)
}

func (c *Cell) SetOverheated(v bool) {
	c.set(overheatBit, v)
}

func (c Cell) Checked() bool {
	return c.get(checkedBit)
}

func (c *Cell) SetChecked(v bool) {
	c.set(checkedBit, v)
}

// IsActive reports whether p may play on this cell. A player never acts on
// their own cross.
func (c Cell) IsActive(p Player) bool {
	c.mustBe("activity", Empty, Cross)
	if c.Kind() == Cross && c.Owner() == p {
		return false
	}
	return c.Activation(p) != 0
}

// CrossOut claims an empty cell for p.
func (c *Cell) CrossOut(p Player) {
	c.mustBe("cross out", Empty)
	c.setKind(Cross)
	c.setOwner(p)
	c.set(importanceBit, false)
}

// Fill turns a cross into territory of p, which may differ from the cross'
// owner. The cross' importance is kept aside so RemoveFill can restore it.
func (c *Cell) Fill(p Player) {
	c.mustBe("fill", Cross)
	c.set(savedBit, c.get(importanceBit))
	c.setKind(Filled)
	c.setOwner(p)
	c.set(importanceBit, false)
	c.set(aliveBit, true)
}

// RemoveFill turns filled territory back into a cross owned by p.
func (c *Cell) RemoveFill(p Player) {
	c.mustBe("remove fill", Filled)
	c.setKind(Cross)
	c.setOwner(p)
	c.set(importanceBit, c.get(savedBit))
	c.set(savedBit, false)
	c.set(aliveBit, false)
}

// RemoveCross empties a cross.
func (c *Cell) RemoveCross() {
	c.mustBe("remove cross", Cross)
	c.setKind(Empty)
	c.setOwner(Blue)
	c.set(importanceBit, false)
}

// MarshalText encodes the cell as four hex digits. The traversal flag is
// transient and never written out.
func (c Cell) MarshalText() ([]byte, error) {
	raw := []byte{c.state &^ (1 << checkedBit), c.activity}
	return []byte(hex.EncodeToString(raw)), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decoding cell %q: %w", text, err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decoding cell %q: want 2 bytes, got %d", text, len(raw))
	}
	c.state = raw[0] &^ (1 << checkedBit)
	c.activity = raw[1]
	return nil
}

func (c Cell) String() string {
	switch c.Kind() {
	case Cross, Filled:
		return fmt.Sprintf("%s(%s)", c.Kind(), c.Owner())
	default:
		return c.Kind().String()
	}
}

func (c Cell) mustBe(what string, kinds ...Kind) {
	k := c.Kind()
	for _, want := range kinds {
		if k == want {
			return
		}
	}
	panic(fmt.Sprintf("cell: %s is undefined for a %s cell", what, k))
}

func (c *Cell) setKind(k Kind) {
	c.state &^= kindMask << kindShift
	c.state |= uint8(k) << kindShift
}

func (c *Cell) setOwner(p Player) {
	c.set(playerBit, p == Red)
}

func (c *Cell) set(bit uint8, v bool) {
	if v {
		c.state |= 1 << bit
	} else {
		c.state &^= 1 << bit
	}
}

func (c Cell) get(bit uint8) bool {
	return c.state>>bit&1 == 1
}
