package cell

// Status is the outcome of changing an activation counter.
type Status uint8

const (
	// Regular means the counter moved by exactly one.
	Regular Status = iota
	// Overheat means the counter was forced to MaxActivation and no longer
	// tracks the true number of sources.
	Overheat
	// Zero means the counter was cleared.
	Zero
)

func (s Status) String() string {
	switch s {
	case Overheat:
		return "overheat"
	case Zero:
		return "zero"
	default:
		return "regular"
	}
}

const (
	activationWidth = 2

	// MaxActivation is the saturation value of a counter.
	MaxActivation = 1<<activationWidth - 1
)

func activationOffset(p Player) uint8 {
	return activationWidth * uint8(p)
}

// Activation returns how many sources of p currently energize the cell,
// saturated at MaxActivation.
func (c Cell) Activation(p Player) uint8 {
	return c.activity >> activationOffset(p) & MaxActivation
}

// Activate bumps p's counter, saturating one step early: a counter that is
// already at MaxActivation-1 or above is pinned to the maximum.
func (c *Cell) Activate(p Player) Status {
	offset := activationOffset(p)
	if c.Activation(p) >= MaxActivation-1 {
		c.activity |= MaxActivation << offset
		return Overheat
	}
	c.activity += 1 << offset
	return Regular
}

// Deactivate lowers p's counter, clearing it once it would drop to zero.
func (c *Cell) Deactivate(p Player) Status {
	offset := activationOffset(p)
	if c.Activation(p) <= 1 {
		c.activity &^= MaxActivation << offset
		return Zero
	}
	c.activity -= 1 << offset
	return Regular
}

// SetActivation overwrites p's counter with n, clamped to MaxActivation.
func (c *Cell) SetActivation(p Player, n int) {
	if n > MaxActivation {
		n = MaxActivation
	}
	if n < 0 {
		n = 0
	}
	offset := activationOffset(p)
	c.activity &^= MaxActivation << offset
	c.activity |= uint8(n) << offset
}

// ResetActivation clears both counters.
func (c *Cell) ResetActivation() {
	c.activity = 0
}
