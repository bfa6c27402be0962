package battle

// Barrier joins the stop signals of one round. It fires its callback exactly
// once, when every expected lane has arrived. Repeat arrivals from the same
// lane are ignored.
type Barrier struct {
	expected int
	arrived  map[int]struct{}
	fired    bool
	fn       func()
}

// NewBarrier creates a barrier waiting for expected distinct lanes
func NewBarrier(expected int, fn func()) *Barrier {
	return &Barrier{
		expected: expected,
		arrived:  make(map[int]struct{}, expected),
		fn:       fn,
	}
}

// Arrive records a lane. It reports whether this arrival fired the barrier.
func (b *Barrier) Arrive(lane int) bool {
	if b.fired {
		return false
	}
	b.arrived[lane] = struct{}{}
	if len(b.arrived) < b.expected {
		return false
	}
	b.fired = true
	if b.fn != nil {
		b.fn()
	}
	return true
}

// Arrived returns how many distinct lanes have stopped
func (b *Barrier) Arrived() int {
	return len(b.arrived)
}

// Fired reports whether the barrier has released
func (b *Barrier) Fired() bool {
	return b.fired
}
