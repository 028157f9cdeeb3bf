package tracing

import (
	"github.com/sarchlab/akita/v4/sim"
)

// EventCounter is a hook that counts how many times each hook position
// fires.
type EventCounter struct {
	positions []*sim.HookPos
	counts    map[*sim.HookPos]uint64
}

// NewEventCounter creates a new EventCounter.
func NewEventCounter() *EventCounter {
	return &EventCounter{
		counts: make(map[*sim.HookPos]uint64),
	}
}

// Func counts the invocation.
func (c *EventCounter) Func(ctx sim.HookCtx) {
	if _, ok := c.counts[ctx.Pos]; !ok {
		c.positions = append(c.positions, ctx.Pos)
	}
	c.counts[ctx.Pos]++
}

// Count returns how many times pos fired.
func (c *EventCounter) Count(pos *sim.HookPos) uint64 {
	return c.counts[pos]
}

// Positions returns the positions seen, in order of first appearance.
func (c *EventCounter) Positions() []*sim.HookPos {
	return c.positions
}

// Total returns the number of invocations across all positions.
func (c *EventCounter) Total() uint64 {
	var total uint64
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Reset forgets all counts.
func (c *EventCounter) Reset() {
	c.positions = nil
	c.counts = make(map[*sim.HookPos]uint64)
}
