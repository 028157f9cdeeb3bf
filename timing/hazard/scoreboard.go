package hazard

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/sarchlab/m2sched/itinerary"
)

// Scoreboard is a fixed-capacity ring of functional-unit masks, one per
// future cycle. Logical cycle 0 is "now"; cycle i maps to physical slot
// (head + i) mod depth.
type Scoreboard struct {
	data []itinerary.FuncUnits
	head int
}

// Reset discards all reservations and resizes the board. The depth must be a
// power of two.
func (s *Scoreboard) Reset(depth int) {
	if depth < 1 || depth&(depth-1) != 0 {
		panic(fmt.Sprintf("scoreboard depth %d is not a power of two", depth))
	}

	if cap(s.data) >= depth {
		s.data = s.data[:depth]
		clear(s.data)
	} else {
		s.data = make([]itinerary.FuncUnits, depth)
	}

	s.head = 0
}

// Depth returns the number of cycles the board covers.
func (s *Scoreboard) Depth() int {
	return len(s.data)
}

func (s *Scoreboard) slot(cycle int) int {
	return (s.head + cycle) & (len(s.data) - 1)
}

// At returns the units held at a logical cycle.
func (s *Scoreboard) At(cycle int) itinerary.FuncUnits {
	return s.data[s.slot(cycle)]
}

// Set overwrites the units held at a logical cycle.
func (s *Scoreboard) Set(cycle int, units itinerary.FuncUnits) {
	s.data[s.slot(cycle)] = units
}

// Reserve adds units to a logical cycle.
func (s *Scoreboard) Reserve(cycle int, units itinerary.FuncUnits) {
	s.data[s.slot(cycle)] |= units
}

// Clear releases every unit at a logical cycle.
func (s *Scoreboard) Clear(cycle int) {
	s.data[s.slot(cycle)] = 0
}

// Advance moves "now" one cycle forward. The old cycle 0 becomes the last
// cycle of the board.
func (s *Scoreboard) Advance() {
	s.head = (s.head + 1) & (len(s.data) - 1)
}

// Recede moves "now" one cycle backward. The old last cycle becomes cycle 0.
func (s *Scoreboard) Recede() {
	s.head = (s.head - 1) & (len(s.data) - 1)
}

// IsClear returns true if no unit is held at any cycle.
func (s *Scoreboard) IsClear() bool {
	for _, u := range s.data {
		if u != 0 {
			return false
		}
	}
	return true
}

// Dump writes one line per cycle, up to the last non-empty cycle, with the
// held units as a bit string (highest unit first).
func (s *Scoreboard) Dump(w io.Writer) {
	last := len(s.data) - 1
	for last > 0 && s.At(last) == 0 {
		last--
	}

	width := 1
	for _, u := range s.data {
		if n := bits.Len64(uint64(u)); n > width {
			width = n
		}
	}

	for i := 0; i <= last; i++ {
		fmt.Fprintf(w, "\t%d: %0*b\n", i, width, uint64(s.At(i)))
	}
}
