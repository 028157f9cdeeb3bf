package hazard

import "github.com/sarchlab/m2sched/itinerary"

// availableUnits returns the candidate units of a stage that are still free
// at one cycle. A Required stage cannot use a unit held by either board; a
// Reserved stage only yields to Required holds. Both the hazard query and the
// commit path go through here.
func availableUnits(
	candidates itinerary.FuncUnits,
	required, reserved itinerary.FuncUnits,
	kind itinerary.ReservationKind,
) itinerary.FuncUnits {
	free := candidates
	switch kind {
	case itinerary.Required:
		free &^= reserved
		free &^= required
	case itinerary.Reserved:
		free &^= required
	default:
		panic("invalid reservation kind " + kind.String())
	}
	return free
}

// lowestUnit isolates the lowest set bit of units. It returns 0 when units
// is empty.
func lowestUnit(units itinerary.FuncUnits) itinerary.FuncUnits {
	return units & -units
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
