package hazard

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/m2sched/itinerary"
)

// Hook positions invoked by ScoreboardHazardDetector.
var (
	// HookPosHazard fires when a query finds a hazard. Item is the
	// instruction; Detail is a HazardDetail.
	HookPosHazard = &sim.HookPos{Name: "Scoreboard Hazard"}

	// HookPosEmit fires after an instruction is committed. Item is the
	// instruction; Detail is a []Reservation.
	HookPosEmit = &sim.HookPos{Name: "Scoreboard Emit"}

	// HookPosAdvance fires after the detector moves one cycle forward.
	HookPosAdvance = &sim.HookPos{Name: "Scoreboard Advance"}

	// HookPosRecede fires after the detector moves one cycle backward.
	HookPosRecede = &sim.HookPos{Name: "Scoreboard Recede"}

	// HookPosReset fires after all reservations are released.
	HookPosReset = &sim.HookPos{Name: "Scoreboard Reset"}
)

// HazardDetail describes the stage cycle that found no free unit.
type HazardDetail struct {
	// Offset is the cycle offset the query was made at.
	Offset int
	// Cycle is the cycle, relative to now, with no free candidate.
	Cycle int
	// Stage is the index of the blocked stage.
	Stage int
	// Units are the stage's candidate units.
	Units itinerary.FuncUnits
	// Kind is the stage's reservation kind.
	Kind itinerary.ReservationKind
}

// Reservation is one unit claimed by EmitInstruction.
type Reservation struct {
	Cycle int
	Unit  itinerary.FuncUnits
	Kind  itinerary.ReservationKind
}
