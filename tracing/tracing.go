// Package tracing provides hooks that observe a ScoreboardHazardDetector and
// recorders that store what they see.
package tracing

// Event kinds, one per detector hook position.
const (
	KindHazard  = "hazard"
	KindEmit    = "emit"
	KindAdvance = "advance"
	KindRecede  = "recede"
	KindReset   = "reset"
)

// Event is one observed detector action.
type Event struct {
	// Region identifies the scheduling region. A new region starts at every
	// detector reset.
	Region string
	// Seq orders events within a region.
	Seq uint64
	// Cycle is the detector's cycle, relative to the start of the region.
	Cycle int
	Kind  string
	// InstID is the instruction ID, or -1 for events without an instruction.
	InstID int
	Op     string
	Detail string
}

// Recorder stores events.
type Recorder interface {
	Record(event Event)
	Flush()
}
