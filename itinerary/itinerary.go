// Package itinerary describes per-class pipeline stage timing and resource
// usage.
//
// An itinerary lists, for every schedule class, the ordered stages an
// instruction of that class passes through. Each stage occupies one of a set
// of candidate functional units for a number of cycles. Itineraries are
// written as JSON or YAML files and compiled into a Machine, which is the
// read-only scheduling context handed to the hazard detector.
package itinerary

import (
	"fmt"
	"math/bits"
	"strings"
)

// FuncUnits is a bitmask of functional units. Bit i stands for the i-th unit
// declared by the itinerary.
type FuncUnits uint64

// MaxUnits is the largest number of functional units an itinerary may declare.
const MaxUnits = 64

// Has returns true if unit i is in the mask.
func (u FuncUnits) Has(i int) bool {
	return u&(1<<uint(i)) != 0
}

// Count returns the number of units in the mask.
func (u FuncUnits) Count() int {
	return bits.OnesCount64(uint64(u))
}

// ReservationKind is the conflict strength of a stage's claim on a unit.
type ReservationKind uint8

const (
	// Required claims conflict with both Required and Reserved claims.
	Required ReservationKind = iota
	// Reserved claims conflict only with Required claims.
	Reserved
)

// String returns the lower-case name of the kind.
func (k ReservationKind) String() string {
	switch k {
	case Required:
		return "required"
	case Reserved:
		return "reserved"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ReservationKind) MarshalText() ([]byte, error) {
	switch k {
	case Required, Reserved:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid reservation kind %d", uint8(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string is
// treated as Required.
func (k *ReservationKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "required":
		*k = Required
	case "reserved":
		*k = Reserved
	default:
		return fmt.Errorf("unknown reservation kind %q", string(text))
	}
	return nil
}

// Stage is one compiled step of a class's pipeline itinerary.
type Stage struct {
	// Cycles is the number of consecutive cycles the stage holds a unit.
	Cycles uint
	// Units is the set of candidate units; any one of them satisfies the stage.
	Units FuncUnits
	// Kind is the conflict strength of the claim.
	Kind ReservationKind
	// NextCycles is the number of cycles from the start of this stage to the
	// start of the next one. Negative means "same as Cycles".
	NextCycles int
}

// Next returns the cycle delta to the next stage.
func (s Stage) Next() int {
	if s.NextCycles < 0 {
		return int(s.Cycles)
	}
	return s.NextCycles
}

// Depth returns the number of cycles covered by the stages, counting from
// the issue cycle: the largest start-plus-duration over all stages.
func Depth(stages []Stage) int {
	depth := 0
	cur := 0
	for _, s := range stages {
		if span := cur + int(s.Cycles); span > depth {
			depth = span
		}
		cur += s.Next()
	}
	return depth
}

// StageSpec is the file form of a Stage. Units are referenced by name.
type StageSpec struct {
	Cycles     uint            `json:"cycles" yaml:"cycles"`
	Units      []string        `json:"units" yaml:"units"`
	Kind       ReservationKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	NextCycles *int            `json:"next_cycles,omitempty" yaml:"next_cycles,omitempty"`
}

// ClassSpec is the file form of a schedule class.
type ClassSpec struct {
	Name   string      `json:"name" yaml:"name"`
	Stages []StageSpec `json:"stages" yaml:"stages"`
}

// Data is an itinerary as written in a file.
type Data struct {
	// Units names the functional units. A unit's position is its bit.
	Units []string `json:"units" yaml:"units"`

	// IssueWidth is the maximum number of instructions issued per cycle.
	// Zero means unlimited.
	IssueWidth int `json:"issue_width" yaml:"issue_width"`

	// Classes lists the schedule classes.
	Classes []ClassSpec `json:"classes" yaml:"classes"`

	// OpClasses maps an opcode mnemonic to a class name. Opcodes without an
	// entry have no itinerary and never cause hazards.
	OpClasses map[string]string `json:"op_classes" yaml:"op_classes"`

	// ZeroCost lists opcode mnemonics that consume no pipeline resources.
	ZeroCost []string `json:"zero_cost,omitempty" yaml:"zero_cost,omitempty"`
}

// IsEmpty returns true if the itinerary is absent or has no classes.
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.Classes) == 0
}

// NextCycles returns a pointer to n, for filling StageSpec.NextCycles.
func NextCycles(n int) *int {
	return &n
}
