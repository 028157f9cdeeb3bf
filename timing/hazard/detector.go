// Package hazard provides scoreboard-based structural hazard detection for
// instruction scheduling.
//
// The ScoreboardHazardDetector keeps two scoreboards, one for Required and one
// for Reserved unit claims, covering every cycle an in-flight instruction can
// still occupy. A scheduler asks whether an instruction can issue at a cycle
// offset, commits the instruction once it is placed, and moves the
// detector's notion of "now" forward (top-down) or backward (bottom-up).
package hazard

import (
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/itinerary"
)

// HazardType is the verdict of a hazard query.
type HazardType int

const (
	// NoHazard means the instruction can issue.
	NoHazard HazardType = iota
	// Hazard means a functional unit conflict prevents the issue.
	Hazard
)

// String returns the name of the verdict.
func (t HazardType) String() string {
	switch t {
	case NoHazard:
		return "NoHazard"
	case Hazard:
		return "Hazard"
	default:
		return fmt.Sprintf("HazardType(%d)", int(t))
	}
}

// SchedContext resolves instructions to their itinerary. *itinerary.Machine
// implements it.
type SchedContext interface {
	// NumClasses returns the number of schedule classes.
	NumClasses() int
	// ClassOf returns the schedule class of an opcode, or false if the
	// opcode has no itinerary.
	ClassOf(op insts.Op) (int, bool)
	// Stages returns the ordered stages of a class.
	Stages(class int) []itinerary.Stage
	// IsZeroCost returns true for opcodes that consume no resources.
	IsZeroCost(op insts.Op) bool
	// IssueWidth returns the maximum instructions per cycle, 0 for unlimited.
	IssueWidth() int
}

// ScoreboardHazardDetector tracks functional-unit reservations per future
// cycle. A detector serves one scheduling region at a time and is not safe
// for concurrent use.
type ScoreboardHazardDetector struct {
	*sim.HookableBase
	numHooks int

	ctx SchedContext

	required Scoreboard
	reserved Scoreboard

	maxLookAhead int
	issueWidth   int
	issueCount   int
}

// NewScoreboardHazardDetector creates a detector for the given context. A nil
// or empty context, or one whose stages never hold a unit, yields a disabled
// detector that never reports hazards and never reserves units.
func NewScoreboardHazardDetector(ctx SchedContext) *ScoreboardHazardDetector {
	d := &ScoreboardHazardDetector{
		HookableBase: sim.NewHookableBase(),
		ctx:          ctx,
	}

	itinDepth := 0
	if ctx != nil {
		for c := 0; c < ctx.NumClasses(); c++ {
			if depth := itinerary.Depth(ctx.Stages(c)); depth > itinDepth {
				itinDepth = depth
			}
		}
	}

	depth := nextPowerOfTwo(itinDepth)
	d.required.Reset(depth)
	d.reserved.Reset(depth)

	if itinDepth > 0 {
		d.maxLookAhead = depth
		d.issueWidth = ctx.IssueWidth()
	}

	return d
}

// AcceptHook registers a hook. Hooks fire at the HookPos* positions.
func (d *ScoreboardHazardDetector) AcceptHook(hook sim.Hook) {
	d.HookableBase.AcceptHook(hook)
	d.numHooks++
}

// IsEnabled returns true if the detector models any pipeline resource.
func (d *ScoreboardHazardDetector) IsEnabled() bool {
	return d.maxLookAhead != 0
}

// MaxLookAhead returns how many cycles ahead a hazard can be observed: the
// scoreboard depth when enabled, 0 when disabled.
func (d *ScoreboardHazardDetector) MaxLookAhead() int {
	return d.maxLookAhead
}

// Depth returns the scoreboard depth, a power of two.
func (d *ScoreboardHazardDetector) Depth() int {
	return d.required.Depth()
}

// IssueWidth returns the maximum instructions per cycle, 0 for unlimited.
func (d *ScoreboardHazardDetector) IssueWidth() int {
	return d.issueWidth
}

// IssueCount returns the number of instructions emitted in the current cycle.
func (d *ScoreboardHazardDetector) IssueCount() int {
	return d.issueCount
}

// AtIssueLimit returns true if no more instructions may issue this cycle.
func (d *ScoreboardHazardDetector) AtIssueLimit() bool {
	return d.issueWidth != 0 && d.issueCount >= d.issueWidth
}

// RequiredUnits returns the units held by Required claims at a cycle.
func (d *ScoreboardHazardDetector) RequiredUnits(cycle int) itinerary.FuncUnits {
	return d.required.At(cycle)
}

// ReservedUnits returns the units held by Reserved claims at a cycle.
func (d *ScoreboardHazardDetector) ReservedUnits(cycle int) itinerary.FuncUnits {
	return d.reserved.At(cycle)
}

// Reset releases all reservations and the issue count.
func (d *ScoreboardHazardDetector) Reset() {
	d.issueCount = 0
	d.required.Reset(d.required.Depth())
	d.reserved.Reset(d.reserved.Depth())

	d.invoke(HookPosReset, nil, nil)
}

func (d *ScoreboardHazardDetector) stagesOf(inst *insts.Instruction) ([]itinerary.Stage, bool) {
	class, ok := d.ctx.ClassOf(inst.Op)
	if !ok {
		return nil, false
	}
	return d.ctx.Stages(class), true
}

// HazardType reports whether inst can issue cycleOffset cycles from now.
// Negative offsets look into the past, as bottom-up schedulers do. The
// query never changes the scoreboards.
//
// Each stage cycle only needs one free candidate unit of its own; the query
// does not look for a single unit that stays free across cycles or stages.
func (d *ScoreboardHazardDetector) HazardType(
	inst *insts.Instruction,
	cycleOffset int,
) HazardType {
	if !d.IsEnabled() || inst == nil {
		return NoHazard
	}

	stages, ok := d.stagesOf(inst)
	if !ok {
		return NoHazard
	}

	depth := d.required.Depth()
	cycle := cycleOffset
	for i, stage := range stages {
		for c := 0; c < int(stage.Cycles); c++ {
			stageCycle := cycle + c
			if stageCycle < 0 {
				continue
			}

			// Stalled past the board; nothing can be held there yet.
			if stageCycle >= depth {
				break
			}

			free := availableUnits(stage.Units,
				d.required.At(stageCycle), d.reserved.At(stageCycle), stage.Kind)
			if free == 0 {
				d.invoke(HookPosHazard, inst, HazardDetail{
					Offset: cycleOffset,
					Cycle:  stageCycle,
					Stage:  i,
					Units:  stage.Units,
					Kind:   stage.Kind,
				})
				return Hazard
			}
		}

		cycle += stage.Next()
	}

	return NoHazard
}

// EmitInstruction commits inst at the current cycle. For every cycle of every
// stage it claims the lowest free candidate unit on the board matching the
// stage kind. Zero-cost opcodes are ignored.
func (d *ScoreboardHazardDetector) EmitInstruction(inst *insts.Instruction) {
	if !d.IsEnabled() || inst == nil {
		return
	}

	if d.ctx.IsZeroCost(inst.Op) {
		return
	}

	d.issueCount++

	stages, ok := d.stagesOf(inst)
	if !ok {
		d.invoke(HookPosEmit, inst, []Reservation(nil))
		return
	}

	var reservations []Reservation
	depth := d.required.Depth()
	cycle := 0
	for _, stage := range stages {
		for c := 0; c < int(stage.Cycles); c++ {
			stageCycle := cycle + c
			if stageCycle >= depth {
				log.Panicf("scoreboard depth exceeded: %s reaches cycle %d, depth is %d",
					inst.Op, stageCycle, depth)
			}

			free := availableUnits(stage.Units,
				d.required.At(stageCycle), d.reserved.At(stageCycle), stage.Kind)
			unit := lowestUnit(free)

			if stage.Kind == itinerary.Required {
				d.required.Reserve(stageCycle, unit)
			} else {
				d.reserved.Reserve(stageCycle, unit)
			}

			if d.numHooks > 0 {
				reservations = append(reservations, Reservation{
					Cycle: stageCycle,
					Unit:  unit,
					Kind:  stage.Kind,
				})
			}
		}

		cycle += stage.Next()
	}

	d.invoke(HookPosEmit, inst, reservations)
}

// AdvanceCycle moves "now" one cycle forward. The cycle that falls off the
// front is cleared and reused as the farthest future cycle.
func (d *ScoreboardHazardDetector) AdvanceCycle() {
	d.issueCount = 0

	if !d.IsEnabled() {
		return
	}

	d.reserved.Clear(0)
	d.reserved.Advance()
	d.required.Clear(0)
	d.required.Advance()

	d.invoke(HookPosAdvance, nil, nil)
}

// RecedeCycle moves "now" one cycle backward. The farthest future cycle is
// cleared and reused as the new current cycle.
func (d *ScoreboardHazardDetector) RecedeCycle() {
	d.issueCount = 0

	if !d.IsEnabled() {
		return
	}

	last := d.required.Depth() - 1
	d.reserved.Clear(last)
	d.reserved.Recede()
	d.required.Clear(last)
	d.required.Recede()

	d.invoke(HookPosRecede, nil, nil)
}

// Dump writes both scoreboards.
func (d *ScoreboardHazardDetector) Dump(w io.Writer) {
	fmt.Fprintf(w, "Required scoreboard (depth %d, issued %d):\n",
		d.required.Depth(), d.issueCount)
	d.required.Dump(w)
	fmt.Fprintf(w, "Reserved scoreboard (depth %d):\n", d.reserved.Depth())
	d.reserved.Dump(w)
}

func (d *ScoreboardHazardDetector) invoke(pos *sim.HookPos, item, detail any) {
	if d.numHooks == 0 {
		return
	}

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
