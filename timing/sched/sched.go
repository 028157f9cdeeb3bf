// Package sched provides an in-order list scheduler that places the
// instructions of one scheduling region cycle by cycle, consulting a hazard
// detector before every issue.
package sched

import (
	"fmt"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/timing/hazard"
	"github.com/sarchlab/m2sched/timing/latency"
)

// Detector is the part of the hazard detector the scheduler drives.
type Detector interface {
	MaxLookAhead() int
	HazardType(inst *insts.Instruction, cycleOffset int) hazard.HazardType
	EmitInstruction(inst *insts.Instruction)
	AdvanceCycle()
	RecedeCycle()
	AtIssueLimit() bool
	Reset()
}

// Direction is the order in which a region is walked.
type Direction int

const (
	// TopDown places instructions in program order, moving time forward.
	TopDown Direction = iota
	// BottomUp places instructions in reverse program order, moving time
	// backward.
	BottomUp
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case TopDown:
		return "top-down"
	case BottomUp:
		return "bottom-up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Slot is the placement of one instruction.
type Slot struct {
	Inst *insts.Instruction
	// Cycle is the issue cycle, counted from the first issue cycle of the
	// region.
	Cycle int
	// Done is the cycle the instruction's result is available.
	Done int
}

// Result summarizes a scheduled region.
type Result struct {
	Direction Direction
	// Slots holds one entry per instruction, in program order.
	Slots []Slot
	// Cycles is the number of issue cycles the region spans.
	Cycles int
	// Makespan is the cycle at which the last result is available.
	Makespan int
	// Stalls counts cycles spent waiting on structural hazards.
	Stalls int
	// IssueLimitCycles counts cycle moves forced by the issue width.
	IssueLimitCycles int
	// ForcedIssues counts instructions issued despite a hazard because the
	// stall limit was reached.
	ForcedIssues int
}

// IPC returns instructions per issue cycle.
func (r Result) IPC() float64 {
	if r.Cycles == 0 {
		return 0
	}
	return float64(len(r.Slots)) / float64(r.Cycles)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDirection sets the walk direction.
func WithDirection(d Direction) Option {
	return func(s *Scheduler) {
		s.direction = d
	}
}

// WithMaxStall caps the cycles an instruction may wait on hazards. Zero uses
// the detector's look-ahead.
func WithMaxStall(n int) Option {
	return func(s *Scheduler) {
		s.maxStall = n
	}
}

// WithLatencyTable sets the table used to compute result availability.
func WithLatencyTable(table *latency.Table) Option {
	return func(s *Scheduler) {
		s.latencyTable = table
	}
}

// Scheduler places instructions of a region one at a time, in order.
type Scheduler struct {
	det          Detector
	direction    Direction
	maxStall     int
	latencyTable *latency.Table
}

// NewScheduler creates a scheduler driving det.
func NewScheduler(det Detector, opts ...Option) *Scheduler {
	s := &Scheduler{
		det:          det,
		direction:    TopDown,
		latencyTable: latency.NewTable(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Direction returns the walk direction.
func (s *Scheduler) Direction() Direction {
	return s.direction
}

func (s *Scheduler) stallLimit() int {
	if s.maxStall > 0 {
		return s.maxStall
	}
	if n := s.det.MaxLookAhead(); n > 0 {
		return n
	}
	return 1
}

// Schedule places every instruction of the region. The detector is reset
// first, so a region never sees reservations from a previous one.
func (s *Scheduler) Schedule(region []*insts.Instruction) Result {
	s.det.Reset()

	res := Result{
		Direction: s.direction,
		Slots:     make([]Slot, len(region)),
	}
	if len(region) == 0 {
		return res
	}

	if s.direction == BottomUp {
		s.scheduleBottomUp(region, &res)
	} else {
		s.scheduleTopDown(region, &res)
	}

	s.finish(&res)

	return res
}

func (s *Scheduler) scheduleTopDown(region []*insts.Instruction, res *Result) {
	cycle := 0
	for i, inst := range region {
		cycle += s.waitForIssue(inst, res, s.det.AdvanceCycle)

		s.det.EmitInstruction(inst)
		res.Slots[i] = Slot{Inst: inst, Cycle: cycle}

		if s.det.AtIssueLimit() {
			s.det.AdvanceCycle()
			cycle++
			res.IssueLimitCycles++
		}
	}
}

func (s *Scheduler) scheduleBottomUp(region []*insts.Instruction, res *Result) {
	cycle := 0
	for i := len(region) - 1; i >= 0; i-- {
		inst := region[i]
		cycle -= s.waitForIssue(inst, res, s.det.RecedeCycle)

		s.det.EmitInstruction(inst)
		res.Slots[i] = Slot{Inst: inst, Cycle: cycle}

		if s.det.AtIssueLimit() {
			s.det.RecedeCycle()
			cycle--
			res.IssueLimitCycles++
		}
	}
}

// waitForIssue moves the detector until inst can issue now and returns the
// number of cycles moved.
func (s *Scheduler) waitForIssue(
	inst *insts.Instruction,
	res *Result,
	move func(),
) int {
	limit := s.stallLimit()

	stalls := 0
	for s.det.HazardType(inst, 0) == hazard.Hazard {
		if stalls >= limit {
			res.ForcedIssues++
			break
		}

		move()
		stalls++
	}

	res.Stalls += stalls

	return stalls
}

// finish shifts cycles so that the first issue cycle is 0 and fills in
// result availability.
func (s *Scheduler) finish(res *Result) {
	first, last := res.Slots[0].Cycle, res.Slots[0].Cycle
	for _, slot := range res.Slots {
		first = min(first, slot.Cycle)
		last = max(last, slot.Cycle)
	}

	res.Cycles = last - first + 1
	res.Makespan = res.Cycles

	for i := range res.Slots {
		slot := &res.Slots[i]
		slot.Cycle -= first
		slot.Done = slot.Cycle + int(s.latencyTable.GetLatency(slot.Inst))
		res.Makespan = max(res.Makespan, slot.Done)
	}
}
