package tracing

import (
	"fmt"
	"strings"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/timing/hazard"
)

var kindOfPos = map[*sim.HookPos]string{
	hazard.HookPosHazard:  KindHazard,
	hazard.HookPosEmit:    KindEmit,
	hazard.HookPosAdvance: KindAdvance,
	hazard.HookPosRecede:  KindRecede,
	hazard.HookPosReset:   KindReset,
}

// EventTracer is a hook that turns detector hook invocations into events and
// hands them to a Recorder.
type EventTracer struct {
	recorder Recorder

	region string
	seq    uint64
	cycle  int
}

// NewEventTracer creates an EventTracer that writes to recorder.
func NewEventTracer(recorder Recorder) *EventTracer {
	return &EventTracer{
		recorder: recorder,
		region:   xid.New().String(),
	}
}

// Region returns the ID of the current region.
func (t *EventTracer) Region() string {
	return t.region
}

// Cycle returns the current cycle relative to the start of the region.
func (t *EventTracer) Cycle() int {
	return t.cycle
}

// Func records the invocation. Positions not raised by the hazard detector
// are ignored.
func (t *EventTracer) Func(ctx sim.HookCtx) {
	kind, ok := kindOfPos[ctx.Pos]
	if !ok {
		return
	}

	switch ctx.Pos {
	case hazard.HookPosReset:
		t.region = xid.New().String()
		t.seq = 0
		t.cycle = 0
	case hazard.HookPosAdvance:
		t.cycle++
	case hazard.HookPosRecede:
		t.cycle--
	}

	event := Event{
		Region: t.region,
		Seq:    t.seq,
		Cycle:  t.cycle,
		Kind:   kind,
		InstID: -1,
		Detail: formatDetail(ctx.Detail),
	}
	t.seq++

	if inst, ok := ctx.Item.(*insts.Instruction); ok && inst != nil {
		event.InstID = inst.ID
		event.Op = inst.Op.String()
	}

	t.recorder.Record(event)
}

func formatDetail(detail any) string {
	switch d := detail.(type) {
	case hazard.HazardDetail:
		return fmt.Sprintf("offset=%d cycle=%d stage=%d units=%b kind=%s",
			d.Offset, d.Cycle, d.Stage, uint64(d.Units), d.Kind)
	case []hazard.Reservation:
		parts := make([]string, 0, len(d))
		for _, r := range d {
			parts = append(parts,
				fmt.Sprintf("%d:%b:%s", r.Cycle, uint64(r.Unit), r.Kind))
		}
		return strings.Join(parts, " ")
	case nil:
		return ""
	default:
		return fmt.Sprint(d)
	}
}
