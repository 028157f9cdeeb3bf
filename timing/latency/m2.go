package latency

import (
	"fmt"

	"github.com/sarchlab/m2sched/itinerary"
)

// Class names used by M2Itinerary.
const (
	ClassALU     = "alu"
	ClassMul     = "mul"
	ClassDiv     = "div"
	ClassLoad    = "load"
	ClassStore   = "store"
	ClassBranch  = "branch"
	ClassFP      = "fp"
	ClassFPDiv   = "fdiv"
	ClassSyscall = "syscall"
)

func unitRange(prefix string, n int) []string {
	units := make([]string, n)
	for i := range units {
		units[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return units
}

// pipelinedOp holds its issue unit for one cycle and then expects a result
// write-back port once the latency has elapsed. The write-back port is only
// Reserved: a later Required claim on the port wins over it.
func pipelinedOp(units []string, lat uint64) []itinerary.StageSpec {
	next := 0
	if lat > 1 {
		next = int(lat) - 1
	}

	return []itinerary.StageSpec{
		{Cycles: 1, Units: units, NextCycles: itinerary.NextCycles(next)},
		{Cycles: 1, Units: []string{"wb0", "wb1"}, Kind: itinerary.Reserved},
	}
}

// unpipelinedOp issues on one of the issue units and then holds the
// execution unit for the whole latency.
func unpipelinedOp(issue []string, exec string, lat uint64) []itinerary.StageSpec {
	return []itinerary.StageSpec{
		{Cycles: 1, Units: issue, NextCycles: itinerary.NextCycles(0)},
		{Cycles: uint(lat), Units: []string{exec}},
	}
}

// M2Itinerary builds an itinerary for an M2-like performance core from the
// timing configuration.
//
// Units: six integer ALUs (alu4 and alu5 also multiply, alu5 feeds the
// divider), three load/store units (lsu0 and lsu1 also store), two branch
// units, four FP pipes (fp0 feeds the FP divider), the two dividers, a
// system unit, and two result write-back ports shared by the long-latency
// pipelined ops.
func M2Itinerary(cfg *TimingConfig) *itinerary.Data {
	alus := unitRange("alu", 6)
	lsus := unitRange("lsu", 3)
	brs := unitRange("br", 2)
	fps := unitRange("fp", 4)

	var units []string
	units = append(units, alus...)
	units = append(units, lsus...)
	units = append(units, brs...)
	units = append(units, fps...)
	units = append(units, "div", "fdiv", "sys", "wb0", "wb1")

	return &itinerary.Data{
		Units:      units,
		IssueWidth: cfg.IssueWidth,
		Classes: []itinerary.ClassSpec{
			{
				Name:   ClassALU,
				Stages: []itinerary.StageSpec{{Cycles: uint(cfg.ALULatency), Units: alus}},
			},
			{
				Name:   ClassMul,
				Stages: pipelinedOp([]string{"alu4", "alu5"}, cfg.MultiplyLatency),
			},
			{
				Name:   ClassDiv,
				Stages: unpipelinedOp([]string{"alu5"}, "div", cfg.DivideLatencyMin),
			},
			{
				Name:   ClassLoad,
				Stages: pipelinedOp(lsus, cfg.LoadLatency),
			},
			{
				Name: ClassStore,
				Stages: []itinerary.StageSpec{
					{Cycles: uint(cfg.StoreLatency), Units: []string{"lsu0", "lsu1"}},
				},
			},
			{
				Name:   ClassBranch,
				Stages: []itinerary.StageSpec{{Cycles: uint(cfg.BranchLatency), Units: brs}},
			},
			{
				Name:   ClassFP,
				Stages: []itinerary.StageSpec{{Cycles: 1, Units: fps}},
			},
			{
				Name:   ClassFPDiv,
				Stages: unpipelinedOp([]string{"fp0"}, "fdiv", cfg.FPDivLatency),
			},
			{
				Name:   ClassSyscall,
				Stages: []itinerary.StageSpec{{Cycles: uint(cfg.SyscallLatency), Units: []string{"sys"}}},
			},
		},
		OpClasses: map[string]string{
			"add":    ClassALU,
			"sub":    ClassALU,
			"and":    ClassALU,
			"orr":    ClassALU,
			"eor":    ClassALU,
			"mov":    ClassALU,
			"mul":    ClassMul,
			"madd":   ClassMul,
			"sdiv":   ClassDiv,
			"udiv":   ClassDiv,
			"ldr":    ClassLoad,
			"ldp":    ClassLoad,
			"str":    ClassStore,
			"stp":    ClassStore,
			"b":      ClassBranch,
			"bl":     ClassBranch,
			"b.cond": ClassBranch,
			"br":     ClassBranch,
			"blr":    ClassBranch,
			"ret":    ClassBranch,
			"fadd":   ClassFP,
			"fmul":   ClassFP,
			"fdiv":   ClassFPDiv,
			"svc":    ClassSyscall,
		},
		ZeroCost: []string{"nop", "copy", "kill", "implicit_def"},
	}
}
