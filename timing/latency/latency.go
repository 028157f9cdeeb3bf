// Package latency provides instruction timing models for scheduling.
//
// The latency values are based on Apple M2 microarchitecture estimates and
// can be configured via TimingConfig. M2Itinerary turns a TimingConfig into a
// functional-unit itinerary for the hazard detector.
package latency

import (
	"github.com/sarchlab/m2sched/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default M2 timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given instruction.
// For variable-latency operations, returns the typical/expected latency.
// Pseudo-ops take no time.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpADD, insts.OpSUB, insts.OpAND, insts.OpORR, insts.OpEOR, insts.OpMOV:
		return t.config.ALULatency

	case insts.OpMUL, insts.OpMADD:
		return t.config.MultiplyLatency

	case insts.OpSDIV, insts.OpUDIV:
		return t.config.DivideLatencyMin

	case insts.OpB, insts.OpBL, insts.OpBCond, insts.OpBR, insts.OpBLR, insts.OpRET:
		return t.config.BranchLatency

	case insts.OpLDR, insts.OpLDP:
		return t.config.LoadLatency

	case insts.OpSTR, insts.OpSTP:
		return t.config.StoreLatency

	case insts.OpFADD:
		return t.config.FPAddLatency

	case insts.OpFMUL:
		return t.config.FPMulLatency

	case insts.OpFDIV:
		return t.config.FPDivLatency

	case insts.OpSVC:
		return t.config.SyscallLatency

	case insts.OpNOP, insts.OpCOPY, insts.OpKILL, insts.OpIMPLICITDEF:
		return 0

	default:
		return 1
	}
}

// GetMinLatency returns the minimum execution latency for variable-latency operations.
func (t *Table) GetMinLatency(inst *insts.Instruction) uint64 {
	return t.GetLatency(inst)
}

// GetMaxLatency returns the maximum execution latency for variable-latency operations.
func (t *Table) GetMaxLatency(inst *insts.Instruction) uint64 {
	if inst != nil && (inst.Op == insts.OpSDIV || inst.Op == insts.OpUDIV) {
		return t.config.DivideLatencyMax
	}
	return t.GetLatency(inst)
}

// IsMemoryOp returns true if the instruction accesses memory.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return insts.IsLoad(inst.Op) || insts.IsStore(inst.Op)
}

// IsBranchOp returns true if the instruction is a branch operation.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return insts.IsBranch(inst.Op)
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
