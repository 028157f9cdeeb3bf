package benchmarks

import "github.com/sarchlab/m2sched/insts"

// GetKernels returns the standard set of kernels for M2 itinerary
// calibration. Each kernel stresses one group of functional units.
func GetKernels() []Kernel {
	return []Kernel{
		aluBurst(),
		multiplyStream(),
		divideChain(),
		loadStream(),
		storeStream(),
		fpMix(),
		mixedOperations(),
	}
}

// GetCoreKernels returns a minimal set for quick validation.
func GetCoreKernels() []Kernel {
	return []Kernel{
		aluBurst(),
		divideChain(),
		mixedOperations(),
	}
}

// BuildProgram numbers the opcodes into a region.
func BuildProgram(ops ...insts.Op) []*insts.Instruction {
	prog := make([]*insts.Instruction, len(ops))
	for i, op := range ops {
		prog[i] = insts.NewInstruction(i, op)
	}
	return prog
}

func repeat(op insts.Op, n int) []insts.Op {
	ops := make([]insts.Op, n)
	for i := range ops {
		ops[i] = op
	}
	return ops
}

func aluBurst() Kernel {
	return Kernel{
		Name:        "alu_burst",
		Description: "24 independent ADDs - measures integer ALU throughput",
		Program:     BuildProgram(repeat(insts.OpADD, 24)...),
	}
}

func multiplyStream() Kernel {
	return Kernel{
		Name:        "multiply_stream",
		Description: "12 MULs - two multiply-capable ALUs",
		Program:     BuildProgram(repeat(insts.OpMUL, 12)...),
	}
}

func divideChain() Kernel {
	return Kernel{
		Name:        "divide_chain",
		Description: "4 SDIVs - the integer divider is not pipelined",
		Program:     BuildProgram(repeat(insts.OpSDIV, 4)...),
	}
}

func loadStream() Kernel {
	return Kernel{
		Name:        "load_stream",
		Description: "12 LDRs - three load/store units",
		Program:     BuildProgram(repeat(insts.OpLDR, 12)...),
	}
}

func storeStream() Kernel {
	return Kernel{
		Name:        "store_stream",
		Description: "12 STRs - two store-capable units",
		Program:     BuildProgram(repeat(insts.OpSTR, 12)...),
	}
}

func fpMix() Kernel {
	return Kernel{
		Name:        "fp_mix",
		Description: "FADD/FMUL pairs around two FDIVs",
		Program: BuildProgram(
			insts.OpFDIV,
			insts.OpFADD, insts.OpFMUL, insts.OpFADD, insts.OpFMUL,
			insts.OpFDIV,
			insts.OpFADD, insts.OpFMUL,
		),
	}
}

func mixedOperations() Kernel {
	return Kernel{
		Name:        "mixed_operations",
		Description: "ALU, memory and branch mix ending in a return",
		Program: BuildProgram(
			insts.OpLDR, insts.OpLDR, insts.OpADD, insts.OpMUL,
			insts.OpSUB, insts.OpSTR, insts.OpAND, insts.OpORR,
			insts.OpLDR, insts.OpEOR, insts.OpMADD, insts.OpSTR,
			insts.OpNOP, insts.OpCOPY, insts.OpRET,
		),
	}
}
