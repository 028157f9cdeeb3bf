package insts

import "strings"

// Op represents an opcode.
type Op uint16

// Opcodes.
const (
	OpUnknown Op = iota

	// ALU
	OpADD
	OpSUB
	OpAND
	OpORR
	OpEOR
	OpMOV

	// Multiply and divide
	OpMUL
	OpMADD
	OpSDIV
	OpUDIV

	// Memory
	OpLDR
	OpSTR
	OpLDP
	OpSTP

	// Branches
	OpB
	OpBL
	OpBCond
	OpBR
	OpBLR
	OpRET

	// Floating point
	OpFADD
	OpFMUL
	OpFDIV

	OpSVC

	// Pseudo-ops
	OpNOP
	OpCOPY
	OpKILL
	OpIMPLICITDEF

	numOps
)

var opNames = [numOps]string{
	OpUnknown:     "unknown",
	OpADD:         "add",
	OpSUB:         "sub",
	OpAND:         "and",
	OpORR:         "orr",
	OpEOR:         "eor",
	OpMOV:         "mov",
	OpMUL:         "mul",
	OpMADD:        "madd",
	OpSDIV:        "sdiv",
	OpUDIV:        "udiv",
	OpLDR:         "ldr",
	OpSTR:         "str",
	OpLDP:         "ldp",
	OpSTP:         "stp",
	OpB:           "b",
	OpBL:          "bl",
	OpBCond:       "b.cond",
	OpBR:          "br",
	OpBLR:         "blr",
	OpRET:         "ret",
	OpFADD:        "fadd",
	OpFMUL:        "fmul",
	OpFDIV:        "fdiv",
	OpSVC:         "svc",
	OpNOP:         "nop",
	OpCOPY:        "copy",
	OpKILL:        "kill",
	OpIMPLICITDEF: "implicit_def",
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, numOps)
	for op := OpUnknown + 1; op < numOps; op++ {
		m[opNames[op]] = op
	}
	return m
}()

// String returns the lower-case mnemonic of the opcode.
func (op Op) String() string {
	if op >= numOps {
		return opNames[OpUnknown]
	}
	return opNames[op]
}

// LookupOp returns the opcode with the given mnemonic. Matching is
// case-insensitive. Conditional branches (b.eq, b.ne, ...) all map to OpBCond.
func LookupOp(mnemonic string) (Op, bool) {
	name := strings.ToLower(strings.TrimSpace(mnemonic))
	if op, ok := opsByName[name]; ok {
		return op, true
	}

	if strings.HasPrefix(name, "b.") && len(name) == 4 {
		return OpBCond, true
	}

	return OpUnknown, false
}

// Ops returns every known opcode except OpUnknown, in enum order.
func Ops() []Op {
	ops := make([]Op, 0, numOps-1)
	for op := OpUnknown + 1; op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}

// IsPseudo returns true for opcodes that never reach the pipeline.
func IsPseudo(op Op) bool {
	switch op {
	case OpNOP, OpCOPY, OpKILL, OpIMPLICITDEF:
		return true
	default:
		return false
	}
}

// IsBranch returns true if the opcode transfers control.
func IsBranch(op Op) bool {
	switch op {
	case OpB, OpBL, OpBCond, OpBR, OpBLR, OpRET:
		return true
	default:
		return false
	}
}

// IsLoad returns true if the opcode reads memory.
func IsLoad(op Op) bool {
	return op == OpLDR || op == OpLDP
}

// IsStore returns true if the opcode writes memory.
func IsStore(op Op) bool {
	return op == OpSTR || op == OpSTP
}
