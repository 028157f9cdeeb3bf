// Package insts provides the instruction model consumed by the scheduler.
//
// Instructions are identified by an ARM64-flavoured opcode. Operands are kept
// as text because resource hazards only depend on the opcode's schedule class.
// It supports:
//   - ALU, multiply and divide operations
//   - Loads and stores, including pair forms
//   - Branches and system calls
//   - Floating-point add, multiply and divide
//   - Pseudo-ops that occupy no pipeline resources
//
// Usage:
//
//	prog, err := insts.ParseProgram(strings.NewReader("add x0, x1, x2\nldr x3, [x0]"))
//	fmt.Printf("Op: %v, Operands: %v\n", prog[0].Op, prog[0].Operands)
package insts
