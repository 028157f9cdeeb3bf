package insts

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Instruction is a single machine instruction in a scheduling region.
type Instruction struct {
	// ID is the position of the instruction in the parsed program.
	ID int
	// Op is the opcode.
	Op Op
	// Operands holds the operand text, one entry per comma-separated field.
	Operands []string
	// Text is the source line the instruction was parsed from.
	Text string
}

// String returns the instruction text, or the mnemonic if no text was kept.
func (i *Instruction) String() string {
	if i.Text != "" {
		return i.Text
	}
	return i.Op.String()
}

// NewInstruction creates an instruction with the given ID and opcode.
func NewInstruction(id int, op Op, operands ...string) *Instruction {
	return &Instruction{
		ID:       id,
		Op:       op,
		Operands: operands,
	}
}

// ParseProgram reads one instruction per line. Blank lines and lines
// starting with '#' or "//" are skipped; trailing "//" comments are
// stripped. A '#' after the mnemonic marks an immediate and is kept.
func ParseProgram(r io.Reader) ([]*Instruction, error) {
	var prog []*Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		inst, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		inst.ID = len(prog)
		prog = append(prog, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	return prog, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}

	return line
}

func parseLine(line string) (*Instruction, error) {
	mnemonic, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		mnemonic, rest = line[:i], line[i+1:]
	}

	op, ok := LookupOp(mnemonic)
	if !ok {
		return nil, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	inst := &Instruction{Op: op, Text: line}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return inst, nil
	}

	for _, field := range splitOperands(rest) {
		inst.Operands = append(inst.Operands, strings.TrimSpace(field))
	}

	return inst, nil
}

// splitOperands splits on commas that are not inside brackets, so that
// memory operands such as [x0, #8] stay together.
func splitOperands(s string) []string {
	var fields []string

	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}

	return append(fields, s[start:])
}
