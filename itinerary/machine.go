package itinerary

import (
	"fmt"

	"github.com/sarchlab/m2sched/insts"
)

type class struct {
	name   string
	stages []Stage
}

// Machine is a compiled itinerary. It resolves opcodes to schedule classes
// and exposes each class's stages with unit masks. A Machine is read-only
// once compiled and may be shared by any number of detectors.
type Machine struct {
	data       *Data
	units      []string
	classes    []class
	opClass    map[insts.Op]int
	zeroCost   map[insts.Op]bool
	issueWidth int
}

// Compile validates the itinerary and resolves all names.
func (d *Data) Compile() (*Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		data:       d.Clone(),
		units:      append([]string(nil), d.Units...),
		opClass:    make(map[insts.Op]int, len(d.OpClasses)),
		zeroCost:   make(map[insts.Op]bool, len(d.ZeroCost)),
		issueWidth: d.IssueWidth,
	}

	unitIndex := make(map[string]int, len(d.Units))
	for i, u := range d.Units {
		unitIndex[u] = i
	}

	classIndex := make(map[string]int, len(d.Classes))
	for i, c := range d.Classes {
		classIndex[c.Name] = i

		compiled := class{name: c.Name, stages: make([]Stage, 0, len(c.Stages))}
		for _, s := range c.Stages {
			compiled.stages = append(compiled.stages, compileStage(s, unitIndex))
		}
		m.classes = append(m.classes, compiled)
	}

	for mnemonic, className := range d.OpClasses {
		op, _ := insts.LookupOp(mnemonic)
		m.opClass[op] = classIndex[className]
	}

	for _, mnemonic := range d.ZeroCost {
		op, _ := insts.LookupOp(mnemonic)
		m.zeroCost[op] = true
	}

	return m, nil
}

// MustCompile is like Compile but panics on an invalid itinerary.
func (d *Data) MustCompile() *Machine {
	m, err := d.Compile()
	if err != nil {
		panic(err)
	}
	return m
}

func compileStage(s StageSpec, unitIndex map[string]int) Stage {
	stage := Stage{
		Cycles:     s.Cycles,
		Kind:       s.Kind,
		NextCycles: -1,
	}

	if s.NextCycles != nil {
		stage.NextCycles = *s.NextCycles
	}

	for _, u := range s.Units {
		stage.Units |= 1 << uint(unitIndex[u])
	}

	return stage
}

// IsEmpty returns true if the machine is nil or has no classes.
func (m *Machine) IsEmpty() bool {
	return m == nil || len(m.classes) == 0
}

// NumClasses returns the number of schedule classes. A nil machine has none.
func (m *Machine) NumClasses() int {
	if m == nil {
		return 0
	}
	return len(m.classes)
}

// ClassOf returns the schedule class of an opcode. The second result is false
// if the opcode has no itinerary entry.
func (m *Machine) ClassOf(op insts.Op) (int, bool) {
	c, ok := m.opClass[op]
	return c, ok
}

// Stages returns the stages of a class. The slice must not be modified.
func (m *Machine) Stages(class int) []Stage {
	if class < 0 || class >= len(m.classes) {
		return nil
	}
	return m.classes[class].stages
}

// ClassName returns the name of a class.
func (m *Machine) ClassName(class int) string {
	if class < 0 || class >= len(m.classes) {
		return fmt.Sprintf("class(%d)", class)
	}
	return m.classes[class].name
}

// IsZeroCost returns true if the opcode consumes no pipeline resources.
func (m *Machine) IsZeroCost(op insts.Op) bool {
	return m.zeroCost[op]
}

// IssueWidth returns the maximum number of instructions issued per cycle.
func (m *Machine) IssueWidth() int {
	return m.issueWidth
}

// NumUnits returns the number of declared functional units.
func (m *Machine) NumUnits() int {
	return len(m.units)
}

// UnitName returns the name of unit i.
func (m *Machine) UnitName(i int) string {
	if i < 0 || i >= len(m.units) {
		return fmt.Sprintf("unit(%d)", i)
	}
	return m.units[i]
}

// UnitNames returns the names of the units in a mask, lowest bit first.
func (m *Machine) UnitNames(units FuncUnits) []string {
	var names []string
	for i := 0; i < MaxUnits; i++ {
		if units.Has(i) {
			names = append(names, m.UnitName(i))
		}
	}
	return names
}

// Data returns a copy of the itinerary the machine was compiled from.
func (m *Machine) Data() *Data {
	return m.data.Clone()
}
