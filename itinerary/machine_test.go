package itinerary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/itinerary"
)

func sampleData() *itinerary.Data {
	return &itinerary.Data{
		Units:      []string{"alu0", "alu1", "lsu"},
		IssueWidth: 2,
		Classes: []itinerary.ClassSpec{
			{
				Name: "alu",
				Stages: []itinerary.StageSpec{
					{Cycles: 1, Units: []string{"alu0", "alu1"}},
				},
			},
			{
				Name: "load",
				Stages: []itinerary.StageSpec{
					{Cycles: 1, Units: []string{"lsu"}, NextCycles: itinerary.NextCycles(1)},
					{Cycles: 3, Units: []string{"lsu"}, Kind: itinerary.Reserved},
				},
			},
		},
		OpClasses: map[string]string{
			"add": "alu",
			"sub": "alu",
			"ldr": "load",
		},
		ZeroCost: []string{"nop"},
	}
}

var _ = Describe("Machine", func() {
	var m *itinerary.Machine

	BeforeEach(func() {
		var err error
		m, err = sampleData().Compile()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should resolve opcodes to classes", func() {
		c, ok := m.ClassOf(insts.OpLDR)
		Expect(ok).To(BeTrue())
		Expect(m.ClassName(c)).To(Equal("load"))

		_, ok = m.ClassOf(insts.OpMUL)
		Expect(ok).To(BeFalse())
	})

	It("should compile unit names into masks", func() {
		c, _ := m.ClassOf(insts.OpADD)
		stages := m.Stages(c)
		Expect(stages).To(HaveLen(1))
		Expect(stages[0].Units).To(Equal(itinerary.FuncUnits(0b011)))
		Expect(stages[0].NextCycles).To(Equal(-1))
		Expect(m.UnitNames(stages[0].Units)).To(Equal([]string{"alu0", "alu1"}))
	})

	It("should keep stage kinds and explicit deltas", func() {
		c, _ := m.ClassOf(insts.OpLDR)
		stages := m.Stages(c)
		Expect(stages[0].NextCycles).To(Equal(1))
		Expect(stages[1].Kind).To(Equal(itinerary.Reserved))
		Expect(stages[1].Units).To(Equal(itinerary.FuncUnits(0b100)))
		Expect(itinerary.Depth(stages)).To(Equal(4))
	})

	It("should expose machine parameters", func() {
		Expect(m.NumClasses()).To(Equal(2))
		Expect(m.NumUnits()).To(Equal(3))
		Expect(m.IssueWidth()).To(Equal(2))
		Expect(m.IsZeroCost(insts.OpNOP)).To(BeTrue())
		Expect(m.IsZeroCost(insts.OpADD)).To(BeFalse())
		Expect(m.IsEmpty()).To(BeFalse())
	})

	It("should return nil stages for unknown classes", func() {
		Expect(m.Stages(-1)).To(BeNil())
		Expect(m.Stages(5)).To(BeNil())
		Expect(m.ClassName(5)).To(Equal("class(5)"))
		Expect(m.UnitName(9)).To(Equal("unit(9)"))
	})

	It("should not be affected by later changes to the source data", func() {
		data := sampleData()
		compiled := data.MustCompile()
		data.Units[0] = "changed"

		Expect(compiled.UnitName(0)).To(Equal("alu0"))
		Expect(compiled.Data().Units[0]).To(Equal("alu0"))
	})

	It("should treat a nil machine as empty", func() {
		var nilMachine *itinerary.Machine
		Expect(nilMachine.IsEmpty()).To(BeTrue())
	})

	It("should panic from MustCompile on invalid data", func() {
		data := sampleData()
		data.OpClasses["add"] = "missing"
		Expect(func() { data.MustCompile() }).To(Panic())
	})
})
