package itinerary_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m2sched/itinerary"
)

var _ = Describe("Itinerary files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should round-trip through JSON", func() {
		path := filepath.Join(dir, "itin.json")
		Expect(sampleData().SaveFile(path)).To(Succeed())

		loaded, err := itinerary.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(sampleData()))
	})

	It("should round-trip through YAML", func() {
		path := filepath.Join(dir, "itin.yaml")
		Expect(sampleData().SaveFile(path)).To(Succeed())

		loaded, err := itinerary.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(sampleData()))
	})

	It("should parse hand-written YAML", func() {
		src := `
units: [mac, ld]
issue_width: 1
classes:
  - name: mac
    stages:
      - cycles: 2
        units: [mac]
        next_cycles: 1
      - cycles: 1
        units: [ld]
        kind: reserved
op_classes:
  madd: mac
`
		path := filepath.Join(dir, "hand.yml")
		Expect(os.WriteFile(path, []byte(src), 0644)).To(Succeed())

		data, err := itinerary.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.Classes[0].Stages[0].NextCycles).NotTo(BeNil())
		Expect(*data.Classes[0].Stages[0].NextCycles).To(Equal(1))
		Expect(data.Classes[0].Stages[1].Kind).To(Equal(itinerary.Reserved))
		Expect(data.Validate()).To(Succeed())
	})

	It("should fail on a missing file", func() {
		_, err := itinerary.LoadFile(filepath.Join(dir, "missing.json"))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on malformed JSON", func() {
		path := filepath.Join(dir, "bad.json")
		Expect(os.WriteFile(path, []byte("{"), 0644)).To(Succeed())

		_, err := itinerary.LoadFile(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Validate", func() {
	var data *itinerary.Data

	BeforeEach(func() {
		data = sampleData()
	})

	It("should accept a well-formed itinerary", func() {
		Expect(data.Validate()).To(Succeed())
	})

	It("should reject a nil itinerary", func() {
		var nilData *itinerary.Data
		Expect(nilData.Validate()).NotTo(Succeed())
	})

	It("should reject duplicate units", func() {
		data.Units = append(data.Units, "alu0")
		Expect(data.Validate()).To(MatchError(ContainSubstring("duplicate unit")))
	})

	It("should reject too many units", func() {
		data.Units = nil
		for i := 0; i < itinerary.MaxUnits+1; i++ {
			data.Units = append(data.Units, string(rune('A'+i%26))+string(rune('a'+i/26)))
		}
		Expect(data.Validate()).To(MatchError(ContainSubstring("at most")))
	})

	It("should reject stages naming unknown units", func() {
		data.Classes[0].Stages[0].Units = []string{"fpu"}
		Expect(data.Validate()).To(MatchError(ContainSubstring("unknown unit")))
	})

	It("should reject stages that hold no unit", func() {
		data.Classes[0].Stages[0].Units = nil
		Expect(data.Validate()).To(MatchError(ContainSubstring("holds no unit")))
	})

	It("should reject classes deeper than the limit", func() {
		data.Classes[0].Stages[0].Cycles = 4000000000
		Expect(data.Validate()).To(MatchError(itinerary.ErrDepthExceeded))

		data = sampleData()
		data.Classes[1].Stages[0].NextCycles = itinerary.NextCycles(itinerary.MaxDepth)
		Expect(data.Validate()).To(MatchError(itinerary.ErrDepthExceeded))

		data = sampleData()
		data.Classes[1].Stages[0].NextCycles = itinerary.NextCycles(itinerary.MaxDepth - 3)
		Expect(data.Validate()).To(Succeed())
	})

	It("should refuse to compile an oversized itinerary", func() {
		data.Classes[1].Stages[1].Cycles = itinerary.MaxDepth + 1

		_, err := data.Compile()
		Expect(err).To(MatchError(itinerary.ErrDepthExceeded))
	})

	It("should allow zero-cycle stages without units", func() {
		data.Classes[0].Stages = append(data.Classes[0].Stages, itinerary.StageSpec{})
		Expect(data.Validate()).To(Succeed())
	})

	It("should reject unknown opcodes and classes", func() {
		data.OpClasses["frob"] = "alu"
		Expect(data.Validate()).To(MatchError(ContainSubstring("unknown opcode")))

		data = sampleData()
		data.OpClasses["mul"] = "mul"
		Expect(data.Validate()).To(MatchError(ContainSubstring("unknown class")))

		data = sampleData()
		data.ZeroCost = []string{"frob"}
		Expect(data.Validate()).To(MatchError(ContainSubstring("zero_cost")))
	})

	It("should reject duplicate classes and negative issue width", func() {
		data.Classes = append(data.Classes, data.Classes[0])
		Expect(data.Validate()).To(MatchError(ContainSubstring("duplicate class")))

		data = sampleData()
		data.IssueWidth = -1
		Expect(data.Validate()).NotTo(Succeed())
	})

	It("should report empty itineraries", func() {
		Expect(data.IsEmpty()).To(BeFalse())
		Expect((&itinerary.Data{}).IsEmpty()).To(BeTrue())
		var nilData *itinerary.Data
		Expect(nilData.IsEmpty()).To(BeTrue())
	})

	It("should clone deeply", func() {
		clone := data.Clone()
		Expect(clone).To(Equal(data))

		clone.Classes[1].Stages[0].Units[0] = "alu0"
		*clone.Classes[1].Stages[0].NextCycles = 9
		clone.OpClasses["add"] = "load"

		Expect(data.Classes[1].Stages[0].Units[0]).To(Equal("lsu"))
		Expect(*data.Classes[1].Stages[0].NextCycles).To(Equal(1))
		Expect(data.OpClasses["add"]).To(Equal("alu"))
	})
})
