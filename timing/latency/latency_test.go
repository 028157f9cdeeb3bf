package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m2sched/insts"
	"github.com/sarchlab/m2sched/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("should have correct ALU latency", func() {
			Expect(table.Config().ALULatency).To(Equal(uint64(1)))
		})

		It("should have correct load latency", func() {
			Expect(table.Config().LoadLatency).To(Equal(uint64(4)))
		})

		It("should have an eight-wide issue", func() {
			Expect(table.Config().IssueWidth).To(Equal(8))
		})
	})

	Describe("GetLatency", func() {
		DescribeTable("per opcode",
			func(op insts.Op, want uint64) {
				Expect(table.GetLatency(insts.NewInstruction(0, op))).To(Equal(want))
			},
			Entry("add", insts.OpADD, uint64(1)),
			Entry("mov", insts.OpMOV, uint64(1)),
			Entry("mul", insts.OpMUL, uint64(3)),
			Entry("sdiv", insts.OpSDIV, uint64(10)),
			Entry("ldr", insts.OpLDR, uint64(4)),
			Entry("stp", insts.OpSTP, uint64(1)),
			Entry("b.cond", insts.OpBCond, uint64(1)),
			Entry("fadd", insts.OpFADD, uint64(3)),
			Entry("fmul", insts.OpFMUL, uint64(4)),
			Entry("fdiv", insts.OpFDIV, uint64(10)),
			Entry("svc", insts.OpSVC, uint64(1)),
			Entry("nop", insts.OpNOP, uint64(0)),
			Entry("unknown", insts.OpUnknown, uint64(1)),
		)

		It("should return 1 for nil instructions", func() {
			Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
		})

		It("should report the divide latency range", func() {
			div := insts.NewInstruction(0, insts.OpUDIV)
			Expect(table.GetMinLatency(div)).To(Equal(uint64(10)))
			Expect(table.GetMaxLatency(div)).To(Equal(uint64(15)))
		})

		It("should use custom configurations", func() {
			cfg := latency.DefaultTimingConfig()
			cfg.LoadLatency = 6
			custom := latency.NewTableWithConfig(cfg)
			Expect(custom.GetLatency(insts.NewInstruction(0, insts.OpLDR))).To(Equal(uint64(6)))
		})
	})

	Describe("Classification", func() {
		It("should identify memory and branch ops", func() {
			Expect(table.IsMemoryOp(insts.NewInstruction(0, insts.OpLDR))).To(BeTrue())
			Expect(table.IsMemoryOp(insts.NewInstruction(0, insts.OpADD))).To(BeFalse())
			Expect(table.IsBranchOp(insts.NewInstruction(0, insts.OpRET))).To(BeTrue())
			Expect(table.IsBranchOp(nil)).To(BeFalse())
			Expect(table.IsMemoryOp(nil)).To(BeFalse())
		})
	})
})

var _ = Describe("TimingConfig", func() {
	It("should validate the defaults", func() {
		Expect(latency.DefaultTimingConfig().Validate()).To(Succeed())
	})

	It("should reject zero latencies", func() {
		cfg := latency.DefaultTimingConfig()
		cfg.LoadLatency = 0
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("load_latency")))
	})

	It("should reject an inverted divide range", func() {
		cfg := latency.DefaultTimingConfig()
		cfg.DivideLatencyMin = 20
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("divide_latency_min")))
	})

	It("should clone independently", func() {
		cfg := latency.DefaultTimingConfig()
		clone := cfg.Clone()
		clone.ALULatency = 5
		Expect(cfg.ALULatency).To(Equal(uint64(1)))
	})

	It("should save and load", func() {
		path := filepath.Join(GinkgoT().TempDir(), "timing.json")
		cfg := latency.DefaultTimingConfig()
		cfg.MultiplyLatency = 5
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := latency.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(cfg))
	})

	It("should fill unspecified fields with defaults", func() {
		path := filepath.Join(GinkgoT().TempDir(), "partial.json")
		Expect(os.WriteFile(path, []byte(`{"load_latency": 7}`), 0644)).To(Succeed())

		loaded, err := latency.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.LoadLatency).To(Equal(uint64(7)))
		Expect(loaded.ALULatency).To(Equal(uint64(1)))
	})

	It("should fail on a missing file", func() {
		_, err := latency.LoadConfig("/nonexistent/timing.json")
		Expect(err).To(HaveOccurred())
	})
})
