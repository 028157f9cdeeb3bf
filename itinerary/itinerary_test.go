package itinerary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m2sched/itinerary"
)

var _ = Describe("Stage", func() {
	It("should default the next-stage delta to the stage length", func() {
		s := itinerary.Stage{Cycles: 3, NextCycles: -1}
		Expect(s.Next()).To(Equal(3))
	})

	It("should honor an explicit next-stage delta", func() {
		Expect(itinerary.Stage{Cycles: 3, NextCycles: 0}.Next()).To(Equal(0))
		Expect(itinerary.Stage{Cycles: 1, NextCycles: 4}.Next()).To(Equal(4))
	})

	Describe("Depth", func() {
		It("should be zero for no stages", func() {
			Expect(itinerary.Depth(nil)).To(Equal(0))
		})

		It("should sum back-to-back stages", func() {
			stages := []itinerary.Stage{
				{Cycles: 2, NextCycles: -1},
				{Cycles: 3, NextCycles: -1},
			}
			Expect(itinerary.Depth(stages)).To(Equal(5))
		})

		It("should account for bubbles", func() {
			stages := []itinerary.Stage{
				{Cycles: 1, NextCycles: 4},
				{Cycles: 1, NextCycles: -1},
			}
			Expect(itinerary.Depth(stages)).To(Equal(5))
		})

		It("should account for overlapping stages", func() {
			stages := []itinerary.Stage{
				{Cycles: 6, NextCycles: 0},
				{Cycles: 2, NextCycles: -1},
			}
			Expect(itinerary.Depth(stages)).To(Equal(6))
		})
	})
})

var _ = Describe("FuncUnits", func() {
	It("should test and count bits", func() {
		u := itinerary.FuncUnits(0b1010)
		Expect(u.Has(1)).To(BeTrue())
		Expect(u.Has(0)).To(BeFalse())
		Expect(u.Count()).To(Equal(2))
	})
})

var _ = Describe("ReservationKind", func() {
	It("should round-trip through text", func() {
		for _, k := range []itinerary.ReservationKind{itinerary.Required, itinerary.Reserved} {
			text, err := k.MarshalText()
			Expect(err).NotTo(HaveOccurred())

			var got itinerary.ReservationKind
			Expect(got.UnmarshalText(text)).To(Succeed())
			Expect(got).To(Equal(k))
		}
	})

	It("should treat an empty kind as required", func() {
		k := itinerary.Reserved
		Expect(k.UnmarshalText(nil)).To(Succeed())
		Expect(k).To(Equal(itinerary.Required))
	})

	It("should reject unknown kinds", func() {
		var k itinerary.ReservationKind
		Expect(k.UnmarshalText([]byte("maybe"))).NotTo(Succeed())

		_, err := itinerary.ReservationKind(7).MarshalText()
		Expect(err).To(HaveOccurred())
	})
})
