package emu_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should start zeroed", func() {
		for i := 0; i < emu.NumRegisters; i++ {
			Expect(regFile.ReadReg(uint8(i))).To(BeZero())
		}
	})

	It("should write and read back registers", func() {
		regFile.WriteReg(5, -42, true)
		regFile.WriteReg(31, math.MaxInt32, true)

		Expect(regFile.ReadReg(5)).To(Equal(int32(-42)))
		Expect(regFile.ReadReg(31)).To(Equal(int32(math.MaxInt32)))
	})

	It("should ignore writes when not enabled", func() {
		regFile.WriteReg(5, 7, true)
		regFile.WriteReg(5, 99, false)

		Expect(regFile.ReadReg(5)).To(Equal(int32(7)))
	})

	It("should keep x0 at zero for every value and enable state", func() {
		values := []int32{1, -1, math.MaxInt32, math.MinInt32, 0x12345678}
		for _, v := range values {
			regFile.WriteReg(0, v, true)
			Expect(regFile.ReadReg(0)).To(BeZero())
			regFile.WriteReg(0, v, false)
			Expect(regFile.ReadReg(0)).To(BeZero())
		}
		Expect(regFile.Snapshot()[0]).To(BeZero())
	})

	It("should read out-of-range indices as zero and drop writes to them", func() {
		regFile.WriteReg(32, 5, true)
		Expect(regFile.ReadReg(32)).To(BeZero())
		Expect(regFile.ReadReg(255)).To(BeZero())
	})

	It("should snapshot by value", func() {
		regFile.WriteReg(1, 10, true)
		snap := regFile.Snapshot()
		regFile.WriteReg(1, 20, true)

		Expect(snap[1]).To(Equal(int32(10)))
	})

	It("should know ABI names", func() {
		Expect(emu.ABIName(0)).To(Equal("zero"))
		Expect(emu.ABIName(emu.RegA0)).To(Equal("a0"))
		Expect(emu.ABIName(emu.RegA1)).To(Equal("a1"))
		Expect(emu.ABIName(31)).To(Equal("t6"))
		Expect(emu.ABIName(32)).To(BeEmpty())
	})
})
