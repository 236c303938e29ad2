package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	DescribeTable("format classification by opcode",
		func(word uint32, expected insts.Format) {
			Expect(insts.FormatOf(word)).To(Equal(expected))
			Expect(decoder.Decode(word).Format).To(Equal(expected))
		},
		Entry("R-type", uint32(0b0110011), insts.FormatR),
		Entry("OP-IMM", uint32(0b0010011), insts.FormatI),
		Entry("LOAD", uint32(0b0000011), insts.FormatI),
		Entry("STORE", uint32(0b0100011), insts.FormatS),
		Entry("BRANCH", uint32(0b1100011), insts.FormatB),
		Entry("LUI", uint32(0b0110111), insts.FormatU),
		Entry("JALR", uint32(0b1100111), insts.FormatJ),
		Entry("JAL is not supported", uint32(0b1101111), insts.FormatUnknown),
		Entry("AUIPC is not supported", uint32(0b0010111), insts.FormatUnknown),
		Entry("all zero", uint32(0), insts.FormatUnknown),
		Entry("all ones", uint32(0x7F), insts.FormatUnknown),
	)

	It("should classify every opcode", func() {
		known := 0
		for op := uint32(0); op < 128; op++ {
			if insts.FormatOf(op) != insts.FormatUnknown {
				known++
			}
		}
		Expect(known).To(Equal(7))
	})

	It("should ignore bits above the opcode when classifying", func() {
		Expect(insts.FormatOf(0xFFFFFF93)).To(Equal(insts.FormatI))
	})

	// SUB x3, x1, x2 -> 0x402081B3
	It("should decode SUB x3, x1, x2", func() {
		inst := decoder.Decode(0x402081B3)

		Expect(inst.Word).To(Equal(uint32(0x402081B3)))
		Expect(inst.Opcode).To(Equal(insts.OpcodeOp))
		Expect(inst.Format).To(Equal(insts.FormatR))
		Expect(inst.Rd).To(Equal(uint8(3)))
		Expect(inst.Rs1).To(Equal(uint8(1)))
		Expect(inst.Rs2).To(Equal(uint8(2)))
		Expect(inst.Funct3).To(Equal(uint8(0)))
		Expect(inst.Funct7).To(BeTrue())
		Expect(inst.Imm).To(BeZero())
	})

	// LW x2, 8(x1) -> 0x0080A103
	It("should decode LW x2, 8(x1)", func() {
		inst := decoder.Decode(0x0080A103)

		Expect(inst.Opcode).To(Equal(insts.OpcodeLoad))
		Expect(inst.Format).To(Equal(insts.FormatI))
		Expect(inst.Rd).To(Equal(uint8(2)))
		Expect(inst.Rs1).To(Equal(uint8(1)))
		Expect(inst.Funct3).To(Equal(insts.Funct3Word))
		Expect(inst.Funct7).To(BeFalse())
		Expect(inst.Imm).To(Equal(int32(8)))
	})

	It("should decode register fields up to x31", func() {
		inst := decoder.Decode(insts.EncodeADD(31, 31, 31))

		Expect(inst.Rd).To(Equal(uint8(31)))
		Expect(inst.Rs1).To(Equal(uint8(31)))
		Expect(inst.Rs2).To(Equal(uint8(31)))
	})

	It("should decode unknown opcodes without a panic", func() {
		inst := decoder.Decode(0xFFFFFFFF)

		Expect(inst.Format).To(Equal(insts.FormatUnknown))
		Expect(inst.Imm).To(BeZero())
	})

	It("should print format names", func() {
		Expect(insts.FormatR.String()).To(Equal("R"))
		Expect(insts.FormatUnknown.String()).To(Equal("Unknown"))
		Expect(insts.Format(42).String()).To(Equal("Format(42)"))
	})
})
