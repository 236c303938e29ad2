package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

var _ = Describe("DataMemory", func() {
	var memory *emu.DataMemory

	BeforeEach(func() {
		memory = emu.NewDataMemory(emu.DefaultDataMemorySize)
	})

	It("should have the requested size", func() {
		Expect(memory.Size()).To(Equal(emu.DefaultDataMemorySize))
	})

	It("should start zeroed", func() {
		v, err := memory.Read(0x1000, true, insts.Funct3Word)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeZero())
	})

	Describe("Read", func() {
		BeforeEach(func() {
			Expect(memory.LoadBytes(0x100, []byte{0x78, 0x56, 0x34, 0x12})).To(Succeed())
		})

		It("should return 0 when not enabled", func() {
			v, err := memory.Read(0x100, false, insts.Funct3Word)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeZero())
		})

		It("should read a little-endian word for funct3 010", func() {
			v, err := memory.Read(0x100, true, insts.Funct3Word)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int32(0x12345678)))
		})

		It("should read a single byte for any other funct3", func() {
			for _, funct3 := range []uint8{0b000, 0b001, 0b100, 0b101, 0b111} {
				v, err := memory.Read(0x100, true, funct3)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(int32(0x78)))
			}
		})

		It("should not sign-extend the narrow form", func() {
			Expect(memory.LoadBytes(0x200, []byte{0xF0})).To(Succeed())
			v, err := memory.Read(0x200, true, insts.Funct3ByteU)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int32(0xF0)))
		})

		It("should allow unaligned words", func() {
			v, err := memory.Read(0x101, true, insts.Funct3Word)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int32(0x00123456)))
		})
	})

	Describe("Write", func() {
		It("should do nothing when not enabled", func() {
			Expect(memory.Write(0x100, 0xDEADBEEF, false, insts.Funct3Word)).To(Succeed())
			data, err := memory.Bytes(0x100, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0, 0, 0, 0}))
		})

		It("should write four bytes little-endian for funct3 010", func() {
			Expect(memory.Write(0x100, 0x12345678, true, insts.Funct3Word)).To(Succeed())
			data, err := memory.Bytes(0x100, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0x78, 0x56, 0x34, 0x12}))
		})

		It("should write the low two bytes for any other funct3", func() {
			Expect(memory.LoadBytes(0x100, []byte{0xAA, 0xBB, 0xCC, 0xDD})).To(Succeed())
			Expect(memory.Write(0x100, 0x12345678, true, insts.Funct3Halfword)).To(Succeed())

			data, err := memory.Bytes(0x100, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0x78, 0x56, 0xCC, 0xDD}))
		})

		It("should write two bytes even for a byte-sized funct3", func() {
			Expect(memory.Write(0x100, 0xFFFF, true, insts.Funct3Byte)).To(Succeed())
			data, err := memory.Bytes(0x100, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0xFF, 0xFF}))
		})

		It("should round-trip a word", func() {
			Expect(memory.Write(0x40, 0x12345678, true, insts.Funct3Word)).To(Succeed())
			v, err := memory.Read(0x40, true, insts.Funct3Word)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int32(0x12345678)))
		})
	})

	Describe("bounds", func() {
		It("should accept the last word", func() {
			last := uint32(emu.DefaultDataMemorySize - 4)
			Expect(memory.Write(last, 1, true, insts.Funct3Word)).To(Succeed())
		})

		It("should reject accesses past the end", func() {
			last := uint32(emu.DefaultDataMemorySize - 2)

			_, err := memory.Read(last, true, insts.Funct3Word)
			Expect(err).To(MatchError(emu.ErrAddressOutOfRange))

			err = memory.Write(last, 1, true, insts.Funct3Word)
			Expect(err).To(MatchError(emu.ErrAddressOutOfRange))

			Expect(memory.Write(last, 1, true, insts.Funct3Halfword)).To(Succeed())
		})

		It("should reject negative addresses", func() {
			_, err := memory.Read(0xFFFFFFFC, true, insts.Funct3Word)
			Expect(err).To(MatchError(emu.ErrAddressOutOfRange))
		})

		It("should not check bounds when disabled", func() {
			_, err := memory.Read(0xFFFFFFFC, false, insts.Funct3Word)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should support sizes that are not a multiple of the storage unit", func() {
			small := emu.NewDataMemory(10)
			Expect(small.Write(6, 0x01020304, true, insts.Funct3Word)).To(Succeed())
			_, err := small.Read(7, true, insts.Funct3Word)
			Expect(err).To(MatchError(emu.ErrAddressOutOfRange))
		})
	})
})

var _ = Describe("InstructionMemory", func() {
	It("should fetch little-endian words", func() {
		im, err := emu.NewInstructionMemory(
			insts.BuildProgram(0x00500093, 0x00A08093), emu.DefaultInstMemorySize)
		Expect(err).NotTo(HaveOccurred())

		w, err := im.Fetch(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(Equal(uint32(0x00500093)))

		w, err = im.Fetch(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(Equal(uint32(0x00A08093)))
	})

	It("should read zero beyond the image", func() {
		im, err := emu.NewInstructionMemory([]byte{0x13}, 64)
		Expect(err).NotTo(HaveOccurred())

		w, err := im.Fetch(8)
		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(BeZero())
	})

	It("should reject images larger than its capacity", func() {
		_, err := emu.NewInstructionMemory(make([]byte, 65), 64)
		Expect(err).To(MatchError(emu.ErrInstMemOverflow))
	})

	It("should reject fetches past the end", func() {
		im, err := emu.NewInstructionMemory(nil, 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(im.Size()).To(Equal(uint64(64)))

		_, err = im.Fetch(62)
		Expect(err).To(MatchError(emu.ErrAddressOutOfRange))
	})
})
