// Package benchmarks provides sample RV32 workloads and a harness that runs
// them on the single-cycle CPU.
package benchmarks

import (
	"encoding/binary"

	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

// Register aliases used by the workloads.
const (
	zero = 0
	ra   = 1
	t0   = 5
	t1   = 6
	t2   = 7
	s0   = 8
	s1   = 9
	a0   = 10
	a1   = 11
	a2   = 12
)

// GetWorkloads returns the standard workload catalogue.
// Each workload exercises a different part of the datapath.
func GetWorkloads() []Benchmark {
	return []Benchmark{
		countedLoop(),
		storeLoad(),
		constantBuild(),
		callReturn(),
		aluMix(),
		byteHalfword(),
		arraySum(),
	}
}

// GetCoreWorkloads returns a minimal set for quick validation: a loop, a
// memory round-trip and a call.
func GetCoreWorkloads() []Benchmark {
	return []Benchmark{
		countedLoop(),
		storeLoad(),
		callReturn(),
	}
}

// 1. Counted loop - BNE back edge, R-type subtract
func countedLoop() Benchmark {
	return Benchmark{
		Name:        "counted_loop",
		Description: "sum 10..1 with a BNE loop; a0 = sum, a1 = iterations",
		Program: insts.BuildProgram(
			insts.EncodeADDI(a0, zero, 0),
			insts.EncodeADDI(t0, zero, -10), // counts up to zero
			insts.EncodeSUB(a0, a0, t0),     // loop:
			insts.EncodeADDI(a1, a1, 1),
			insts.EncodeADDI(t0, t0, 1),
			insts.EncodeBNE(t0, zero, -12),
		),
		ExpectedA0: 55,
		ExpectedA1: 10,
	}
}

// 2. Store/load round-trip - SW then LW and LBU of the same word
func storeLoad() Benchmark {
	return Benchmark{
		Name:        "store_load",
		Description: "store 0x12345678 and read it back as a word and as byte 1",
		Program: insts.BuildProgram(
			insts.EncodeADDI(ra, zero, 0x100),
			insts.EncodeLUI(t1, 0x12345),
			insts.EncodeORI(t1, t1, 0x678),
			insts.EncodeSW(t1, ra, 0),
			insts.EncodeLW(a0, ra, 0),
			insts.EncodeLBU(a1, ra, 1),
		),
		ExpectedA0: 0x12345678,
		ExpectedA1: 0x56,
	}
}

// 3. Constant build - LUI + ORI, terminated by a zero word
func constantBuild() Benchmark {
	return Benchmark{
		Name:        "constant_build",
		Description: "LUI+ORI 32-bit constants; the zero word stops execution",
		Program: insts.BuildProgram(
			insts.EncodeLUI(a0, 0xDEADB),
			insts.EncodeORI(a0, a0, 0x7EF),
			insts.EncodeLUI(a1, 0x80000),
			0,
			insts.EncodeADDI(a0, zero, 1), // never reached
		),
		ExpectedA0: -559040529, // 0xDEADB7EF
		ExpectedA1: -2147483648,
	}
}

// 4. Call/return - JALR links, the callee returns through ra
func callReturn() Benchmark {
	return Benchmark{
		Name:        "call_return",
		Description: "JALR call to a doubling function and back",
		Program: insts.BuildProgram(
			insts.EncodeADDI(a0, zero, 3),
			insts.EncodeADDI(t1, zero, 24),
			insts.EncodeJALR(ra, t1, 0), // call double
			insts.EncodeADDI(a1, a1, 1),
			insts.EncodeADDI(t2, zero, 36),
			insts.EncodeJALR(zero, t2, 0), // jump past the end
			insts.EncodeSUB(a2, zero, a0), // double:
			insts.EncodeSUB(a0, a0, a2),
			insts.EncodeJALR(zero, ra, 0),
		),
		ExpectedA0: 6,
		ExpectedA1: 1,
	}
}

// 5. ALU mix - SRA, AND, SLTIU
func aluMix() Benchmark {
	return Benchmark{
		Name:        "alu_mix",
		Description: "arithmetic shift, mask and unsigned compares on a negative value",
		Program: insts.BuildProgram(
			insts.EncodeADDI(t0, zero, -64),
			insts.EncodeADDI(t1, zero, 3),
			insts.EncodeSRA(a0, t0, t1),
			insts.EncodeADDI(s0, zero, 0x0F0),
			insts.EncodeAND(s0, s0, t0),
			insts.EncodeSLTIU(s1, t0, 1),   // 0xFFFFFFC0 < 1 is false
			insts.EncodeSLTIU(t2, s0, 193), // 192 < 193
			insts.EncodeSUB(a1, s0, t2),
			insts.EncodeSUB(a1, a1, s1),
		),
		ExpectedA0: -8,
		ExpectedA1: 191,
	}
}

// 6. Byte/halfword asymmetry - SH only touches the low two bytes
func byteHalfword() Benchmark {
	return Benchmark{
		Name:        "byte_halfword",
		Description: "SH over an all-ones word, then LW and LBU",
		Program: insts.BuildProgram(
			insts.EncodeADDI(ra, zero, 0x40),
			insts.EncodeADDI(t1, zero, -1),
			insts.EncodeSW(t1, ra, 0),
			insts.EncodeADDI(t2, zero, 0x123),
			insts.EncodeSH(t2, ra, 0),
			insts.EncodeLW(a0, ra, 0),
			insts.EncodeLBU(a1, ra, 3),
		),
		ExpectedA0: -65245, // 0xFFFF0123
		ExpectedA1: 0xFF,
	}
}

// 7. Array sum - data preloaded by Setup, pointer walk with LW
func arraySum() Benchmark {
	data := []uint32{5, 7, 11, 13}

	return Benchmark{
		Name:        "array_sum",
		Description: "sum four preloaded words; a1 = final pointer",
		Setup: func(cpu *emu.CPU) error {
			buf := make([]byte, 4*len(data))
			for i, v := range data {
				binary.LittleEndian.PutUint32(buf[4*i:], v)
			}
			return cpu.DataMemory().LoadBytes(0x200, buf)
		},
		Program: insts.BuildProgram(
			insts.EncodeADDI(ra, zero, 0x200),
			insts.EncodeADDI(t1, zero, 0x210),
			insts.EncodeLW(t2, ra, 0), // loop:
			insts.EncodeSUB(a0, a0, t2),
			insts.EncodeADDI(ra, ra, 4),
			insts.EncodeBNE(ra, t1, -12),
			insts.EncodeSUB(a0, zero, a0),
			insts.EncodeADDI(a1, ra, 0),
		),
		ExpectedA0: 36,
		ExpectedA1: 0x210,
	}
}
