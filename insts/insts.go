// Package insts provides RV32 instruction definitions and decoding.
package insts

import "fmt"

// Opcode is the low 7 bits of an instruction word.
type Opcode uint8

// Opcodes understood by the datapath.
const (
	OpcodeOp     Opcode = 0b0110011 // R-type: ADD, SUB, AND, OR, SRA
	OpcodeOpImm  Opcode = 0b0010011 // I-type: ADDI, ORI, SLTIU
	OpcodeLoad   Opcode = 0b0000011 // I-type: LW, LBU
	OpcodeStore  Opcode = 0b0100011 // S-type: SW, SH
	OpcodeBranch Opcode = 0b1100011 // B-type: BNE
	OpcodeLUI    Opcode = 0b0110111 // U-type: LUI
	OpcodeJALR   Opcode = 0b1100111 // JALR, classified as J in this datapath
)

// Funct3 values that the datapath or the disassembler distinguish.
const (
	Funct3ADD  uint8 = 0b000
	Funct3SLTU uint8 = 0b011
	Funct3SRA  uint8 = 0b101
	Funct3OR   uint8 = 0b110
	Funct3AND  uint8 = 0b111

	Funct3Byte     uint8 = 0b000
	Funct3Halfword uint8 = 0b001
	Funct3Word     uint8 = 0b010
	Funct3ByteU    uint8 = 0b100

	Funct3BEQ uint8 = 0b000
	Funct3BNE uint8 = 0b001
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

var formatNames = [...]string{
	FormatUnknown: "Unknown",
	FormatR:       "R",
	FormatI:       "I",
	FormatS:       "S",
	FormatB:       "B",
	FormatU:       "U",
	FormatJ:       "J",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Instruction represents a decoded RV32 instruction.
type Instruction struct {
	Word   uint32 // Raw instruction word
	Opcode Opcode // Bits [6:0]
	Format Format // Encoding format, derived from Opcode only

	Rd     uint8 // Bits [11:7]
	Rs1    uint8 // Bits [19:15]
	Rs2    uint8 // Bits [24:20]
	Funct3 uint8 // Bits [14:12]
	Funct7 bool  // Bit 30, the only funct7 bit the datapath looks at

	Imm int32 // Sign-extended immediate, 0 for R and Unknown
}

// OpcodeOf extracts the opcode field of word.
func OpcodeOf(word uint32) Opcode {
	return Opcode(BitRange(word, 6, 0))
}

// FormatOf classifies word by its opcode. Every opcode maps to exactly one
// format; opcodes outside the supported subset are FormatUnknown.
func FormatOf(word uint32) Format {
	switch OpcodeOf(word) {
	case OpcodeOp:
		return FormatR
	case OpcodeOpImm, OpcodeLoad:
		return FormatI
	case OpcodeStore:
		return FormatS
	case OpcodeBranch:
		return FormatB
	case OpcodeLUI:
		return FormatU
	case OpcodeJALR:
		return FormatJ
	default:
		return FormatUnknown
	}
}

// Decoder decodes RV32 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. Decoding never fails: words the
// datapath does not support come back with FormatUnknown and a zero
// immediate, and the controller turns them into no-ops.
func (d *Decoder) Decode(word uint32) *Instruction {
	return &Instruction{
		Word:   word,
		Opcode: OpcodeOf(word),
		Format: FormatOf(word),
		Rd:     uint8(BitRange(word, 11, 7)),
		Rs1:    uint8(BitRange(word, 19, 15)),
		Rs2:    uint8(BitRange(word, 24, 20)),
		Funct3: uint8(BitRange(word, 14, 12)),
		Funct7: Bit(word, 30),
		Imm:    Immediate(word),
	}
}
