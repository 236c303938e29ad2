package insts

import "encoding/binary"

// EncodeR encodes an R-type instruction. funct7 is the full 7-bit field.
func EncodeR(op Opcode, rd, funct3, rs1, rs2, funct7 uint8) uint32 {
	return uint32(funct7&0x7F)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeI encodes an I-type instruction. Only the low 12 bits of imm are used.
func EncodeI(op Opcode, rd, funct3, rs1 uint8, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeS encodes an S-type instruction. Only the low 12 bits of imm are used.
func EncodeS(op Opcode, funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm)
	return BitRange(u, 11, 5)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		BitRange(u, 4, 0)<<7 |
		uint32(op&0x7F)
}

// EncodeB encodes a B-type instruction. imm is a byte offset; bit 0 is
// dropped and only bits [12:1] are encoded.
func EncodeB(op Opcode, funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm)
	return BitRange(u, 12, 12)<<31 |
		BitRange(u, 10, 5)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		BitRange(u, 4, 1)<<8 |
		BitRange(u, 11, 11)<<7 |
		uint32(op&0x7F)
}

// EncodeU encodes a U-type instruction. upper is the 20-bit value placed in
// word[31:12].
func EncodeU(op Opcode, rd uint8, upper uint32) uint32 {
	return (upper&0xFFFFF)<<12 | uint32(rd&0x1F)<<7 | uint32(op&0x7F)
}

// EncodeADD encodes ADD rd, rs1, rs2.
func EncodeADD(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(OpcodeOp, rd, Funct3ADD, rs1, rs2, 0)
}

// EncodeSUB encodes SUB rd, rs1, rs2.
func EncodeSUB(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(OpcodeOp, rd, Funct3ADD, rs1, rs2, 0b0100000)
}

// EncodeAND encodes AND rd, rs1, rs2.
func EncodeAND(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(OpcodeOp, rd, Funct3AND, rs1, rs2, 0)
}

// EncodeOR encodes OR rd, rs1, rs2.
func EncodeOR(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(OpcodeOp, rd, Funct3OR, rs1, rs2, 0)
}

// EncodeSRA encodes SRA rd, rs1, rs2.
func EncodeSRA(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(OpcodeOp, rd, Funct3SRA, rs1, rs2, 0b0100000)
}

// EncodeADDI encodes ADDI rd, rs1, imm.
func EncodeADDI(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeOpImm, rd, Funct3ADD, rs1, imm)
}

// EncodeORI encodes ORI rd, rs1, imm.
func EncodeORI(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeOpImm, rd, Funct3OR, rs1, imm)
}

// EncodeSLTIU encodes SLTIU rd, rs1, imm.
func EncodeSLTIU(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeOpImm, rd, Funct3SLTU, rs1, imm)
}

// EncodeLW encodes LW rd, imm(rs1).
func EncodeLW(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeLoad, rd, Funct3Word, rs1, imm)
}

// EncodeLBU encodes LBU rd, imm(rs1).
func EncodeLBU(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeLoad, rd, Funct3ByteU, rs1, imm)
}

// EncodeSW encodes SW rs2, imm(rs1).
func EncodeSW(rs2, rs1 uint8, imm int32) uint32 {
	return EncodeS(OpcodeStore, Funct3Word, rs1, rs2, imm)
}

// EncodeSH encodes SH rs2, imm(rs1).
func EncodeSH(rs2, rs1 uint8, imm int32) uint32 {
	return EncodeS(OpcodeStore, Funct3Halfword, rs1, rs2, imm)
}

// EncodeBNE encodes BNE rs1, rs2, offset.
func EncodeBNE(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(OpcodeBranch, Funct3BNE, rs1, rs2, offset)
}

// EncodeJALR encodes JALR rd, imm(rs1).
func EncodeJALR(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(OpcodeJALR, rd, 0, rs1, imm)
}

// EncodeLUI encodes LUI rd, upper.
func EncodeLUI(rd uint8, upper uint32) uint32 {
	return EncodeU(OpcodeLUI, rd, upper)
}

// BuildProgram lays out instruction words little-endian, one after another,
// starting at offset 0.
func BuildProgram(words ...uint32) []byte {
	program := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(program[4*i:], w)
	}
	return program
}
