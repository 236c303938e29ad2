package insts

import "fmt"

// Mnemonic returns the assembler mnemonic of the instruction, or "" when the
// encoding is outside the subset this package knows about.
func (inst *Instruction) Mnemonic() string {
	switch inst.Opcode {
	case OpcodeOp:
		return rTypeMnemonic(inst.Funct3, inst.Funct7)
	case OpcodeOpImm:
		switch inst.Funct3 {
		case Funct3ADD:
			return "addi"
		case Funct3OR:
			return "ori"
		case Funct3SLTU:
			return "sltiu"
		}
	case OpcodeLoad:
		switch inst.Funct3 {
		case Funct3Word:
			return "lw"
		case Funct3ByteU:
			return "lbu"
		}
	case OpcodeStore:
		switch inst.Funct3 {
		case Funct3Word:
			return "sw"
		case Funct3Halfword:
			return "sh"
		}
	case OpcodeBranch:
		if inst.Funct3 == Funct3BNE {
			return "bne"
		}
	case OpcodeLUI:
		return "lui"
	case OpcodeJALR:
		return "jalr"
	}

	return ""
}

func rTypeMnemonic(funct3 uint8, funct7 bool) string {
	switch funct3 {
	case Funct3ADD:
		if funct7 {
			return "sub"
		}
		return "add"
	case Funct3AND:
		return "and"
	case Funct3OR:
		return "or"
	case Funct3SRA:
		if funct7 {
			return "sra"
		}
	}
	return ""
}

// String renders the instruction in assembler syntax, e.g. "addi x1, x0, 5"
// or "lw x2, 8(x1)". Unsupported encodings render as "unknown 0x%08x".
//
// The names are the standard RV32 ones for the encoding, not what the
// datapath's ALU control makes of it. The datapath differs for:
//
//   - add (R-type funct3 000 always subtracts)
//   - or (R-type OR is not decoded and produces 0)
//   - unknown srl encodings (shift arithmetically)
//   - unknown lb encodings (load a byte like lbu)
//
// emu.CycleRecord.ALUOp records the operation that actually ran.
func (inst *Instruction) String() string {
	m := inst.Mnemonic()
	if m == "" {
		return fmt.Sprintf("unknown 0x%08x", inst.Word)
	}

	switch inst.Format {
	case FormatR:
		return fmt.Sprintf("%s x%d, x%d, x%d", m, inst.Rd, inst.Rs1, inst.Rs2)
	case FormatI:
		if inst.Opcode == OpcodeLoad {
			return fmt.Sprintf("%s x%d, %d(x%d)", m, inst.Rd, inst.Imm, inst.Rs1)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", m, inst.Rd, inst.Rs1, inst.Imm)
	case FormatS:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, inst.Rs2, inst.Imm, inst.Rs1)
	case FormatB:
		return fmt.Sprintf("%s x%d, x%d, %d", m, inst.Rs1, inst.Rs2, inst.Imm)
	case FormatU:
		return fmt.Sprintf("%s x%d, 0x%x", m, inst.Rd, uint32(inst.Imm)>>12)
	case FormatJ:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, inst.Rd, inst.Imm, inst.Rs1)
	}

	return fmt.Sprintf("unknown 0x%08x", inst.Word)
}
