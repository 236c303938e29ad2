package insts

// Immediate reconstructs the signed immediate operand encoded in word.
//
//   - I and J: word[31:20], sign-extended. JALR shares the I layout.
//   - S: word[31:25] -> imm[11:5], word[11:7] -> imm[4:0], sign bit 11.
//   - B: word[31] -> imm[12], word[7] -> imm[11], word[30:25] -> imm[10:5],
//     word[11:8] -> imm[4:1], imm[0] = 0, sign bit 12.
//   - U: word[31:12] in the upper 20 bits, low 12 bits zero.
//   - R and Unknown: 0.
func Immediate(word uint32) int32 {
	switch FormatOf(word) {
	case FormatI, FormatJ:
		return int32(word) >> 20

	case FormatS:
		imm := BitRange(word, 31, 25)<<5 | BitRange(word, 11, 7)
		return SignExtend(imm, 12)

	case FormatB:
		imm := BitRange(word, 31, 31)<<12 |
			BitRange(word, 7, 7)<<11 |
			BitRange(word, 30, 25)<<5 |
			BitRange(word, 11, 8)<<1
		return SignExtend(imm, 13)

	case FormatU:
		return int32(word & 0xFFFFF000)

	default:
		return 0
	}
}
