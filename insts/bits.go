package insts

// WordBits is the width of an instruction word and of a register.
const WordBits = 32

// BitRange returns bits [high:low] of word, shifted down so that bit low
// becomes bit 0. Bits outside the range are cleared.
func BitRange(word uint32, high, low uint) uint32 {
	width := high - low + 1
	if width >= WordBits {
		return word >> low
	}

	return (word >> low) & (1<<width - 1)
}

// Bit returns bit n of word.
func Bit(word uint32, n uint) bool {
	return (word>>n)&1 == 1
}

// SignExtend treats the low width bits of value as a two's complement
// number and replicates its sign bit into bits [31:width]. Bits of value at
// or above width are discarded.
func SignExtend(value uint32, width uint) int32 {
	if width == 0 || width >= WordBits {
		return int32(value)
	}

	shift := WordBits - width
	return int32(value<<shift) >> shift
}
