package emu

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 32

// Conventional registers holding a program's return values.
const (
	RegA0 uint8 = 10
	RegA1 uint8 = 11
)

var abiNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// ABIName returns the calling-convention name of register index, e.g. "a0"
// for x10.
func ABIName(index uint8) string {
	if int(index) >= NumRegisters {
		return ""
	}
	return abiNames[index]
}

// RegFile represents the RV32 integer register file.
// x0 is hardwired to zero.
type RegFile struct {
	x [NumRegisters]int32
}

// ReadReg reads a register value. x0 and indices past x31 read as 0.
func (r *RegFile) ReadReg(index uint8) int32 {
	if index == 0 || int(index) >= NumRegisters {
		return 0
	}
	return r.x[index]
}

// WriteReg writes value to a register when enable is set. Writes to x0 and
// to indices past x31 are dropped.
func (r *RegFile) WriteReg(index uint8, value int32, enable bool) {
	if !enable || index == 0 || int(index) >= NumRegisters {
		return
	}
	r.x[index] = value
}

// Snapshot returns a copy of all register values.
func (r *RegFile) Snapshot() [NumRegisters]int32 {
	s := r.x
	s[0] = 0
	return s
}
