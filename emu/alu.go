package emu

import (
	"fmt"

	"github.com/sarchlab/rvsim/insts"
)

// ALUOperation is the concrete operation the ALU performs.
type ALUOperation uint8

// ALU operations.
const (
	ALUAdd ALUOperation = iota
	ALUSub
	ALUAnd
	ALUOr
	ALUSra
	ALUSltu
	ALUNoop
)

var aluOperationNames = [...]string{
	ALUAdd:  "ADD",
	ALUSub:  "SUB",
	ALUAnd:  "AND",
	ALUOr:   "OR",
	ALUSra:  "SRA",
	ALUSltu: "SLTU",
	ALUNoop: "NOOP",
}

func (op ALUOperation) String() string {
	if int(op) < len(aluOperationNames) {
		return aluOperationNames[op]
	}
	return fmt.Sprintf("ALUOperation(%d)", uint8(op))
}

// ALUControl resolves an ALU operation class plus funct3/funct7 into the
// operation the ALU performs.
type ALUControl struct{}

// NewALUControl creates a new ALUControl.
func NewALUControl() *ALUControl {
	return &ALUControl{}
}

// Operation returns the ALU operation for the given class and function
// fields. Combinations outside the supported subset resolve to ALUNoop.
//
// funct7 (bit 30) is accepted for completeness; R-type funct3 000 is always a
// subtraction in this datapath.
func (a *ALUControl) Operation(aluOp ALUOp, funct3 uint8, funct7 bool) ALUOperation {
	switch aluOp {
	case ALUOpAdd:
		return ALUAdd
	case ALUOpSub:
		return ALUSub
	case ALUOpRType:
		switch funct3 {
		case insts.Funct3ADD:
			return ALUSub
		case insts.Funct3AND:
			return ALUAnd
		case insts.Funct3SRA:
			return ALUSra
		}
	case ALUOpIType:
		switch funct3 {
		case insts.Funct3ADD:
			return ALUAdd
		case insts.Funct3OR:
			return ALUOr
		case insts.Funct3SLTU:
			return ALUSltu
		}
	}

	return ALUNoop
}

// ALU implements the 32-bit arithmetic and logic unit.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute applies operation to the operands and reports the result together
// with the zero flag. When isLUI is set the ALU is bypassed and op2 is passed
// through unchanged.
func (a *ALU) Execute(op1, op2 int32, operation ALUOperation, isLUI bool) (result int32, zero bool) {
	if isLUI {
		result = op2
		return result, result == 0
	}

	switch operation {
	case ALUAdd:
		result = op1 + op2
	case ALUSub:
		result = op1 - op2
	case ALUAnd:
		result = op1 & op2
	case ALUOr:
		result = op1 | op2
	case ALUSra:
		result = op1 >> (uint32(op2) & 0x1F)
	case ALUSltu:
		if uint32(op1) < uint32(op2) {
			result = 1
		}
	default:
		result = 0
	}

	return result, result == 0
}
