// Package emu provides functional RV32 emulation of a single-cycle datapath.
package emu

import "github.com/sarchlab/rvsim/insts"

// ALUOp is the 2-bit ALU operation class driven by the controller.
type ALUOp uint8

// ALU operation classes.
const (
	ALUOpAdd   ALUOp = 0b00 // address calculation: loads, stores, JALR, LUI
	ALUOpSub   ALUOp = 0b01 // branch comparison
	ALUOpRType ALUOp = 0b10 // resolved from funct3/funct7
	ALUOpIType ALUOp = 0b11 // resolved from funct3
)

// ControlSignals is the bundle of datapath controls for one instruction.
// It is a value type; each cycle gets its own copy.
type ControlSignals struct {
	JALR     bool
	LUI      bool
	Branch   bool
	MemRead  bool
	MemToReg bool
	MemWrite bool
	ALUSrc   bool // second ALU operand is the immediate
	RegWrite bool
	ALUOp    ALUOp
}

// controlTable holds the signals of every supported opcode. Opcodes missing
// from the table get the zero ControlSignals, which write nothing, access no
// memory, and fall through to PC+4.
var controlTable = map[insts.Opcode]ControlSignals{
	insts.OpcodeOp: {
		RegWrite: true,
		ALUOp:    ALUOpRType,
	},
	insts.OpcodeOpImm: {
		ALUSrc:   true,
		RegWrite: true,
		ALUOp:    ALUOpIType,
	},
	insts.OpcodeLoad: {
		MemRead:  true,
		MemToReg: true,
		ALUSrc:   true,
		RegWrite: true,
		ALUOp:    ALUOpAdd,
	},
	insts.OpcodeStore: {
		MemWrite: true,
		ALUSrc:   true,
		ALUOp:    ALUOpAdd,
	},
	insts.OpcodeBranch: {
		Branch: true,
		ALUOp:  ALUOpSub,
	},
	insts.OpcodeJALR: {
		JALR:     true,
		ALUSrc:   true,
		RegWrite: true,
		ALUOp:    ALUOpAdd,
	},
	insts.OpcodeLUI: {
		LUI:      true,
		ALUSrc:   true,
		RegWrite: true,
		ALUOp:    ALUOpAdd,
	},
}

// Controller maps opcodes to control signals.
type Controller struct{}

// NewController creates a new Controller.
func NewController() *Controller {
	return &Controller{}
}

// Signals returns the control signals for opcode.
func (c *Controller) Signals(opcode insts.Opcode) ControlSignals {
	return controlTable[opcode]
}
