package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rvsim/insts"
)

// ErrMaxCycles is returned when the cycle limit is reached before the
// program halts by itself.
var ErrMaxCycles = errors.New("max cycles reached")

// HaltReason tells why the CPU stopped.
type HaltReason uint8

// Halt reasons.
const (
	NotHalted HaltReason = iota
	// HaltZeroOpcode: the fetched word has an all-zero opcode field.
	HaltZeroOpcode
	// HaltEndOfImage: the PC reached or passed the end of the program.
	HaltEndOfImage
	// HaltMaxCycles: the configured cycle limit was reached.
	HaltMaxCycles
	// HaltFault: a fetch or data access fell outside memory.
	HaltFault
)

var haltReasonNames = [...]string{
	NotHalted:      "running",
	HaltZeroOpcode: "zero opcode",
	HaltEndOfImage: "end of image",
	HaltMaxCycles:  "max cycles",
	HaltFault:      "fault",
}

func (h HaltReason) String() string {
	if int(h) < len(haltReasonNames) {
		return haltReasonNames[h]
	}
	return fmt.Sprintf("HaltReason(%d)", uint8(h))
}

// StepResult represents the result of a single Step.
type StepResult struct {
	// Halted is true once the CPU has stopped. Stepping a halted CPU
	// returns the same result again.
	Halted bool

	// Reason tells why the CPU halted.
	Reason HaltReason

	// Err is set for HaltFault and HaltMaxCycles.
	Err error
}

// CPU is a single-cycle RV32 datapath. Each Step performs one full
// fetch, decode, execute, memory, write-back and PC update.
type CPU struct {
	*sim.HookableBase

	decoder    *insts.Decoder
	controller *Controller
	aluControl *ALUControl
	alu        *ALU
	regFile    *RegFile
	instMem    *InstructionMemory
	dataMem    *DataMemory

	pc            uint32
	programLength uint64
	cycles        uint64
	halt          StepResult

	instMemSize    uint64
	dataMemSize    uint64
	maxCycles      uint64 // 0 means no limit
	lengthOverride bool
}

// CPUOption is a functional option for configuring the CPU.
type CPUOption func(*CPU)

// WithInstMemorySize sets the instruction memory capacity in bytes.
func WithInstMemorySize(size uint64) CPUOption {
	return func(c *CPU) {
		c.instMemSize = size
	}
}

// WithDataMemorySize sets the data memory capacity in bytes.
func WithDataMemorySize(size uint64) CPUOption {
	return func(c *CPU) {
		c.dataMemSize = size
	}
}

// WithProgramLength sets the end-of-image boundary. It defaults to the
// length of the image passed to NewCPU.
func WithProgramLength(length uint64) CPUOption {
	return func(c *CPU) {
		c.programLength = length
		c.lengthOverride = true
	}
}

// WithMaxCycles limits the number of cycles Run and Step will execute.
// A value of 0 means no limit.
func WithMaxCycles(max uint64) CPUOption {
	return func(c *CPU) {
		c.maxCycles = max
	}
}

// NewCPU creates a CPU whose instruction memory holds image, with the PC
// at 0 and all registers and data memory zeroed.
func NewCPU(image []byte, opts ...CPUOption) (*CPU, error) {
	c := &CPU{
		HookableBase: sim.NewHookableBase(),
		decoder:      insts.NewDecoder(),
		controller:   NewController(),
		aluControl:   NewALUControl(),
		alu:          NewALU(),
		regFile:      &RegFile{},
		instMemSize:  DefaultInstMemorySize,
		dataMemSize:  DefaultDataMemorySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	instMem, err := NewInstructionMemory(image, c.instMemSize)
	if err != nil {
		return nil, err
	}
	c.instMem = instMem
	c.dataMem = NewDataMemory(c.dataMemSize)

	if !c.lengthOverride {
		c.programLength = uint64(len(image))
	}

	return c, nil
}

// RegFile returns the CPU's register file.
func (c *CPU) RegFile() *RegFile {
	return c.regFile
}

// DataMemory returns the CPU's data memory.
func (c *CPU) DataMemory() *DataMemory {
	return c.dataMem
}

// InstructionMemory returns the CPU's instruction memory.
func (c *CPU) InstructionMemory() *InstructionMemory {
	return c.instMem
}

// ProgramLength returns the end-of-image boundary.
func (c *CPU) ProgramLength() uint64 {
	return c.programLength
}

// Cycles returns the number of completed cycles.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Halted reports whether the CPU has stopped.
func (c *CPU) Halted() bool {
	return c.halt.Halted
}

// ReadPC returns the program counter.
func (c *CPU) ReadPC() uint32 {
	return c.pc
}

// SetPC sets the program counter.
func (c *CPU) SetPC(pc uint32) {
	c.pc = pc
}

// IncPC advances the program counter to the next sequential instruction.
func (c *CPU) IncPC() {
	c.pc += 4
}

// FetchInstruction returns the instruction word at pc.
func (c *CPU) FetchInstruction(pc uint32) (uint32, error) {
	return c.instMem.Fetch(pc)
}

// Result returns the values of the given registers. Without arguments it
// returns a0 and a1.
func (c *CPU) Result(regs ...uint8) []int32 {
	if len(regs) == 0 {
		regs = []uint8{RegA0, RegA1}
	}

	values := make([]int32, len(regs))
	for i, r := range regs {
		values[i] = c.regFile.ReadReg(r)
	}
	return values
}

// Reset clears registers, data memory, PC and cycle count. The program
// image is kept.
func (c *CPU) Reset() {
	c.regFile = &RegFile{}
	c.dataMem = NewDataMemory(c.dataMemSize)
	c.pc = 0
	c.cycles = 0
	c.halt = StepResult{}
}

// Step executes one cycle unless a halt condition holds.
func (c *CPU) Step() StepResult {
	if c.halt.Halted {
		return c.halt
	}

	if c.maxCycles > 0 && c.cycles >= c.maxCycles {
		return c.stop(HaltMaxCycles, fmt.Errorf("%w: %d", ErrMaxCycles, c.maxCycles))
	}

	if uint64(c.pc) >= c.programLength {
		return c.stop(HaltEndOfImage, nil)
	}

	word, err := c.FetchInstruction(c.pc)
	if err != nil {
		return c.stop(HaltFault, fmt.Errorf("fetch at PC=0x%X: %w", c.pc, err))
	}

	if insts.OpcodeOf(word) == 0 {
		return c.stop(HaltZeroOpcode, nil)
	}

	record, err := c.execute(c.pc, word)
	if err != nil {
		return c.stop(HaltFault, fmt.Errorf("PC=0x%X: %w", c.pc, err))
	}

	c.cycles++
	record.Cycle = c.cycles

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosCycle,
			Item:   record,
		})
	}

	if uint64(c.pc) >= c.programLength {
		return c.stop(HaltEndOfImage, nil)
	}

	return StepResult{}
}

// Run steps the CPU until it halts and returns the halting result.
func (c *CPU) Run() StepResult {
	for {
		result := c.Step()
		if result.Halted {
			return result
		}
	}
}

// RunCycles steps the CPU at most n times. It returns true if the CPU is
// still running.
func (c *CPU) RunCycles(n uint64) bool {
	for i := uint64(0); i < n; i++ {
		if c.Step().Halted {
			return false
		}
	}
	return !c.halt.Halted
}

func (c *CPU) stop(reason HaltReason, err error) StepResult {
	c.halt = StepResult{Halted: true, Reason: reason, Err: err}
	return c.halt
}

// execute runs one instruction through the datapath. Nothing is committed
// if a memory access fails.
func (c *CPU) execute(pc uint32, word uint32) (*CycleRecord, error) {
	// Decode
	inst := c.decoder.Decode(word)
	ctrl := c.controller.Signals(inst.Opcode)
	aluOp := c.aluControl.Operation(ctrl.ALUOp, inst.Funct3, inst.Funct7)

	// Register read
	rs1 := c.regFile.ReadReg(inst.Rs1)
	rs2 := c.regFile.ReadReg(inst.Rs2)

	// Execute
	operand2 := mux(ctrl.ALUSrc, rs2, inst.Imm)
	aluResult, zero := c.alu.Execute(rs1, operand2, aluOp, ctrl.LUI)

	// Memory
	addr := uint32(aluResult)
	memData, err := c.dataMem.Read(addr, ctrl.MemRead, inst.Funct3)
	if err != nil {
		return nil, err
	}
	if err := c.dataMem.Write(addr, uint32(rs2), ctrl.MemWrite, inst.Funct3); err != nil {
		return nil, err
	}

	// Write back
	wb := mux(ctrl.MemToReg, aluResult, memData)
	wb = mux(ctrl.JALR, wb, int32(pc+4))
	c.regFile.WriteReg(inst.Rd, wb, ctrl.RegWrite)

	// PC update
	next := nextPC(pc, rs1, inst.Imm, ctrl, zero)
	c.pc = next

	return &CycleRecord{
		PC:        pc,
		Inst:      inst,
		Control:   ctrl,
		ALUOp:     aluOp,
		ALUResult: aluResult,
		Zero:      zero,
		MemAddr:   addr,
		MemData:   memData,
		StoreVal:  rs2,
		WriteBack: wb,
		NextPC:    next,
	}, nil
}

// nextPC resolves the PC of the following cycle. Branches are taken when
// the comparison is not zero (BNE).
func nextPC(pc uint32, rs1, imm int32, ctrl ControlSignals, zero bool) uint32 {
	switch {
	case ctrl.Branch && !zero:
		return pc + uint32(imm)
	case ctrl.JALR:
		return uint32(rs1) + uint32(imm)
	default:
		return pc + 4
	}
}

// mux returns in1 when sel is set and in0 otherwise.
func mux(sel bool, in0, in1 int32) int32 {
	if sel {
		return in1
	}
	return in0
}
