package emu

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rvsim/insts"
)

// HookPosCycle marks the end of a completed cycle. Hooks at this position
// receive a *CycleRecord as the HookCtx item.
var HookPosCycle = &sim.HookPos{Name: "Cycle"}

// CycleRecord captures the architecturally relevant values of one cycle.
type CycleRecord struct {
	Cycle uint64 // 1-based index of the cycle
	PC    uint32
	Inst  *insts.Instruction

	Control   ControlSignals
	ALUOp     ALUOperation
	ALUResult int32
	Zero      bool

	MemAddr  uint32
	MemData  int32 // value loaded, valid when Control.MemRead
	StoreVal int32 // value stored, valid when Control.MemWrite

	WriteBack int32 // value presented to the register file
	NextPC    uint32
}

// Wrote reports whether the cycle changed a register.
func (r *CycleRecord) Wrote() bool {
	return r.Control.RegWrite && r.Inst.Rd != 0
}

// Branched reports whether the cycle left the sequential path.
func (r *CycleRecord) Branched() bool {
	return r.NextPC != r.PC+4
}

// HookFunc adapts a function to the sim.Hook interface.
type HookFunc func(ctx sim.HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx sim.HookCtx) {
	f(ctx)
}
