package main

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/emu"
)

// newTraceHook returns a hook that logs one entry per completed cycle. The
// alu field is the operation the datapath ran, which for some encodings
// differs from the disassembled name.
func newTraceHook(logger logrus.FieldLogger) emu.HookFunc {
	return func(ctx sim.HookCtx) {
		if ctx.Pos != emu.HookPosCycle {
			return
		}

		record, ok := ctx.Item.(*emu.CycleRecord)
		if !ok {
			return
		}

		fields := logrus.Fields{
			"cycle":   record.Cycle,
			"pc":      fmt.Sprintf("0x%08x", record.PC),
			"inst":    record.Inst.String(),
			"alu":     record.ALUOp.String(),
			"next_pc": fmt.Sprintf("0x%08x", record.NextPC),
		}

		if record.Wrote() {
			fields["rd"] = emu.ABIName(record.Inst.Rd)
			fields["wb"] = record.WriteBack
		}

		if record.Control.MemRead {
			fields["load"] = fmt.Sprintf("0x%x -> %d", record.MemAddr, record.MemData)
		}

		if record.Control.MemWrite {
			fields["store"] = fmt.Sprintf("0x%x <- %d", record.MemAddr, record.StoreVal)
		}

		if record.Branched() {
			fields["taken"] = true
		}

		logger.WithFields(fields).Info("cycle")
	}
}
