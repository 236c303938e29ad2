package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/loader"
)

// machineState is the architectural state printed by --dump.
type machineState struct {
	PC            string
	Cycles        uint64
	SimulatedTime string
	Halt          string
	Registers     map[string]int32 // non-zero registers, by ABI name
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// simulate runs the program at path and writes the result tuple to out.
func simulate(path string, opts *options, out io.Writer, logger *logrus.Logger) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.maxCyclesSet {
		cfg.MaxCycles = opts.maxCycles
	}

	prog, err := loader.Load(path, cfg.InstMemSize)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"format": prog.Format,
		"length": prog.Length,
		"entry":  fmt.Sprintf("0x%x", prog.Entry),
	}).Debug("program loaded")

	cpuOpts := append(cfg.CPUOptions(), emu.WithProgramLength(prog.Length))
	cpu, err := emu.NewCPU(prog.Image, cpuOpts...)
	if err != nil {
		return err
	}
	cpu.SetPC(prog.Entry)

	if opts.trace {
		cpu.AcceptHook(newTraceHook(logger))
	}

	halt := cpu.Run()

	logger.WithFields(logrus.Fields{
		"reason":         halt.Reason.String(),
		"cycles":         cpu.Cycles(),
		"simulated_time": cfg.SimulatedTime(cpu.Cycles()),
	}).Debug("halted")

	_, _ = fmt.Fprintln(out, formatResult(cpu.Result(cfg.Registers()...)))

	if opts.dump {
		dumpState(out, cpu, cfg, halt)
	}

	switch halt.Reason {
	case emu.HaltFault, emu.HaltMaxCycles:
		return halt.Err
	}
	return nil
}

// formatResult renders register values as a tuple, e.g. "(3,-1)".
func formatResult(values []int32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func dumpState(out io.Writer, cpu *emu.CPU, cfg *config.Config, halt emu.StepResult) {
	state := machineState{
		PC:            fmt.Sprintf("0x%08x", cpu.ReadPC()),
		Cycles:        cpu.Cycles(),
		SimulatedTime: cfg.SimulatedTime(cpu.Cycles()).String(),
		Halt:          halt.Reason.String(),
		Registers:     map[string]int32{},
	}

	for i, v := range cpu.RegFile().Snapshot() {
		if v != 0 {
			state.Registers[emu.ABIName(uint8(i))] = v
		}
	}

	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(false)
	_, _ = printer.Println(state)
}
