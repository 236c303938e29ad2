// Package config holds the simulator configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rvsim/emu"
)

// Config holds the simulator parameters. Zero values are not meaningful;
// start from DefaultConfig.
type Config struct {
	// InstMemSize is the instruction memory capacity in bytes.
	// Default: 4096.
	InstMemSize uint64 `json:"inst_mem_size"`

	// DataMemSize is the data memory capacity in bytes.
	// Default: 409600.
	DataMemSize uint64 `json:"data_mem_size"`

	// MaxCycles stops runaway programs. 0 disables the limit.
	// Default: 10,000,000.
	MaxCycles uint64 `json:"max_cycles"`

	// Freq is the clock frequency used to convert cycles into simulated
	// time. It has no effect on execution. Default: 1 GHz.
	Freq sim.Freq `json:"freq_hz"`

	// ResultRegs lists the registers reported at the end of a run.
	// Default: a0, a1.
	ResultRegs []int `json:"result_regs"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		InstMemSize: emu.DefaultInstMemorySize,
		DataMemSize: emu.DefaultDataMemorySize,
		MaxCycles:   10_000_000,
		Freq:        1 * sim.GHz,
		ResultRegs:  []int{int(emu.RegA0), int(emu.RegA1)},
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.InstMemSize < 4 {
		return fmt.Errorf("inst_mem_size must be >= 4")
	}
	if c.InstMemSize > 1<<32 {
		return fmt.Errorf("inst_mem_size must fit a 32-bit address space")
	}
	if c.DataMemSize == 0 {
		return fmt.Errorf("data_mem_size must be > 0")
	}
	if c.DataMemSize > 1<<32 {
		return fmt.Errorf("data_mem_size must fit a 32-bit address space")
	}
	if c.Freq <= 0 {
		return fmt.Errorf("freq_hz must be > 0")
	}
	for _, r := range c.ResultRegs {
		if r < 0 || r >= emu.NumRegisters {
			return fmt.Errorf("result register x%d out of range", r)
		}
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ResultRegs = append([]int(nil), c.ResultRegs...)
	return &clone
}

// CPUOptions translates the Config into emu options.
func (c *Config) CPUOptions() []emu.CPUOption {
	return []emu.CPUOption{
		emu.WithInstMemorySize(c.InstMemSize),
		emu.WithDataMemorySize(c.DataMemSize),
		emu.WithMaxCycles(c.MaxCycles),
	}
}

// Registers returns ResultRegs as register indices.
func (c *Config) Registers() []uint8 {
	regs := make([]uint8, len(c.ResultRegs))
	for i, r := range c.ResultRegs {
		regs[i] = uint8(r)
	}
	return regs
}

// SimulatedTime converts a cycle count into time at the configured clock.
func (c *Config) SimulatedTime(cycles uint64) time.Duration {
	ns := float64(cycles) * float64(time.Second) / float64(c.Freq)
	return time.Duration(ns)
}
