package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
)

// Benchmark defines a single workload.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Setup prepares the CPU state (e.g., preload data memory). Optional.
	Setup func(cpu *emu.CPU) error

	// Program is the RV32 machine code, loaded at address 0
	Program []byte

	// ExpectedA0 and ExpectedA1 are the register values at halt
	ExpectedA0 int32
	ExpectedA1 int32
}

// BenchmarkResult holds the results of a single benchmark run.
type BenchmarkResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Cycles is the number of completed cycles
	Cycles uint64 `json:"cycles"`

	// SimulatedTime is Cycles at the configured clock frequency
	SimulatedTime time.Duration `json:"simulated_time_ns"`

	HaltReason string `json:"halt_reason"`
	A0         int32  `json:"a0"`
	A1         int32  `json:"a1"`

	// Passed is set when the run halted without a fault and both result
	// registers hold the expected values
	Passed bool `json:"passed"`

	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Sim supplies memory sizes, the cycle cap and the clock frequency
	Sim *config.Config

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Logger receives per-benchmark progress (default: logrus standard logger)
	Logger *logrus.Logger
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Sim:    config.DefaultConfig(),
		Output: os.Stdout,
		Logger: logrus.StandardLogger(),
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	defaults := DefaultConfig()
	if config.Sim == nil {
		config.Sim = defaults.Sim
	}
	if config.Output == nil {
		config.Output = defaults.Output
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}

	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh CPU.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}
	log := h.config.Logger.WithField("benchmark", bench.Name)

	cpu, err := emu.NewCPU(bench.Program, h.config.Sim.CPUOptions()...)
	if err != nil {
		result.Error = err.Error()
		log.WithError(err).Error("failed to create CPU")
		return result
	}

	if bench.Setup != nil {
		if err := bench.Setup(cpu); err != nil {
			result.Error = fmt.Sprintf("setup: %v", err)
			log.WithError(err).Error("setup failed")
			return result
		}
	}

	start := time.Now()
	halt := cpu.Run()
	result.WallTime = time.Since(start)

	regs := cpu.Result(emu.RegA0, emu.RegA1)
	result.A0, result.A1 = regs[0], regs[1]
	result.Cycles = cpu.Cycles()
	result.SimulatedTime = h.config.Sim.SimulatedTime(result.Cycles)
	result.HaltReason = halt.Reason.String()
	if halt.Err != nil {
		result.Error = halt.Err.Error()
	}

	result.Passed = halt.Reason != emu.HaltFault &&
		halt.Reason != emu.HaltMaxCycles &&
		result.A0 == bench.ExpectedA0 &&
		result.A1 == bench.ExpectedA1

	log.WithFields(logrus.Fields{
		"cycles": result.Cycles,
		"halt":   result.HaltReason,
		"a0":     result.A0,
		"a1":     result.A1,
		"passed": result.Passed,
	}).Debug("benchmark finished")

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	out := h.config.Output
	_, _ = fmt.Fprintln(out, "=== RV32 Benchmark Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(out, "Benchmark: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(out, "  Result:         (%d,%d)\n", r.A0, r.A1)
		_, _ = fmt.Fprintf(out, "  Halt:           %s\n", r.HaltReason)
		_, _ = fmt.Fprintf(out, "  Cycles:         %d\n", r.Cycles)
		_, _ = fmt.Fprintf(out, "  Simulated Time: %v\n", r.SimulatedTime)
		if r.Error != "" {
			_, _ = fmt.Fprintf(out, "  Error:          %s\n", r.Error)
		}
		_, _ = fmt.Fprintf(out, "  Wall Time:      %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,simulated_ns,halt,a0,a1,passed,wall_ns")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%s,%d,%d,%t,%d\n",
			r.Name,
			r.Cycles,
			r.SimulatedTime.Nanoseconds(),
			r.HaltReason,
			r.A0,
			r.A1,
			r.Passed,
			r.WallTime.Nanoseconds(),
		)
	}
}

// BenchmarkReport is the JSON output format for benchmark results.
type BenchmarkReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Results  []BenchmarkResult `json:"results"`
	Summary  ReportSummary     `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	Timestamp string         `json:"timestamp"`
	Config    *config.Config `json:"config"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	TotalBenchmarks int           `json:"total_benchmarks"`
	Passed          int           `json:"passed"`
	TotalCycles     uint64        `json:"total_cycles"`
	TotalWallTime   time.Duration `json:"total_wall_time_ns"`
}

// Summarize aggregates results.
func Summarize(results []BenchmarkResult) ReportSummary {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		}
		summary.TotalCycles += r.Cycles
		summary.TotalWallTime += r.WallTime
	}
	return summary
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Config:    h.config.Sim,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
