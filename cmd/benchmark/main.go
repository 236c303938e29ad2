// Command benchmark runs the RV32 workload catalogue on the single-cycle CPU.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	--csv       Output results in CSV format (default: human-readable)
//	--json      Output results as a JSON report
//	--core      Run only the core workloads
//	--config    JSON configuration file (memory sizes, cycle cap, clock)
//	-v          Log each benchmark as it finishes
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark --csv > results.csv
//
// The command exits non-zero when any workload fails.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/rvsim/benchmarks"
	"github.com/sarchlab/rvsim/config"
)

type options struct {
	csv        bool
	json       bool
	core       bool
	configPath string
	verbose    bool
}

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "benchmark",
		Short:         "Run the RV32 workload catalogue",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			return runBenchmarks(opts, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().BoolVar(&opts.csv, "csv", false, "output results in CSV format")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")
	cmd.Flags().BoolVar(&opts.core, "core", false, "run only the core workloads")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a JSON configuration file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.MarkFlagsMutuallyExclusive("csv", "json")

	return cmd
}

func runBenchmarks(opts *options, out io.Writer, logger *logrus.Logger) error {
	harnessConfig := benchmarks.DefaultConfig()
	harnessConfig.Output = out
	harnessConfig.Logger = logger

	if opts.configPath != "" {
		cfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		harnessConfig.Sim = cfg
	}

	harness := benchmarks.NewHarness(harnessConfig)
	if opts.core {
		harness.AddBenchmarks(benchmarks.GetCoreWorkloads())
	} else {
		harness.AddBenchmarks(benchmarks.GetWorkloads())
	}

	results := harness.RunAll()

	switch {
	case opts.csv:
		harness.PrintCSV(results)
	case opts.json:
		if err := harness.PrintJSON(results); err != nil {
			return err
		}
	default:
		harness.PrintResults(results)
	}

	summary := benchmarks.Summarize(results)
	if summary.Passed != summary.TotalBenchmarks {
		return fmt.Errorf("%d of %d benchmarks failed",
			summary.TotalBenchmarks-summary.Passed, summary.TotalBenchmarks)
	}
	return nil
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
