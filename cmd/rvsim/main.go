// Package main provides the entry point for rvsim, a single-cycle RV32
// datapath simulator.
//
// Usage:
//
//	rvsim [flags] <program>
//	rvsim disasm <program>
//	rvsim init-config <config.json>
//
// The program is either a hex text image (one byte per token) or an RV32
// ELF executable. On halt rvsim prints the result registers as "(a0,a1)".
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	verbose    bool
	trace      bool
	dump       bool
	maxCycles  uint64

	// maxCyclesSet is true when --max-cycles was given explicitly.
	maxCyclesSet bool
}

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rvsim [flags] <program>",
		Short: "Single-cycle RV32 datapath simulator",
		Long: `rvsim loads a program image into instruction memory and runs it on a
single-cycle RV32 datapath until the PC leaves the image, an instruction
with a zero opcode is fetched, or the cycle limit is reached. The values
of a0 and a1 are printed as "(a0,a1)".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.maxCyclesSet = cmd.Flags().Changed("max-cycles")
			return simulate(args[0], opts, cmd.OutOrStdout(), logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a JSON configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	rootCmd.Flags().BoolVar(&opts.trace, "trace", false, "log every cycle")
	rootCmd.Flags().BoolVar(&opts.dump, "dump", false, "pretty-print the final machine state")
	rootCmd.Flags().Uint64Var(&opts.maxCycles, "max-cycles", 0,
		"stop after this many cycles, 0 for no limit (overrides the config file)")

	rootCmd.AddCommand(newDisasmCmd(opts))
	rootCmd.AddCommand(newInitConfigCmd())

	return rootCmd
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
