package main

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/insts"
	"github.com/sarchlab/rvsim/loader"
)

func newDisasmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			prog, err := loader.Load(args[0], cfg.InstMemSize)
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}

			decoder := insts.NewDecoder()
			out := cmd.OutOrStdout()
			for pc := uint64(0); pc+4 <= prog.Length; pc += 4 {
				word := binary.LittleEndian.Uint32(prog.Image[pc:])
				_, _ = fmt.Fprintf(out, "%08x:  %08x  %s\n", pc, word, decoder.Decode(word))
			}
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config <config.json>",
		Short: "Write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.DefaultConfig().SaveConfig(args[0])
		},
	}
}
