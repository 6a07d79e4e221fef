package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intuitionamiga/go8080/internal/cpm"
	"github.com/intuitionamiga/go8080/internal/cpu8080"
	"github.com/intuitionamiga/go8080/internal/inspector"
)

func newInspectCmd() *cobra.Command {
	var origin, entry uint16
	var maxCycles uint64

	cmd := &cobra.Command{
		Use:   "inspect <file.com>",
		Short: "Run a CP/M .COM image under a live register/flag inspector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			cpu := cpu8080.NewCPU()
			if err := cpu.Memory.LoadBytes(image, origin); err != nil {
				return fmt.Errorf("loading %s at 0x%04X: %w", args[0], origin, err)
			}
			cpu.Registers.PC = entry
			cpu.Registers.SP = 0xFFFF
			cpm.Install(cpu)

			return inspector.Run(cpu, maxCycles)
		},
	}

	cmd.Flags().Uint16Var(&origin, "origin", 0x0100, "load address")
	cmd.Flags().Uint16Var(&entry, "pc", 0x0100, "initial program counter")
	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "cycle budget (0 = unbounded)")

	return cmd
}
