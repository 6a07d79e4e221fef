package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/intuitionamiga/go8080/internal/cpm"
	"github.com/intuitionamiga/go8080/internal/cpu8080"
)

// RunConfig mirrors CPUZ80Config's (cpu_z80_runner.go) shape: a plain
// struct the command layer fills in from flags, kept separate from flag
// parsing so the run logic is testable without cobra.
type RunConfig struct {
	Path       string
	Origin     uint16
	Entry      uint16
	MaxCycles  uint64
	Quiet      bool
}

func newRunCmd() *cobra.Command {
	cfg := RunConfig{Origin: 0x0100, Entry: 0x0100}

	cmd := &cobra.Command{
		Use:   "run <file.com>",
		Short: "Load and run a CP/M .COM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]
			return runCOM(cfg)
		},
	}

	cmd.Flags().Uint16Var(&cfg.Origin, "origin", cfg.Origin, "load address")
	cmd.Flags().Uint16Var(&cfg.Entry, "pc", cfg.Entry, "initial program counter")
	cmd.Flags().Uint64Var(&cfg.MaxCycles, "max-cycles", 0, "cycle budget (0 = unbounded)")
	cmd.Flags().BoolVar(&cfg.Quiet, "quiet", false, "suppress console output")

	return cmd
}

func runCOM(cfg RunConfig) error {
	image, err := os.ReadFile(cfg.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Path, err)
	}

	cpu := cpu8080.NewCPU()
	if err := cpu.Memory.LoadBytes(image, cfg.Origin); err != nil {
		return fmt.Errorf("loading %s at 0x%04X: %w", cfg.Path, cfg.Origin, err)
	}
	cpu.Registers.PC = cfg.Entry
	cpu.Registers.SP = 0xFFFF

	cpm.Install(cpu)
	if !cfg.Quiet {
		cpu.OutHandler = func(port, value byte) {
			if port == 0 {
				fmt.Print(string(rune(value)))
			}
		}
	}

	cycles, err := cpu.Run(cfg.MaxCycles)
	if err != nil {
		log.Printf("halted on error after %d cycles: %v", cycles, err)
		return err
	}
	if !cfg.Quiet {
		fmt.Println()
	}
	log.Printf("halted after %d cycles", cycles)
	return nil
}
