package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intuitionamiga/go8080/internal/cpu8080"
)

func newDisasmCmd() *cobra.Command {
	var origin uint16
	var count int

	cmd := &cobra.Command{
		Use:   "disasm <file.com>",
		Short: "Statically disassemble a CP/M .COM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			mem := make([]byte, 0x10000)
			copy(mem[origin:], image)

			addr := origin
			end := int(origin) + len(image)
			for n := 0; (count == 0 || n < count) && int(addr) < end; n++ {
				text, size := cpu8080.Disassemble(mem, addr)
				fmt.Printf("%04X  %s\n", addr, text)
				addr += uint16(size)
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&origin, "origin", 0x0100, "address the image starts at")
	cmd.Flags().IntVar(&count, "count", 0, "number of instructions to print (0 = to end of image)")

	return cmd
}
