// Command run8080 is the host for the 8080 core: it loads a CP/M .COM
// image, wires up the BDOS console handler, and runs, disassembles, or
// interactively inspects it. Grounded in the original source's main.rs
// (clap-based Args, load-to-memory-at-0x100, BDOS registration, run loop)
// translated to cobra, the CLI framework the oisee/z80-optimizer example
// in the retrieval pack uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "run8080",
		Short: "An Intel 8080 emulator for CP/M .COM diagnostics",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newInspectCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
