// Package cpm provides a ready-made CP/M BDOS console handler for
// internal/cpu8080, grounded in the original source's cp_m.rs
// (add_cpm_bdos): a subroutine installed at address 0x0005 that
// recognizes the two BDOS functions the TST8080/8080PRE/CPUTEST/8080EXM
// diagnostics use to print their results, C=2 (console output, one
// character in E) and C=9 (print string, DE-addressed, terminated by
// '$').
//
// This lives outside internal/cpu8080 deliberately: the core has no idea
// what CP/M is, only that a host can intercept a call address.
package cpm

import "github.com/intuitionamiga/go8080/internal/cpu8080"

const (
	funcConsoleOutput = 2
	funcPrintString   = 9
	stringTerminator  = '$'
	bdosConsolePort   = 0
)

// Install registers the BDOS handler at 0x0005 on cpu, routing console
// output through port 0 exactly as a real CP/M BIOS would route BDOS
// console calls through its port-mapped UART.
func Install(cpu *cpu8080.CPU) {
	cpu.InterceptCall(0x0005, handleBdosCall)
}

func handleBdosCall(c *cpu8080.CPU) {
	fn, _ := c.Registers.Read(cpu8080.RegC).Byte()

	switch fn {
	case funcConsoleOutput:
		e, _ := c.Registers.Read(cpu8080.RegE).Byte()
		writeConsole(c, e)

	case funcPrintString:
		addr := c.Registers.Read(cpu8080.RegDE).Word()
		for {
			b := c.Memory.Read8(addr)
			if b == stringTerminator {
				break
			}
			writeConsole(c, b)
			addr++
		}
	}
}

func writeConsole(c *cpu8080.CPU, b byte) {
	c.Out(bdosConsolePort, b)
}
