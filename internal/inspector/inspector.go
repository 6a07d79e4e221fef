// Package inspector is a live bubbletea TUI over a running CPU: register
// file, flags, and cycle count, refreshed on a timer while the CPU runs
// on its own goroutine. Grounded in CPU_Z80's mutex sync.RWMutex plus
// Running()/SetRunning() pattern (cpu_z80.go) for the locking discipline,
// and hejops/gone's cpu/debugger.go for the bubbletea/lipgloss model
// shape - adapted from gone's single-step, keypress-driven debugger to a
// live view of a freely running engine, since ownership of
// synchronisation here sits with the host, not the core.
package inspector

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/intuitionamiga/go8080/internal/cpu8080"
)

// Supervisor wraps a *cpu8080.CPU with the mutex a running goroutine and
// a polling UI both need, since the core itself performs no locking.
type Supervisor struct {
	mu      sync.RWMutex
	cpu     *cpu8080.CPU
	running bool
	err     error
}

// NewSupervisor wraps cpu for concurrent run+inspect access.
func NewSupervisor(cpu *cpu8080.CPU) *Supervisor {
	return &Supervisor{cpu: cpu}
}

// Start runs the wrapped CPU on a background goroutine until it halts,
// errors, or maxCycles is reached.
func (s *Supervisor) Start(maxCycles uint64) {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	go func() {
		var total uint64
		for {
			s.mu.Lock()
			if s.cpu.Halted || (maxCycles != 0 && total >= maxCycles) {
				s.running = false
				s.mu.Unlock()
				return
			}
			cycles, err := s.cpu.Step()
			if err != nil {
				s.err = err
				s.running = false
				s.mu.Unlock()
				return
			}
			total += uint64(cycles)
			s.cpu.Cycles += uint64(cycles)
			s.mu.Unlock()
		}
	}()
}

// snapshot is a point-in-time copy of CPU state safe to render without
// holding the lock.
type snapshot struct {
	pc, sp             uint16
	b, c, d, e, h, l, a byte
	flags              cpu8080.Flags
	cycles             uint64
	running            bool
	err                error
}

func (s *Supervisor) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.cpu.Registers
	return snapshot{
		pc: r.PC, sp: r.SP,
		b: r.B, c: r.C, d: r.D, e: r.E, h: r.H, l: r.L,
		a:       s.cpu.ALU.A,
		flags:   s.cpu.ALU.Flags(),
		cycles:  s.cpu.Cycles,
		running: s.running,
		err:     s.err,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	sup  *Supervisor
	snap snapshot
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		m.snap = m.sup.snapshot()
		if !m.snap.running {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func flagChar(name string, set bool) string {
	if set {
		return flagStyle.Render(name)
	}
	return "."
}

func (m model) View() string {
	s := m.snap
	registers := fmt.Sprintf(
		"%s %02X   %s %02X   %s %02X   %s %02X\n%s %02X   %s %02X   %s %02X\n%s %04X         %s %04X",
		labelStyle.Render("A"), s.a,
		labelStyle.Render("B"), s.b,
		labelStyle.Render("C"), s.c,
		labelStyle.Render("D"), s.d,
		labelStyle.Render("E"), s.e,
		labelStyle.Render("H"), s.h,
		labelStyle.Render("L"), s.l,
		labelStyle.Render("PC"), s.pc,
		labelStyle.Render("SP"), s.sp,
	)

	flags := fmt.Sprintf("%s %s %s %s %s",
		flagChar("S", s.flags.Sign),
		flagChar("Z", s.flags.Zero),
		flagChar("A", s.flags.AuxCarry),
		flagChar("P", s.flags.Parity),
		flagChar("C", s.flags.Carry),
	)

	status := fmt.Sprintf("cycles: %d  running: %v", s.cycles, s.running)
	if s.err != nil {
		status += fmt.Sprintf("  error: %v", s.err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		registers,
		flags,
		status,
		"",
		"q to quit",
	)
}

// Run starts cpu running in the background and blocks showing the live
// TUI until the program halts or the user quits. On a fatal decode/
// memory error it dumps the offending CPU state via spew.Sdump, the same
// way hejops/gone's cpu/debugger.go reports a failing step.
func Run(cpu *cpu8080.CPU, maxCycles uint64) error {
	sup := NewSupervisor(cpu)
	sup.Start(maxCycles)

	p := tea.NewProgram(model{sup: sup, snap: sup.snapshot()})
	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(model)
	if m.snap.err != nil {
		return fmt.Errorf("inspector: halted with error: %w (state: %s)", m.snap.err, spew.Sdump(m.snap))
	}
	return nil
}
