package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/sixoheight/six09/event"
	"github.com/sixoheight/six09/mem"
)

// debugModel is the bubbletea TUI adapted from the teacher's single-step
// debugger (hejops-gone/cpu/debugger.go): one keypress clocks the CPU by
// one instruction or runs it until a breakpoint PC is hit, rendering the
// register file, a window of the page table around PC, and a spew dump of
// the most recently decoded instruction.
type debugModel struct {
	cpu *CPU
	bus *mem.Bus

	breakpoint uint16
	haveBreak  bool
	prevPC     uint16
	lastDesc   Descriptor
	quitErr    error
}

// Debug loads program into mem at offset, resets the CPU to start execution
// there, and launches the interactive TUI. breakAt, if non-zero, arms a
// "run until PC==breakAt" command ("c").
func Debug(c *CPU, bus *mem.Bus, program []byte, offset uint16, breakAt uint16) error {
	bus.Load(program, offset)
	m := debugModel{cpu: c, bus: bus, breakpoint: breakAt, haveBreak: breakAt != 0}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(debugModel); ok && fm.quitErr != nil {
		return fm.quitErr
	}
	return nil
}

func (m debugModel) Init() tea.Cmd { return nil }

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = uint16(m.cpu.Snapshot().PC)
			m.step()
		case "c":
			m.prevPC = uint16(m.cpu.Snapshot().PC)
			for i := 0; i < 1_000_000 && !m.cpu.Failed(); i++ {
				if m.haveBreak && uint16(m.cpu.Snapshot().PC) == m.breakpoint && i > 0 {
					break
				}
				m.step()
			}
		}
		if m.cpu.Failed() {
			m.quitErr = fmt.Errorf("cpu failed in state %s", m.cpu.State())
			return m, tea.Quit
		}
	}
	return m, nil
}

// step clocks the CPU until the next cpu:instruction_finish fires, so a
// single keypress always advances by one whole instruction, matching the
// teacher's one-keypress one-instruction debugger loop.
func (m *debugModel) step() {
	m.lastDesc = m.cpu.desc
	done := false
	sub := m.cpu.bus.On(EventInstructionFinish, 0, func(event.Payload) { done = true })
	defer sub.Cancel()
	for !done && !m.cpu.Failed() {
		m.cpu.PerformCycle()
	}
	m.lastDesc = m.cpu.desc
}

func (m debugModel) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.bus.RAM[addr]
		if addr == uint16(m.cpu.Snapshot().PC) {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m debugModel) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}
	pc := uint16(m.cpu.Snapshot().PC)
	base := pc &^ 0x0F
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m debugModel) status() string {
	s := m.cpu.Snapshot()
	flagBit := func(set bool) string {
		if set {
			return "/ "
		}
		return "  "
	}
	flags := flagBit(s.Entire()) + flagBit(s.FIRQMask()) + flagBit(s.HalfCarry()) +
		flagBit(s.IRQMask()) + flagBit(s.Negative()) + flagBit(s.Zero()) +
		flagBit(s.Overflow()) + flagBit(s.Carry())
	return fmt.Sprintf(`
PC: %04x (%04x)   state: %s
 D: %04x  A: %02x  B: %02x
 X: %04x  Y: %04x
 U: %04x  S: %04x  DP: %02x
E F H I N Z V C
%s`,
		s.PC, m.prevPC, m.cpu.State(),
		s.D, s.A(), s.B(),
		s.X, s.Y,
		s.U, s.S, s.DP,
		flags)
}

func (m debugModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(m.lastDesc),
	)
}
