// Package debug implements an interactive stepper for a
// console.Console: a charmbracelet/bubbletea TUI with a status panel,
// a memory page table with the program counter highlighted, and
// single-key commands for stepping, running to a breakpoint, and
// resetting.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bdwalton/nescore/console"
)

const maxRunSteps = 5_000_000

var (
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type runDoneMsg struct{ err error }

type model struct {
	con         *console.Console
	breakpoints map[uint16]struct{}

	enteringBreakpoint bool
	breakpointInput    string

	lastErr error
	running bool
}

// New returns a bubbletea program wired to con. Run starts the TUI
// and blocks until the user quits.
func New(con *console.Console) *tea.Program {
	return tea.NewProgram(model{con: con, breakpoints: map[uint16]struct{}{}})
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runDoneMsg:
		m.running = false
		m.lastErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.enteringBreakpoint {
			return m.updateBreakpointEntry(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			m.lastErr = m.con.Step()
		case "r":
			if !m.running {
				m.running = true
				m.lastErr = nil
				return m, runUntilBreak(m.con, m.breakpoints)
			}
		case "e":
			m.lastErr = m.con.Reset()
		case "b":
			m.enteringBreakpoint = true
			m.breakpointInput = ""
		case "c":
			m.breakpoints = map[uint16]struct{}{}
		}
	}
	return m, nil
}

func (m model) updateBreakpointEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.enteringBreakpoint = false
	case "enter":
		if addr, err := strconv.ParseUint(m.breakpointInput, 16, 16); err == nil {
			m.breakpoints[uint16(addr)] = struct{}{}
		}
		m.enteringBreakpoint = false
	case "backspace":
		if len(m.breakpointInput) > 0 {
			m.breakpointInput = m.breakpointInput[:len(m.breakpointInput)-1]
		}
	default:
		if len(msg.String()) == 1 && strings.ContainsRune("0123456789abcdefABCDEF", rune(msg.String()[0])) {
			m.breakpointInput += msg.String()
		}
	}
	return m, nil
}

// runUntilBreak resumes execution in the background, stepping until
// PC lands on a breakpoint, Step fails, or maxRunSteps is exceeded (a
// safety cap since this core has no interrupt-the-goroutine signal
// path of its own).
func runUntilBreak(con *console.Console, breaks map[uint16]struct{}) tea.Cmd {
	return func() tea.Msg {
		for i := 0; i < maxRunSteps; i++ {
			if err := con.Step(); err != nil {
				return runDoneMsg{err: err}
			}
			if _, hit := breaks[con.CPU().PC()]; hit {
				return runDoneMsg{}
			}
		}
		return runDoneMsg{err: fmt.Errorf("debug: exceeded %d steps without hitting a breakpoint", maxRunSteps)}
	}
}

func (m model) status() string {
	c := m.con.CPU()
	row, col := m.con.PPU().FramePosition()
	return fmt.Sprintf(
		"PC: %04x\nA:  %02x\nX:  %02x\nY:  %02x\nSP: %02x\nP:  %08b\nticks: %d\nppu: row=%d col=%d vblank=%v",
		c.PC(), c.A(), c.X(), c.Y(), c.SP(), c.Status(), c.Ticks(), row, col, m.con.PPU().VBlank(),
	)
}

func (m model) stack() string {
	c := m.con.CPU()
	var b strings.Builder
	sp := c.SP()
	for i := 0; i < 3; i++ {
		addr := uint16(0x0100) + uint16(sp) + uint16(i) + 1
		v, err := m.con.MMU().ReadByte(addr)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%04x: %02x\n", addr, v)
	}
	return b.String()
}

func (m model) memoryPage() string {
	pc := m.con.CPU().PC()
	start := pc &^ 0x0F
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%04x | ", start)))
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		v, err := m.con.MMU().ReadByte(addr)
		if err != nil {
			b.WriteString(" ?? ")
			continue
		}
		if addr == pc {
			b.WriteString(pcStyle.Render(fmt.Sprintf("[%02x]", v)))
		} else {
			b.WriteString(fmt.Sprintf(" %02x ", v))
		}
	}
	return b.String()
}

func (m model) breakpointsView() string {
	if len(m.breakpoints) == 0 {
		return "(none)"
	}
	var addrs []string
	for a := range m.breakpoints {
		addrs = append(addrs, fmt.Sprintf("%04x", a))
	}
	return strings.Join(addrs, " ")
}

func (m model) View() string {
	help := "(space/s)tep  (r)un  r(e)set  (b)reakpoint  (c)lear breakpoints  (q)uit"
	if m.enteringBreakpoint {
		help = "breakpoint addr (hex): " + m.breakpointInput + "_"
	}

	errLine := ""
	if m.lastErr != nil {
		errLine = errStyle.Render("error: " + m.lastErr.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.memoryPage(),
		"",
		m.status(),
		"",
		headerStyle.Render("breakpoints: ")+m.breakpointsView(),
		headerStyle.Render("stack top:"),
		m.stack(),
		"",
		errLine,
		help,
	)
}
