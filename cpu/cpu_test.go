package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/nescore/mmu"
)

// registerSnapshot captures the CPU's visible state for failure-message
// dumps; spew.Sdump gives a stable multi-line rendering that's easier
// to scan than a one-line %+v when a register-set assertion fails.
type registerSnapshot struct {
	PC             uint16
	A, X, Y, SP, P uint8
}

func snapshot(c *CPU) registerSnapshot {
	return registerSnapshot{PC: c.PC(), A: c.A(), X: c.X(), Y: c.Y(), SP: c.SP(), P: c.Status()}
}

func newTestCPU(t *testing.T, program map[uint16]uint8) (*CPU, *mmu.MMU) {
	t.Helper()
	m := mmu.New()
	ram := make([]byte, 0x10000)
	require.NoError(t, m.Map(&mmu.Region{Start: 0x0000, End: 0x10000, Backing: ram, Writable: true}))
	for addr, v := range program {
		require.NoError(t, m.WriteByte(addr, v))
	}
	var nmi bool
	c := New(m, &nmi)
	require.NoError(t, c.Reset())
	return c, m
}

func TestResetLoadsVectorAndStackPointer(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{0xFFFC: 0x00, 0xFFFD: 0x80})
	require.EqualValues(t, 0x8000, c.PC())
	require.EqualValues(t, 0xFD, c.SP())
	require.True(t, c.Status()&flagI != 0)
}

func TestLDAImmediateThenSTAAbsolute(t *testing.T) {
	c, m := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0xA9, 0x8001: 0x42, // LDA #$42
		0x8002: 0x8D, 0x8003: 0x00, 0x8004: 0x02, // STA $0200
	})
	require.NoError(t, c.Tick())
	want := registerSnapshot{PC: 0x8002, A: 0x42, X: 0, Y: 0, SP: 0xFD, P: c.Status()}
	require.Equal(t, want, snapshot(c), "register mismatch after LDA:\n%s", spew.Sdump(snapshot(c)))
	require.NoError(t, c.Tick())
	v, err := m.ReadByte(0x0200)
	require.NoError(t, err)
	require.EqualValues(t, 0x42, v)
	require.EqualValues(t, 0x8005, c.PC())
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0x20, 0x8001: 0x00, 0x8002: 0x90, // JSR $9000
		0x8003: 0xEA, // NOP (return lands here)
		0x9000: 0x60, // RTS
	})
	require.NoError(t, c.Tick()) // JSR
	require.EqualValues(t, 0x9000, c.PC())
	require.NoError(t, c.Tick()) // RTS
	require.EqualValues(t, 0x8003, c.PC())
}

func TestIndirectJMP(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0x6C, 0x8001: 0x00, 0x8002: 0x30, // JMP ($3000)
		0x3000: 0x34, 0x3001: 0x12,
	})
	require.NoError(t, c.Tick())
	require.EqualValues(t, 0x1234, c.PC())
}

func TestBranchOffsetWraparound(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0xA9, 0x8001: 0x00, // LDA #$00 -> Z set
		0x8002: 0xF0, 0x8003: 0xFC, // BEQ -4 (back to 0x8000)
	})
	require.NoError(t, c.Tick())
	require.NoError(t, c.Tick())
	require.EqualValues(t, 0x8000, c.PC())
}

func TestStackPushPopWraparound(t *testing.T) {
	c, m := newTestCPU(t, map[uint16]uint8{0xFFFC: 0x00, 0xFFFD: 0x80})
	c.regs.SP = 0x00
	require.NoError(t, c.push(0x7E))
	require.EqualValues(t, 0xFF, c.regs.SP)
	v, err := m.ReadByte(0x0100)
	require.NoError(t, err)
	require.EqualValues(t, 0x7E, v)
	v, err = c.pop()
	require.NoError(t, err)
	require.EqualValues(t, 0x7E, v)
	require.EqualValues(t, 0x00, c.regs.SP)
}

func TestZeroAndNegativeFlagsDerivedFromPrev(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0xA9, 0x8001: 0x00, // LDA #$00
	})
	require.NoError(t, c.Tick())
	require.True(t, c.Status()&flagZ != 0)
	require.False(t, c.Status()&flagN != 0)
}

func TestBITIsUnimplemented(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0x24, 0x8001: 0x10, // BIT $10
	})
	err := c.Tick()
	require.ErrorIs(t, err, ErrUnimplementedOperation)
}

func TestUnknownOpcode(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0x8000: 0x02, // no such opcode in the table
	})
	err := c.Tick()
	require.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestNMIServicedBeforeNextInstruction(t *testing.T) {
	c, _ := newTestCPU(t, map[uint16]uint8{
		0xFFFC: 0x00, 0xFFFD: 0x80,
		0xFFFA: 0x00, 0xFFFB: 0x40,
		0x8000: 0xEA,
		0x4000: 0xEA, // NOP at the NMI vector target
	})
	*c.nmi = true
	require.NoError(t, c.Tick()) // services the NMI, then runs the NOP at 0x4000
	require.EqualValues(t, 0x4001, c.PC())
	require.False(t, *c.nmi)
}
