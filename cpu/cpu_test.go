package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sixoheight/six09/event"
	"github.com/sixoheight/six09/mem"
)

// newTestSystem wires a fresh event bus, RAM, and CPU together, the same
// three-piece harness the teacher assembles inline in cpu_test.go (Cpu{Bus:
// &mem.Bus{}}), generalized to this core's event-mediated wiring.
func newTestSystem(t *testing.T, resetAddr uint16) (*CPU, *mem.Bus) {
	t.Helper()
	bus := event.New()
	mb := mem.New(bus, 0)
	mb.RAM[0xFFFE] = byte(resetAddr >> 8)
	mb.RAM[0xFFFF] = byte(resetAddr)
	c, err := New(bus, DefaultConfig())
	assert.NoError(t, err)
	return c, mb
}

// run clocks c a fixed number of cycles, or until it fails.
func run(c *CPU, maxCycles int) {
	for i := 0; i < maxCycles && !c.Failed(); i++ {
		c.PerformCycle()
	}
}

// settleReset clocks c until cpu:reset_finish has fired, so a test's first
// instruction starts from a clean fetch boundary.
func settleReset(t *testing.T, c *CPU) {
	t.Helper()
	done := false
	sub := c.bus.On(EventResetFinish, 0, func(event.Payload) { done = true })
	defer sub.Cancel()
	for i := 0; i < 16 && !done && !c.Failed(); i++ {
		c.PerformCycle()
	}
	assert.True(t, done, "reset did not finish within the cycle budget")
}

// runOneInstruction clocks c until exactly one cpu:instruction_finish has
// fired, callable any number of times across a test once reset has settled.
func runOneInstruction(t *testing.T, c *CPU) {
	t.Helper()
	finished := false
	sub := c.bus.On(EventInstructionFinish, 0, func(event.Payload) { finished = true })
	defer sub.Cancel()
	for i := 0; i < 64 && !c.Failed() && !finished; i++ {
		c.PerformCycle()
	}
	assert.True(t, finished, "instruction did not finish within the cycle budget")
}

func TestResetSequence(t *testing.T) {
	c, _ := newTestSystem(t, 0x0100)
	run(c, 8)

	s := c.Snapshot()
	assert.Equal(t, uint16(0x0100), s.PC)
	assert.Equal(t, uint8(0), s.DP)
	assert.Equal(t, uint16(0), s.D)
	assert.Equal(t, uint16(0), s.X)
	assert.Equal(t, uint16(0), s.Y)
	assert.Equal(t, uint16(0), s.U)
	assert.Equal(t, uint16(0), s.S)
	assert.Equal(t, uint8(0), s.CC)
	assert.Equal(t, stateFetch, c.state)
}

func TestLDAImmediate(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0x86
	mb.RAM[0x0101] = 0x2A

	settleReset(t, c)
	runOneInstruction(t, c)

	s := c.Snapshot()
	assert.Equal(t, uint8(0x2A), s.A())
	assert.Equal(t, uint8(0x00), s.B())
	assert.Equal(t, uint16(0x0102), s.PC)
	assert.False(t, s.Zero())
	assert.False(t, s.Negative())
	assert.False(t, s.Overflow())
}

func TestADDAHalfCarry(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0x8B // ADDA immediate
	mb.RAM[0x0101] = 0x0F

	settleReset(t, c)
	c.regs.Set(RegA, 0x01)
	runOneInstruction(t, c)

	s := c.Snapshot()
	assert.Equal(t, uint8(0x10), s.A())
	assert.True(t, s.HalfCarry())
	assert.False(t, s.Negative())
	assert.False(t, s.Zero())
	assert.False(t, s.Overflow())
	assert.False(t, s.Carry())
	assert.Equal(t, uint16(0x0102), s.PC)
}

func TestCMPADoesNotAlterA(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0x81 // CMPA immediate
	mb.RAM[0x0101] = 0x30

	settleReset(t, c)
	c.regs.Set(RegA, 0x30)
	runOneInstruction(t, c)

	s := c.Snapshot()
	assert.Equal(t, uint8(0x30), s.A())
	assert.True(t, s.Zero())
	assert.False(t, s.Negative())
	assert.False(t, s.Carry())
	assert.False(t, s.Overflow())
}

func TestShortBranchTaken(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0x27 // BEQ
	mb.RAM[0x0101] = 0x05

	settleReset(t, c)
	c.regs.applyALU(func(r *Registers) { r.SetZero(true) })
	runOneInstruction(t, c)

	assert.Equal(t, uint16(0x0107), c.Snapshot().PC)
}

func TestIndexedPostIncrement(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0xA6 // LDA indexed
	mb.RAM[0x0101] = 0x80 // ,X+
	mb.RAM[0x1000] = 0x55

	settleReset(t, c)
	c.regs.Set(RegX, 0x1000)
	runOneInstruction(t, c)

	s := c.Snapshot()
	assert.Equal(t, uint8(0x55), s.A())
	assert.Equal(t, uint16(0x1001), s.X)
}

func TestPSHSPULSRoundTrip(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	mb.RAM[0x0100] = 0x34 // PSHS
	mb.RAM[0x0101] = 0x06 // bits A, B
	mb.RAM[0x0102] = 0x35 // PULS
	mb.RAM[0x0103] = 0x06

	settleReset(t, c)
	c.regs.Set(RegS, 0xA000)
	c.regs.Set(RegA, 0xAA)
	c.regs.Set(RegB, 0xBB)
	runOneInstruction(t, c) // PSHS

	assert.Equal(t, uint16(0x9FFE), c.Snapshot().S)
	// push order is highest postbyte bit first: B (bit 2) lands above A
	assert.Equal(t, byte(0xBB), mb.RAM[0x9FFF])
	assert.Equal(t, byte(0xAA), mb.RAM[0x9FFE])

	c.regs.Set(RegA, 0)
	c.regs.Set(RegB, 0)
	runOneInstruction(t, c) // PULS

	s := c.Snapshot()
	assert.Equal(t, uint8(0xAA), s.A())
	assert.Equal(t, uint8(0xBB), s.B())
	assert.Equal(t, uint16(0xA000), s.S)
}

func TestUnknownOpcodeFails(t *testing.T) {
	c, mb := newTestSystem(t, 0x0100)
	// 0x01 falls in the NEG/modify family's direct-mode column but has no
	// registered entry of its own: genuinely undefined.
	mb.RAM[0x0100] = 0x01

	var failure Failure
	c.bus.On(EventFail, 0, func(p event.Payload) { failure = p.(Failure) })

	// seven reset cycles, one to read the opcode byte, one to decode it
	run(c, 9)
	assert.True(t, c.Failed())
	assert.Equal(t, FailUnknownOpcode, failure.Reason)
}
