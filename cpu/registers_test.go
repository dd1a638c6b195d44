package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sixoheight/six09/event"
)

func TestDAndABOverlap(t *testing.T) {
	var r Registers
	r.Set(RegD, 0x1234)
	assert.Equal(t, uint8(0x12), r.A())
	assert.Equal(t, uint8(0x34), r.B())

	r.SetA(0xFF)
	assert.Equal(t, uint16(0xFF34), r.D)

	r.SetB(0x00)
	assert.Equal(t, uint16(0xFF00), r.D)
}

func TestRegisterSetTruncates(t *testing.T) {
	var r Registers
	r.Set(RegA, 0x1FF) // only the low byte should stick
	assert.Equal(t, uint8(0xFF), r.A())

	r.Set(RegX, 0x1FFFF)
	assert.Equal(t, uint16(0xFFFF), r.X)
}

func TestFlagAccessors(t *testing.T) {
	var r Registers
	r.SetCarry(true)
	r.SetZero(true)
	r.SetNegative(true)
	assert.True(t, r.Carry())
	assert.True(t, r.Zero())
	assert.True(t, r.Negative())
	assert.False(t, r.Overflow())
	assert.False(t, r.Entire())

	r.SetCarry(false)
	assert.False(t, r.Carry())
	assert.True(t, r.Zero()) // unaffected
}

func TestSetNZ(t *testing.T) {
	var r Registers
	r.SetNZ(0x00, 8)
	assert.True(t, r.Zero())
	assert.False(t, r.Negative())

	r.SetNZ(0x80, 8)
	assert.False(t, r.Zero())
	assert.True(t, r.Negative())

	r.SetNZ(0x8000, 16)
	assert.True(t, r.Negative())
	assert.False(t, r.Zero())
}

func TestRegisterProxyAnnouncesConfiguredRegisters(t *testing.T) {
	bus := event.New()
	p := newRegisterProxy(bus, map[Reg]bool{RegPC: true})

	var seen RegisterUpdate
	bus.On(EventRegisterUpdate, 0, func(payload event.Payload) {
		seen = payload.(RegisterUpdate)
	})

	p.Set(RegPC, 0x1000)
	assert.Equal(t, RegPC, seen.Name)
	assert.Equal(t, uint32(0x1000), seen.Value)

	seen = RegisterUpdate{}
	p.Set(RegX, 0x2000) // not in the announce set
	assert.Equal(t, RegNone, seen.Name)
	assert.Equal(t, uint32(0x2000), p.Get(RegX))
}

func TestRegisterProxyApplyALUAnnouncesCC(t *testing.T) {
	bus := event.New()
	p := newRegisterProxy(bus, map[Reg]bool{RegCC: true})

	var seen RegisterUpdate
	bus.On(EventRegisterUpdate, 0, func(payload event.Payload) {
		seen = payload.(RegisterUpdate)
	})

	p.applyALU(func(r *Registers) {
		r.SetA(0x80)
		r.SetNZ(0x80, 8)
	})

	assert.Equal(t, RegCC, seen.Name)
	assert.Equal(t, uint32(0x80), p.Get(RegA))
}
