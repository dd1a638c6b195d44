package cpu

import (
	"github.com/sixoheight/six09/event"
)

// Condition-code bit positions (spec §3); bit 0 is Carry, bit 7 is Entire.
const (
	ccCarry = 1 << iota
	ccOverflow
	ccZero
	ccNegative
	ccIRQMask
	ccHalfCarry
	ccFIRQMask
	ccEntire
)

// Registers holds the eight architectural registers of the MC6809. A and B
// are virtual views over the high and low bytes of D; there is no backing
// storage for them beyond D itself (spec §3).
//
// This mirrors the teacher's approach of keeping registers as plain struct
// fields on the Cpu (hejops-gone/cpu/cpu.go), generalized from the 6502's
// single accumulator/X/Y/Stack layout to the 6809's eight registers plus the
// A/B-over-D overlap; the 68k teacher's (user-none-go-chip-m68k/cpu.go)
// separate Registers struct, held by value inside the CPU and copied out as
// a Snapshot, is the model for the "owned by driver, handed out as a
// snapshot" ownership rule in spec §3.
type Registers struct {
	D  uint16
	X  uint16
	Y  uint16
	U  uint16
	S  uint16
	PC uint16
	DP uint8
	CC uint8
}

// A returns the high byte of D.
func (r *Registers) A() uint8 { return uint8(r.D >> 8) }

// B returns the low byte of D.
func (r *Registers) B() uint8 { return uint8(r.D) }

// SetA replaces the high byte of D, leaving B unchanged.
func (r *Registers) SetA(v uint8) { r.D = uint16(v)<<8 | (r.D & 0x00FF) }

// SetB replaces the low byte of D, leaving A unchanged.
func (r *Registers) SetB(v uint8) { r.D = (r.D & 0xFF00) | uint16(v) }

// Get reads a register by Reg identifier, widened to uint32 for uniform
// arithmetic by instruction handlers.
func (r *Registers) Get(reg Reg) uint32 {
	switch reg {
	case RegD:
		return uint32(r.D)
	case RegA:
		return uint32(r.A())
	case RegB:
		return uint32(r.B())
	case RegX:
		return uint32(r.X)
	case RegY:
		return uint32(r.Y)
	case RegU:
		return uint32(r.U)
	case RegS:
		return uint32(r.S)
	case RegPC:
		return uint32(r.PC)
	case RegDP:
		return uint32(r.DP)
	case RegCC:
		return uint32(r.CC)
	}
	return 0
}

// Set writes a register by Reg identifier, truncating to its width (spec
// §3 invariant: every stored value fits its bit-width).
func (r *Registers) Set(reg Reg, v uint32) {
	switch reg {
	case RegD:
		r.D = uint16(v) & 0xFFFF
	case RegA:
		r.SetA(uint8(v) & 0xFF)
	case RegB:
		r.SetB(uint8(v) & 0xFF)
	case RegX:
		r.X = uint16(v) & 0xFFFF
	case RegY:
		r.Y = uint16(v) & 0xFFFF
	case RegU:
		r.U = uint16(v) & 0xFFFF
	case RegS:
		r.S = uint16(v) & 0xFFFF
	case RegPC:
		r.PC = uint16(v) & 0xFFFF
	case RegDP:
		r.DP = uint8(v) & 0xFF
	case RegCC:
		r.CC = uint8(v) & 0xFF
	}
}

// CC flag accessors. Named after the datasheet letters (spec §3/glossary).
func (r *Registers) Carry() bool    { return r.CC&ccCarry != 0 }
func (r *Registers) Overflow() bool { return r.CC&ccOverflow != 0 }
func (r *Registers) Zero() bool     { return r.CC&ccZero != 0 }
func (r *Registers) Negative() bool { return r.CC&ccNegative != 0 }
func (r *Registers) IRQMask() bool  { return r.CC&ccIRQMask != 0 }
func (r *Registers) HalfCarry() bool { return r.CC&ccHalfCarry != 0 }
func (r *Registers) FIRQMask() bool { return r.CC&ccFIRQMask != 0 }
func (r *Registers) Entire() bool   { return r.CC&ccEntire != 0 }

func (r *Registers) setFlag(bit uint8, v bool) {
	if v {
		r.CC |= bit
	} else {
		r.CC &^= bit
	}
}

func (r *Registers) SetCarry(v bool)    { r.setFlag(ccCarry, v) }
func (r *Registers) SetOverflow(v bool) { r.setFlag(ccOverflow, v) }
func (r *Registers) SetZero(v bool)     { r.setFlag(ccZero, v) }
func (r *Registers) SetNegative(v bool) { r.setFlag(ccNegative, v) }
func (r *Registers) SetIRQMask(v bool)  { r.setFlag(ccIRQMask, v) }
func (r *Registers) SetHalfCarry(v bool) { r.setFlag(ccHalfCarry, v) }
func (r *Registers) SetFIRQMask(v bool) { r.setFlag(ccFIRQMask, v) }
func (r *Registers) SetEntire(v bool)   { r.setFlag(ccEntire, v) }

// SetNZ derives N and Z from a result truncated to `bits` width, the common
// tail of nearly every load/ALU/modify instruction (spec §4.6).
func (r *Registers) SetNZ(result uint32, bits uint) {
	mask := uint32(1)<<bits - 1
	v := result & mask
	r.SetZero(v == 0)
	r.SetNegative(v&(1<<(bits-1)) != 0)
}

// Snapshot is an immutable copy of the register file, handed to external
// observers (spec §3: "copies are handed out as snapshots"). It never
// aliases CPU-owned storage.
type Snapshot struct {
	Registers
	LastMnemonic string
	LastBytes    int
}

// RegisterUpdate is the cpu:register_update payload.
type RegisterUpdate struct {
	Name  Reg
	Value uint32
}

const (
	EventRegisterUpdate  event.Name = "cpu:register_update"
	EventRegistersUpdate event.Name = "cpu:registers_update"
)

// registerProxy wraps Registers so that writes to a configured subset of
// fields announce themselves over the event bus, the way the teacher
// intercepts writes for its debugger via direct field reads every Update
// tick (hejops-gone/cpu/debugger.go's `status` method); spec §9 asks for a
// thin static wrapper rather than runtime reflection, which is what this
// is: a fixed switch over the configured Reg set, not a generic interceptor.
type registerProxy struct {
	regs    Registers
	bus     *event.Transceiver
	announce map[Reg]bool
}

func newRegisterProxy(bus *event.Transceiver, announce map[Reg]bool) *registerProxy {
	return &registerProxy{bus: bus, announce: announce}
}

// Set writes through to the underlying Registers and, if reg is in the
// announced subset, emits cpu:register_update.
func (p *registerProxy) Set(reg Reg, v uint32) {
	p.regs.Set(reg, v)
	if p.announce[reg] {
		p.bus.Emit(EventRegisterUpdate, RegisterUpdate{Name: reg, Value: p.regs.Get(reg)})
	}
}

func (p *registerProxy) Get(reg Reg) uint32 { return p.regs.Get(reg) }

// applyALU runs fn against the live register file directly -- used by
// instruction semantics that need to both read and write several fields at
// once (an accumulator and the condition codes together), which the
// per-field Set indirection isn't shaped for. CC is announced afterward if
// configured; per-field announcement of whichever register fn touched is
// not attempted, since the default announce set (PC, S, U) never includes
// an ALU destination register.
func (p *registerProxy) applyALU(fn func(r *Registers)) {
	fn(&p.regs)
	if p.announce[RegCC] {
		p.bus.Emit(EventRegisterUpdate, RegisterUpdate{Name: RegCC, Value: p.regs.Get(RegCC)})
	}
}

func (p *registerProxy) snapshot() Snapshot {
	return Snapshot{Registers: p.regs}
}
