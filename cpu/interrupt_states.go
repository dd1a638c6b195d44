package cpu

import "github.com/sixoheight/six09/event"

// resetCycles is the length of the reset sequence in bus cycles: two for
// the vector bytes, then idle cycles until reset finishes.
const resetCycles = 7

// startResetting begins the 2-byte reset vector fetch (spec §4.5).
func startResetting(c *CPU) bool {
	c.ctx.exec.remaining = resetCycles - 2
	c.beginRead(c.cfg.ResetVector, 2)
	return false
}

// endResetting waits out the remaining reset cycles, then clears every
// register but PC to zero (spec §4.5, §8 scenario 1: "after reset, all
// registers except pc are zero") and loads PC from the fetched reset vector.
func endResetting(c *CPU) nextState {
	c.ctx.exec.remaining--
	if c.ctx.exec.remaining > 0 {
		return nil
	}
	c.regs.Set(RegD, 0)
	c.regs.Set(RegX, 0)
	c.regs.Set(RegY, 0)
	c.regs.Set(RegU, 0)
	c.regs.Set(RegS, 0)
	c.regs.Set(RegDP, 0)
	c.regs.Set(RegCC, 0)
	c.regs.Set(RegPC, uint32(c.txn.valueRead()))
	c.bus.Emit(EventResetFinish, c.regs.snapshot())
	return goTo(stateFetch)
}

// startIRQNMI begins servicing a latched NMI or plain IRQ: push the full
// machine-state frame (Entire set), mask IRQ (and, for NMI, FIRQ too), then
// fetch the appropriate vector (spec §4.5).
func startIRQNMI(c *CPU) bool {
	isNMI := c.nmiEntry
	c.nmiEntry = false
	if isNMI {
		c.desc = Descriptor{Mnemonic: "NMI"}
		c.ctx.exec.vector = c.cfg.NMIVector
	} else {
		c.desc = Descriptor{Mnemonic: "IRQ"}
		c.ctx.exec.vector = c.cfg.IRQVector
	}
	c.regs.applyALU(func(r *Registers) {
		r.SetEntire(true)
		r.SetIRQMask(true)
		if isNMI {
			r.SetFIRQMask(true)
		}
	})
	c.ctx.exec.phase = phaseRegPush
	next := c.beginRegSequencePush(RegS, fullStackOrder(RegU))
	return next != nil
}

func endIRQNMI(c *CPU) nextState {
	return endInterruptPhase(c)
}

// startFIRQ begins servicing a latched FIRQ: push only PC and CC (no
// Entire bit), mask both IRQ and FIRQ, then fetch the FIRQ vector (spec
// §4.5's fast, partial-frame interrupt).
func startFIRQ(c *CPU) bool {
	c.desc = Descriptor{Mnemonic: "FIRQ"}
	c.ctx.exec.vector = c.cfg.FIRQVector
	c.regs.applyALU(func(r *Registers) {
		r.SetEntire(false)
		r.SetIRQMask(true)
		r.SetFIRQMask(true)
	})
	c.ctx.exec.phase = phaseRegPush
	next := c.beginRegSequencePush(RegS, []Reg{RegPC, RegCC})
	return next != nil
}

func endFIRQ(c *CPU) nextState {
	return endInterruptPhase(c)
}

// endInterruptPhase is endExecute's counterpart for the interrupt-entry
// states, which only ever exercise the register-push and vector-fetch
// phases (spec §4.5).
func endInterruptPhase(c *CPU) nextState {
	switch c.ctx.exec.phase {
	case phaseRegPush:
		return endRegPush(c)
	case phaseVectorFetch:
		return endVectorFetch(c)
	}
	return finishInstruction(c)
}

func endVectorFetch(c *CPU) nextState {
	c.regs.Set(RegPC, uint32(c.txn.valueRead()))
	return finishInstruction(c)
}

// startCustomFn invokes the host-function escape hatch (spec §4.5, §6).
// No transition in this package enters stateCustomFn: fetch does not
// compare PC against Config.Functions, so this handler never runs. When
// it does run, cpu:function is
// emitted and cpu:function:result is awaited; since dispatch never
// suspends, the listener's reply runs synchronously inside EmitAwait and
// registers are updated before this function returns (spec §4.1).
func startCustomFn(c *CPU) bool {
	call := FunctionCall{PC: uint16(c.regs.Get(RegPC)), Regs: c.regs.snapshot()}
	c.bus.EmitAwait(EventFunction, call, EventFunctionResult, nil, func(p event.Payload) {
		if fr, ok := p.(FunctionResult); ok {
			applySnapshot(c, fr.Regs)
		}
	})
	return true
}

func endCustomFn(c *CPU) nextState {
	return goTo(stateFetch)
}

// applySnapshot writes every register in snap back into the live register
// file, used by the host-function escape hatch to let external code alter
// CPU state (spec §4.5).
func applySnapshot(c *CPU, snap Snapshot) {
	for _, reg := range []Reg{RegD, RegX, RegY, RegU, RegS, RegPC, RegDP, RegCC} {
		c.regs.Set(reg, snap.Get(reg))
	}
}
