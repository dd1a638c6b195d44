package cpu

// Execute-state phases (spec §4.5): execContext.phase records which kind of
// in-flight transaction endExecute is waiting on, since a single
// instruction may need a memory read, a write-back, or a sequence of
// register pushes/pulls before it can commit.
const (
	phasePostbyte     = iota + 1 // waiting on a push/pull/exg postbyte byte
	phaseRegPush                 // waiting on one register's push
	phaseRegPull                 // waiting on one register's pull (read half)
	phaseOperandRead             // waiting on a load/ALU operand read
	phaseWriteBack               // waiting on a store/modify write-back
	phaseJSRPush                 // waiting on JSR/BSR's return-address push
	phaseRTSPull                 // waiting on RTS's return-address pull
	phaseVectorFetch             // waiting on an interrupt/SWI vector read
)

// startExecute begins whatever bus activity the current instruction needs,
// or (for instructions with no memory interaction at all) performs the
// entire instruction synchronously and reports "immediate" so endExecute
// runs in the same cycle.
func startExecute(c *CPU) bool {
	d := c.desc
	if d.Postbyte {
		c.ctx.exec.phase = phasePostbyte
		pc := uint16(c.regs.Get(RegPC))
		c.regs.Set(RegPC, uint32(pc+1))
		c.beginRead(pc, 1)
		return false
	}
	if isMemoryModify(d.Mnemonic) && c.addr.Mode != Inherent {
		c.ctx.exec.phase = phaseOperandRead
		c.beginOperandRead()
		return false
	}
	if isStore(d.Mnemonic) {
		c.ctx.exec.phase = phaseWriteBack
		c.beginStoreWrite()
		return false
	}
	if isMemoryRead(d.Mnemonic) {
		c.ctx.exec.phase = phaseOperandRead
		c.beginOperandRead()
		return c.addr.Mode == Immediate // operand already read: apply it now
	}
	switch d.Mnemonic {
	case "JSR", "BSR", "LBSR":
		c.ctx.exec.phase = phaseJSRPush
		target := c.branchTarget()
		c.beginPushWord(RegS, uint16(c.regs.Get(RegPC)))
		c.ctx.exec.operand = uint32(target)
		return false
	case "RTS":
		c.ctx.exec.phase = phaseRTSPull
		c.beginPullWord(RegS)
		return false
	case "RTI":
		return startRTI(c)
	case "CWAI":
		return startCWAI(c)
	case "SWI":
		return startSWI(c, c.cfg.SWIVector)
	case "SWI2":
		return startSWI(c, c.cfg.SWI2Vector)
	case "SWI3":
		return startSWI(c, c.cfg.SWI3Vector)
	}
	runInherent(c)
	return true
}

func (c *CPU) beginOperandRead() {
	width := 1
	if c.desc.Register != RegNone {
		width = int(c.desc.Register.Width() / 8)
	}
	if c.addr.Mode == Immediate {
		return // operand already sitting in ctx.exec.operand
	}
	c.beginRead(c.addr.Address, width)
}

func (c *CPU) beginStoreWrite() {
	width := int(c.desc.Register.Width() / 8)
	c.beginWrite(c.addr.Address, width, c.regs.Get(c.desc.Register))
}

// branchTarget reports the PC to use after a taken branch/subroutine call:
// the relative target resolved by stateRelative.
func (c *CPU) branchTarget() uint16 { return c.addr.Address }

func endExecute(c *CPU) nextState {
	switch c.ctx.exec.phase {
	case phasePostbyte:
		return endPostbyte(c)
	case phaseRegPush:
		return endRegPush(c)
	case phaseRegPull:
		return endRegPull(c)
	case phaseOperandRead:
		return endOperandRead(c)
	case phaseWriteBack:
		return finishInstruction(c)
	case phaseJSRPush:
		c.regs.Set(RegPC, uint32(c.ctx.exec.operand))
		return finishInstruction(c)
	case phaseRTSPull:
		lo, hi := c.txn.data[0], c.txn.data[1]
		target := uint16(hi)<<8 | uint16(lo)
		c.regs.Set(RegPC, uint32(target))
		c.regs.Set(RegS, uint32(c.regs.Get(RegS)+2))
		return finishInstruction(c)
	case phaseVectorFetch:
		return endVectorFetch(c)
	}
	return finishInstruction(c)
}

// finishInstruction commits the last bookkeeping common to every
// instruction and returns to fetch (spec §4.5).
func finishInstruction(c *CPU) nextState {
	c.bus.Emit(EventInstructionFinish, c.desc.Mnemonic)
	c.lastMnemonic = c.desc.Mnemonic
	c.bus.Emit(EventRegistersUpdate, c.Snapshot())
	return goTo(stateFetch)
}

func endOperandRead(c *CPU) nextState {
	var value uint32
	if c.addr.Mode == Immediate {
		value = c.ctx.exec.operand
	} else {
		value = uint32(c.txn.valueRead())
	}
	if isMemoryModify(c.desc.Mnemonic) {
		result := applyModify(c, c.desc.Mnemonic, uint8(value))
		c.ctx.exec.operand = uint32(result)
		if c.desc.Mnemonic == "TST" {
			return finishInstruction(c)
		}
		c.ctx.exec.phase = phaseWriteBack
		c.beginWrite(c.addr.Address, 1, uint32(result))
		return nil
	}
	applyReadOp(c, c.desc, value)
	return finishInstruction(c)
}
