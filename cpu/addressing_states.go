package cpu

import "github.com/sixoheight/six09/numeric"

// immediateWidth reports how many operand bytes an immediate-mode
// instruction consumes: the named register's width, or one byte for the
// handful of immediate instructions that don't name a 16-bit register
// (ANDCC/ORCC/CWAI all operate on the 8-bit CC).
func immediateWidth(d Descriptor) int {
	if d.Register == RegNone {
		return 1
	}
	return int(d.Register.Width() / 8)
}

func startFetch(c *CPU) bool {
	if c.haveInterrupt {
		target := c.pendingInterrupt
		c.haveInterrupt = false
		c.enterState(target)
		return false
	}
	c.ctx = stateContext{}
	c.addr = Addressing{}
	c.opcode = 0
	c.bus.Emit(EventInstructionBegin, c.regs.snapshot())
	c.beginRead(uint16(c.regs.Get(RegPC)), 1)
	return false
}

func endFetch(c *CPU) nextState {
	b := byte(c.txn.valueRead())
	pc := uint16(c.regs.Get(RegPC)) + 1 // step past the byte just read
	c.regs.Set(RegPC, uint32(pc))
	if b == 0x10 || b == 0x11 {
		c.opcode = uint16(b) << 8
		c.beginRead(pc, 1)
		return nil
	}
	key := c.opcode | uint16(b)
	d, ok := lookupOpcode(key)
	if !ok {
		c.failf(FailUnknownOpcode, "opcode %#04x", key)
		return nil
	}
	c.opcode = key
	c.desc = d
	c.bus.Emit(EventInstructionFetch, key)
	c.bus.Emit(EventInstructionDecode, d)

	switch d.Mode {
	case Inherent:
		return goTo(stateExecute)
	case Immediate:
		return goTo(stateImmediate)
	case Direct:
		return goTo(stateDirect)
	case Extended:
		return goTo(stateExtended)
	case Indexed:
		return goTo(stateIndexedPostbyte)
	case Relative:
		return goTo(stateRelative)
	}
	c.fail(FailMissingHandler, "addressing mode "+d.Mode.String())
	return nil
}

func startImmediate(c *CPU) bool {
	n := immediateWidth(c.desc)
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+uint16(n)))
	c.beginRead(pc, n)
	return false
}

func endImmediate(c *CPU) nextState {
	c.addr = Addressing{Mode: Immediate}
	c.ctx.exec.operand = uint32(c.txn.valueRead())
	return goTo(stateExecute)
}

func startDirect(c *CPU) bool {
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+1))
	c.beginRead(pc, 1)
	return false
}

func endDirect(c *CPU) nextState {
	low := byte(c.txn.valueRead())
	addr := numeric.Word(byte(c.regs.Get(RegDP)), low)
	c.addr = Addressing{Mode: Direct, Address: addr}
	return goTo(stateExecute)
}

func startExtended(c *CPU) bool {
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+2))
	c.beginRead(pc, 2)
	return false
}

func endExtended(c *CPU) nextState {
	c.addr = Addressing{Mode: Extended, Address: c.txn.valueRead()}
	return goTo(stateExecute)
}

func startRelative(c *CPU) bool {
	n := uint16(1)
	if c.desc.IsLongBranch {
		n = 2
	}
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+n))
	c.beginRead(pc, int(n))
	return false
}

func endRelative(c *CPU) nextState {
	bits := uint(8)
	if c.desc.IsLongBranch {
		bits = 16
	}
	offset := int32(int16(numeric.SignExtend(uint32(c.txn.valueRead()), bits)))
	target := uint16(int32(c.regs.Get(RegPC)) + offset)
	c.addr = Addressing{Mode: Relative, Address: target, Offset: int16(offset), LongRel: bits == 16}
	return goTo(stateExecute)
}

func startIndexedPostbyte(c *CPU) bool {
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+1))
	c.beginRead(pc, 1)
	return false
}

// indexedNeedsExtraBytes reports whether an indexed action requires a
// further memory read before the effective address is known.
func indexedNeedsExtraBytes(a IndexedAction) int {
	switch a {
	case ActionOffset8, ActionOffsetPC8:
		return 1
	case ActionOffset16, ActionOffsetPC16, ActionExtendedIndirect:
		return 2
	}
	return 0
}

func endIndexedPostbyte(c *CPU) nextState {
	b := byte(c.txn.valueRead())
	pb := decodeIndexedPostbyte(b)
	if pb.Action == ActionInvalid {
		c.failf(FailBadPostbyte, "indexed postbyte %#02x", b)
		return nil
	}
	c.ctx.indexed = indexedCtx{postbyte: pb}
	if n := indexedNeedsExtraBytes(pb.Action); n > 0 {
		c.ctx.indexed.needOperand = true
		return goTo(stateIndexedMain)
	}
	addr := c.resolveSimpleIndexed(pb)
	return c.finishIndexedAddress(addr, pb)
}

// resolveSimpleIndexed computes the effective address (and applies any
// register side effect) for the indexed actions that need no further bytes
// (spec §4.3's auto-increment/decrement and accumulator-offset variants).
func (c *CPU) resolveSimpleIndexed(pb Postbyte) uint16 {
	base := uint16(c.regs.Get(pb.Base))
	switch pb.Action {
	case ActionOffset5:
		offset := int32(int8(pb.Raw<<3) >> 3) // sign-extend the 5-bit field
		return uint16(int32(base) + offset)
	case ActionOffset0:
		return base
	case ActionOffsetA:
		return uint16(int32(base) + int32(int8(c.regs.Get(RegA))))
	case ActionOffsetB:
		return uint16(int32(base) + int32(int8(c.regs.Get(RegB))))
	case ActionOffsetD:
		return uint16(int32(base) + int32(int16(c.regs.Get(RegD))))
	case ActionPostInc1:
		c.regs.Set(pb.Base, uint32(base+1))
		return base
	case ActionPostInc2:
		c.regs.Set(pb.Base, uint32(base+2))
		return base
	case ActionPreDec1:
		nb := base - 1
		c.regs.Set(pb.Base, uint32(nb))
		return nb
	case ActionPreDec2:
		nb := base - 2
		c.regs.Set(pb.Base, uint32(nb))
		return nb
	}
	return base
}

// finishIndexedAddress records addr as the resolved effective address,
// detouring through stateIndexedIndirect first when the postbyte asked for
// indirection.
func (c *CPU) finishIndexedAddress(addr uint16, pb Postbyte) nextState {
	if pb.Indirect {
		c.ctx.indexed.base = addr
		return goTo(stateIndexedIndirect)
	}
	c.addr = Addressing{Mode: Indexed, Address: addr, Postbyte: pb}
	return goTo(stateExecute)
}

func startIndexedMain(c *CPU) bool {
	pb := c.ctx.indexed.postbyte
	n := indexedNeedsExtraBytes(pb.Action)
	pc := uint16(c.regs.Get(RegPC))
	c.regs.Set(RegPC, uint32(pc+uint16(n)))
	c.beginRead(pc, n)
	return false
}

func endIndexedMain(c *CPU) nextState {
	pb := c.ctx.indexed.postbyte
	val := c.txn.valueRead()
	var addr uint16
	switch pb.Action {
	case ActionOffset8:
		offset := int32(int16(numeric.SignExtend(uint32(val), 8)))
		addr = uint16(int32(c.regs.Get(pb.Base)) + offset)
	case ActionOffset16:
		addr = uint16(int32(c.regs.Get(pb.Base)) + int32(int16(val)))
	case ActionOffsetPC8:
		offset := int32(int16(numeric.SignExtend(uint32(val), 8)))
		addr = uint16(int32(c.regs.Get(RegPC)) + offset)
	case ActionOffsetPC16:
		addr = uint16(int32(c.regs.Get(RegPC)) + int32(int16(val)))
	case ActionExtendedIndirect:
		addr = val
	}
	return c.finishIndexedAddress(addr, pb)
}

func startIndexedIndirect(c *CPU) bool {
	c.beginRead(c.ctx.indexed.base, 2)
	return false
}

func endIndexedIndirect(c *CPU) nextState {
	c.addr = Addressing{Mode: Indexed, Address: c.txn.valueRead(), Postbyte: c.ctx.indexed.postbyte}
	return goTo(stateExecute)
}
