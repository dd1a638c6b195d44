package cpu

// beginPushWord decrements stackReg by 2 and begins writing value with the
// low byte at the new (lower) address and the high byte above it, the
// MC6809's stacking convention (spec §4.5) -- the reverse byte order from
// transaction.valueRead's big-endian composition, so it is built directly
// rather than reused from the generic helper.
func (c *CPU) beginPushWord(stackReg Reg, value uint16) {
	sp := uint16(c.regs.Get(stackReg))
	newSp := sp - 2
	c.regs.Set(stackReg, uint32(newSp))
	c.txn = transaction{
		active: true, addr: newSp, bytes: 2, dir: dirWrite,
		data: [2]byte{byte(value), byte(value >> 8)},
	}
}

// beginPullWord begins reading the word at the top of stackReg's stack;
// the caller is responsible for advancing stackReg by 2 once the read
// completes (composing low=data[0], high=data[1]).
func (c *CPU) beginPullWord(stackReg Reg) {
	c.beginRead(uint16(c.regs.Get(stackReg)), 2)
}

// endPostbyte runs once the byte following a push/pull/exg/tfr opcode has
// been read (spec §4.3).
func endPostbyte(c *CPU) nextState {
	b := byte(c.txn.valueRead())
	switch c.desc.Mnemonic {
	case "PSHS":
		return c.beginRegSequencePush(RegS, pushOrder(b, RegU))
	case "PSHU":
		return c.beginRegSequencePush(RegU, pushOrder(b, RegS))
	case "PULS":
		return c.beginRegSequencePull(RegS, pullOrder(b, RegU))
	case "PULU":
		return c.beginRegSequencePull(RegU, pullOrder(b, RegS))
	case "EXG":
		src, dst := decodeExchangePostbyte(b)
		if src == RegNone || dst == RegNone {
			c.failf(FailBadPostbyte, "exg postbyte %#02x", b)
			return nil
		}
		a, d := c.regs.Get(src), c.regs.Get(dst)
		c.regs.Set(src, d)
		c.regs.Set(dst, a)
		return finishInstruction(c)
	case "TFR":
		src, dst := decodeExchangePostbyte(b)
		if src == RegNone || dst == RegNone {
			c.failf(FailBadPostbyte, "tfr postbyte %#02x", b)
			return nil
		}
		c.regs.Set(dst, c.regs.Get(src))
		return finishInstruction(c)
	}
	return finishInstruction(c)
}

func (c *CPU) beginRegSequencePush(stackReg Reg, regs []Reg) nextState {
	if len(regs) == 0 {
		return finishInstruction(c)
	}
	c.ctx.exec.regOrder = regs
	c.ctx.exec.regIndex = 0
	c.ctx.exec.srcReg = stackReg
	c.ctx.exec.phase = phaseRegPush
	c.pushOneRegister()
	return nil
}

func (c *CPU) pushOneRegister() {
	reg := c.ctx.exec.regOrder[c.ctx.exec.regIndex]
	stackReg := c.ctx.exec.srcReg
	if reg.Width() == 16 {
		c.beginPushWord(stackReg, uint16(c.regs.Get(reg)))
		return
	}
	sp := uint16(c.regs.Get(stackReg))
	newSp := sp - 1
	c.regs.Set(stackReg, uint32(newSp))
	c.beginWrite(newSp, 1, c.regs.Get(reg))
}

func endRegPush(c *CPU) nextState {
	c.ctx.exec.regIndex++
	if c.ctx.exec.regIndex >= len(c.ctx.exec.regOrder) {
		if c.ctx.exec.vector != 0 {
			return c.beginVectorFetch()
		}
		return finishInstruction(c)
	}
	c.pushOneRegister()
	return nil
}

func (c *CPU) beginRegSequencePull(stackReg Reg, regs []Reg) nextState {
	if len(regs) == 0 {
		return finishInstruction(c)
	}
	c.ctx.exec.regOrder = regs
	c.ctx.exec.regIndex = 0
	c.ctx.exec.srcReg = stackReg
	c.ctx.exec.phase = phaseRegPull
	c.pullOneRegister()
	return nil
}

func (c *CPU) pullOneRegister() {
	reg := c.ctx.exec.regOrder[c.ctx.exec.regIndex]
	width := 1
	if reg.Width() == 16 {
		width = 2
	}
	c.beginRead(uint16(c.regs.Get(c.ctx.exec.srcReg)), width)
}

func endRegPull(c *CPU) nextState {
	reg := c.ctx.exec.regOrder[c.ctx.exec.regIndex]
	stackReg := c.ctx.exec.srcReg
	sp := uint16(c.regs.Get(stackReg))
	if reg.Width() == 16 {
		lo, hi := c.txn.data[0], c.txn.data[1]
		c.regs.Set(reg, uint32(uint16(hi)<<8|uint16(lo)))
		c.regs.Set(stackReg, uint32(sp+2))
	} else {
		c.regs.Set(reg, uint32(c.txn.data[0]))
		c.regs.Set(stackReg, uint32(sp+1))
	}
	c.ctx.exec.regIndex++
	if c.ctx.exec.regIndex >= len(c.ctx.exec.regOrder) {
		if c.desc.Mnemonic == "RTI" && c.ctx.exec.taken {
			c.ctx.exec.taken = false
			if c.regs.Get(RegCC)&ccEntire != 0 {
				c.ctx.exec.regOrder = []Reg{RegA, RegB, RegDP, RegX, RegY, RegU, RegPC}
			} else {
				c.ctx.exec.regOrder = []Reg{RegPC}
			}
			c.ctx.exec.regIndex = 0
			c.pullOneRegister()
			return nil
		}
		return finishInstruction(c)
	}
	c.pullOneRegister()
	return nil
}

// beginVectorFetch reads the two-byte vector latched in ctx.exec.vector and
// arranges for the resulting address to land in PC (spec §4.5).
func (c *CPU) beginVectorFetch() nextState {
	c.ctx.exec.phase = phaseVectorFetch
	c.beginRead(c.ctx.exec.vector, 2)
	return nil
}

// fullStackOrder is the push order for a complete machine-state frame: pc,
// u/s, y, x, dp, b, a, cc (spec §4.5) -- every bit of the postbyte mask set.
func fullStackOrder(other Reg) []Reg {
	return pushOrder(0xFF, other)
}

// startSWI begins a software interrupt: the full register frame is pushed
// with CC's Entire bit set first, then the named vector is fetched into PC.
func startSWI(c *CPU, vector uint16) bool {
	c.regs.applyALU(func(r *Registers) { r.SetEntire(true) })
	c.ctx.exec.vector = vector
	next := c.beginRegSequencePush(RegS, fullStackOrder(RegU))
	if next != nil {
		c.state = *next
	}
	return false
}

// startCWAI masks CC with its immediate operand, sets Entire, and stacks the
// full machine-state frame exactly as SWI/IRQ entry does (spec §4.6); unlike
// SWI there is no vector to fetch afterward, so endRegPush's "vector==0"
// branch runs finishInstruction directly. Actually halting the pipeline
// until an interrupt arrives has no host-driven equivalent here, the same
// simplification SYNC makes: the frame is saved, but the next PerformCycle
// resumes at the following instruction rather than blocking.
func startCWAI(c *CPU) bool {
	mask := c.ctx.exec.operand
	c.regs.applyALU(func(r *Registers) {
		r.CC &= uint8(mask)
		r.SetEntire(true)
	})
	c.ctx.exec.vector = 0
	c.beginRegSequencePush(RegS, fullStackOrder(RegU))
	return false
}

// startRTI begins a return from interrupt: pull CC first, and if its
// Entire bit is set, pull the rest of the full frame; otherwise only PC
// follows (the FIRQ partial-frame case, spec §4.5).
func startRTI(c *CPU) bool {
	c.ctx.exec.phase = phaseRegPull
	c.ctx.exec.regOrder = []Reg{RegCC}
	c.ctx.exec.regIndex = 0
	c.ctx.exec.srcReg = RegS
	c.ctx.exec.taken = true // marks "RTI in progress" for endRegPull's follow-up
	c.pullOneRegister()
	return false
}
