package cpu

// isMemoryModify reports whether mnemonic is a read-modify-write
// instruction (spec §4.6): these always read their operand, transform it,
// and (except TST) write the result back to the same address.
func isMemoryModify(mnemonic string) bool {
	switch mnemonic {
	case "NEG", "COM", "LSR", "ROR", "ASR", "ASL", "ROL", "DEC", "INC", "TST", "CLR":
		return true
	}
	return false
}

func isStore(mnemonic string) bool {
	switch mnemonic {
	case "STA", "STB", "STD", "STX", "STY", "STU", "STS":
		return true
	}
	return false
}

func isMemoryRead(mnemonic string) bool {
	switch mnemonic {
	case "LDA", "LDB", "LDD", "LDX", "LDY", "LDU", "LDS",
		"SUBA", "SUBB", "SUBD", "SBCA", "SBCB",
		"CMPA", "CMPB", "CMPD", "CMPX", "CMPY", "CMPU", "CMPS",
		"ANDA", "ANDB", "BITA", "BITB",
		"EORA", "EORB", "ADCA", "ADCB",
		"ORA", "ORB", "ADDA", "ADDB", "ADDD":
		return true
	}
	return false
}

// applyModify runs a read-modify-write instruction's transform on an
// already-read operand byte, honoring the accumulator-inherent forms
// (NEGA/COMA/... operate on A or B directly rather than memory) via the
// same function: the caller supplies the byte either way.
func applyModify(c *CPU, mnemonic string, v uint8) uint8 {
	var result uint8
	c.regs.applyALU(func(r *Registers) {
		switch mnemonic {
		case "NEG":
			result = r.neg8(v)
		case "COM":
			result = r.com8(v)
		case "LSR":
			result = r.lsr8(v)
		case "ROR":
			result = r.ror8(v)
		case "ASR":
			result = r.asr8(v)
		case "ASL":
			result = r.asl8(v)
		case "ROL":
			result = r.rol8(v)
		case "DEC":
			result = r.dec8(v)
		case "INC":
			result = r.inc8(v)
		case "TST":
			r.tst8(v)
			result = v
		case "CLR":
			result = r.clr8()
		}
	})
	return result
}

// applyReadOp performs a load, compare, or accumulator ALU instruction once
// its operand (from memory or immediate) is known.
func applyReadOp(c *CPU, d Descriptor, value uint32) {
	reg := d.Register
	switch d.Mnemonic {
	case "LDA", "LDB":
		c.regs.applyALU(func(r *Registers) {
			r.SetNZ(value, 8)
			r.SetOverflow(false)
		})
		c.regs.Set(reg, value)
	case "LDD", "LDX", "LDY", "LDU", "LDS":
		c.regs.applyALU(func(r *Registers) {
			r.SetNZ(value, 16)
			r.SetOverflow(false)
		})
		c.regs.Set(reg, value)
	case "SUBA", "SUBB":
		c.regs.applyALU(func(r *Registers) {
			res := r.sub8(uint8(c.regs.Get(reg)), uint8(value), false)
			r.Set(reg, uint32(res))
		})
	case "SBCA", "SBCB":
		c.regs.applyALU(func(r *Registers) {
			res := r.sub8(uint8(c.regs.Get(reg)), uint8(value), r.Carry())
			r.Set(reg, uint32(res))
		})
	case "SUBD":
		c.regs.applyALU(func(r *Registers) {
			res := r.sub16(uint16(c.regs.Get(RegD)), uint16(value))
			r.Set(RegD, uint32(res))
		})
	case "ADDD":
		c.regs.applyALU(func(r *Registers) {
			res := r.add16(uint16(c.regs.Get(RegD)), uint16(value))
			r.Set(RegD, uint32(res))
		})
	case "CMPA", "CMPB":
		c.regs.applyALU(func(r *Registers) { r.sub8(uint8(c.regs.Get(reg)), uint8(value), false) })
	case "CMPD", "CMPX", "CMPY", "CMPU", "CMPS":
		c.regs.applyALU(func(r *Registers) { r.sub16(uint16(c.regs.Get(reg)), uint16(value)) })
	case "ANDA", "ANDB":
		c.regs.applyALU(func(r *Registers) {
			res := r.and8(uint8(c.regs.Get(reg)), uint8(value))
			r.Set(reg, uint32(res))
		})
	case "BITA", "BITB":
		c.regs.applyALU(func(r *Registers) { r.and8(uint8(c.regs.Get(reg)), uint8(value)) })
	case "EORA", "EORB":
		c.regs.applyALU(func(r *Registers) {
			res := r.eor8(uint8(c.regs.Get(reg)), uint8(value))
			r.Set(reg, uint32(res))
		})
	case "ADCA", "ADCB":
		c.regs.applyALU(func(r *Registers) {
			res := r.add8(uint8(c.regs.Get(reg)), uint8(value), r.Carry())
			r.Set(reg, uint32(res))
		})
	case "ORA", "ORB":
		c.regs.applyALU(func(r *Registers) {
			res := r.or8(uint8(c.regs.Get(reg)), uint8(value))
			r.Set(reg, uint32(res))
		})
	case "ADDA", "ADDB":
		c.regs.applyALU(func(r *Registers) {
			res := r.add8(uint8(c.regs.Get(reg)), uint8(value), false)
			r.Set(reg, uint32(res))
		})
	}
}
