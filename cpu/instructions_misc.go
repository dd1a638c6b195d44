package cpu

// modifyAccMnemonics maps an accumulator-inherent modify mnemonic (e.g.
// "NEGA") to the base transform shared with its memory-operand sibling
// (spec §4.6: one function of byte-in/byte-out, two addressing shapes).
var modifyAccMnemonics = map[string]string{
	"NEGA": "NEG", "NEGB": "NEG",
	"COMA": "COM", "COMB": "COM",
	"LSRA": "LSR", "LSRB": "LSR",
	"RORA": "ROR", "RORB": "ROR",
	"ASRA": "ASR", "ASRB": "ASR",
	"ASLA": "ASL", "ASLB": "ASL",
	"ROLA": "ROL", "ROLB": "ROL",
	"DECA": "DEC", "DECB": "DEC",
	"INCA": "INC", "INCB": "INC",
	"TSTA": "TST", "TSTB": "TST",
	"CLRA": "CLR", "CLRB": "CLR",
}

// runInherent performs every instruction that needs no further bus
// activity once its addressing has resolved: register-only ALU, LEA,
// branches, and the small fixed-function group (spec §4.6).
func runInherent(c *CPU) {
	d := c.desc
	if d.Mode == Relative {
		runBranch(c)
		return
	}
	if base, ok := modifyAccMnemonics[d.Mnemonic]; ok {
		runInherentModify(c, base, d.Register)
		return
	}
	switch d.Mnemonic {
	case "NOP":
	case "SYNC":
		// halting the pipeline until an interrupt arrives has no host-driven
		// equivalent here; treated as a single-cycle continuation.
	case "DAA":
		runDAA(c)
	case "ANDCC":
		c.regs.Set(RegCC, c.regs.Get(RegCC)&c.ctx.exec.operand)
	case "ORCC":
		c.regs.Set(RegCC, c.regs.Get(RegCC)|c.ctx.exec.operand)
	case "SEX":
		runSEX(c)
	case "ABX":
		c.regs.Set(RegX, uint32(uint16(c.regs.Get(RegX))+uint16(uint8(c.regs.Get(RegB)))))
	case "MUL":
		runMUL(c)
	case "LEAX", "LEAY":
		c.regs.applyALU(func(r *Registers) { r.SetZero(c.addr.Address == 0) })
		c.regs.Set(d.Register, uint32(c.addr.Address))
	case "LEAS", "LEAU":
		c.regs.Set(d.Register, uint32(c.addr.Address))
	case "JMP":
		c.regs.Set(RegPC, uint32(c.addr.Address))
	}
}

// runInherentModify performs a modify instruction whose operand is an
// accumulator rather than memory (spec §4.6).
func runInherentModify(c *CPU, base string, reg Reg) {
	v := uint8(c.regs.Get(reg))
	result := applyModify(c, base, v)
	if base != "TST" {
		c.regs.Set(reg, uint32(result))
	}
}

// runDAA adjusts A after a BCD addition, using the half-carry and carry
// flags left by the preceding ADDA/ADCA (spec §4.6).
func runDAA(c *CPU) {
	c.regs.applyALU(func(r *Registers) {
		a := r.A()
		correction := uint8(0)
		carry := r.Carry()
		lowNibble := a & 0x0F
		highNibble := a >> 4
		if r.HalfCarry() || lowNibble > 9 {
			correction |= 0x06
		}
		if carry || highNibble > 9 || (highNibble >= 9 && lowNibble > 9) {
			correction |= 0x60
			carry = true
		}
		sum := uint16(a) + uint16(correction)
		result := uint8(sum)
		r.SetCarry(carry || sum > 0xFF)
		r.SetNZ(uint32(result), 8)
		r.SetA(result)
	})
}

// runSEX sign-extends B into D (spec §4.6).
func runSEX(c *CPU) {
	c.regs.applyALU(func(r *Registers) {
		b := r.B()
		d := uint16(int16(int8(b)))
		r.D = d
		r.SetNZ(uint32(d), 16)
	})
}

// runMUL multiplies A by B into D, unsigned, setting Z from the result and
// C from D's bit 7 (spec §4.6's documented, if unusual, carry rule).
func runMUL(c *CPU) {
	c.regs.applyALU(func(r *Registers) {
		product := uint16(r.A()) * uint16(r.B())
		r.D = product
		r.SetZero(product == 0)
		r.SetCarry(product&0x80 != 0)
	})
}
