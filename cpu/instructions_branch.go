package cpu

// branchCondition evaluates a short/long branch mnemonic's condition
// against the current condition codes (spec §4.6). The "L" prefix used by
// long branches carries no semantic difference once the offset has already
// been resolved by stateRelative, so both forms share this table.
func branchCondition(mnemonic string, r *Registers) bool {
	name := mnemonic
	if len(name) > 1 && name[0] == 'L' && name != "LSR" {
		name = name[1:]
	}
	switch name {
	case "BRA":
		return true
	case "BRN":
		return false
	case "BHI":
		return !r.Carry() && !r.Zero()
	case "BLS":
		return r.Carry() || r.Zero()
	case "BCC", "BHS":
		return !r.Carry()
	case "BCS", "BLO":
		return r.Carry()
	case "BNE":
		return !r.Zero()
	case "BEQ":
		return r.Zero()
	case "BVC":
		return !r.Overflow()
	case "BVS":
		return r.Overflow()
	case "BPL":
		return !r.Negative()
	case "BMI":
		return r.Negative()
	case "BGE":
		return r.Negative() == r.Overflow()
	case "BLT":
		return r.Negative() != r.Overflow()
	case "BGT":
		return !r.Zero() && r.Negative() == r.Overflow()
	case "BLE":
		return r.Zero() || r.Negative() != r.Overflow()
	}
	return false
}

// runBranch applies a (possibly long) conditional branch once its target
// has been resolved by stateRelative: PC is already past the offset bytes,
// so taking the branch is just overwriting PC with the resolved target.
func runBranch(c *CPU) {
	taken := false
	c.regs.applyALU(func(r *Registers) { taken = branchCondition(c.desc.Mnemonic, r) })
	if taken {
		c.regs.Set(RegPC, uint32(c.addr.Address))
	}
}
