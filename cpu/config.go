package cpu

import "fmt"

// Config holds the construction-time configuration enumerated in spec §6.
// Unlike the register/state machinery, this is plain data validated once in
// New -- the same "plain struct, validate in New" shape the teacher uses for
// its Cpu{Bus: ...} construction; no corpus example uses an env-var or file
// based configuration framework for a CPU core, so none is introduced here.
type Config struct {
	ResetVector uint16
	NMIVector   uint16
	SWIVector   uint16
	IRQVector   uint16
	FIRQVector  uint16
	SWI2Vector  uint16
	SWI3Vector  uint16

	// Functions lists PC values for the host-function escape hatch (spec
	// §4.5 customfn, §6). The entries are range-checked by validate; the
	// fetch state does not compare PC against them, so no entry triggers
	// cpu:function.
	Functions []uint16

	// ImmediateUpdateRegisters is the subset of registers for which
	// cpu:register_update fires on every write (spec §6). Defaults to
	// {PC, S, U} when nil, per spec §6's documented default.
	ImmediateUpdateRegisters []Reg
}

// DefaultConfig returns the MC6809's documented vector addresses (spec §6)
// with no configured host functions, and the documented default immediate-
// update register subset.
func DefaultConfig() Config {
	return Config{
		ResetVector: 0xFFFE,
		NMIVector:   0xFFFC,
		SWIVector:   0xFFFA,
		IRQVector:   0xFFF8,
		FIRQVector:  0xFFF6,
		SWI2Vector:  0xFFF4,
		SWI3Vector:  0xFFF2,
		ImmediateUpdateRegisters: []Reg{RegPC, RegS, RegU},
	}
}

// validate rejects configuration faults at construction (spec §7): every
// vector and function address must be a plausible 16-bit pointer.
func (c Config) validate() error {
	vectors := map[string]uint16{
		"resetVector": c.ResetVector,
		"nmiVector":   c.NMIVector,
		"swiVector":   c.SWIVector,
		"irqVector":   c.IRQVector,
		"firqVector":  c.FIRQVector,
		"swi2Vector":  c.SWI2Vector,
		"swi3Vector":  c.SWI3Vector,
	}
	for name, v := range vectors {
		if v > 0xFFFF {
			return fmt.Errorf("cpu: config fault: %s out of range: %#x", name, v)
		}
	}
	for i, fn := range c.Functions {
		if fn > 0xFFFF {
			return fmt.Errorf("cpu: config fault: functions[%d] out of range: %#x", i, fn)
		}
	}
	for i, reg := range c.ImmediateUpdateRegisters {
		switch reg {
		case RegD, RegX, RegY, RegU, RegS, RegPC, RegCC, RegDP:
		default:
			return fmt.Errorf("cpu: config fault: immediateUpdateRegisters[%d] invalid register %v", i, reg)
		}
	}
	return nil
}

func (c Config) announceSet() map[Reg]bool {
	regs := c.ImmediateUpdateRegisters
	if regs == nil {
		regs = DefaultConfig().ImmediateUpdateRegisters
	}
	m := make(map[Reg]bool, len(regs))
	for _, r := range regs {
		m[r] = true
	}
	return m
}

func (c Config) isFunction(pc uint16) bool {
	for _, fn := range c.Functions {
		if fn == pc {
			return true
		}
	}
	return false
}
