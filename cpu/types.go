// Package cpu implements the Motorola MC6809 8-bit microprocessor: a
// cycle-driven instruction-execution engine built as a hierarchical state
// machine, reproducing the chip's per-cycle bus activity, addressing-mode
// decoding, interrupt stacking, and condition-code arithmetic.
//
// The teacher for this package is hejops-gone/cpu, a MOS 6502 core of the
// same shape (Opcode table + per-instruction handler + a fetch/decode/tick
// driver). The MC6809 carries more registers, more addressing modes, and a
// cycle-level (rather than instruction-level) driver, so the shapes here
// are generalized well past the 6502 original, but the naming and map-table
// idiom -- a Descriptor struct naming its Mnemonic, Mode and Cycles,
// assembled into a package-level table -- is kept throughout.
package cpu

// Reg identifies one of the eight architectural registers, plus the two
// virtual 8-bit views A and B over D (spec §3).
type Reg int

const (
	RegNone Reg = iota
	RegD
	RegA
	RegB
	RegX
	RegY
	RegU
	RegS
	RegPC
	RegDP
	RegCC
)

func (r Reg) String() string {
	switch r {
	case RegD:
		return "D"
	case RegA:
		return "A"
	case RegB:
		return "B"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	case RegU:
		return "U"
	case RegS:
		return "S"
	case RegPC:
		return "PC"
	case RegDP:
		return "DP"
	case RegCC:
		return "CC"
	}
	return "?"
}

// Width reports the register's bit width: 8 for the byte registers (A, B,
// DP, CC), 16 for everything else.
func (r Reg) Width() uint {
	switch r {
	case RegA, RegB, RegDP, RegCC:
		return 8
	default:
		return 16
	}
}

// AddressingMode is the shape of an instruction's operand addressing, the
// tagged-variant discriminant described in spec §3.
type AddressingMode int

const (
	Inherent AddressingMode = iota
	Immediate
	Direct
	Extended
	Indexed
	Relative
)

func (m AddressingMode) String() string {
	switch m {
	case Inherent:
		return "inherent"
	case Immediate:
		return "immediate"
	case Direct:
		return "direct"
	case Extended:
		return "extended"
	case Indexed:
		return "indexed"
	case Relative:
		return "relative"
	}
	return "?"
}

// IndexedAction is the operation encoded by an indexed postbyte (spec §4.3).
type IndexedAction int

const (
	ActionInvalid IndexedAction = iota
	ActionOffset5
	ActionOffset0
	ActionOffsetA
	ActionOffsetB
	ActionOffsetD
	ActionOffset8
	ActionOffset16
	ActionPostInc1
	ActionPostInc2
	ActionPreDec1
	ActionPreDec2
	ActionOffsetPC8
	ActionOffsetPC16
	ActionExtendedIndirect
)

// Postbyte is a parsed indexed addressing postbyte (spec §3).
type Postbyte struct {
	Action   IndexedAction
	Base     Reg // X, Y, U, S, or PC for the OffsetPC variants
	Indirect bool
	Raw      byte // the low 5 bits (sign+offset) for Offset5; zero otherwise
}

// Addressing is the tagged-variant operand descriptor computed by the
// addressing states (spec §3). Address is populated for every mode except
// Immediate (whose operand is read directly from PC at execute time) and
// Inherent (which has no operand).
type Addressing struct {
	Mode     AddressingMode
	Address  uint16   // direct/extended/indexed effective address
	Postbyte Postbyte // populated when Mode == Indexed
	Offset   int16    // signed branch offset, populated when Mode == Relative
	LongRel  bool      // relative addressing used a 16-bit offset
}
