package cpu

import "github.com/sixoheight/six09/numeric"

// decodeIndexedPostbyte parses an 8-bit indexed addressing postbyte into a
// Postbyte (spec §4.3).
func decodeIndexedPostbyte(b byte) Postbyte {
	if !numeric.BitIndex(b, 7) {
		// bit 7 = 0: 5-bit signed offset straight off the postbyte
		return Postbyte{
			Action: ActionOffset5,
			Base:   indexedBaseReg(b),
			Raw:    b & 0x1F,
		}
	}

	base := indexedBaseReg(b)
	indirect := numeric.BitIndex(b, 4)
	switch b & 0x0F {
	case 0x00:
		return Postbyte{Action: ActionPostInc1, Base: base, Indirect: indirect}
	case 0x01:
		return Postbyte{Action: ActionPostInc2, Base: base, Indirect: indirect}
	case 0x02:
		return Postbyte{Action: ActionPreDec1, Base: base, Indirect: indirect}
	case 0x03:
		return Postbyte{Action: ActionPreDec2, Base: base, Indirect: indirect}
	case 0x04:
		return Postbyte{Action: ActionOffset0, Base: base, Indirect: indirect}
	case 0x05:
		return Postbyte{Action: ActionOffsetB, Base: base, Indirect: indirect}
	case 0x06:
		return Postbyte{Action: ActionOffsetA, Base: base, Indirect: indirect}
	case 0x08:
		return Postbyte{Action: ActionOffset8, Base: base, Indirect: indirect}
	case 0x09:
		return Postbyte{Action: ActionOffset16, Base: base, Indirect: indirect}
	case 0x0B:
		return Postbyte{Action: ActionOffsetD, Base: base, Indirect: indirect}
	case 0x0C:
		return Postbyte{Action: ActionOffsetPC8, Base: RegPC, Indirect: indirect}
	case 0x0D:
		return Postbyte{Action: ActionOffsetPC16, Base: RegPC, Indirect: indirect}
	case 0x0F:
		return Postbyte{Action: ActionExtendedIndirect, Base: base, Indirect: true}
	default:
		return Postbyte{Action: ActionInvalid}
	}
}

// indexedBaseReg decodes bits 6..5 of an indexed postbyte into X/Y/U/S
// (spec §4.3).
func indexedBaseReg(b byte) Reg {
	switch (b >> 5) & 0x03 {
	case 0:
		return RegX
	case 1:
		return RegY
	case 2:
		return RegU
	default:
		return RegS
	}
}

// encodeIndexedPostbyte re-encodes a parsed Postbyte back into its raw byte,
// the inverse of decodeIndexedPostbyte, used by the round-trip property
// test in spec §8.
func encodeIndexedPostbyte(p Postbyte) byte {
	if p.Action == ActionOffset5 {
		return baseBits(p.Base) | (p.Raw & 0x1F)
	}

	var b byte = 0x80
	if p.Indirect {
		b |= 0x10
	}
	if p.Base != RegPC {
		b |= baseBits(p.Base)
	}
	switch p.Action {
	case ActionPostInc1:
		b |= 0x00
	case ActionPostInc2:
		b |= 0x01
	case ActionPreDec1:
		b |= 0x02
	case ActionPreDec2:
		b |= 0x03
	case ActionOffset0:
		b |= 0x04
	case ActionOffsetB:
		b |= 0x05
	case ActionOffsetA:
		b |= 0x06
	case ActionOffset8:
		b |= 0x08
	case ActionOffset16:
		b |= 0x09
	case ActionOffsetD:
		b |= 0x0B
	case ActionOffsetPC8:
		b |= 0x0C
	case ActionOffsetPC16:
		b |= 0x0D
	case ActionExtendedIndirect:
		b |= 0x0F
	}
	return b
}

func baseBits(r Reg) byte {
	switch r {
	case RegX:
		return 0x00
	case RegY:
		return 0x20
	case RegU:
		return 0x40
	case RegS:
		return 0x60
	}
	return 0x00
}

// pushPullOrder is the fixed bit-to-register order used by PSHS/PULS/PSHU/
// PULU postbytes (spec §4.3): bit0=cc .. bit7=pc. other is the register
// that bit 6 names: U when operating on S's stack, S when operating on U's.
func pushPullOrder(other Reg) [8]Reg {
	return [8]Reg{RegCC, RegA, RegB, RegDP, RegX, RegY, other, RegPC}
}

// pushOrder returns the registers selected by postbyte b, in the order they
// are physically written to memory: highest bit first (pc down to cc), so
// that cc ends up adjacent to the stack pointer, as required to make RTI's
// "pull cc first" scan work.
func pushOrder(b byte, other Reg) []Reg {
	order := pushPullOrder(other)
	var regs []Reg
	for i := 7; i >= 0; i-- {
		if numeric.BitIndex(b, uint(i)) {
			regs = append(regs, order[i])
		}
	}
	return regs
}

// pullOrder returns the registers selected by postbyte b in pull order:
// lowest bit first (cc up to pc), the reverse of pushOrder.
func pullOrder(b byte, other Reg) []Reg {
	order := pushPullOrder(other)
	var regs []Reg
	for i := 0; i < 8; i++ {
		if numeric.BitIndex(b, uint(i)) {
			regs = append(regs, order[i])
		}
	}
	return regs
}

// exchangeRegByCode maps a 4-bit EXG/TFR nibble to a register, per the
// datasheet's fixed code table (spec §4.3). Codes 8-F name the 8-bit
// registers; 0-5 name the 16-bit registers; 6-7 are reserved/invalid.
func exchangeRegByCode(code byte) Reg {
	switch code & 0x0F {
	case 0x0:
		return RegD
	case 0x1:
		return RegX
	case 0x2:
		return RegY
	case 0x3:
		return RegU
	case 0x4:
		return RegS
	case 0x5:
		return RegPC
	case 0x8:
		return RegA
	case 0x9:
		return RegB
	case 0xA:
		return RegCC
	case 0xB:
		return RegDP
	}
	return RegNone
}

// decodeExchangePostbyte splits an EXG/TFR postbyte into (src, dst) (spec
// §4.3): high nibble selects the source, low nibble the destination.
func decodeExchangePostbyte(b byte) (src, dst Reg) {
	return exchangeRegByCode(b >> 4), exchangeRegByCode(b & 0x0F)
}
