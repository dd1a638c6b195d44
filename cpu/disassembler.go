package cpu

import "github.com/sixoheight/six09/numeric"

// Instruction is one disassembled instruction: enough to format a listing
// line or re-encode the same bytes (spec §4.7).
type Instruction struct {
	Address  uint16
	Bytes    []byte
	Mnemonic string
	Mode     AddressingMode
	Operand  string // formatted per-mode operand, e.g. "#$12", "$1000", ",X+"
}

// Disassemble decodes one instruction starting at addr, using read to fetch
// bytes one at a time (mirroring the live fetch/decode pipeline in
// addressing_states.go, but run synchronously over an arbitrary byte
// source rather than the bus). It returns the decoded Instruction and the
// address of the next instruction.
func Disassemble(read func(uint16) byte, addr uint16) (Instruction, uint16) {
	start := addr
	var raw []byte
	next := func() byte {
		b := read(addr)
		raw = append(raw, b)
		addr++
		return b
	}

	b := next()
	var key uint16
	if b == 0x10 || b == 0x11 {
		key = uint16(b) << 8
		key |= uint16(next())
	} else {
		key = uint16(b)
	}

	d, ok := lookupOpcode(key)
	if !ok {
		return Instruction{Address: start, Bytes: raw, Mnemonic: "???"}, addr
	}

	inst := Instruction{Address: start, Mnemonic: d.Mnemonic, Mode: d.Mode}

	switch d.Mode {
	case Inherent:
		if d.Postbyte {
			pb := next()
			inst.Operand = formatRegisterList(d, pb)
		}
	case Immediate:
		n := immediateWidth(d)
		if n == 1 {
			inst.Operand = formatImmediate(uint32(next()))
		} else {
			hi, lo := next(), next()
			inst.Operand = formatImmediate(uint32(numeric.Word(hi, lo)))
		}
	case Direct:
		inst.Operand = formatDirect(next())
	case Extended:
		hi, lo := next(), next()
		inst.Operand = formatExtended(numeric.Word(hi, lo))
	case Relative:
		if d.IsLongBranch {
			hi, lo := next(), next()
			inst.Operand = formatRelative(int32(int16(numeric.Word(hi, lo))))
		} else {
			offset := int32(int16(numeric.SignExtend(uint32(next()), 8)))
			inst.Operand = formatRelative(offset)
		}
	case Indexed:
		inst.Operand = disassembleIndexed(next, next)
	}

	inst.Bytes = raw
	return inst, addr
}

func formatRegisterList(d Descriptor, pb byte) string {
	switch d.Mnemonic {
	case "EXG", "TFR":
		src, dst := decodeExchangePostbyte(pb)
		return src.String() + "," + dst.String()
	}
	other := RegU
	if d.Register == RegU {
		other = RegS
	}
	var regs []Reg
	if d.Mnemonic == "PULS" || d.Mnemonic == "PULU" {
		regs = pullOrder(pb, other)
	} else {
		order := pushOrder(pb, other)
		// pushOrder lists registers in physical write order (PC..CC); a
		// listing reads more naturally in postbyte bit order (CC..PC).
		for i := len(order) - 1; i >= 0; i-- {
			regs = append(regs, order[i])
		}
	}
	s := ""
	for i, r := range regs {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s
}

// disassembleIndexed re-parses an indexed postbyte (consuming extra bytes
// via next as needed) into its textual assembler form.
func disassembleIndexed(next func() byte, _ func() byte) string {
	pb := decodeIndexedPostbyte(next())
	var body string
	switch pb.Action {
	case ActionOffset5:
		offset := int8(pb.Raw<<3) >> 3
		body = itoa(int32(offset)) + "," + pb.Base.String()
	case ActionOffset0:
		body = "," + pb.Base.String()
	case ActionOffsetA:
		body = "A," + pb.Base.String()
	case ActionOffsetB:
		body = "B," + pb.Base.String()
	case ActionOffsetD:
		body = "D," + pb.Base.String()
	case ActionPostInc1:
		body = "," + pb.Base.String() + "+"
	case ActionPostInc2:
		body = "," + pb.Base.String() + "++"
	case ActionPreDec1:
		body = ",-" + pb.Base.String()
	case ActionPreDec2:
		body = ",--" + pb.Base.String()
	case ActionOffset8:
		offset := int32(int16(numeric.SignExtend(uint32(next()), 8)))
		body = itoa(offset) + "," + pb.Base.String()
	case ActionOffset16:
		hi, lo := next(), next()
		body = itoa(int32(int16(numeric.Word(hi, lo)))) + "," + pb.Base.String()
	case ActionOffsetPC8:
		offset := int32(int16(numeric.SignExtend(uint32(next()), 8)))
		body = itoa(offset) + ",PCR"
	case ActionOffsetPC16:
		hi, lo := next(), next()
		body = itoa(int32(int16(numeric.Word(hi, lo)))) + ",PCR"
	case ActionExtendedIndirect:
		hi, lo := next(), next()
		body = "[" + formatExtended(numeric.Word(hi, lo)) + "]"
		return body
	default:
		return "<invalid>"
	}
	if pb.Indirect {
		return "[" + body + "]"
	}
	return body
}

func formatImmediate(v uint32) string { return "#$" + hexDigits(v) }
func formatDirect(v byte) string      { return "$" + hexDigits(uint32(v)) }
func formatExtended(v uint16) string  { return "$" + hexDigits(uint32(v)) }
func formatRelative(offset int32) string {
	return itoa(offset)
}

func hexDigits(v uint32) string {
	const digits = "0123456789ABCDEF"
	if v == 0 {
		return "00"
	}
	var buf [8]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	s := string(buf[i:])
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}

func itoa(v int32) string {
	if v < 0 {
		return "-" + itoa(-v)
	}
	if v == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
