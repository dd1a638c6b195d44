// Package disasm formats cpu.Instruction values into listing lines, the
// thin host-facing layer over cpu's own Disassemble.
package disasm

import (
	"fmt"
	"strings"

	"github.com/sixoheight/six09/cpu"
)

// AddrFormatter renders an address for a listing's left column.
type AddrFormatter func(uint16) string

// OffsetFormatter renders a signed relative-branch offset. Line does not
// call it: branch operands arrive already formatted from cpu.Disassemble.
type OffsetFormatter func(int8) string

// Formatter pads and joins a decoded instruction's mnemonic and operand
// into one listing line, the same "write mnemonic, pad to column, append
// description" shape as the teacher pack's Disassembly.Stringify
// (master-g-childhood/go/mgnes/pkg/disassembly.go), generalized with
// pluggable address/offset formatters per spec.md §4.7's invitation
// ("pluggable address/offset formatters"). Only AddrFormatter affects the
// output; operands, including branch offsets, are printed as
// cpu.Disassemble formatted them.
type Formatter struct {
	AddrFormatter   AddrFormatter
	OffsetFormatter OffsetFormatter
	MnemonicColumn  int // pad the mnemonic to this width before the operand
}

// DefaultFormatter renders addresses as 4-digit hex, matching the MC6809
// assembler listing convention, and offsets as signed decimal.
func DefaultFormatter() Formatter {
	return Formatter{
		AddrFormatter:   func(a uint16) string { return fmt.Sprintf("%04X", a) },
		OffsetFormatter: func(o int8) string { return fmt.Sprintf("%d", o) },
		MnemonicColumn:  6,
	}
}

// Line formats one decoded instruction: "ADDR  BYTES  MNEMONIC OPERAND".
func (f Formatter) Line(inst cpu.Instruction) string {
	addr := f.AddrFormatter(inst.Address)
	if addr == "" {
		addr = DefaultFormatter().AddrFormatter(inst.Address)
	}

	hexBytes := make([]string, len(inst.Bytes))
	for i, b := range inst.Bytes {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}

	sb := &strings.Builder{}
	sb.WriteString(inst.Mnemonic)
	col := f.MnemonicColumn
	if col <= 0 {
		col = DefaultFormatter().MnemonicColumn
	}
	if sb.Len()+len(inst.Operand) > col {
		sb.WriteRune(' ')
	} else {
		for sb.Len() < col {
			sb.WriteRune(' ')
		}
	}
	sb.WriteString(inst.Operand)

	return fmt.Sprintf("%s  %-8s  %s", addr, strings.Join(hexBytes, " "), sb.String())
}

// Listing disassembles and formats every instruction from start up to (and
// possibly slightly past) end, reading bytes with read.
func Listing(read func(uint16) byte, start, end uint16, f Formatter) []string {
	var lines []string
	addr := start
	for addr <= end {
		inst, next := cpu.Disassemble(read, addr)
		lines = append(lines, f.Line(inst))
		if next <= addr { // guard against a zero-length decode at the boundary
			break
		}
		addr = next
	}
	return lines
}
