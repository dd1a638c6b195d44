package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeMemory answers Disassemble's read callback from a fixed byte slice
// loaded at an offset, with zero bytes everywhere else.
func fakeMemory(offset uint16, bytes ...byte) func(uint16) byte {
	m := make(map[uint16]byte, len(bytes))
	for i, b := range bytes {
		m[offset+uint16(i)] = b
	}
	return func(addr uint16) byte { return m[addr] }
}

func TestDisassembleImmediate(t *testing.T) {
	read := fakeMemory(0x0100, 0x86, 0x2A) // LDA #$2A
	inst, next := Disassemble(read, 0x0100)
	assert.Equal(t, "LDA", inst.Mnemonic)
	assert.Equal(t, Immediate, inst.Mode)
	assert.Equal(t, "#$2A", inst.Operand)
	assert.Equal(t, []byte{0x86, 0x2A}, inst.Bytes)
	assert.Equal(t, uint16(0x0102), next)
}

func TestDisassembleExtended(t *testing.T) {
	read := fakeMemory(0x0100, 0xB6, 0x12, 0x34) // LDA $1234
	inst, next := Disassemble(read, 0x0100)
	assert.Equal(t, "LDA", inst.Mnemonic)
	assert.Equal(t, Extended, inst.Mode)
	assert.Equal(t, "$1234", inst.Operand)
	assert.Equal(t, uint16(0x0103), next)
}

func TestDisassembleIndexedPostIncrement(t *testing.T) {
	read := fakeMemory(0x0100, 0xA6, 0x80) // LDA ,X+
	inst, _ := Disassemble(read, 0x0100)
	assert.Equal(t, "LDA", inst.Mnemonic)
	assert.Equal(t, Indexed, inst.Mode)
	assert.Equal(t, ",X+", inst.Operand)
}

func TestDisassembleIndexedOffset16(t *testing.T) {
	read := fakeMemory(0x0100, 0xA6, 0x89, 0x01, 0x00) // LDA 256,X
	inst, next := Disassemble(read, 0x0100)
	assert.Equal(t, "256,X", inst.Operand)
	assert.Equal(t, uint16(0x0104), next)
}

func TestDisassemblePage2Opcode(t *testing.T) {
	read := fakeMemory(0x0100, 0x10, 0x8E, 0x12, 0x34) // LDY #$1234
	inst, next := Disassemble(read, 0x0100)
	assert.Equal(t, "LDY", inst.Mnemonic)
	assert.Equal(t, "#$1234", inst.Operand)
	assert.Equal(t, uint16(0x0104), next)
}

func TestDisassemblePSHSRegisterList(t *testing.T) {
	read := fakeMemory(0x0100, 0x34, 0x06) // PSHS A,B
	inst, _ := Disassemble(read, 0x0100)
	assert.Equal(t, "PSHS", inst.Mnemonic)
	assert.Equal(t, "A,B", inst.Operand)
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	read := fakeMemory(0x0100, 0x01)
	inst, next := Disassemble(read, 0x0100)
	assert.Equal(t, "???", inst.Mnemonic)
	assert.Equal(t, uint16(0x0101), next)
}

// TestDisassembleRelativeBranch exercises the short-branch signed-offset
// path, including a backward (negative) offset.
func TestDisassembleRelativeBranch(t *testing.T) {
	read := fakeMemory(0x0100, 0x27, 0xFE) // BEQ -2
	inst, _ := Disassemble(read, 0x0100)
	assert.Equal(t, "BEQ", inst.Mnemonic)
	assert.Equal(t, Relative, inst.Mode)
	assert.Equal(t, "-2", inst.Operand)
}
