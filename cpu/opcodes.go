package cpu

import "strings"

// Descriptor is one entry of the opcode table (spec §4.3): it carries the
// decoded instruction's mnemonic, the register it operates on (RegNone for
// instructions that don't name one, e.g. NOP or JMP), the addressing mode
// that selects which addressing state runs next, a human-readable nominal
// cycle count (informational -- actual cycle timing is produced by the
// state machine itself), and a handful of opcode-family flags.
type Descriptor struct {
	Mnemonic          string
	Register          Reg
	Mode              AddressingMode
	Cycles            string
	IsLongBranch      bool
	Postbyte          bool // opcode is immediately followed by a push/pull or exchange postbyte, not an addressing postbyte
	SoftwareInterrupt int  // 0 (not an SWI), 1, 2 or 3
}

// opcodeEntry is one (opcode, register, mode, cycles) tuple fed to register.
type opcodeEntry struct {
	Opcode   uint16
	Register Reg
	Mode     AddressingMode
	Cycles   string
}

// opcodes is the package-level table, keyed by opcode with page-2/3
// instructions keyed by 0x10xx/0x11xx (spec §4.3: "two-byte opcodes get a
// 16-bit key, formed from the prefix and the second byte").
var opcodes = buildOpcodeTable()

// register applies a mnemonic template (with an optional "{register}"
// placeholder) across a list of opcode tuples and inserts the resulting
// Descriptors into table (spec §4.3).
func register(table map[uint16]Descriptor, mnemonic string, entries []opcodeEntry) {
	for _, e := range entries {
		m := mnemonic
		if strings.Contains(m, "{register}") {
			m = strings.ReplaceAll(m, "{register}", e.Register.String())
		}
		table[e.Opcode] = Descriptor{
			Mnemonic: m,
			Register: e.Register,
			Mode:     e.Mode,
			Cycles:   e.Cycles,
		}
	}
}

// registerLongBranch is register for the page-2 long-branch family, which
// additionally sets IsLongBranch so the relative addressing state knows to
// consume a 16-bit offset unconditionally.
func registerLongBranch(table map[uint16]Descriptor, mnemonic string, entries []opcodeEntry) {
	register(table, mnemonic, entries)
	for _, e := range entries {
		d := table[e.Opcode]
		d.IsLongBranch = true
		table[e.Opcode] = d
	}
}

func buildOpcodeTable() map[uint16]Descriptor {
	t := make(map[uint16]Descriptor, 256+64+64)

	// Inherent inc/dec/shift/negate/clear/test family, one row per
	// addressing mode: accumulator A (0x4_), accumulator B (0x5_),
	// direct (0x0_), indexed (0x6_), extended (0x7_).
	modifyFamily := []struct {
		mnemonic string
		base     map[AddressingMode]uint16
	}{
		{"NEG", map[AddressingMode]uint16{Inherent: 0x40, Direct: 0x00, Indexed: 0x60, Extended: 0x70}},
		{"COM", map[AddressingMode]uint16{Inherent: 0x43, Direct: 0x03, Indexed: 0x63, Extended: 0x73}},
		{"LSR", map[AddressingMode]uint16{Inherent: 0x44, Direct: 0x04, Indexed: 0x64, Extended: 0x74}},
		{"ROR", map[AddressingMode]uint16{Inherent: 0x46, Direct: 0x06, Indexed: 0x66, Extended: 0x76}},
		{"ASR", map[AddressingMode]uint16{Inherent: 0x47, Direct: 0x07, Indexed: 0x67, Extended: 0x77}},
		{"ASL", map[AddressingMode]uint16{Inherent: 0x48, Direct: 0x08, Indexed: 0x68, Extended: 0x78}},
		{"ROL", map[AddressingMode]uint16{Inherent: 0x49, Direct: 0x09, Indexed: 0x69, Extended: 0x79}},
		{"DEC", map[AddressingMode]uint16{Inherent: 0x4A, Direct: 0x0A, Indexed: 0x6A, Extended: 0x7A}},
		{"INC", map[AddressingMode]uint16{Inherent: 0x4C, Direct: 0x0C, Indexed: 0x6C, Extended: 0x7C}},
		{"TST", map[AddressingMode]uint16{Inherent: 0x4D, Direct: 0x0D, Indexed: 0x6D, Extended: 0x7D}},
		{"CLR", map[AddressingMode]uint16{Inherent: 0x4F, Direct: 0x0F, Indexed: 0x6F, Extended: 0x7F}},
	}
	for _, f := range modifyFamily {
		if op, ok := f.base[Inherent]; ok {
			register(t, f.mnemonic+"A", []opcodeEntry{{op, RegA, Inherent, "2"}})
			register(t, f.mnemonic+"B", []opcodeEntry{{op + 0x10, RegB, Inherent, "2"}})
		}
		register(t, f.mnemonic, []opcodeEntry{
			{f.base[Direct], RegNone, Direct, "6"},
			{f.base[Indexed], RegNone, Indexed, "6+"},
			{f.base[Extended], RegNone, Extended, "7"},
		})
	}
	// JMP has no accumulator form.
	register(t, "JMP", []opcodeEntry{
		{0x0E, RegNone, Direct, "3"},
		{0x6E, RegNone, Indexed, "3+"},
		{0x7E, RegNone, Extended, "4"},
	})

	// Short branches, 0x20-0x2F.
	branches := []string{"BRA", "BRN", "BHI", "BLS", "BCC", "BCS", "BNE", "BEQ",
		"BVC", "BVS", "BPL", "BMI", "BGE", "BLT", "BGT", "BLE"}
	for i, name := range branches {
		register(t, name, []opcodeEntry{{uint16(0x20 + i), RegNone, Relative, "3"}})
	}
	// Long branches, 0x10 21-2F (LBRN absent page-1 equivalent BRA has its
	// own unconditional long form at 0x16).
	registerLongBranch(t, "LBRA", []opcodeEntry{{0x16, RegNone, Relative, "5"}})
	registerLongBranch(t, "LBSR", []opcodeEntry{{0x17, RegNone, Relative, "9"}})
	for i, name := range branches[1:] {
		registerLongBranch(t, "L"+name, []opcodeEntry{{0x1021 + uint16(i), RegNone, Relative, "5/6"}})
	}

	register(t, "LEAX", []opcodeEntry{{0x30, RegX, Indexed, "4+"}})
	register(t, "LEAY", []opcodeEntry{{0x31, RegY, Indexed, "4+"}})
	register(t, "LEAS", []opcodeEntry{{0x32, RegS, Indexed, "4+"}})
	register(t, "LEAU", []opcodeEntry{{0x33, RegU, Indexed, "4+"}})

	register(t, "PSHS", []opcodeEntry{{0x34, RegS, Inherent, "5+"}})
	register(t, "PULS", []opcodeEntry{{0x35, RegS, Inherent, "5+"}})
	register(t, "PSHU", []opcodeEntry{{0x36, RegU, Inherent, "5+"}})
	register(t, "PULU", []opcodeEntry{{0x37, RegU, Inherent, "5+"}})
	markPostbyte(t, 0x34, 0x35, 0x36, 0x37)

	register(t, "RTS", []opcodeEntry{{0x39, RegNone, Inherent, "5"}})
	register(t, "ABX", []opcodeEntry{{0x3A, RegNone, Inherent, "3"}})
	register(t, "RTI", []opcodeEntry{{0x3B, RegNone, Inherent, "6/15"}})
	register(t, "CWAI", []opcodeEntry{{0x3C, RegNone, Immediate, "20"}})
	register(t, "MUL", []opcodeEntry{{0x3D, RegNone, Inherent, "11"}})
	register(t, "SWI", []opcodeEntry{{0x3F, RegNone, Inherent, "19"}})
	setSWI(t, 0x3F, 1)

	register(t, "NOP", []opcodeEntry{{0x12, RegNone, Inherent, "2"}})
	register(t, "SYNC", []opcodeEntry{{0x13, RegNone, Inherent, "2+"}})
	register(t, "DAA", []opcodeEntry{{0x19, RegNone, Inherent, "2"}})
	register(t, "ORCC", []opcodeEntry{{0x1A, RegCC, Immediate, "3"}})
	register(t, "ANDCC", []opcodeEntry{{0x1C, RegCC, Immediate, "3"}})
	register(t, "SEX", []opcodeEntry{{0x1D, RegNone, Inherent, "2"}})
	register(t, "EXG", []opcodeEntry{{0x1E, RegNone, Inherent, "8"}})
	register(t, "TFR", []opcodeEntry{{0x1F, RegNone, Inherent, "6"}})
	register(t, "BSR", []opcodeEntry{{0x8D, RegNone, Relative, "7"}})
	markPostbyte(t, 0x1E, 0x1F)

	// Accumulator A: immediate/direct/indexed/extended rows at 0x8_/0x9_/0xA_/0xB_.
	registerAccRow(t, "SUBA", RegA, 0x80, 0x90, 0xA0, 0xB0, true)
	registerAccRow(t, "CMPA", RegA, 0x81, 0x91, 0xA1, 0xB1, true)
	registerAccRow(t, "SBCA", RegA, 0x82, 0x92, 0xA2, 0xB2, true)
	register(t, "SUBD", []opcodeEntry{
		{0x83, RegD, Immediate, "4"}, {0x93, RegD, Direct, "6"},
		{0xA3, RegD, Indexed, "6+"}, {0xB3, RegD, Extended, "7"},
	})
	registerAccRow(t, "ANDA", RegA, 0x84, 0x94, 0xA4, 0xB4, true)
	registerAccRow(t, "BITA", RegA, 0x85, 0x95, 0xA5, 0xB5, true)
	registerAccRow(t, "LDA", RegA, 0x86, 0x96, 0xA6, 0xB6, true)
	register(t, "STA", []opcodeEntry{
		{0x97, RegA, Direct, "4"}, {0xA7, RegA, Indexed, "4+"}, {0xB7, RegA, Extended, "5"},
	})
	registerAccRow(t, "EORA", RegA, 0x88, 0x98, 0xA8, 0xB8, true)
	registerAccRow(t, "ADCA", RegA, 0x89, 0x99, 0xA9, 0xB9, true)
	registerAccRow(t, "ORA", RegA, 0x8A, 0x9A, 0xAA, 0xBA, true)
	registerAccRow(t, "ADDA", RegA, 0x8B, 0x9B, 0xAB, 0xBB, true)
	register(t, "CMPX", []opcodeEntry{
		{0x8C, RegX, Immediate, "4"}, {0x9C, RegX, Direct, "6"},
		{0xAC, RegX, Indexed, "6+"}, {0xBC, RegX, Extended, "7"},
	})
	register(t, "JSR", []opcodeEntry{
		{0x9D, RegNone, Direct, "7"}, {0xAD, RegNone, Indexed, "7+"}, {0xBD, RegNone, Extended, "8"},
	})
	register(t, "LDX", []opcodeEntry{
		{0x8E, RegX, Immediate, "3"}, {0x9E, RegX, Direct, "5"},
		{0xAE, RegX, Indexed, "5+"}, {0xBE, RegX, Extended, "6"},
	})
	register(t, "STX", []opcodeEntry{
		{0x9F, RegX, Direct, "5"}, {0xAF, RegX, Indexed, "5+"}, {0xBF, RegX, Extended, "6"},
	})

	// Accumulator B: 0xC_/0xD_/0xE_/0xF_.
	registerAccRow(t, "SUBB", RegB, 0xC0, 0xD0, 0xE0, 0xF0, true)
	registerAccRow(t, "CMPB", RegB, 0xC1, 0xD1, 0xE1, 0xF1, true)
	registerAccRow(t, "SBCB", RegB, 0xC2, 0xD2, 0xE2, 0xF2, true)
	register(t, "ADDD", []opcodeEntry{
		{0xC3, RegD, Immediate, "4"}, {0xD3, RegD, Direct, "6"},
		{0xE3, RegD, Indexed, "6+"}, {0xF3, RegD, Extended, "7"},
	})
	registerAccRow(t, "ANDB", RegB, 0xC4, 0xD4, 0xE4, 0xF4, true)
	registerAccRow(t, "BITB", RegB, 0xC5, 0xD5, 0xE5, 0xF5, true)
	registerAccRow(t, "LDB", RegB, 0xC6, 0xD6, 0xE6, 0xF6, true)
	register(t, "STB", []opcodeEntry{
		{0xD7, RegB, Direct, "4"}, {0xE7, RegB, Indexed, "4+"}, {0xF7, RegB, Extended, "5"},
	})
	registerAccRow(t, "EORB", RegB, 0xC8, 0xD8, 0xE8, 0xF8, true)
	registerAccRow(t, "ADCB", RegB, 0xC9, 0xD9, 0xE9, 0xF9, true)
	registerAccRow(t, "ORB", RegB, 0xCA, 0xDA, 0xEA, 0xFA, true)
	registerAccRow(t, "ADDB", RegB, 0xCB, 0xDB, 0xEB, 0xFB, true)
	register(t, "LDD", regRow(RegD, 0xCC, 0xDC, 0xEC, 0xFC, true))
	register(t, "STD", []opcodeEntry{
		{0xDD, RegD, Direct, "5"}, {0xED, RegD, Indexed, "5+"}, {0xFD, RegD, Extended, "6"},
	})
	register(t, "LDU", regRow(RegU, 0xCE, 0xDE, 0xEE, 0xFE, true))
	register(t, "STU", []opcodeEntry{
		{0xDF, RegU, Direct, "5"}, {0xEF, RegU, Indexed, "5+"}, {0xFF, RegU, Extended, "6"},
	})

	// Page 2 (0x10 prefix).
	register(t, "CMPD", []opcodeEntry{
		{0x1083, RegD, Immediate, "5"}, {0x1093, RegD, Direct, "7"},
		{0x10A3, RegD, Indexed, "7+"}, {0x10B3, RegD, Extended, "8"},
	})
	register(t, "CMPY", []opcodeEntry{
		{0x108C, RegY, Immediate, "5"}, {0x109C, RegY, Direct, "7"},
		{0x10AC, RegY, Indexed, "7+"}, {0x10BC, RegY, Extended, "8"},
	})
	register(t, "LDY", regRow(RegY, 0x108E, 0x109E, 0x10AE, 0x10BE, true))
	register(t, "STY", []opcodeEntry{
		{0x109F, RegY, Direct, "6"}, {0x10AF, RegY, Indexed, "6+"}, {0x10BF, RegY, Extended, "7"},
	})
	register(t, "LDS", regRow(RegS, 0x10CE, 0x10DE, 0x10EE, 0x10FE, true))
	register(t, "STS", []opcodeEntry{
		{0x10DF, RegS, Direct, "6"}, {0x10EF, RegS, Indexed, "6+"}, {0x10FF, RegS, Extended, "7"},
	})
	register(t, "SWI2", []opcodeEntry{{0x103F, RegNone, Inherent, "20"}})
	setSWI(t, 0x103F, 2)

	// Page 3 (0x11 prefix).
	register(t, "CMPU", []opcodeEntry{
		{0x1183, RegU, Immediate, "5"}, {0x1193, RegU, Direct, "7"},
		{0x11A3, RegU, Indexed, "7+"}, {0x11B3, RegU, Extended, "8"},
	})
	register(t, "CMPS", []opcodeEntry{
		{0x118C, RegS, Immediate, "5"}, {0x119C, RegS, Direct, "7"},
		{0x11AC, RegS, Indexed, "7+"}, {0x11BC, RegS, Extended, "8"},
	})
	register(t, "SWI3", []opcodeEntry{{0x113F, RegNone, Inherent, "20"}})
	setSWI(t, 0x113F, 3)

	return t
}

// registerAccRow registers the four addressing-mode rows (immediate,
// direct, indexed, extended) that nearly every accumulator instruction has.
func registerAccRow(t map[uint16]Descriptor, mnemonic string, reg Reg, imm, dir, idx, ext uint16, hasImm bool) {
	entries := []opcodeEntry{
		{dir, reg, Direct, "4"}, {idx, reg, Indexed, "4+"}, {ext, reg, Extended, "5"},
	}
	if hasImm {
		entries = append([]opcodeEntry{{imm, reg, Immediate, "2"}}, entries...)
	}
	register(t, mnemonic, entries)
}

// regRow builds the standard four-row (immediate/direct/indexed/extended)
// opcode entry list for a 16-bit register load.
func regRow(reg Reg, imm, dir, idx, ext uint16, hasImm bool) []opcodeEntry {
	entries := []opcodeEntry{
		{dir, reg, Direct, "5"}, {idx, reg, Indexed, "5+"}, {ext, reg, Extended, "6"},
	}
	if hasImm {
		entries = append([]opcodeEntry{{imm, reg, Immediate, "3"}}, entries...)
	}
	return entries
}

func markPostbyte(t map[uint16]Descriptor, opcodes ...uint16) {
	for _, op := range opcodes {
		d := t[op]
		d.Postbyte = true
		t[op] = d
	}
}

func setSWI(t map[uint16]Descriptor, op uint16, n int) {
	d := t[op]
	d.SoftwareInterrupt = n
	t[op] = d
}

// lookupOpcode reports the Descriptor for key (a plain byte, or
// 0x1000|0x1100 prefixed) and whether it is defined (spec §4.3: undefined
// opcodes drive the CPU to the fail state).
func lookupOpcode(key uint16) (Descriptor, bool) {
	d, ok := opcodes[key]
	return d, ok
}
