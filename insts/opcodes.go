package insts

// OpcodeEntry describes one row of the static opcode tables.
type OpcodeEntry struct {
	Width   uint8  // Opcode field width in bits: 6, 8, 10 or 11
	Pattern uint32 // Opcode bit pattern
	Op      Op
	Format  Format
}

// bcondPattern is the 8-bit opcode shared by every conditional branch.
const bcondPattern = 0b01010100

var opcodeTable = []OpcodeEntry{
	// 11-bit: R-type, D-type transfers and emulator extensions
	{11, 0b10001011000, OpADD, FormatR},
	{11, 0b10001010000, OpAND, FormatR},
	{11, 0b10101010000, OpORR, FormatR},
	{11, 0b11001010000, OpEOR, FormatR},
	{11, 0b11001011000, OpSUB, FormatR},
	{11, 0b11101011000, OpSUBS, FormatR},
	{11, 0b10011011000, OpMUL, FormatR},
	{11, 0b11010011011, OpLSL, FormatR},
	{11, 0b11010011010, OpLSR, FormatR},
	{11, 0b11111000010, OpLDUR, FormatD},
	{11, 0b11111000000, OpSTUR, FormatD},
	{11, 0b11010110000, OpBR, FormatR},
	{11, 0b11111111101, OpPRNT, FormatNullary},
	{11, 0b11111111100, OpPRNL, FormatNullary},
	{11, 0b11111111110, OpDUMP, FormatNullary},
	{11, 0b11111111111, OpHALT, FormatNullary},

	// 10-bit: I-type
	{10, 0b1001000100, OpADDI, FormatI},
	{10, 0b1001001000, OpANDI, FormatI},
	{10, 0b1011001000, OpORRI, FormatI},
	{10, 0b1101001000, OpEORI, FormatI},
	{10, 0b1101000100, OpSUBI, FormatI},
	{10, 0b1111000100, OpSUBIS, FormatI},

	// 6-bit: B-type
	{6, 0b000101, OpB, FormatB},
	{6, 0b100101, OpBL, FormatB},

	// 8-bit: CB-type and the conditional branch family
	{8, 0b10110100, OpCBZ, FormatCB},
	{8, 0b10110101, OpCBNZ, FormatCB},
	{8, bcondPattern, OpBCond, FormatBCond},
}

var (
	opcodes11 = opcodesOfWidth(11)
	opcodes10 = opcodesOfWidth(10)
	opcodes8  = opcodesOfWidth(8)
	opcodes6  = opcodesOfWidth(6)
)

func opcodesOfWidth(width uint8) map[uint32]OpcodeEntry {
	m := make(map[uint32]OpcodeEntry)
	for _, e := range opcodeTable {
		if e.Width == width {
			m[e.Pattern] = e
		}
	}
	return m
}

// Opcodes returns a copy of the opcode table in lookup order within each
// width.
func Opcodes() []OpcodeEntry {
	out := make([]OpcodeEntry, len(opcodeTable))
	copy(out, opcodeTable)
	return out
}

// Match is the outcome of classifying a word.
type Match struct {
	Op     Op
	Format Format
}

// Recognized reports whether any opcode table matched.
func (m Match) Recognized() bool {
	return m.Format != FormatUnknown
}

// Classify searches the opcode tables in fixed priority order: 11-bit,
// 10-bit, 6-bit, then 8-bit. The first hit wins.
func Classify(f Fields) Match {
	if e, ok := opcodes11[f.Opcode11]; ok {
		return Match{Op: e.Op, Format: e.Format}
	}

	if e, ok := opcodes10[f.Opcode10]; ok {
		return Match{Op: e.Op, Format: e.Format}
	}

	if e, ok := opcodes6[f.Opcode6]; ok {
		return Match{Op: e.Op, Format: e.Format}
	}

	if e, ok := opcodes8[f.Opcode8]; ok {
		if f.Opcode8 == bcondPattern {
			return Match{Op: OpBCond, Format: FormatBCond}
		}
		return Match{Op: e.Op, Format: FormatCB}
	}

	return Match{}
}
