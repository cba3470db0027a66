// Package insts provides LEGv8 instruction definitions and decoding.
package insts

// Op represents a LEGv8 opcode.
type Op uint8

// LEGv8 opcodes.
const (
	OpUnknown Op = iota

	// R-type
	OpADD
	OpAND
	OpORR
	OpEOR
	OpSUB
	OpSUBS
	OpMUL
	OpLSL
	OpLSR
	OpBR

	// D-type, carried in the 11-bit table
	OpLDUR
	OpSTUR

	// Emulator extensions without operands
	OpPRNT
	OpPRNL
	OpDUMP
	OpHALT

	// I-type
	OpADDI
	OpANDI
	OpORRI
	OpEORI
	OpSUBI
	OpSUBIS

	// B-type
	OpB
	OpBL

	// CB-type
	OpCBZ
	OpCBNZ

	// Conditional branch
	OpBCond
)

var opNames = [...]string{
	OpUnknown: "UNKNOWN",
	OpADD:     "ADD",
	OpAND:     "AND",
	OpORR:     "ORR",
	OpEOR:     "EOR",
	OpSUB:     "SUB",
	OpSUBS:    "SUBS",
	OpMUL:     "MUL",
	OpLSL:     "LSL",
	OpLSR:     "LSR",
	OpBR:      "BR",
	OpLDUR:    "LDUR",
	OpSTUR:    "STUR",
	OpPRNT:    "PRNT",
	OpPRNL:    "PRNL",
	OpDUMP:    "DUMP",
	OpHALT:    "HALT",
	OpADDI:    "ADDI",
	OpANDI:    "ANDI",
	OpORRI:    "ORRI",
	OpEORI:    "EORI",
	OpSUBI:    "SUBI",
	OpSUBIS:   "SUBIS",
	OpB:       "B",
	OpBL:      "BL",
	OpCBZ:     "CBZ",
	OpCBNZ:    "CBNZ",
	OpBCond:   "B.cond",
}

// String returns the assembly mnemonic of the opcode.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR       // Register: Rd, Rn, Rm, shamt
	FormatNullary // Register-format encoding with no operands
	FormatI       // Immediate: Rd, Rn, imm12
	FormatD       // Data transfer: Rt, [Rn, #imm9]
	FormatB       // Unconditional branch: imm26
	FormatCB      // Compare and branch: Rt, imm19
	FormatBCond   // Conditional branch: cond, imm19
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatR:       "R",
	FormatNullary: "nullary",
	FormatI:       "I",
	FormatD:       "D",
	FormatB:       "B",
	FormatCB:      "CB",
	FormatBCond:   "B.cond",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return formatNames[FormatUnknown]
}

// IsBranch reports whether instructions of this format carry a relative
// word offset.
func (f Format) IsBranch() bool {
	return f == FormatB || f == FormatCB || f == FormatBCond
}

// Instruction represents a decoded LEGv8 instruction. Only the operand
// fields of the classified format are populated.
type Instruction struct {
	Word   uint32 // Raw machine word
	Op     Op     // Operation code
	Format Format // Encoding format

	Rd    uint8 // Destination register; also Rt for D and CB formats
	Rn    uint8 // First source or base register
	Rm    uint8 // Second source register
	Shamt uint8 // Shift amount for LSL/LSR

	// Imm is imm12 (unsigned) for I-type or the sign-extended imm9 for
	// D-type.
	Imm int64

	// Offset is the sign-extended branch offset in words.
	Offset int32

	Cond Cond // Condition code for conditional branches
}

// Rt returns the transfer or test register. It shares bits [4:0] with Rd.
func (i *Instruction) Rt() uint8 {
	return i.Rd
}

// IsBranch reports whether the instruction carries a relative branch target.
func (i *Instruction) IsBranch() bool {
	return i.Format.IsBranch()
}

// BranchOffset returns the signed branch offset in words. It is zero for
// instructions that carry no relative target.
func (i *Instruction) BranchOffset() int32 {
	if !i.IsBranch() {
		return 0
	}
	return i.Offset
}

// Target returns the absolute word index the instruction branches to when
// placed at index.
func (i *Instruction) Target(index int) int {
	return index + int(i.BranchOffset())
}

// Mnemonic returns the rendered mnemonic. Conditional branches are
// synthesized as "B." followed by the condition suffix.
func (i *Instruction) Mnemonic() string {
	if i.Op == OpBCond {
		return "B." + i.Cond.String()
	}
	return i.Op.String()
}
