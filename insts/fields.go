package insts

// Fields holds every candidate field of a machine word. Several fields
// overlap (imm12 covers rm and shamt); only the ones meaningful for the
// classified format may be interpreted.
type Fields struct {
	Opcode11 uint32 // bits [31:21]
	Opcode10 uint32 // bits [31:22]
	Opcode8  uint32 // bits [31:24]
	Opcode6  uint32 // bits [31:26]

	Rm    uint8 // bits [20:16]
	Shamt uint8 // bits [15:10]
	Rn    uint8 // bits [9:5]
	Rd    uint8 // bits [4:0], also Rt

	Imm12 uint32 // bits [21:10]
	Imm9  uint32 // bits [20:12]
	Imm26 uint32 // bits [25:0]
	Imm19 uint32 // bits [23:5]
	Cond  uint8  // bits [3:0]
}

// Field widths of the branch and addressing immediates.
const (
	Imm9Bits  = 9
	Imm19Bits = 19
	Imm26Bits = 26
)

// ExtractFields splits a 32-bit word into its candidate fields.
func ExtractFields(word uint32) Fields {
	return Fields{
		Opcode11: (word >> 21) & 0x7FF,
		Opcode10: (word >> 22) & 0x3FF,
		Opcode8:  (word >> 24) & 0xFF,
		Opcode6:  (word >> 26) & 0x3F,

		Rm:    uint8((word >> 16) & 0x1F),
		Shamt: uint8((word >> 10) & 0x3F),
		Rn:    uint8((word >> 5) & 0x1F),
		Rd:    uint8(word & 0x1F),

		Imm12: (word >> 10) & 0xFFF,
		Imm9:  (word >> 12) & 0x1FF,
		Imm26: word & 0x3FFFFFF,
		Imm19: (word >> 5) & 0x7FFFF,
		Cond:  uint8(word & 0xF),
	}
}
