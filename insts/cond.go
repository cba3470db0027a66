package insts

// Cond represents a 4-bit condition code.
type Cond uint8

// Condition codes.
const (
	CondEQ Cond = 0b0000 // Equal
	CondNE Cond = 0b0001 // Not equal
	CondHS Cond = 0b0010 // Unsigned higher or same
	CondLO Cond = 0b0011 // Unsigned lower
	CondMI Cond = 0b0100 // Minus / negative
	CondPL Cond = 0b0101 // Plus / positive or zero
	CondVS Cond = 0b0110 // Overflow
	CondVC Cond = 0b0111 // No overflow
	CondHI Cond = 0b1000 // Unsigned higher
	CondLS Cond = 0b1001 // Unsigned lower or same
	CondGE Cond = 0b1010 // Signed greater than or equal
	CondLT Cond = 0b1011 // Signed less than
	CondGT Cond = 0b1100 // Signed greater than
	CondLE Cond = 0b1101 // Signed less than or equal
)

// UnknownCondSuffix is rendered for codes outside the condition table.
const UnknownCondSuffix = "??"

var condSuffixes = map[Cond]string{
	CondEQ: "EQ",
	CondNE: "NE",
	CondHS: "HS",
	CondLO: "LO",
	CondMI: "MI",
	CondPL: "PL",
	CondVS: "VS",
	CondVC: "VC",
	CondHI: "HI",
	CondLS: "LS",
	CondGE: "GE",
	CondLT: "LT",
	CondGT: "GT",
	CondLE: "LE",
}

// String returns the two-letter suffix, or UnknownCondSuffix.
func (c Cond) String() string {
	return CondSuffix(c)
}

// Known reports whether the code has a suffix in the condition table.
func (c Cond) Known() bool {
	_, ok := condSuffixes[c]
	return ok
}

// CondSuffix looks up the mnemonic suffix for a condition code.
func CondSuffix(c Cond) string {
	if s, ok := condSuffixes[c]; ok {
		return s
	}
	return UnknownCondSuffix
}
