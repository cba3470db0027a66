package insts

// Decoder decodes LEGv8 machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new LEGv8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit LEGv8 instruction word. Unrecognized words come
// back with OpUnknown and FormatUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes word into inst without allocating. Every field of inst
// is overwritten.
func (d *Decoder) DecodeInto(word uint32, inst *Instruction) {
	fields := ExtractFields(word)
	m := Classify(fields)

	*inst = Instruction{Word: word, Op: m.Op, Format: m.Format}

	switch m.Format {
	case FormatR:
		d.decodeR(fields, inst)
	case FormatI:
		d.decodeI(fields, inst)
	case FormatD:
		d.decodeD(fields, inst)
	case FormatB:
		d.decodeB(fields, inst)
	case FormatCB:
		d.decodeCB(fields, inst)
	case FormatBCond:
		d.decodeBCond(fields, inst)
	}
}

// decodeR decodes register-format instructions.
// Format: opcode(11) | Rm | shamt | Rn | Rd
func (d *Decoder) decodeR(f Fields, inst *Instruction) {
	inst.Rn = f.Rn

	switch inst.Op {
	case OpBR:
		// BR only names its target register.
	case OpLSL, OpLSR:
		inst.Rd = f.Rd
		inst.Shamt = f.Shamt
	default:
		inst.Rd = f.Rd
		inst.Rm = f.Rm
	}
}

// decodeI decodes immediate-format instructions. imm12 is unsigned.
// Format: opcode(10) | imm12 | Rn | Rd
func (d *Decoder) decodeI(f Fields, inst *Instruction) {
	inst.Rd = f.Rd
	inst.Rn = f.Rn
	inst.Imm = int64(f.Imm12)
}

// decodeD decodes LDUR and STUR.
// Format: opcode(11) | imm9 | op2 | Rn | Rt
func (d *Decoder) decodeD(f Fields, inst *Instruction) {
	inst.Rd = f.Rd
	inst.Rn = f.Rn
	inst.Imm = int64(SignExtend(f.Imm9, Imm9Bits))
}

// decodeB decodes B and BL.
// Format: opcode(6) | imm26
func (d *Decoder) decodeB(f Fields, inst *Instruction) {
	inst.Offset = SignExtend(f.Imm26, Imm26Bits)
}

// decodeCB decodes CBZ and CBNZ.
// Format: opcode(8) | imm19 | Rt
func (d *Decoder) decodeCB(f Fields, inst *Instruction) {
	inst.Rd = f.Rd
	inst.Offset = SignExtend(f.Imm19, Imm19Bits)
}

// decodeBCond decodes conditional branches.
// Format: 01010100 | imm19 | 0 | cond
func (d *Decoder) decodeBCond(f Fields, inst *Instruction) {
	inst.Offset = SignExtend(f.Imm19, Imm19Bits)
	inst.Cond = Cond(f.Cond)
}
