package disasm

import (
	"fmt"

	"github.com/sarchlab/legdis/insts"
)

// UnknownPrefix starts the line rendered for an unrecognized word.
const UnknownPrefix = "Unknown instruction:"

// Renderer turns decoded instructions into assembly text, substituting
// labels for branch offsets whose targets carry one.
type Renderer struct {
	labels *LabelTable
}

// NewRenderer creates a renderer that consults labels. A nil table renders
// every branch with its raw offset.
func NewRenderer(labels *LabelTable) *Renderer {
	return &Renderer{labels: labels}
}

// LabelLine returns the definition line for the label owned by index.
func (r *Renderer) LabelLine(index int) (string, bool) {
	name, ok := r.labels.Lookup(index)
	if !ok {
		return "", false
	}
	return name + ":", true
}

// Render formats inst as it appears at word index.
func (r *Renderer) Render(inst *insts.Instruction, index int) string {
	switch inst.Format {
	case insts.FormatR:
		return r.renderR(inst)
	case insts.FormatNullary:
		return inst.Mnemonic()
	case insts.FormatD:
		return fmt.Sprintf("%s X%d, [X%d, #%d]",
			inst.Mnemonic(), inst.Rt(), inst.Rn, inst.Imm)
	case insts.FormatI:
		return fmt.Sprintf("%s X%d, X%d, #%d",
			inst.Mnemonic(), inst.Rd, inst.Rn, inst.Imm)
	case insts.FormatB, insts.FormatBCond:
		return fmt.Sprintf("%s %s",
			inst.Mnemonic(), r.branchOperand(inst, index))
	case insts.FormatCB:
		return fmt.Sprintf("%s X%d, %s",
			inst.Mnemonic(), inst.Rt(), r.branchOperand(inst, index))
	default:
		return fmt.Sprintf("%s 0x%08X", UnknownPrefix, inst.Word)
	}
}

func (r *Renderer) renderR(inst *insts.Instruction) string {
	switch inst.Op {
	case insts.OpLSL, insts.OpLSR:
		return fmt.Sprintf("%s X%d, X%d, #%d",
			inst.Mnemonic(), inst.Rd, inst.Rn, inst.Shamt)
	case insts.OpBR:
		return fmt.Sprintf("%s X%d", inst.Mnemonic(), inst.Rn)
	default:
		return fmt.Sprintf("%s X%d, X%d, X%d",
			inst.Mnemonic(), inst.Rd, inst.Rn, inst.Rm)
	}
}

// branchOperand returns the target label, or the signed word offset when
// the target is unlabeled.
func (r *Renderer) branchOperand(inst *insts.Instruction, index int) string {
	if name, ok := r.labels.Lookup(inst.Target(index)); ok {
		return name
	}
	return fmt.Sprintf("#%d", inst.BranchOffset())
}
