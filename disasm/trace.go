package disasm

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/legdis/insts"
)

// TraceHook writes one line per disassembler hook event.
type TraceHook struct {
	w io.Writer
}

// NewTraceHook creates a hook that writes trace lines to w.
func NewTraceHook(w io.Writer) *TraceHook {
	return &TraceHook{w: w}
}

// Func implements sim.Hook.
func (h *TraceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosLabelAssigned:
		fmt.Fprintf(h.w, "[pass1] %v -> index %v\n", ctx.Item, ctx.Detail)
	case HookPosInstDecoded:
		inst, ok := ctx.Item.(*insts.Instruction)
		if !ok {
			return
		}
		fmt.Fprintf(h.w, "[pass2] index %v 0x%08X %s (%s)\n",
			ctx.Detail, inst.Word, inst.Mnemonic(), inst.Format)
	}
}
