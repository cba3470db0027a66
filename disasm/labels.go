package disasm

import (
	"strconv"

	"github.com/sarchlab/legdis/insts"
)

// DefaultLabelPrefix is prepended to the assignment number of each label.
const DefaultLabelPrefix = "label_"

// LabelTable maps branch-target word indices to synthetic label names.
// Names are assigned in discovery order and never change once assigned.
type LabelTable struct {
	prefix string
	names  map[int]string
	order  []int
}

// NewLabelTable creates an empty table naming labels with prefix.
func NewLabelTable(prefix string) *LabelTable {
	return &LabelTable{
		prefix: prefix,
		names:  make(map[int]string),
	}
}

// Assign gives index the next label name if it has none. It returns the
// label of index and whether it was newly created.
func (t *LabelTable) Assign(index int) (string, bool) {
	if name, ok := t.names[index]; ok {
		return name, false
	}

	name := t.prefix + strconv.Itoa(len(t.order))
	t.names[index] = name
	t.order = append(t.order, index)

	return name, true
}

// Lookup returns the label assigned to index. A nil table has no labels.
func (t *LabelTable) Lookup(index int) (string, bool) {
	if t == nil {
		return "", false
	}

	name, ok := t.names[index]
	return name, ok
}

// Len returns the number of assigned labels.
func (t *LabelTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Targets returns the labeled indices in assignment order.
func (t *LabelTable) Targets() []int {
	if t == nil {
		return nil
	}

	out := make([]int, len(t.order))
	copy(out, t.order)
	return out
}

// ResolveLabels scans words once and labels every in-range branch target.
func ResolveLabels(
	words []uint32,
	decoder *insts.Decoder,
	prefix string,
) *LabelTable {
	table := NewLabelTable(prefix)
	resolveLabels(words, decoder, table, nil)
	return table
}

// resolveLabels is the first pass. onAssign, if set, is called for every
// newly created label.
func resolveLabels(
	words []uint32,
	decoder *insts.Decoder,
	table *LabelTable,
	onAssign func(index int, name string),
) {
	n := len(words)
	var inst insts.Instruction

	for i, word := range words {
		decoder.DecodeInto(word, &inst)
		if !inst.IsBranch() {
			continue
		}

		target := inst.Target(i)
		if target < 0 || target >= n {
			continue
		}

		name, created := table.Assign(target)
		if created && onAssign != nil {
			onAssign(target, name)
		}
	}
}
