// Package disasm turns LEGv8 instruction streams into labeled assembly
// listings.
//
// Disassembly runs in two passes over the whole stream. The first pass
// labels every in-range branch target; the second renders each word,
// emitting a label definition line before any word that owns a label.
package disasm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/legdis/insts"
)

// WordSize is the width of one instruction in bytes.
const WordSize = 4

// ErrMisaligned is returned when an instruction stream is not a whole
// number of words.
var ErrMisaligned = errors.New("instruction stream length is not a multiple of 4")

// HookPosLabelAssigned marks a label being created during the first pass.
// The hook item is the label name and the detail is the target index.
var HookPosLabelAssigned = &sim.HookPos{Name: "Label Assigned"}

// HookPosInstDecoded marks an instruction being rendered. The hook item is
// the *insts.Instruction and the detail is its word index.
var HookPosInstDecoded = &sim.HookPos{Name: "Inst Decoded"}

// Listing is the result of disassembling one stream.
type Listing struct {
	// Lines holds label definitions interleaved with instructions.
	Lines []string
	// Instructions is the number of words decoded.
	Instructions int
	// Labels is the number of labels assigned.
	Labels int
	// Unknown is the number of words no opcode table recognized.
	Unknown int
}

// Option is a functional option for configuring the Disassembler.
type Option func(*Disassembler)

// WithConfig sets the disassembler configuration. A nil config keeps the
// defaults.
func WithConfig(c *Config) Option {
	return func(d *Disassembler) {
		if c == nil {
			return
		}
		d.config = c.Clone()
	}
}

// WithDecoder sets a custom instruction decoder.
func WithDecoder(decoder *insts.Decoder) Option {
	return func(d *Disassembler) {
		d.decoder = decoder
	}
}

// Disassembler drives both passes over an instruction stream. Each call
// works on its own label table, so one Disassembler can serve independent
// streams.
type Disassembler struct {
	*sim.HookableBase

	decoder *insts.Decoder
	config  *Config
}

// NewDisassembler creates a new Disassembler with the given options.
func NewDisassembler(opts ...Option) *Disassembler {
	d := &Disassembler{
		HookableBase: sim.NewHookableBase(),
		decoder:      insts.NewDecoder(),
		config:       DefaultConfig(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Name returns the name used as the hook domain.
func (d *Disassembler) Name() string {
	return "Disassembler"
}

// Words partitions buf into big-endian words.
func Words(buf []byte) ([]uint32, error) {
	if len(buf)%WordSize != 0 {
		return nil, fmt.Errorf("%w (got %d bytes)", ErrMisaligned, len(buf))
	}

	words := make([]uint32, len(buf)/WordSize)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(buf[i*WordSize:])
	}

	return words, nil
}

// Listing disassembles buf. A misaligned buffer or an invalid config
// produces an error and no lines.
func (d *Disassembler) Listing(buf []byte) (*Listing, error) {
	if err := d.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid disassembler config: %w", err)
	}

	words, err := Words(buf)
	if err != nil {
		return nil, err
	}

	labels := d.resolve(words)
	renderer := NewRenderer(labels)

	listing := &Listing{
		Lines:        make([]string, 0, len(words)+labels.Len()),
		Instructions: len(words),
		Labels:       labels.Len(),
	}

	for i, word := range words {
		if line, ok := renderer.LabelLine(i); ok {
			listing.Lines = append(listing.Lines, line)
		}

		inst := d.decoder.Decode(word)
		if inst.Format == insts.FormatUnknown {
			listing.Unknown++
		}

		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    HookPosInstDecoded,
			Item:   inst,
			Detail: i,
		})

		listing.Lines = append(listing.Lines, d.annotate(
			renderer.Render(inst, i), i, word))
	}

	return listing, nil
}

// Disassemble returns the rendered lines of buf.
func (d *Disassembler) Disassemble(buf []byte) ([]string, error) {
	listing, err := d.Listing(buf)
	if err != nil {
		return nil, err
	}
	return listing.Lines, nil
}

// Run disassembles buf and writes every line to sink in order. Nothing is
// written if buf is misaligned.
func (d *Disassembler) Run(buf []byte, sink LineSink) error {
	_, err := d.RunListing(buf, sink)
	return err
}

// RunListing is Run that also returns the listing. The listing is nil if
// any line could not be written.
func (d *Disassembler) RunListing(buf []byte, sink LineSink) (*Listing, error) {
	listing, err := d.Listing(buf)
	if err != nil {
		return nil, err
	}

	for i, line := range listing.Lines {
		if err := sink.WriteLine(line); err != nil {
			return nil, fmt.Errorf("failed to write line %d: %w", i, err)
		}
	}

	return listing, nil
}

func (d *Disassembler) resolve(words []uint32) *LabelTable {
	table := NewLabelTable(d.config.LabelPrefix)

	resolveLabels(words, d.decoder, table, func(index int, name string) {
		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    HookPosLabelAssigned,
			Item:   name,
			Detail: index,
		})
	})

	return table
}

func (d *Disassembler) annotate(line string, index int, word uint32) string {
	if !d.config.Annotate {
		return line
	}
	return fmt.Sprintf("%04d 0x%08X  %s", index, word, line)
}
