package disasm_test

import (
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/legdis/disasm"
	"github.com/sarchlab/legdis/insts"
)

const (
	addX1X1X3 = 0x8B030021 // ADD X1, X1, X3
	halt      = 0xFFE00000 // HALT
)

var _ = Describe("Words", func() {
	It("should read big-endian words", func() {
		words, err := disasm.Words([]byte{0x8B, 0x03, 0x00, 0x21, 0xFF, 0xE0, 0x00, 0x00})

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{addX1X1X3, halt}))
	})

	It("should accept an empty stream", func() {
		words, err := disasm.Words(nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(BeEmpty())
	})

	It("should reject a stream that is not a whole number of words", func() {
		_, err := disasm.Words(make([]byte, 7))

		Expect(errors.Is(err, disasm.ErrMisaligned)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("7 bytes"))
	})
})

var _ = Describe("Disassembler", func() {
	var d *disasm.Disassembler

	BeforeEach(func() {
		d = disasm.NewDisassembler()
	})

	It("should decode ADD X1, X1, X3", func() {
		lines, err := d.Disassemble(program(addX1X1X3))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{"ADD X1, X1, X3"}))
	})

	It("should label a backward B target found in the first pass", func() {
		lines, err := d.Disassemble(program(
			addX1X1X3, addX1X1X3, addX1X1X3,
			addX1X1X3, // index 3, target of the branch
			addX1X1X3,
			0x17FFFFFE, // index 5: B #-2
		))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"ADD X1, X1, X3",
			"ADD X1, X1, X3",
			"ADD X1, X1, X3",
			"label_0:",
			"ADD X1, X1, X3",
			"ADD X1, X1, X3",
			"B label_0",
		}))
	})

	It("should label a forward target before it is reached", func() {
		lines, err := d.Disassemble(program(0x14000002, addX1X1X3, halt))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"B label_0",
			"ADD X1, X1, X3",
			"label_0:",
			"HALT",
		}))
	})

	It("should label the head of a self-referencing CBZ", func() {
		lines, err := d.Disassemble(program(addX1X1X3, addX1X1X3, 0xB4000005))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"ADD X1, X1, X3",
			"ADD X1, X1, X3",
			"label_0:",
			"CBZ X5, label_0",
		}))
	})

	It("should assign labels in discovery order", func() {
		lines, err := d.Disassemble(program(
			0x14000003, // B #3 -> index 3
			0x54000020, // B.EQ #1 -> index 2
			0xB5FFFFC1, // CBNZ X1, #-2 -> index 0
			0x17FFFFFD, // B #-3 -> index 0 again
			halt,
		))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"label_2:",
			"B label_0",
			"B.EQ label_1",
			"label_1:",
			"CBNZ X1, label_2",
			"label_0:",
			"B label_2",
			"HALT",
		}))
	})

	It("should render out-of-range targets as raw offsets", func() {
		lines, err := d.Disassemble(program(
			0x1400000A, // B #10
			0x17FFFFFF, // B #-1 from index 1 -> index 0
			0x54FFFFCB, // B.LT #-2 from index 2 -> index 0
			0xB4FFFF80, // CBZ X0, #-4 from index 3 -> index -1
		))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"label_0:",
			"B #10",
			"B label_0",
			"B.LT label_0",
			"CBZ X0, #-4",
		}))
	})

	It("should render every format", func() {
		lines, err := d.Disassemble(program(
			0x9B050083, // MUL X3, X4, X5
			0xD3600C41, // LSL X1, X2, #3
			0xD3400484, // LSR X4, X4, #1
			0xD60003C0, // BR X30
			0xF85F8062, // LDUR X2, [X3, #-8]
			0xF8010041, // STUR X1, [X2, #16]
			0x9100A820, // ADDI X0, X1, #42
			0xD13FFC42, // SUBI X2, X2, #4095
			0x94000001, // BL #1
			0xFFA00000, // PRNT
			0xFF800000, // PRNL
			0xFFC00000, // DUMP
			halt,
		))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{
			"MUL X3, X4, X5",
			"LSL X1, X2, #3",
			"LSR X4, X4, #1",
			"BR X30",
			"LDUR X2, [X3, #-8]",
			"STUR X1, [X2, #16]",
			"ADDI X0, X1, #42",
			"SUBI X2, X2, #4095",
			"BL label_0",
			"label_0:",
			"PRNT",
			"PRNL",
			"DUMP",
			"HALT",
		}))
	})

	It("should keep decoding after an unrecognized word", func() {
		listing, err := d.Listing(program(0xB6000000, 0x00000000, addX1X1X3))

		Expect(err).NotTo(HaveOccurred())
		Expect(listing.Lines).To(Equal([]string{
			"Unknown instruction: 0xB6000000",
			"Unknown instruction: 0x00000000",
			"ADD X1, X1, X3",
		}))
		Expect(listing.Instructions).To(Equal(3))
		Expect(listing.Unknown).To(Equal(2))
		Expect(listing.Labels).To(Equal(0))
	})

	It("should render unknown condition codes with a placeholder", func() {
		lines, err := d.Disassemble(program(0x5400002E, halt))

		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{"B.?? label_0", "label_0:", "HALT"}))
	})

	It("should produce no lines for a misaligned stream", func() {
		lines, err := d.Disassemble(make([]byte, 7))

		Expect(err).To(MatchError(disasm.ErrMisaligned))
		Expect(lines).To(BeEmpty())
	})

	It("should produce identical output when run twice", func() {
		buf := program(0x14000003, 0x54000020, 0xB5FFFFC1, 0x17FFFFFD, halt)

		first, err := d.Disassemble(buf)
		Expect(err).NotTo(HaveOccurred())
		second, err := d.Disassemble(buf)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	Context("with configuration", func() {
		It("should use the configured label prefix", func() {
			config := disasm.DefaultConfig()
			config.LabelPrefix = "L"
			d = disasm.NewDisassembler(disasm.WithConfig(config))

			lines, err := d.Disassemble(program(0xB4000005))

			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"L0:", "CBZ X5, L0"}))
		})

		It("should annotate instruction lines only", func() {
			config := disasm.DefaultConfig()
			config.Annotate = true
			d = disasm.NewDisassembler(disasm.WithConfig(config))

			lines, err := d.Disassemble(program(addX1X1X3, 0x17FFFFFF))

			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{
				"label_0:",
				"0000 0x8B030021  ADD X1, X1, X3",
				"0001 0x17FFFFFF  B label_0",
			}))
		})

		It("should keep the defaults for a nil config", func() {
			Expect(func() {
				d = disasm.NewDisassembler(disasm.WithConfig(nil))
			}).NotTo(Panic())

			lines, err := d.Disassemble(program(0xB4000005))

			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"label_0:", "CBZ X5, label_0"}))
		})

		It("should refuse to label with an invalid prefix", func() {
			config := disasm.DefaultConfig()
			config.LabelPrefix = ""
			d = disasm.NewDisassembler(disasm.WithConfig(config))

			lines, err := d.Disassemble(program(0xB4000005))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("label_prefix"))
			Expect(lines).To(BeEmpty())
		})

		It("should not be affected by later changes to the passed config", func() {
			config := disasm.DefaultConfig()
			d = disasm.NewDisassembler(disasm.WithConfig(config))
			config.LabelPrefix = "changed_"

			lines, err := d.Disassemble(program(0xB4000005))

			Expect(err).NotTo(HaveOccurred())
			Expect(lines[0]).To(Equal("label_0:"))
		})
	})

	Describe("Run", func() {
		var (
			mockCtrl *gomock.Controller
			sink     *MockLineSink
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			sink = NewMockLineSink(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should write lines to the sink in order", func() {
			gomock.InOrder(
				sink.EXPECT().WriteLine("label_0:").Return(nil),
				sink.EXPECT().WriteLine("CBZ X5, label_0").Return(nil),
				sink.EXPECT().WriteLine("HALT").Return(nil),
			)

			Expect(d.Run(program(0xB4000005, halt), sink)).To(Succeed())
		})

		It("should write nothing for a misaligned stream", func() {
			err := d.Run(make([]byte, 7), sink)

			Expect(err).To(MatchError(disasm.ErrMisaligned))
		})

		It("should return the listing stats alongside the written lines", func() {
			gomock.InOrder(
				sink.EXPECT().WriteLine("Unknown instruction: 0x00000000").Return(nil),
				sink.EXPECT().WriteLine("HALT").Return(nil),
			)

			listing, err := d.RunListing(program(0x00000000, halt), sink)

			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Instructions).To(Equal(2))
			Expect(listing.Unknown).To(Equal(1))
			Expect(listing.Labels).To(Equal(0))
		})

		It("should return no listing when a line cannot be written", func() {
			sink.EXPECT().WriteLine("HALT").Return(errors.New("closed pipe"))

			listing, err := d.RunListing(program(halt), sink)

			Expect(listing).To(BeNil())
			Expect(err).To(HaveOccurred())
		})

		It("should stop at the first sink error", func() {
			sinkErr := errors.New("disk full")
			sink.EXPECT().WriteLine("ADD X1, X1, X3").Return(sinkErr)

			err := d.Run(program(addX1X1X3, halt), sink)

			Expect(err).To(MatchError(sinkErr))
			Expect(err.Error()).To(ContainSubstring("line 0"))
		})
	})

	Describe("Hooks", func() {
		var (
			mockCtrl *gomock.Controller
			hook     *MockHook
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			hook = NewMockHook(mockCtrl)
			d.AcceptHook(hook)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should report labels before decoded instructions", func() {
			var events []*sim.HookPos
			var details []interface{}

			hook.EXPECT().
				Func(gomock.Any()).
				Do(func(ctx sim.HookCtx) {
					events = append(events, ctx.Pos)
					details = append(details, ctx.Detail)
				}).
				Times(3)

			_, err := d.Disassemble(program(addX1X1X3, 0x17FFFFFF))
			Expect(err).NotTo(HaveOccurred())

			Expect(events).To(Equal([]*sim.HookPos{
				disasm.HookPosLabelAssigned,
				disasm.HookPosInstDecoded,
				disasm.HookPosInstDecoded,
			}))
			Expect(details).To(Equal([]interface{}{0, 0, 1}))
		})

		It("should carry the decoded instruction as the item", func() {
			hook.EXPECT().
				Func(gomock.Any()).
				Do(func(ctx sim.HookCtx) {
					inst, ok := ctx.Item.(*insts.Instruction)
					Expect(ok).To(BeTrue())
					Expect(inst.Op).To(Equal(insts.OpHALT))
				})

			_, err := d.Disassemble(program(halt))
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
