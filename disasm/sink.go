package disasm

import (
	"io"
)

// LineSink consumes rendered lines in program order.
type LineSink interface {
	WriteLine(line string) error
}

// WriterSink writes each line to an io.Writer, newline terminated.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes line followed by a newline.
func (s *WriterSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// SliceSink collects lines in memory.
type SliceSink struct {
	Lines []string
}

// WriteLine appends line.
func (s *SliceSink) WriteLine(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}
