// Package loader reads raw LEGv8 program images.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/legdis/disasm"
)

// StdinPath names standard input as the image source.
const StdinPath = "-"

// Image is a raw big-endian instruction stream.
type Image struct {
	// Name identifies where the image was read from.
	Name string
	// Data holds the image bytes. Its length is a multiple of the word size.
	Data []byte
}

// WordCount returns the number of instruction words in the image.
func (img *Image) WordCount() int {
	return len(img.Data) / disasm.WordSize
}

// Load reads the image at path. The path "-" reads standard input.
func Load(path string) (*Image, error) {
	if path == StdinPath {
		return Read(os.Stdin, "<stdin>")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read reads a whole image from r and checks that it holds whole words.
func Read(r io.Reader, name string) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}

	if len(data)%disasm.WordSize != 0 {
		return nil, fmt.Errorf("%s: %w (got %d bytes)",
			name, disasm.ErrMisaligned, len(data))
	}

	return &Image{Name: name, Data: data}, nil
}
