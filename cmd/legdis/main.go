// Package main provides the legdis command line disassembler.
// legdis turns raw big-endian LEGv8 images into labeled assembly listings.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/legdis/disasm"
	"github.com/sarchlab/legdis/loader"
)

var (
	configPath = flag.String("config", "", "Path to disassembler configuration JSON file")
	outputPath = flag.String("o", "", "Write the listing to a file instead of stdout")
	annotate   = flag.Bool("annotate", false, "Prefix instruction lines with index and raw word")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Trace both disassembly passes on stderr")
)

// options carries the parsed command line.
type options struct {
	configPath string
	annotate   bool
	verbose    bool
	trace      bool
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: legdis [options] <image|->\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	var out io.Writer = os.Stdout
	var file *os.File
	if *outputPath != "" {
		var err error
		file, err = os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			atexit.Exit(1)
		}
		out = file
	}

	opts := options{
		configPath: *configPath,
		annotate:   *annotate,
		verbose:    *verbose,
		trace:      *trace,
	}

	code := run(opts, flag.Arg(0), out, os.Stderr)

	if file != nil {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing listing: %v\n", err)
			code = 1
		}
	}

	atexit.Exit(code)
}

// run disassembles the image at path and returns the exit code. Listing
// lines, including input errors, go to out; reports go to errOut. Output is
// buffered and flushed before run returns.
func run(opts options, path string, out, errOut io.Writer) int {
	buffered := bufio.NewWriter(out)
	code := disassemble(opts, path, buffered, errOut)

	if err := buffered.Flush(); err != nil {
		fmt.Fprintf(errOut, "Error writing listing: %v\n", err)
		return 1
	}

	return code
}

func disassemble(opts options, path string, out, errOut io.Writer) int {
	config, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(errOut, "Error loading config: %v\n", err)
		return 1
	}

	img, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	d := disasm.NewDisassembler(disasm.WithConfig(config))
	if opts.trace {
		d.AcceptHook(disasm.NewTraceHook(errOut))
	}

	listing, err := d.RunListing(img.Data, disasm.NewWriterSink(out))
	if errors.Is(err, disasm.ErrMisaligned) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(errOut, "Error writing listing: %v\n", err)
		return 1
	}

	if opts.verbose {
		fmt.Fprintf(errOut, "Loaded: %s\n", img.Name)
		fmt.Fprintf(errOut, "Words: %d\n", listing.Instructions)
		fmt.Fprintf(errOut, "Labels: %d\n", listing.Labels)
		fmt.Fprintf(errOut, "Unknown words: %d\n", listing.Unknown)
	}

	return 0
}

func loadConfig(opts options) (*disasm.Config, error) {
	config := disasm.DefaultConfig()
	if opts.configPath != "" {
		var err error
		config, err = disasm.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.annotate {
		config.Annotate = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
