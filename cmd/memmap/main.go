package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/memmap/config"
	"github.com/wippyai/memmap/controller"
	"github.com/wippyai/memmap/layout"
)

// editList collects repeated -set KEY=VALUE flags.
type editList []string

func (e *editList) String() string { return strings.Join(*e, ",") }

func (e *editList) Set(v string) error {
	*e = append(*e, v)
	return nil
}

type options struct {
	configFile  string
	binFile     string
	hexIn       string
	hexOut      string
	out         string
	edits       editList
	dump        bool
	debug       bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "./config.ini", "Layout file")
	flag.StringVar(&opts.binFile, "load", "", "Raw row-major image to load")
	flag.StringVar(&opts.hexIn, "hex", "", "Intel HEX image to load")
	flag.StringVar(&opts.hexOut, "export-hex", "", "Write the grid as an Intel HEX image")
	flag.StringVar(&opts.out, "out", "", "File the editor saves the dump to")
	flag.Var(&opts.edits, "set", "Edit a cell, KEY=VALUE with a 4-hex-digit key (repeatable)")
	flag.BoolVar(&opts.dump, "dump", false, "Print the grid as hex rows")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(opts options, stdout io.Writer) error {
	log, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	layout.SetLogger(log.Named("layout"))
	controller.SetLogger(log.Named("controller"))

	ctl, err := open(opts.configFile)
	if err != nil {
		return err
	}

	if opts.binFile != "" {
		data, err := os.ReadFile(opts.binFile)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		if err := ctl.Load(data); err != nil {
			return fmt.Errorf("load image: %w", err)
		}
	}

	if opts.hexIn != "" {
		f, err := os.Open(opts.hexIn)
		if err != nil {
			return fmt.Errorf("open hex: %w", err)
		}
		err = ctl.ReadIntelHex(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load hex: %w", err)
		}
	}

	if err := applyEdits(ctl, opts.edits, stdout); err != nil {
		return err
	}

	if opts.interactive {
		return runInteractive(ctl, opts.configFile, opts.out)
	}

	printDecoded(stdout, ctl.DecodeAll())

	if opts.dump {
		fmt.Fprintln(stdout)
		if err := ctl.Dump(stdout); err != nil {
			return err
		}
	}

	if opts.hexOut != "" {
		f, err := os.Create(opts.hexOut)
		if err != nil {
			return fmt.Errorf("create hex: %w", err)
		}
		if err := ctl.WriteIntelHex(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close hex: %w", err)
		}
	}
	return nil
}

func open(path string) (*controller.Controller, error) {
	f, err := config.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	l, err := f.Layout()
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	opts := controller.DefaultOptions()
	opts.Placeholder = f.Placeholder
	return controller.New(l, opts)
}

// applyEdits runs every -set edit. Rejected edits are reported and do not
// stop the remaining ones.
func applyEdits(ctl *controller.Controller, edits []string, w io.Writer) error {
	for _, e := range edits {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			return fmt.Errorf("edit %q: want KEY=VALUE", e)
		}
		key, err := layout.ParseKey(strings.TrimSpace(k))
		if err != nil {
			return fmt.Errorf("edit %q: %w", e, err)
		}
		res := ctl.ValidateAndEncode(key.Row, key.Col, v)
		if !res.Valid {
			fmt.Fprintf(w, "%s: rejected: %v\n", key, res.Reason)
			continue
		}
		if !res.Stored {
			fmt.Fprintf(w, "%s: %s (not stored)\n", key, res.Canonical)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", key, res.Canonical)
	}
	return nil
}

func printDecoded(w io.Writer, cells [][]controller.Cell) {
	if len(cells) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("     ")
	for c := range cells[0] {
		fmt.Fprintf(&b, " %-*s", cellWidth-1, fmt.Sprintf("_%X", c))
	}
	b.WriteByte('\n')
	for r, row := range cells {
		fmt.Fprintf(&b, "%03X0 ", r)
		for _, cell := range row {
			if cell.Span == 0 {
				continue
			}
			fmt.Fprintf(&b, " %-*s", cell.Span*cellWidth-1, displayText(cell))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}
