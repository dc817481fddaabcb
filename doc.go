// Package memmap models a fixed-size, byte-addressable memory map.
//
// The map is a grid of rows and columns where each cell holds one byte.
// Contiguous runs of cells along a row are grouped into typed fields
// declared by a layout table. The library describes that layout, encodes
// user-entered values into the hexadecimal bytes of each field, decodes
// stored bytes back into display text, and validates that a value fits the
// declared type and width.
//
// # Architecture Overview
//
//	memmap/          Root package with the field data model and Memory interface
//	├── layout/      Anchor-key parsing and the immutable field table
//	├── grid/        Row x column byte buffer with spans
//	├── codec/       Per-type validate/encode/decode
//	├── controller/  Decodes the whole grid, validates and applies edits
//	├── config/      INI layout file reader
//	├── errors/      Structured error types
//	└── cmd/memmap/  Command line and terminal editor
//
// # Quick Start
//
//	f, err := config.ReadFile("config.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l, err := f.Layout()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctl, err := controller.New(l)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := ctl.ValidateAndEncode(0x0A3, 1, "-1")
//	fmt.Println(res.Valid, res.Canonical) // true FFFF
//
//	for _, row := range ctl.DecodeAll() {
//	    for _, cell := range row {
//	        fmt.Print(cell.Text, " ")
//	    }
//	    fmt.Println()
//	}
//
// # Field Types
//
//   - signed int: two's complement, big-endian, shown as decimal
//   - unsigned int: big-endian, shown as decimal
//   - ascii: one character with code point 0..255
//   - bcd: two decimal digits per byte
//   - bool, hex: raw hex passthrough
//   - anything else: kept as Unknown and passed through untouched
//
// # Thread Safety
//
// The grid guards its cells with a read/write lock and the controller
// decodes from a snapshot, so edits to different fields may run
// concurrently with decoding. A Layout is immutable after Load.
package memmap
