package controller

import (
	"bufio"
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"

	"github.com/wippyai/memmap/errors"
)

// intelHexLineLength is the data bytes per Intel HEX record.
const intelHexLineLength = 16

// Export returns every byte of the grid as two uppercase hex digits,
// row-major. Unset cells show the placeholder.
func (c *Controller) Export() [][]string {
	return c.grid.Rows(c.options.Placeholder)
}

// Dump writes one line per row in the form "RR :, B0, B1, ...".
func (c *Controller) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, row := range c.Export() {
		fmt.Fprintf(bw, "%02X :", i)
		for _, b := range row {
			bw.WriteString(", ")
			bw.WriteString(b)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "write dump")
	}
	return nil
}

// WriteIntelHex writes the grid as an Intel HEX image. Cell (row, col) is
// at address row*cols + col.
func (c *Controller) WriteIntelHex(w io.Writer) error {
	mem := gohex.NewMemory()
	if err := mem.AddBinary(0, c.grid.Bytes(c.options.Placeholder)); err != nil {
		return errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "build image")
	}
	if err := mem.DumpIntelHex(w, intelHexLineLength); err != nil {
		return errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "write image")
	}
	return nil
}

// ReadIntelHex stores the data records of an Intel HEX image into the grid.
// Addresses not covered by the image are left untouched. Nothing is written
// when any record falls outside the grid.
func (c *Controller) ReadIntelHex(r io.Reader) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "parse image")
	}

	dims := c.layout.Dimensions()
	size := uint64(dims.Cells())
	segments := mem.GetDataSegments()
	for _, seg := range segments {
		if end := uint64(seg.Address) + uint64(len(seg.Data)); end > size {
			return errors.New(errors.PhaseExport, errors.KindOutOfBounds).
				Value(end).
				Detail("image segment at %#x ends at %#x, grid holds %#x bytes", seg.Address, end, size).
				Build()
		}
	}

	for _, seg := range segments {
		for i, b := range seg.Data {
			addr := int(seg.Address) + i
			if err := c.grid.Set(addr/dims.Cols, addr%dims.Cols, b); err != nil {
				return err
			}
		}
	}
	return nil
}
