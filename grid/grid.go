// Package grid implements the row x column byte buffer behind a memory map.
package grid

import (
	"fmt"
	"sync"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
)

// Grid is a fixed rows x cols matrix of bytes. Each cell is either a byte
// value or unset, which is distinct from zero. The grid is never resized.
type Grid struct {
	data  []byte
	set   []bool
	spans map[memmap.FieldKey]int
	rows  int
	cols  int
	mu    sync.RWMutex
}

var _ memmap.Memory = (*Grid)(nil)

// New creates a grid with every cell unset.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 {
		return nil, errors.New(errors.PhaseGrid, errors.KindInvalidDimension).
			Value(rows).
			Detail("rows = %d, must be positive", rows).
			Build()
	}
	if cols < 1 {
		return nil, errors.New(errors.PhaseGrid, errors.KindInvalidDimension).
			Value(cols).
			Detail("cols = %d, must be positive", cols).
			Build()
	}
	return &Grid{
		data:  make([]byte, rows*cols),
		set:   make([]bool, rows*cols),
		spans: make(map[memmap.FieldKey]int),
		rows:  rows,
		cols:  cols,
	}, nil
}

// Dimensions returns the grid size.
func (g *Grid) Dimensions() memmap.Dimensions {
	return memmap.Dimensions{Rows: g.rows, Cols: g.cols}
}

func (g *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, errors.OutOfBounds(errors.PhaseGrid, row, col, g.rows, g.cols)
	}
	return row*g.cols + col, nil
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v byte) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.data[i] = v
	g.set[i] = true
	g.mu.Unlock()
	return nil
}

// Get returns the byte at (row, col) and whether the cell has been set.
func (g *Grid) Get(row, col int) (byte, bool, error) {
	i, err := g.index(row, col)
	if err != nil {
		return 0, false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.data[i], g.set[i], nil
}

// Clear marks (row, col) unset.
func (g *Grid) Clear(row, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.data[i] = 0
	g.set[i] = false
	g.mu.Unlock()
	return nil
}

// Fill sets every cell to v.
func (g *Grid) Fill(v byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.data {
		g.data[i] = v
		g.set[i] = true
	}
}

// Reset marks every cell unset. Declared spans are kept.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.data)
	clear(g.set)
}

// Read returns n bytes of row starting at col, most significant first.
// Unset cells read as fill.
func (g *Grid) Read(row, col, n int, fill byte) ([]byte, error) {
	if n < 1 || col+n > g.cols {
		return nil, errors.InvalidSpan(errors.PhaseGrid, row, col, n, g.cols)
	}
	start, err := g.index(row, col)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	g.mu.RLock()
	defer g.mu.RUnlock()
	for k := range out {
		if g.set[start+k] {
			out[k] = g.data[start+k]
		} else {
			out[k] = fill
		}
	}
	return out, nil
}

// Write stores data into consecutive cells of row starting at col. Either
// every byte is written or none is.
func (g *Grid) Write(row, col int, data []byte) error {
	if len(data) < 1 || col+len(data) > g.cols {
		return errors.InvalidSpan(errors.PhaseGrid, row, col, len(data), g.cols)
	}
	start, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.data[start:], data)
	for k := range data {
		g.set[start+k] = true
	}
	return nil
}

// Load replaces the whole grid with a row-major buffer of rows*cols bytes.
func (g *Grid) Load(data []byte) error {
	if len(data) != len(g.data) {
		return errors.New(errors.PhaseGrid, errors.KindInvalidInput).
			Value(len(data)).
			Detail("buffer of %d bytes, grid holds %d", len(data), len(g.data)).
			Build()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.data, data)
	for i := range g.set {
		g.set[i] = true
	}
	return nil
}

// DeclareSpan records that columns [col, col+width) of row are presented as
// one merged cell. Spans have no effect on reads or writes.
func (g *Grid) DeclareSpan(row, col, width int) error {
	if _, err := g.index(row, col); err != nil {
		return err
	}
	if width < 1 || col+width > g.cols {
		return errors.InvalidSpan(errors.PhaseGrid, row, col, width, g.cols)
	}
	g.mu.Lock()
	g.spans[memmap.FieldKey{Row: row, Col: col}] = width
	g.mu.Unlock()
	return nil
}

// Span returns the declared span width at (row, col), or 1 when none was declared.
func (g *Grid) Span(row, col int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if w, ok := g.spans[memmap.FieldKey{Row: row, Col: col}]; ok {
		return w
	}
	return 1
}

// Snapshot returns an independent copy of the grid, spans included.
func (g *Grid) Snapshot() *Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := &Grid{
		data:  make([]byte, len(g.data)),
		set:   make([]bool, len(g.set)),
		spans: make(map[memmap.FieldKey]int, len(g.spans)),
		rows:  g.rows,
		cols:  g.cols,
	}
	copy(s.data, g.data)
	copy(s.set, g.set)
	for k, v := range g.spans {
		s.spans[k] = v
	}
	return s
}

// Bytes returns the row-major contents, substituting fill for unset cells.
func (g *Grid) Bytes(fill byte) []byte {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]byte, len(g.data))
	for i, v := range g.data {
		if g.set[i] {
			out[i] = v
		} else {
			out[i] = fill
		}
	}
	return out
}

// Rows renders every cell as two uppercase hex digits, row-major. Unset
// cells render as fill.
func (g *Grid) Rows(fill byte) [][]string {
	b := g.Bytes(fill)
	out := make([][]string, g.rows)
	for r := range out {
		row := make([]string, g.cols)
		for c := range row {
			row[c] = fmt.Sprintf("%02X", b[r*g.cols+c])
		}
		out[r] = row
	}
	return out
}
