// Package controller ties a layout to its byte grid: it decodes the whole
// grid into display cells and validates, encodes and stores single-cell
// edits.
package controller

import (
	"go.uber.org/zap"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/codec"
	"github.com/wippyai/memmap/errors"
	"github.com/wippyai/memmap/grid"
	"github.com/wippyai/memmap/layout"
)

// Options configures controller behavior.
type Options struct {
	// Placeholder is the byte unset cells decode and export as.
	Placeholder byte
	// Seed fills the grid with Placeholder on creation and on Clear, so
	// every cell starts set. Without it cells start unset.
	Seed bool
}

// DefaultOptions returns the conventional all-ones seeded grid.
func DefaultOptions() Options {
	return Options{
		Placeholder: memmap.DefaultPlaceholder,
		Seed:        true,
	}
}

// Cell is one decoded grid position.
type Cell struct {
	Anomaly *errors.Error // irregular stored bytes, nil when clean
	Text    string
	Name    string // field name, for tooltips
	Label   string // field type label
	Anchor  memmap.FieldKey
	Span    int // columns merged into this cell; 0 on columns covered by a field to their left
	Type    memmap.FieldType
	Field   bool // the cell is a field anchor
}

// CellResult is the outcome of one edit.
type CellResult struct {
	Reason    *errors.Error // why the edit was rejected, nil when Valid
	Canonical string
	Valid     bool
	// Stored reports whether the edit wrote bytes. Passthrough types accept
	// free text but only store it when it is the field's hex form.
	Stored bool
}

// Controller owns a layout and the grid it describes. All grid mutation
// goes through its methods.
type Controller struct {
	layout  *layout.Layout
	grid    *grid.Grid
	options Options
}

// New creates a controller with a grid sized by the layout and spans
// declared for every multi-byte field.
func New(l *layout.Layout, opts Options) (*Controller, error) {
	dims := l.Dimensions()
	g, err := grid.New(dims.Rows, dims.Cols)
	if err != nil {
		return nil, err
	}
	for _, f := range l.Fields() {
		if f.Span() > 1 {
			if err := g.DeclareSpan(f.Key.Row, f.Key.Col, f.Span()); err != nil {
				return nil, err
			}
		}
	}
	c := &Controller{layout: l, grid: g, options: opts}
	if opts.Seed {
		g.Fill(opts.Placeholder)
	}
	return c, nil
}

// NewWithDefaults creates a controller with DefaultOptions.
func NewWithDefaults(l *layout.Layout) (*Controller, error) {
	return New(l, DefaultOptions())
}

// Layout returns the field table.
func (c *Controller) Layout() *layout.Layout { return c.layout }

// Snapshot returns a copy of the current grid.
func (c *Controller) Snapshot() *grid.Grid { return c.grid.Snapshot() }

// DecodeAll renders every cell of the grid. Field anchors carry the decoded
// field value; every other cell shows its raw byte as two hex digits. The
// grid is read from a snapshot.
func (c *Controller) DecodeAll() [][]Cell {
	snap := c.grid.Snapshot()
	dims := snap.Dimensions()
	raw := snap.Rows(c.options.Placeholder)

	out := make([][]Cell, dims.Rows)
	for r := range out {
		row := make([]Cell, dims.Cols)
		for col := range row {
			row[col] = Cell{Text: raw[r][col], Span: 1, Anchor: memmap.FieldKey{Row: r, Col: col}}
		}
		out[r] = row
	}

	for _, f := range c.layout.Fields() {
		c.decodeField(snap, f, out[f.Key.Row])
	}
	return out
}

func (c *Controller) decodeField(mem memmap.Memory, f layout.Field, row []Cell) {
	k := f.Key
	span := f.Span()

	cell := Cell{
		Name:   f.Name,
		Label:  f.Label(),
		Anchor: k,
		Span:   span,
		Type:   f.Type,
		Field:  true,
	}
	b, err := mem.Read(k.Row, k.Col, span, c.options.Placeholder)
	if err != nil {
		// the layout was checked against the grid size, so this is a bug
		cell.Text = row[k.Col].Text
		cell.Anomaly = errors.Wrap(errors.PhaseDecode, errors.KindOutOfBounds, err, "read field")
	} else {
		d := codec.Decode(f.FieldSpec, b)
		cell.Text, cell.Anomaly = d.Text, d.Anomaly
	}
	if cell.Anomaly != nil {
		Logger().Debug("decode anomaly",
			zap.Stringer("key", k),
			zap.String("text", cell.Text),
			zap.Error(cell.Anomaly))
	}
	row[k.Col] = cell

	for col := k.Col + 1; col < k.Col+span; col++ {
		row[col].Span = 0
		row[col].Anchor = k
		row[col].Name = f.Name
	}
}

// ValidateAndEncode checks text against the field anchored at (row, col)
// and, when it is valid, stores the encoded bytes across the field's span.
// A cell outside every field takes exactly two hex digits. A rejected edit
// leaves the grid unchanged.
func (c *Controller) ValidateAndEncode(row, col int, text string) CellResult {
	dims := c.layout.Dimensions()
	if row < 0 || row >= dims.Rows || col < 0 || col >= dims.Cols {
		return c.reject(row, col, text, errors.OutOfBounds(errors.PhaseValidate, row, col, dims.Rows, dims.Cols))
	}

	owner, covered := c.layout.Owner(row, col)
	if covered && (owner.Row != row || owner.Col != col) {
		return c.reject(row, col, text, errors.New(errors.PhaseValidate, errors.KindCovered).
			Cell(row, col).
			Value(text).
			Detail("cell belongs to field %s", owner).
			Build())
	}

	var res codec.Result
	if covered {
		spec, _ := c.layout.Lookup(owner)
		res = codec.Validate(spec, text)
	} else {
		res = codec.RawByte(text)
	}
	if !res.Valid {
		res.Err.Cell = errors.CellName(row, col)
		return c.reject(row, col, text, res.Err)
	}

	if res.Bytes != nil {
		if err := c.grid.Write(row, col, res.Bytes); err != nil {
			return c.reject(row, col, text, errors.Wrap(errors.PhaseEncode, errors.KindInvalidSpan, err, "store field"))
		}
	}
	Logger().Debug("cell encoded",
		zap.Stringer("key", memmap.FieldKey{Row: row, Col: col}),
		zap.String("text", text),
		zap.String("canonical", res.Canonical),
		zap.Bool("stored", res.Bytes != nil))
	return CellResult{Valid: true, Canonical: res.Canonical, Stored: res.Bytes != nil}
}

func (c *Controller) reject(row, col int, text string, reason *errors.Error) CellResult {
	Logger().Debug("cell rejected",
		zap.Stringer("key", memmap.FieldKey{Row: row, Col: col}),
		zap.String("text", text),
		zap.Error(reason))
	return CellResult{Reason: reason}
}

// Clear returns the grid to its initial state: seeded with the placeholder,
// or unset when seeding is off.
func (c *Controller) Clear() {
	if c.options.Seed {
		c.grid.Fill(c.options.Placeholder)
		return
	}
	c.grid.Reset()
}

// Load replaces the grid contents with a row-major buffer.
func (c *Controller) Load(data []byte) error {
	return c.grid.Load(data)
}
