package layout

import (
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
)

// Field pairs an anchor with its spec.
type Field struct {
	memmap.FieldSpec
	Key memmap.FieldKey
}

// Layout maps anchors to field specs. It is immutable once loaded.
type Layout struct {
	fields map[memmap.FieldKey]memmap.FieldSpec
	owner  map[memmap.FieldKey]memmap.FieldKey
	order  []memmap.FieldKey
	dims   memmap.Dimensions
}

// Load builds a Layout for a grid of the given dimensions.
//
// Unparsable widths become memmap.UnknownWidth and unrecognized types become
// memmap.Unknown. Load fails on a malformed anchor key, bad dimensions, a
// width below one, an anchor or span outside the grid, a duplicate anchor,
// or two fields sharing a column.
func Load(dims memmap.Dimensions, entries []Entry) (*Layout, error) {
	if dims.Rows < 1 || dims.Rows > memmap.MaxRows {
		return nil, errors.InvalidDimension("max_row", dims.Rows, memmap.MaxRows)
	}
	if dims.Cols < 1 || dims.Cols > memmap.MaxCols {
		return nil, errors.InvalidDimension("max_column", dims.Cols, memmap.MaxCols)
	}

	l := &Layout{
		fields: make(map[memmap.FieldKey]memmap.FieldSpec, len(entries)),
		owner:  make(map[memmap.FieldKey]memmap.FieldKey),
		order:  make([]memmap.FieldKey, 0, len(entries)),
		dims:   dims,
	}

	for _, e := range entries {
		key, err := ParseKey(e.Key)
		if err != nil {
			return nil, err
		}
		spec, err := specFor(key, e)
		if err != nil {
			return nil, err
		}
		if err := l.add(key, spec); err != nil {
			return nil, err
		}
		Logger().Debug("field",
			zap.Stringer("key", key),
			zap.Stringer("width", spec.Width),
			zap.String("type", spec.Label()),
			zap.String("name", spec.Name))
	}

	sort.Slice(l.order, func(i, j int) bool {
		a, b := l.order[i], l.order[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	Logger().Info("layout loaded",
		zap.Int("fields", len(l.fields)),
		zap.Int("rows", dims.Rows),
		zap.Int("cols", dims.Cols))
	return l, nil
}

func specFor(key memmap.FieldKey, e Entry) (memmap.FieldSpec, error) {
	spec := memmap.FieldSpec{
		Name:     e.Name,
		TypeName: e.Type,
		Type:     memmap.ParseFieldType(e.Type),
		Width:    memmap.UnknownWidth,
	}
	n, ok := e.width()
	if !ok {
		return spec, nil
	}
	if n < 1 {
		return spec, errors.New(errors.PhaseLoad, errors.KindInvalidWidth).
			Cell(key.Row, key.Col).
			Value(n).
			Detail("width %d, must be at least 1", n).
			Build()
	}
	spec.Width = memmap.Width(n)
	return spec, nil
}

func (l *Layout) add(key memmap.FieldKey, spec memmap.FieldSpec) error {
	if key.Row >= l.dims.Rows || key.Col >= l.dims.Cols {
		return errors.OutOfBounds(errors.PhaseLoad, key.Row, key.Col, l.dims.Rows, l.dims.Cols)
	}
	span := spec.Span()
	if key.Col+span > l.dims.Cols {
		return errors.InvalidSpan(errors.PhaseLoad, key.Row, key.Col, span, l.dims.Cols)
	}
	for c := key.Col; c < key.Col+span; c++ {
		cell := memmap.FieldKey{Row: key.Row, Col: c}
		if other, taken := l.owner[cell]; taken {
			return errors.New(errors.PhaseLoad, errors.KindOverlap).
				Cell(key.Row, key.Col).
				Value(other.String()).
				Detail("column %X already belongs to field %s", c, other).
				Build()
		}
	}
	for c := key.Col; c < key.Col+span; c++ {
		l.owner[memmap.FieldKey{Row: key.Row, Col: c}] = key
	}
	l.fields[key] = spec
	l.order = append(l.order, key)
	return nil
}

// Lookup returns the spec of the field anchored at k.
func (l *Layout) Lookup(k memmap.FieldKey) (memmap.FieldSpec, bool) {
	s, ok := l.fields[k]
	return s, ok
}

// Owner returns the anchor of the field covering (row, col), if any.
func (l *Layout) Owner(row, col int) (memmap.FieldKey, bool) {
	k, ok := l.owner[memmap.FieldKey{Row: row, Col: col}]
	return k, ok
}

// Fields returns every field in row-major anchor order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.order))
	for i, k := range l.order {
		out[i] = Field{Key: k, FieldSpec: l.fields[k]}
	}
	return out
}

// Len returns the number of fields.
func (l *Layout) Len() int { return len(l.fields) }

// Dimensions returns the grid size the layout was loaded for.
func (l *Layout) Dimensions() memmap.Dimensions { return l.dims }
