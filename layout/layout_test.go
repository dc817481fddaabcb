package layout

import (
	"testing"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
)

var dims = memmap.Dimensions{Rows: 0x100, Cols: 16}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    memmap.FieldKey
		wantErr bool
	}{
		{in: "0A31", want: memmap.FieldKey{Row: 0x0A3, Col: 1}},
		{in: "0000", want: memmap.FieldKey{}},
		{in: "fffF", want: memmap.FieldKey{Row: 0xFFF, Col: 15}},
		{in: "0a3b", want: memmap.FieldKey{Row: 0x0A3, Col: 11}},
		{in: "0G31", wantErr: true},
		{in: "0A3", wantErr: true},
		{in: "0A310", wantErr: true},
		{in: "+A31", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				if !errors.IsKind(err, errors.KindMalformedKey) {
					t.Fatalf("ParseKey(%q) err = %v, want malformed_key", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEntry(t *testing.T) {
	e := ParseEntry(" 0011 ", "2, signed int , motor speed, rpm")
	if e.Key != "0011" || e.Width != "2" || e.Type != "signed int" || e.Name != "motor speed, rpm" {
		t.Errorf("ParseEntry = %+v", e)
	}

	e = ParseEntry("0000", "1")
	if e.Width != "1" || e.Type != "" || e.Name != "" {
		t.Errorf("ParseEntry short = %+v", e)
	}
}

func TestLoad(t *testing.T) {
	l, err := Load(dims, []Entry{
		ParseEntry("0012", "2, unsigned int, counter"),
		ParseEntry("0000", "1, ascii, tag"),
		ParseEntry("0A31", "4, signed int, offset"),
		ParseEntry("0005", "n/a, bcd, broken"),
		ParseEntry("0006", "1, float, future"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if l.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", l.Len())
	}

	spec, ok := l.Lookup(memmap.FieldKey{Row: 0x0A3, Col: 1})
	if !ok {
		t.Fatal("Lookup(0A31) missing")
	}
	if spec.Width != 4 || spec.Type != memmap.SignedInt || spec.Name != "offset" {
		t.Errorf("spec = %+v", spec)
	}

	spec, _ = l.Lookup(memmap.FieldKey{Row: 0, Col: 5})
	if spec.Width.Known() {
		t.Errorf("width %v should be unknown", spec.Width)
	}

	spec, _ = l.Lookup(memmap.FieldKey{Row: 0, Col: 6})
	if spec.Type != memmap.Unknown || spec.TypeName != "float" {
		t.Errorf("unknown type not preserved: %+v", spec)
	}

	if _, ok := l.Lookup(memmap.FieldKey{Row: 0, Col: 3}); ok {
		t.Error("Lookup of covered column should not find an anchor")
	}

	owner, ok := l.Owner(0x0A3, 4)
	if !ok || owner != (memmap.FieldKey{Row: 0x0A3, Col: 1}) {
		t.Errorf("Owner(0A3, 4) = %v, %v", owner, ok)
	}
	if _, ok := l.Owner(0x0A3, 5); ok {
		t.Error("Owner past the span should be empty")
	}

	fields := l.Fields()
	want := []memmap.FieldKey{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 5}, {Row: 0, Col: 6}, {Row: 0x0A3, Col: 1}}
	for i, f := range fields {
		if f.Key != want[i] {
			t.Errorf("Fields()[%d] = %v, want %v", i, f.Key, want[i])
		}
	}
	if l.Dimensions() != dims {
		t.Errorf("Dimensions() = %+v", l.Dimensions())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		dims    memmap.Dimensions
		entries []Entry
		kind    errors.Kind
	}{
		{
			name: "zero rows",
			dims: memmap.Dimensions{Rows: 0, Cols: 16},
			kind: errors.KindInvalidDimension,
		},
		{
			name: "negative cols",
			dims: memmap.Dimensions{Rows: 4, Cols: -1},
			kind: errors.KindInvalidDimension,
		},
		{
			name: "too many cols",
			dims: memmap.Dimensions{Rows: 4, Cols: 17},
			kind: errors.KindInvalidDimension,
		},
		{
			name:    "malformed key",
			dims:    dims,
			entries: []Entry{ParseEntry("zz01", "1, hex, x")},
			kind:    errors.KindMalformedKey,
		},
		{
			name:    "zero width",
			dims:    dims,
			entries: []Entry{ParseEntry("0001", "0, hex, x")},
			kind:    errors.KindInvalidWidth,
		},
		{
			name:    "negative width",
			dims:    dims,
			entries: []Entry{ParseEntry("0001", "-2, hex, x")},
			kind:    errors.KindInvalidWidth,
		},
		{
			name:    "anchor outside grid",
			dims:    memmap.Dimensions{Rows: 2, Cols: 8},
			entries: []Entry{ParseEntry("0020", "1, hex, x")},
			kind:    errors.KindOutOfBounds,
		},
		{
			name:    "span past row end",
			dims:    dims,
			entries: []Entry{ParseEntry("000E", "4, unsigned int, x")},
			kind:    errors.KindInvalidSpan,
		},
		{
			name: "overlap",
			dims: dims,
			entries: []Entry{
				ParseEntry("0010", "4, unsigned int, a"),
				ParseEntry("0012", "1, ascii, b"),
			},
			kind: errors.KindOverlap,
		},
		{
			name: "duplicate anchor",
			dims: dims,
			entries: []Entry{
				ParseEntry("0010", "1, ascii, a"),
				ParseEntry("0010", "1, ascii, b"),
			},
			kind: errors.KindOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.dims, tt.entries)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsPhase(err, errors.PhaseLoad) {
				t.Errorf("phase of %v, want load", err)
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("err = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestLoadAdjacentFieldsDoNotOverlap(t *testing.T) {
	_, err := Load(dims, []Entry{
		ParseEntry("0010", "2, unsigned int, a"),
		ParseEntry("0012", "2, unsigned int, b"),
		ParseEntry("0014", "x, bcd, c"),
		ParseEntry("0015", "1, bool, d"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
}
