package memmap

import (
	"fmt"
	"strings"
)

// Addressing limits imposed by the 4-hex-digit anchor key: three digits of
// row, one digit of column.
const (
	MaxRows = 0x1000
	MaxCols = 0x10
)

// DefaultPlaceholder is the byte unset cells decode as until written.
const DefaultPlaceholder byte = 0xFF

// FieldKey identifies a field by the grid position of its first byte.
type FieldKey struct {
	Row int
	Col int
}

// String renders the key in its 4-hex-digit layout form.
func (k FieldKey) String() string {
	return fmt.Sprintf("%03X%X", k.Row, k.Col)
}

// FieldType is the closed set of value encodings a field can carry.
type FieldType uint8

const (
	Unknown FieldType = iota
	SignedInt
	UnsignedInt
	Ascii
	Bool
	Bcd
	Hex
)

var fieldTypeNames = [...]string{
	Unknown:     "unknown",
	SignedInt:   "signed int",
	UnsignedInt: "unsigned int",
	Ascii:       "ascii",
	Bool:        "bool",
	Bcd:         "bcd",
	Hex:         "hex",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// ParseFieldType maps a layout type string to its FieldType. Matching is
// case-insensitive on the trimmed text; unrecognized strings yield Unknown.
func ParseFieldType(s string) FieldType {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range fieldTypeNames {
		if t != int(Unknown) && name == s {
			return FieldType(t)
		}
	}
	return Unknown
}

// Width is a field's byte count. UnknownWidth marks a width the layout
// declared but that did not parse as an integer.
type Width int

const UnknownWidth Width = -1

// Known reports whether the width was parsed.
func (w Width) Known() bool { return w >= 1 }

func (w Width) String() string {
	if !w.Known() {
		return "?"
	}
	return fmt.Sprintf("%d", int(w))
}

// FieldSpec describes one field of the map.
type FieldSpec struct {
	Name     string
	TypeName string // as written in the layout, kept for Unknown types
	Width    Width
	Type     FieldType
}

// Span returns the number of columns the field occupies. A field of unknown
// width covers only its anchor.
func (s FieldSpec) Span() int {
	if !s.Width.Known() {
		return 1
	}
	return int(s.Width)
}

// Label returns the type name to show for the field: the declared text for
// Unknown types, the canonical name otherwise.
func (s FieldSpec) Label() string {
	if s.Type == Unknown && s.TypeName != "" {
		return s.TypeName
	}
	return s.Type.String()
}

// Dimensions is the size of the byte grid.
type Dimensions struct {
	Rows int
	Cols int
}

// Cells returns the number of bytes in the grid.
func (d Dimensions) Cells() int { return d.Rows * d.Cols }

// Memory is row/column addressed byte storage.
type Memory interface {
	Get(row, col int) (byte, bool, error)
	Set(row, col int, v byte) error
	// Read returns n bytes starting at (row, col), substituting fill for unset cells.
	Read(row, col, n int, fill byte) ([]byte, error)
	Write(row, col int, data []byte) error
}
