package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // layout construction
	PhaseGrid     Phase = "grid"     // byte grid access
	PhaseValidate Phase = "validate" // cell validation
	PhaseDecode   Phase = "decode"   // bytes to display text
	PhaseEncode   Phase = "encode"   // display text to bytes
	PhaseExport   Phase = "export"   // dump and image export/import
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedKey     Kind = "malformed_key"
	KindInvalidDimension Kind = "invalid_dimension"
	KindInvalidWidth     Kind = "invalid_width"
	KindOverlap          Kind = "overlap"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidSpan      Kind = "invalid_span"
	KindNotRepresentable Kind = "not_representable"
	KindInvalidBCD       Kind = "invalid_bcd"
	KindUnknownWidth     Kind = "unknown_width"
	KindCovered          Kind = "covered"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
)

// Error is the structured error type used throughout memmap
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	FieldType string
	Cell      string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Cell != "" {
		b.WriteString(" at ")
		b.WriteString(e.Cell)
	}

	if e.FieldType != "" {
		b.WriteString(": ")
		b.WriteString(e.FieldType)
	}

	if e.Detail != "" {
		if e.FieldType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind, in any phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsPhase reports whether err is an *Error raised in the given phase.
func IsPhase(err error, phase Phase) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Phase == phase
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Cell sets the grid position the error refers to
func (b *Builder) Cell(row, col int) *Builder {
	b.err.Cell = CellName(row, col)
	return b
}

// FieldType sets the field type name
func (b *Builder) FieldType(t string) *Builder {
	b.err.FieldType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// CellName formats a grid position the way the map headers label it:
// three hex digits of row, one of column.
func CellName(row, col int) string {
	return fmt.Sprintf("%03X%X", row, col)
}

// Convenience constructors for common error patterns

// MalformedKey creates a layout error for an anchor key that does not parse
func MalformedKey(key string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMalformedKey,
		Detail: fmt.Sprintf("anchor key %q is not 4 hex digits", key),
		Value:  key,
		Cause:  cause,
	}
}

// InvalidDimension creates a layout error for a missing or out of range grid dimension
func InvalidDimension(name string, value, limit int) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidDimension,
		Detail: fmt.Sprintf("%s = %d, must be in 1..%d", name, value, limit),
		Value:  value,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, row, col, rows, cols int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Cell:   CellName(row, col),
		Detail: fmt.Sprintf("position (%d, %d) outside %dx%d grid", row, col, rows, cols),
		Value:  [2]int{row, col},
	}
}

// InvalidSpan creates an invalid span error
func InvalidSpan(phase Phase, row, col, width, cols int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSpan,
		Cell:   CellName(row, col),
		Detail: fmt.Sprintf("span of %d from column %d does not fit %d columns", width, col, cols),
		Value:  width,
	}
}

// NotRepresentable creates a validation error for text the field type cannot hold
func NotRepresentable(fieldType string, width int, text, detail string) *Error {
	return &Error{
		Phase:     PhaseValidate,
		Kind:      KindNotRepresentable,
		FieldType: fieldType,
		Detail:    fmt.Sprintf("%q %s (width %d)", text, detail, width),
		Value:     text,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
