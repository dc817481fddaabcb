package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
)

// Result is the outcome of validating one value.
type Result struct {
	Err       *errors.Error // nil when Valid
	Canonical string
	Bytes     []byte // bytes to store, nil when nothing should be written
	Valid     bool
}

// Decoded is the display form of stored bytes.
type Decoded struct {
	Anomaly *errors.Error // set when the bytes are not a regular value of the type
	Text    string
}

// Codec validates and decodes the values of one field type.
type Codec interface {
	Validate(text string, width int) Result
	Decode(raw []byte) Decoded
}

var codecs = map[memmap.FieldType]Codec{
	memmap.SignedInt:   signedInt{},
	memmap.UnsignedInt: unsignedInt{},
	memmap.Ascii:       ascii{},
	memmap.Bool:        passthrough{name: "bool"},
	memmap.Bcd:         bcd{},
	memmap.Hex:         passthrough{name: "hex"},
	memmap.Unknown:     passthrough{name: "unknown"},
}

// For returns the codec of t. Types without a codec are passed through.
func For(t memmap.FieldType) Codec {
	if c, ok := codecs[t]; ok {
		return c
	}
	return passthrough{name: t.String()}
}

// Validate checks text against a field spec. Fields of unknown width can
// only hold Unknown-typed values.
func Validate(spec memmap.FieldSpec, text string) Result {
	if spec.Type != memmap.Unknown && !spec.Width.Known() {
		return invalid(errors.New(errors.PhaseValidate, errors.KindUnknownWidth).
			FieldType(spec.Label()).
			Value(text).
			Detail("field width is unknown, value cannot be encoded").
			Build())
	}
	return For(spec.Type).Validate(text, int(spec.Width))
}

// Decode renders the stored bytes of a field. raw must hold the field's
// full span; for fields of unknown width it holds the anchor byte only.
func Decode(spec memmap.FieldSpec, raw []byte) Decoded {
	if !spec.Width.Known() {
		return Decoded{
			Text: hexText(raw),
			Anomaly: errors.New(errors.PhaseDecode, errors.KindUnknownWidth).
				FieldType(spec.Label()).
				Detail("uninterpretable field").
				Build(),
		}
	}
	return For(spec.Type).Decode(raw)
}

// RawByte validates the text of a cell that belongs to no field: exactly
// two hex digits.
func RawByte(text string) Result {
	b, ok := parseHex(text, 1)
	if !ok {
		return invalid(errors.NotRepresentable("raw", 1, text, "is not two hex digits"))
	}
	return Result{Valid: true, Canonical: text, Bytes: b}
}

func invalid(err *errors.Error) Result {
	return Result{Err: err}
}

func hexText(raw []byte) string {
	return fmt.Sprintf("%X", raw)
}

// parseHex decodes text when it is exactly 2*width hex digits.
func parseHex(text string, width int) ([]byte, bool) {
	if width < 1 || len(text) != 2*width {
		return nil, false
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, false
	}
	return b, true
}

// passthrough accepts any text. Bytes are written back only when the text
// already is the field's hex form.
type passthrough struct {
	name string
}

func (p passthrough) Validate(text string, width int) Result {
	b, _ := parseHex(text, width)
	return Result{Valid: true, Canonical: text, Bytes: b}
}

func (passthrough) Decode(raw []byte) Decoded {
	return Decoded{Text: hexText(raw)}
}
