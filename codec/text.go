package codec

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/memmap/errors"
)

// ascii holds one character with a code point in 0..255, mapped through
// ISO-8859-1 so every byte value has a character.
type ascii struct{}

func (ascii) Validate(text string, width int) Result {
	if width < 1 || !utf8.ValidString(text) || utf8.RuneCountInString(text) != 1 {
		return invalid(errors.NotRepresentable("ascii", width, text, "is not a single character"))
	}
	r, _ := utf8.DecodeRuneInString(text)
	c, ok := charmap.ISO8859_1.EncodeRune(r)
	if !ok {
		return invalid(errors.NotRepresentable("ascii", width, text, "is outside code points 0..255"))
	}
	b := make([]byte, width)
	b[width-1] = c
	return Result{Valid: true, Canonical: hexText([]byte{c}), Bytes: b}
}

func (ascii) Decode(raw []byte) Decoded {
	if len(raw) == 0 {
		return Decoded{}
	}
	for _, b := range raw[:len(raw)-1] {
		if b != 0 {
			return Decoded{
				Text: hexText(raw),
				Anomaly: errors.New(errors.PhaseDecode, errors.KindNotRepresentable).
					FieldType("ascii").
					Value(hexText(raw)).
					Detail("code point above 255").
					Build(),
			}
		}
	}
	return Decoded{Text: string(charmap.ISO8859_1.DecodeByte(raw[len(raw)-1]))}
}

// bcd packs two decimal digits per byte.
type bcd struct{}

func (bcd) Validate(text string, width int) Result {
	if width < 1 || text == "" || len(text) > 2*width {
		return invalid(errors.NotRepresentable("bcd", width, text, "does not fit the field's BCD digits"))
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return invalid(errors.NotRepresentable("bcd", width, text, "is not decimal digits"))
		}
	}
	digits := make([]byte, 2*width)
	pad := len(digits) - len(text)
	for i := 0; i < pad; i++ {
		digits[i] = '0'
	}
	copy(digits[pad:], text)

	b := make([]byte, width)
	for i := range b {
		b[i] = (digits[2*i]-'0')<<4 | (digits[2*i+1] - '0')
	}
	return Result{Valid: true, Canonical: string(digits), Bytes: b}
}

func (bcd) Decode(raw []byte) Decoded {
	d := Decoded{Text: hexText(raw)}
	for i, b := range raw {
		if b>>4 > 9 || b&0x0F > 9 {
			d.Anomaly = errors.New(errors.PhaseDecode, errors.KindInvalidBCD).
				FieldType("bcd").
				Value(b).
				Detail("byte %d (%02X) is not two decimal digits", i, b).
				Build()
			break
		}
	}
	return d
}
