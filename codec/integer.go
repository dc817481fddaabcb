package codec

import (
	"math/big"
	"strings"

	"github.com/wippyai/memmap/errors"
)

type signedInt struct{}

func (signedInt) Validate(text string, width int) Result {
	n, ok := parseDecimal(text)
	if !ok || width < 1 {
		return invalid(errors.NotRepresentable("signed int", width, text, "is not representable as signed integer of given width"))
	}
	bits := uint(8 * width)
	limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
	lo := new(big.Int).Neg(limit)
	hi := new(big.Int).Sub(limit, big.NewInt(1))
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return invalid(errors.NotRepresentable("signed int", width, text, "is not representable as signed integer of given width"))
	}
	if n.Sign() < 0 {
		n.Add(n, new(big.Int).Lsh(big.NewInt(1), bits))
	}
	b := n.FillBytes(make([]byte, width))
	return Result{Valid: true, Canonical: hexText(b), Bytes: b}
}

func (signedInt) Decode(raw []byte) Decoded {
	n := new(big.Int).SetBytes(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(raw))))
	}
	return Decoded{Text: n.String()}
}

type unsignedInt struct{}

func (unsignedInt) Validate(text string, width int) Result {
	n, ok := parseDecimal(text)
	if !ok || width < 1 || n.Sign() < 0 || n.BitLen() > 8*width {
		return invalid(errors.NotRepresentable("unsigned int", width, text, "is not representable as unsigned integer of given width"))
	}
	b := n.FillBytes(make([]byte, width))
	return Result{Valid: true, Canonical: hexText(b), Bytes: b}
}

func (unsignedInt) Decode(raw []byte) Decoded {
	return Decoded{Text: new(big.Int).SetBytes(raw).String()}
}

// parseDecimal accepts an optionally signed base-10 integer of any size,
// ignoring surrounding whitespace.
func parseDecimal(text string) (*big.Int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
