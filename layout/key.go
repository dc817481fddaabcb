package layout

import (
	"strconv"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
)

// ParseKey decodes a 4-hex-digit anchor key: the first three digits are the
// row, the fourth is the column.
func ParseKey(s string) (memmap.FieldKey, error) {
	if len(s) != 4 {
		return memmap.FieldKey{}, errors.MalformedKey(s, nil)
	}
	row, err := strconv.ParseUint(s[:3], 16, 16)
	if err != nil {
		return memmap.FieldKey{}, errors.MalformedKey(s, err)
	}
	col, err := strconv.ParseUint(s[3:], 16, 8)
	if err != nil {
		return memmap.FieldKey{}, errors.MalformedKey(s, err)
	}
	return memmap.FieldKey{Row: int(row), Col: int(col)}, nil
}
