package layout

import (
	"strconv"
	"strings"
)

// Entry is one raw row of the layout table, before interpretation.
type Entry struct {
	Key   string
	Width string
	Type  string
	Name  string
}

// ParseEntry splits a "width, type, name" value into an Entry. Missing
// trailing items are left empty; the name may itself contain commas.
func ParseEntry(key, value string) Entry {
	items := strings.SplitN(value, ",", 3)
	e := Entry{Key: strings.TrimSpace(key)}
	e.Width = strings.TrimSpace(items[0])
	if len(items) > 1 {
		e.Type = strings.TrimSpace(items[1])
	}
	if len(items) > 2 {
		e.Name = strings.TrimSpace(items[2])
	}
	return e
}

// width returns the parsed width and whether the text was an integer.
func (e Entry) width() (int, bool) {
	n, err := strconv.Atoi(e.Width)
	if err != nil {
		return 0, false
	}
	return n, true
}
