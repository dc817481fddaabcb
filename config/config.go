// Package config reads the INI file that declares a memory map layout.
//
// The file has two sections:
//
//	[SETTING]
//	max_row = 16
//	max_column = 16
//	; optional
//	placeholder = FF
//
//	[MMAP]
//	0000 = 1, ascii, device tag
//	0001 = 2, signed int, offset
//
// Each MMAP key is a 4-hex-digit anchor (three digits of row, one of column)
// and each value is a "width, type, name" triple. A key repeated in MMAP is
// kept once per occurrence so the layout rejects it as a duplicate anchor.
package config

import (
	"io"
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/errors"
	"github.com/wippyai/memmap/layout"
)

// Section and key names.
const (
	SectionMap     = "MMAP"
	SectionSetting = "SETTING"
	KeyMaxRow      = "max_row"
	KeyMaxColumn   = "max_column"
	KeyPlaceholder = "placeholder"
)

// File is a parsed layout file.
type File struct {
	Entries     []layout.Entry
	Dimensions  memmap.Dimensions
	Placeholder byte
}

// ReadFile parses the layout file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "open "+path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a layout file. Entries keep their file order.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read layout")
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:        true,
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
	}, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "parse layout")
	}

	setting, err := cfg.GetSection(SectionSetting)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidDimension).
			Detail("missing [%s] section", SectionSetting).
			Build()
	}

	f := &File{Placeholder: memmap.DefaultPlaceholder}
	if f.Dimensions.Rows, err = dimension(setting, KeyMaxRow); err != nil {
		return nil, err
	}
	if f.Dimensions.Cols, err = dimension(setting, KeyMaxColumn); err != nil {
		return nil, err
	}
	if setting.HasKey(KeyPlaceholder) {
		v := setting.Key(KeyPlaceholder).String()
		b, err := strconv.ParseUint(v, 16, 8)
		if err != nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Value(v).
				Cause(err).
				Detail("%s must be two hex digits", KeyPlaceholder).
				Build()
		}
		f.Placeholder = byte(b)
	}

	if sec, err := cfg.GetSection(SectionMap); err == nil {
		for _, k := range sec.Keys() {
			for _, v := range k.ValueWithShadows() {
				f.Entries = append(f.Entries, layout.ParseEntry(k.Name(), v))
			}
		}
	}
	return f, nil
}

func dimension(sec *ini.Section, name string) (int, error) {
	if !sec.HasKey(name) {
		return 0, errors.New(errors.PhaseLoad, errors.KindInvalidDimension).
			Detail("missing %s", name).
			Build()
	}
	n, err := sec.Key(name).Int()
	if err != nil {
		return 0, errors.New(errors.PhaseLoad, errors.KindInvalidDimension).
			Value(sec.Key(name).String()).
			Cause(err).
			Detail("%s is not an integer", name).
			Build()
	}
	return n, nil
}

// Layout builds the field layout the file declares.
func (f *File) Layout() (*layout.Layout, error) {
	return layout.Load(f.Dimensions, f.Entries)
}
