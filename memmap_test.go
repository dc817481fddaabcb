package memmap

import "testing"

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		in   string
		want FieldType
	}{
		{"signed int", SignedInt},
		{" Unsigned Int ", UnsignedInt},
		{"ascii", Ascii},
		{"bool", Bool},
		{"BCD", Bcd},
		{"hex", Hex},
		{"float", Unknown},
		{"", Unknown},
		{"unknown", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFieldType(tt.in); got != tt.want {
				t.Errorf("ParseFieldType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldKeyString(t *testing.T) {
	k := FieldKey{Row: 0x0A3, Col: 1}
	if got := k.String(); got != "0A31" {
		t.Errorf("String() = %q, want 0A31", got)
	}
}

func TestFieldSpecSpanAndLabel(t *testing.T) {
	s := FieldSpec{Width: UnknownWidth, Type: Unknown, TypeName: "float"}
	if s.Span() != 1 {
		t.Errorf("Span() = %d, want 1 for unknown width", s.Span())
	}
	if s.Label() != "float" {
		t.Errorf("Label() = %q, want declared type text", s.Label())
	}

	s = FieldSpec{Width: 4, Type: SignedInt, TypeName: "Signed Int"}
	if s.Span() != 4 {
		t.Errorf("Span() = %d, want 4", s.Span())
	}
	if s.Label() != "signed int" {
		t.Errorf("Label() = %q, want canonical name", s.Label())
	}
	if UnknownWidth.Known() || !Width(1).Known() {
		t.Error("Known() disagrees with width sentinel")
	}
}
