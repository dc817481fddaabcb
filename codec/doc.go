// Package codec converts between display text and the bytes of a field.
//
// Each memmap.FieldType has one Codec. Validate checks that text is
// representable in a field of the given width and, as a side product,
// produces the canonical hex form and the bytes to store. Decode turns the
// stored bytes back into display text; it never fails, and irregular bytes
// (for example a BCD nibble above 9) are reported as an anomaly next to the
// rendered text.
//
// All multi-byte values are big-endian: the most significant byte sits in
// the field's anchor column.
package codec
