// Package errors provides structured error types for the memmap library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the grid cell, field type name, offending value and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindNotRepresentable).
//		Cell(0x0A3, 1).
//		FieldType("signed int").
//		Detail("value %d does not fit %d byte(s)", 128, 1).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseGrid, row, col, rows, cols)
//	err := errors.MalformedKey("0G31", cause)
//
// Phases map onto the failure classes of the memory map:
//
//	load      layout construction; fatal, reported once
//	grid      out-of-bounds access or bad span; fatal, a layout/grid mismatch
//	validate  a single cell edit; recoverable, the cell stays invalid
//	decode    an anomaly in stored bytes; rendered, never returned
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
