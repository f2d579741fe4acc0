package ndarray

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidShape      = errors.New("invalid shape")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrInvalidRank       = errors.New("invalid number of dimensions")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrTypeConversion    = errors.New("value is not convertible to float32")
	ErrUnsupportedOp     = errors.New("unsupported operation")
)

// IndexError reports the first dimension whose index is out of bounds.
type IndexError struct {
	Dim   int // Dimension that failed the bounds check
	Index int // Offending index
	Size  int // Extent of that dimension
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for dimension %d (size %d)", e.Index, e.Dim, e.Size)
}

// Unwrap allows errors.Is(err, ErrIndexOutOfRange).
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ConversionError reports a value that could not be converted to float32.
// Pos is the position in the input sequence, or -1 for scalar inputs.
type ConversionError struct {
	Pos   int
	Value any
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("cannot convert %v (%T) to float32", e.Value, e.Value)
	}
	return fmt.Sprintf("cannot convert element %d: %v (%T) to float32", e.Pos, e.Value, e.Value)
}

// Unwrap allows errors.Is(err, ErrTypeConversion).
func (e *ConversionError) Unwrap() error {
	return ErrTypeConversion
}
