package ndarray

import (
	"fmt"
	"math"
	"math/bits"
)

// Shape represents the dimensions of an array.
//
// Dimension 0 varies fastest in memory: element (i0, i1, ..., ik) lives at
// i0 + shape[0]*(i1 + shape[1]*(i2 + ...)).
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape has at least one dimension, that no
// dimension is negative and that the element count fits in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: shape must have at least one dimension", ErrInvalidShape)
	}
	n := uint64(1)
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be >= 0)", ErrInvalidShape, i, dim)
		}
		hi, lo := bits.Mul64(n, uint64(dim))
		if hi != 0 || lo > math.MaxInt {
			return fmt.Errorf("%w: %v has too many elements", ErrInvalidShape, s)
		}
		n = lo
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Offset maps a multi-index to a linear buffer offset.
// Bounds are checked left to right and the first violation is returned
// as an *IndexError.
func (s Shape) Offset(indices ...int) (int, error) {
	if len(indices) != len(s) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrInvalidShape, len(s), len(indices))
	}

	offset := 0
	block := 1
	for d, idx := range indices {
		if idx < 0 || idx >= s[d] {
			return 0, &IndexError{Dim: d, Index: idx, Size: s[d]}
		}
		offset += block * idx
		block *= s[d]
	}
	return offset, nil
}
