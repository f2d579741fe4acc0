// Package ndarray implements a dense N-dimensional float32 array with
// element access, element-wise arithmetic and 2-D matrix multiplication.
package ndarray

import (
	"fmt"
	"strings"
)

// NDArray is a dense array of float32 values.
// The buffer is exclusively owned by the array and is never shared with
// another instance.
type NDArray struct {
	shape  Shape
	size   int
	values []float32
}

// New creates a zero-filled array with the given shape.
func New(shape Shape) (*NDArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	size := shape.NumElements()
	return &NDArray{
		shape:  shape.Clone(),
		size:   size,
		values: make([]float32, size),
	}, nil
}

// MustNew is like New but panics if the shape is invalid.
func MustNew(shape Shape) *NDArray {
	a, err := New(shape)
	if err != nil {
		panic(err)
	}
	return a
}

// FromValues creates an array of the given shape holding a copy of values.
func FromValues(shape Shape, values []float32) (*NDArray, error) {
	a, err := New(shape)
	if err != nil {
		return nil, err
	}
	if err := a.Set(values); err != nil {
		return nil, err
	}
	return a, nil
}

// Ndim returns the number of dimensions.
func (a *NDArray) Ndim() int {
	return len(a.shape)
}

// Shape returns a copy of the array's shape.
func (a *NDArray) Shape() Shape {
	return a.shape.Clone()
}

// Size returns the total number of elements.
func (a *NDArray) Size() int {
	return a.size
}

// Fill sets every element to value.
func (a *NDArray) Fill(value float32) {
	for i := range a.values {
		a.values[i] = value
	}
}

// FillValue converts value to float32 and fills the array with it.
func (a *NDArray) FillValue(value any) error {
	f, err := toFloat32(value)
	if err != nil {
		return &ConversionError{Pos: -1, Value: value}
	}
	a.Fill(f)
	return nil
}

// Set copies values into the array in linear order.
func (a *NDArray) Set(values []float32) error {
	if len(values) != a.size {
		return fmt.Errorf("%w: got %d values for %d elements", ErrLengthMismatch, len(values), a.size)
	}
	copy(a.values, values)
	return nil
}

// SetValues converts values to float32 and copies them into the array in
// linear order. Nothing is written unless every value converts.
func (a *NDArray) SetValues(values []any) error {
	if len(values) != a.size {
		return fmt.Errorf("%w: got %d values for %d elements", ErrLengthMismatch, len(values), a.size)
	}

	converted := make([]float32, len(values))
	for i, v := range values {
		f, err := toFloat32(v)
		if err != nil {
			return &ConversionError{Pos: i, Value: v}
		}
		converted[i] = f
	}
	copy(a.values, converted)
	return nil
}

// Values returns a copy of the elements in linear order.
func (a *NDArray) Values() []float32 {
	out := make([]float32, a.size)
	copy(out, a.values)
	return out
}

// Get returns the element at the given indices.
func (a *NDArray) Get(indices ...int) (float32, error) {
	offset, err := a.shape.Offset(indices...)
	if err != nil {
		return 0, err
	}
	return a.values[offset], nil
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (a *NDArray) At(indices ...int) float32 {
	v, err := a.Get(indices...)
	if err != nil {
		panic(err)
	}
	return v
}

// Put sets the element at the given indices.
func (a *NDArray) Put(value float32, indices ...int) error {
	offset, err := a.shape.Offset(indices...)
	if err != nil {
		return err
	}
	a.values[offset] = value
	return nil
}

// PutValue converts value to float32 and stores it at the given indices.
func (a *NDArray) PutValue(value any, indices ...int) error {
	offset, err := a.shape.Offset(indices...)
	if err != nil {
		return err
	}
	f, err := toFloat32(value)
	if err != nil {
		return &ConversionError{Pos: -1, Value: value}
	}
	a.values[offset] = f
	return nil
}

// Clone returns a deep copy of the array.
func (a *NDArray) Clone() *NDArray {
	return &NDArray{
		shape:  a.shape.Clone(),
		size:   a.size,
		values: a.Values(),
	}
}

// Equal reports whether both arrays have the same shape and elements.
func (a *NDArray) Equal(other *NDArray) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// String returns a short description, including values for small arrays.
func (a *NDArray) String() string {
	const maxShown = 16

	var sb strings.Builder
	fmt.Fprintf(&sb, "NDArray%v", a.shape)
	if a.size > maxShown {
		return sb.String()
	}
	sb.WriteString("[")
	for i, v := range a.values {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString("]")
	return sb.String()
}
