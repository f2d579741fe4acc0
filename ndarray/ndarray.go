// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray

import (
	"github.com/born-ml/fastmath/internal/ndarray"
)

// NDArray is a dense n-dimensional float32 array.
type NDArray = ndarray.NDArray

// Shape lists the extent of each dimension, dimension 0 first.
// Example: Shape{3, 4} is a 2-D array with 3 columns and 4 rows.
type Shape = ndarray.Shape

// Device identifies where a backend runs its kernels.
type Device = ndarray.Device

// Device constants.
const (
	CPU    Device = ndarray.CPU
	WebGPU Device = ndarray.WebGPU
)

// Backend computes the kernels behind Add, Subtract and Multiply.
type Backend = ndarray.Backend

// Engine binds array operations to a Backend.
type Engine = ndarray.Engine

// Option configures an Engine.
type Option = ndarray.Option

// Op names a binary array operation for Apply.
type Op = ndarray.Op

// Operations accepted by Apply.
const (
	OpAdd      Op = ndarray.OpAdd
	OpSubtract Op = ndarray.OpSubtract
	OpMultiply Op = ndarray.OpMultiply
)

// IndexError reports an index outside its dimension.
type IndexError = ndarray.IndexError

// ConversionError reports a value that cannot be converted to float32.
type ConversionError = ndarray.ConversionError

// Sentinel errors.
var (
	ErrInvalidShape      = ndarray.ErrInvalidShape
	ErrLengthMismatch    = ndarray.ErrLengthMismatch
	ErrIndexOutOfRange   = ndarray.ErrIndexOutOfRange
	ErrShapeMismatch     = ndarray.ErrShapeMismatch
	ErrInvalidRank       = ndarray.ErrInvalidRank
	ErrDimensionMismatch = ndarray.ErrDimensionMismatch
	ErrTypeConversion    = ndarray.ErrTypeConversion
	ErrUnsupportedOp     = ndarray.ErrUnsupportedOp
)

// New creates a zero-filled array of the given shape.
func New(shape Shape) (*NDArray, error) {
	return ndarray.New(shape)
}

// MustNew is like New but panics on an invalid shape.
func MustNew(shape Shape) *NDArray {
	return ndarray.MustNew(shape)
}

// FromValues creates an array of the given shape holding a copy of values.
func FromValues(shape Shape, values []float32) (*NDArray, error) {
	return ndarray.FromValues(shape, values)
}

// NewEngine creates an Engine. Without options it uses the reference
// backend and size-only shape checks.
func NewEngine(opts ...Option) *Engine {
	return ndarray.NewEngine(opts...)
}

// WithBackend selects the backend an Engine runs on.
func WithBackend(b Backend) Option {
	return ndarray.WithBackend(b)
}

// WithStrictShapes makes Add and Subtract require identical shapes.
func WithStrictShapes() Option {
	return ndarray.WithStrictShapes()
}

// Reference returns the serial backend.
func Reference() Backend {
	return ndarray.Reference()
}

// Add returns lhs + rhs element-wise, shaped like lhs.
func Add(lhs, rhs *NDArray) (*NDArray, error) {
	return ndarray.Add(lhs, rhs)
}

// Subtract returns lhs - rhs element-wise, shaped like lhs.
func Subtract(lhs, rhs *NDArray) (*NDArray, error) {
	return ndarray.Subtract(lhs, rhs)
}

// Multiply returns the matrix product of lhs and rhs.
func Multiply(lhs, rhs *NDArray) (*NDArray, error) {
	return ndarray.Multiply(lhs, rhs)
}

// Apply dispatches op on the default engine.
func Apply(op Op, lhs, rhs *NDArray) (*NDArray, error) {
	return ndarray.Apply(op, lhs, rhs)
}
