package ndarray

import "fmt"

// Engine validates operands, allocates results and dispatches the kernels
// to a Backend. An Engine holds no mutable state and is safe for concurrent
// use if its backend is.
type Engine struct {
	backend Backend
	strict  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend selects the backend that runs the kernels.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		e.backend = b
	}
}

// WithStrictShapes makes Add and Subtract require equal shapes instead of
// only equal element counts.
func WithStrictShapes() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// NewEngine creates an Engine using the reference backend unless an option
// overrides it.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{backend: Reference()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the backend in use.
func (e *Engine) Backend() Backend {
	return e.backend
}

// Strict reports whether Add and Subtract require equal shapes.
func (e *Engine) Strict() bool {
	return e.strict
}

// Add returns lhs + rhs element-wise. The result has lhs's shape.
func (e *Engine) Add(lhs, rhs *NDArray) (*NDArray, error) {
	result, err := e.elementwise("add", lhs, rhs)
	if err != nil {
		return nil, err
	}
	if err := e.backend.Add(result.values, lhs.values, rhs.values); err != nil {
		return nil, fmt.Errorf("add: %s: %w", e.backend.Name(), err)
	}
	return result, nil
}

// Subtract returns lhs - rhs element-wise. The result has lhs's shape.
func (e *Engine) Subtract(lhs, rhs *NDArray) (*NDArray, error) {
	result, err := e.elementwise("subtract", lhs, rhs)
	if err != nil {
		return nil, err
	}
	if err := e.backend.Sub(result.values, lhs.values, rhs.values); err != nil {
		return nil, fmt.Errorf("subtract: %s: %w", e.backend.Name(), err)
	}
	return result, nil
}

// elementwise checks operand compatibility and allocates the result.
// Without strict mode only the element counts have to agree.
func (e *Engine) elementwise(name string, lhs, rhs *NDArray) (*NDArray, error) {
	if lhs.size != rhs.size {
		return nil, fmt.Errorf("%s: %w: %d vs %d elements", name, ErrShapeMismatch, lhs.size, rhs.size)
	}
	if e.strict && !lhs.shape.Equal(rhs.shape) {
		return nil, fmt.Errorf("%s: %w: %v vs %v", name, ErrShapeMismatch, lhs.shape, rhs.shape)
	}
	return New(lhs.shape)
}

// Multiply returns the matrix product of two arrays of at most 2 dimensions.
//
// Shapes are column count first: lhs is (k, m) or (k), rhs is (n, k), and
// the result is (n, m). With row-major buffers this is the conventional
// product of an m×k matrix and a k×n matrix.
func (e *Engine) Multiply(lhs, rhs *NDArray) (*NDArray, error) {
	if lhs.Ndim() > 2 || rhs.Ndim() > 2 {
		return nil, fmt.Errorf("multiply: %w: %dD and %dD (at most 2 supported)", ErrInvalidRank, lhs.Ndim(), rhs.Ndim())
	}

	nColsL := lhs.shape[0]
	nRowsR := rhs.shape[rhs.Ndim()-1]
	if nColsL != nRowsR {
		return nil, fmt.Errorf("multiply: %w: %v * %v", ErrDimensionMismatch, lhs.shape, rhs.shape)
	}

	nRowsL := 1
	if lhs.Ndim() == 2 {
		nRowsL = lhs.shape[1]
	}
	nColsR := rhs.shape[0]

	// A 1-D rhs reports its length as both row and column count; the
	// kernel would need nColsR*nColsL elements from it.
	if rhs.size != nColsR*nColsL {
		return nil, fmt.Errorf("multiply: %w: rhs %v cannot supply a %dx%d operand", ErrDimensionMismatch, rhs.shape, nColsL, nColsR)
	}

	result, err := New(Shape{nColsR, nRowsL})
	if err != nil {
		return nil, err
	}
	if err := e.backend.MatMul(result.values, lhs.values, rhs.values, nRowsL, nColsL, nColsR); err != nil {
		return nil, fmt.Errorf("multiply: %s: %w", e.backend.Name(), err)
	}
	return result, nil
}

var std = NewEngine()

// Default returns the package-level engine used by Add, Subtract, Multiply
// and Apply.
func Default() *Engine {
	return std
}

// Add returns lhs + rhs using the default engine.
func Add(lhs, rhs *NDArray) (*NDArray, error) {
	return std.Add(lhs, rhs)
}

// Subtract returns lhs - rhs using the default engine.
func Subtract(lhs, rhs *NDArray) (*NDArray, error) {
	return std.Subtract(lhs, rhs)
}

// Multiply returns the matrix product lhs * rhs using the default engine.
func Multiply(lhs, rhs *NDArray) (*NDArray, error) {
	return std.Multiply(lhs, rhs)
}
