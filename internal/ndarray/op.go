package ndarray

import "fmt"

// Op identifies a binary array operation.
type Op int

// Supported binary operations.
const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Apply dispatches op to Add, Subtract or Multiply.
func (e *Engine) Apply(op Op, lhs, rhs *NDArray) (*NDArray, error) {
	switch op {
	case OpAdd:
		return e.Add(lhs, rhs)
	case OpSubtract:
		return e.Subtract(lhs, rhs)
	case OpMultiply:
		return e.Multiply(lhs, rhs)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOp, op)
	}
}

// Apply dispatches op using the default engine.
func Apply(op Op, lhs, rhs *NDArray) (*NDArray, error) {
	return std.Apply(op, lhs, rhs)
}
