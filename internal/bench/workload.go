package bench

import (
	"fmt"

	"github.com/born-ml/fastmath/internal/ndarray"
)

// Workload is one timed unit of work.
type Workload interface {
	Run() error
}

// WorkloadFunc adapts a function to the Workload interface.
type WorkloadFunc func() error

// Run calls f.
func (f WorkloadFunc) Run() error {
	return f()
}

// AddInts is the scalar baseline the array workloads are compared with.
func AddInts(lhs, rhs int) int {
	return lhs + rhs
}

// ScalarWorkload calls add(1, -3) once per run.
type ScalarWorkload struct {
	add  func(int, int) int
	sink int
}

// NewScalarWorkload wraps a two-argument integer function.
func NewScalarWorkload(add func(int, int) int) *ScalarWorkload {
	return &ScalarWorkload{add: add}
}

// Run implements Workload.
func (w *ScalarWorkload) Run() error {
	w.sink = w.add(1, -3)
	return nil
}

// ArrayWorkload exercises every array operation once per run:
// allocate, fill, allocate by shape, fill, subtract, bulk set, multiply.
type ArrayWorkload struct {
	engine *ndarray.Engine
	shape  ndarray.Shape
	values []float32
}

// NewArrayWorkload creates a workload on size×size arrays.
func NewArrayWorkload(engine *ndarray.Engine, size int) *ArrayWorkload {
	shape := ndarray.Shape{size, size}
	values := make([]float32, shape.NumElements())
	for i := range values {
		values[i] = float32(i % 10)
	}
	return &ArrayWorkload{
		engine: engine,
		shape:  shape,
		values: values,
	}
}

// Run implements Workload.
func (w *ArrayWorkload) Run() error {
	a, err := ndarray.New(w.shape)
	if err != nil {
		return err
	}
	a.Fill(1.0)

	b, err := ndarray.New(a.Shape())
	if err != nil {
		return err
	}
	b.Fill(2.0)

	if _, err := w.engine.Subtract(a, b); err != nil {
		return fmt.Errorf("array workload: %w", err)
	}

	if err := a.Set(w.values); err != nil {
		return fmt.Errorf("array workload: %w", err)
	}

	if _, err := w.engine.Multiply(a, a); err != nil {
		return fmt.Errorf("array workload: %w", err)
	}
	return nil
}
