// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/born-ml/fastmath/backend/cpu"
	"github.com/born-ml/fastmath/ndarray"
)

// TestBackendInterface verifies that the cpu backend satisfies ndarray.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ ndarray.Backend = (*cpu.Backend)(nil)
}

// TestPublicAPI walks the facade through the basic array lifecycle.
func TestPublicAPI(t *testing.T) {
	a, err := ndarray.New(ndarray.Shape{3, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Ndim() != 2 || a.Size() != 12 {
		t.Errorf("Ndim, Size = %d, %d, want 2, 12", a.Ndim(), a.Size())
	}

	a.Fill(1)
	b := ndarray.MustNew(a.Shape())
	b.Fill(2)

	c, err := ndarray.Subtract(a, b)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for _, v := range c.Values() {
		if v != -1 {
			t.Fatalf("Subtract element = %v, want -1", v)
		}
	}

	sum, err := ndarray.Apply(ndarray.OpAdd, a, b)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := sum.At(2, 3); got != 3 {
		t.Errorf("sum[2,3] = %v, want 3", got)
	}
}

// TestSentinelErrors verifies re-exported errors match the wrapped ones.
func TestSentinelErrors(t *testing.T) {
	a := ndarray.MustNew(ndarray.Shape{2, 2})

	_, err := a.Get(2, 0)
	if !errors.Is(err, ndarray.ErrIndexOutOfRange) {
		t.Errorf("Get error = %v, want ErrIndexOutOfRange", err)
	}
	var idxErr *ndarray.IndexError
	if !errors.As(err, &idxErr) || idxErr.Dim != 0 {
		t.Errorf("Get error = %#v, want *IndexError on dim 0", err)
	}

	if _, err := ndarray.New(ndarray.Shape{}); !errors.Is(err, ndarray.ErrInvalidShape) {
		t.Errorf("New(empty) error = %v, want ErrInvalidShape", err)
	}

	strict := ndarray.NewEngine(ndarray.WithStrictShapes())
	if _, err := strict.Add(a, ndarray.MustNew(ndarray.Shape{4})); !errors.Is(err, ndarray.ErrShapeMismatch) {
		t.Errorf("strict Add error = %v, want ErrShapeMismatch", err)
	}
}

func ExampleMultiply() {
	lhs, _ := ndarray.FromValues(ndarray.Shape{4, 3}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	rhs, _ := ndarray.FromValues(ndarray.Shape{2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	product, err := ndarray.Multiply(lhs, rhs)
	if err != nil {
		panic(err)
	}
	fmt.Println(product.Shape(), product.Values())
	// Output: [2 3] [50 60 114 140 178 220]
}

func ExampleNewEngine() {
	engine := ndarray.NewEngine(ndarray.WithBackend(cpu.New()))

	a := ndarray.MustNew(ndarray.Shape{2, 2})
	a.Fill(1.5)
	b := ndarray.MustNew(ndarray.Shape{4})
	b.Fill(0.5)

	sum, err := engine.Add(a, b)
	if err != nil {
		panic(err)
	}
	fmt.Println(engine.Backend().Name(), sum)
	// Output: cpu NDArray[2 2][2 2 2 2]
}
