// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides dense n-dimensional float32 arrays with
// element-wise add and subtract and a matrix multiply.
//
// # Overview
//
// An NDArray owns one contiguous float32 buffer and a Shape. Dimension 0
// varies fastest: element (i0, i1, ..., ik) lives at offset
// i0 + s0*(i1 + s1*(i2 + ...)). For 2-D arrays this reads as
// (column, row), so Shape{3, 4} has 3 columns and 4 rows.
//
// # Basic Usage
//
//	import "github.com/born-ml/fastmath/ndarray"
//
//	func main() {
//	    a := ndarray.MustNew(ndarray.Shape{3, 4})
//	    a.Fill(1.0)
//
//	    b := ndarray.MustNew(a.Shape())
//	    b.Fill(2.0)
//
//	    c, err := ndarray.Subtract(a, b) // every element is -1
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(c.At(0, 0))
//	}
//
// # Backends
//
// Operations run on a Backend chosen per Engine. The package-level Add,
// Subtract and Multiply use the serial reference backend. Faster kernels
// live in backend/cpu (goroutine parallel), backend/blas (gonum BLAS) and
// backend/webgpu (GPU compute shaders):
//
//	engine := ndarray.NewEngine(ndarray.WithBackend(cpu.New()))
//	product, err := engine.Multiply(lhs, rhs)
//
// # Shape Rules
//
// Add and Subtract require operands with the same number of elements and
// return an array shaped like the left operand. WithStrictShapes makes
// them require identical shapes instead.
//
// Multiply treats a 2-D array of Shape{cols, rows} as a rows×cols matrix
// and a 1-D array of Shape{n} as a single row. The left operand's column
// count must equal the right operand's row count; the result has Shape
// {rhs columns, lhs rows}.
//
// # Errors
//
// Failures are reported with the sentinel errors of this package, wrapped
// with context. Use errors.Is to test for them and errors.As to extract
// an *IndexError or *ConversionError.
//
// # Thread Safety
//
// An NDArray is not safe for concurrent mutation. Operations never
// modify their operands, so any number of goroutines may read the same
// arrays while computing new ones.
package ndarray
