// Package blas implements a backend on top of gonum's blas32 routines.
//
// Add and Sub are exact. MatMul goes through Sgemm, which may reorder the
// inner-product accumulation, so products agree with the reference backend
// within float32 rounding rather than bit for bit.
package blas

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/fastmath/internal/ndarray"
)

// Backend runs kernels through blas32.
type Backend struct{}

// New creates a BLAS backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (*Backend) Name() string {
	return "blas32"
}

// Device returns the compute device.
func (*Backend) Device() ndarray.Device {
	return ndarray.CPU
}

// Add computes dst = a + b as dst = a; dst += 1*b.
func (bk *Backend) Add(dst, a, b []float32) error {
	return bk.axpy(dst, a, b, 1)
}

// Sub computes dst = a - b as dst = a; dst += -1*b.
func (bk *Backend) Sub(dst, a, b []float32) error {
	return bk.axpy(dst, a, b, -1)
}

func (*Backend) axpy(dst, a, b []float32, alpha float32) error {
	copy(dst, a)
	if len(dst) == 0 {
		return nil
	}
	blas32.Axpy(alpha, wrap(b), wrap(dst))
	return nil
}

// MatMul computes dst[m×n] = a[m×k] · b[k×n] with Sgemm.
func (*Backend) MatMul(dst, a, b []float32, m, k, n int) error {
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		clear(dst)
		return nil
	}

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(a, m, k),
		general(b, k, n),
		0,
		general(dst, m, n))
	return nil
}

// Dot returns the inner product of two equally sized vectors.
func Dot(a, b []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	return blas32.Dot(wrap(a), wrap(b))
}

func wrap(data []float32) blas32.Vector {
	return blas32.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

func general(data []float32, rows, cols int) blas32.General {
	return blas32.General{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   data,
	}
}

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)
