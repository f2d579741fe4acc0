// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blas provides an ndarray backend built on gonum's float32 BLAS.
//
// Add and Subtract are exact. Multiply uses Gemm, whose summation order
// may differ from ndarray.Reference, so results can differ in the last
// bits of each element.
package blas

import (
	internalblas "github.com/born-ml/fastmath/internal/backend/blas"
	"github.com/born-ml/fastmath/ndarray"
)

// Backend represents the BLAS backend implementation.
type Backend = internalblas.Backend

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)

// New creates a BLAS backend.
func New() *Backend {
	return internalblas.New()
}

// Dot returns the inner product of a and b.
func Dot(a, b []float32) float32 {
	return internalblas.Dot(a, b)
}
