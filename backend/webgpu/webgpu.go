// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated ndarray
// operations.
//
// Kernels are WGSL compute shaders dispatched through go-webgpu. The
// binding is built on windows; on other platforms New returns
// ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/fastmath/backend/webgpu"
//	    "github.com/born-ml/fastmath/ndarray"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    engine := ndarray.NewEngine(ndarray.WithBackend(gpu))
//	    c, err := engine.Multiply(a, b)
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/fastmath/internal/backend/webgpu"
	"github.com/born-ml/fastmath/ndarray"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// ErrUnavailable is returned by New when no WebGPU adapter can be used.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// Call Release() when done to free GPU resources. Returns an error
// wrapping ErrUnavailable if no compatible GPU is present.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	var backend ndarray.Backend = cpu.New()
//	if webgpu.IsAvailable() {
//	    if gpu, err := webgpu.New(); err == nil {
//	        defer gpu.Release()
//	        backend = gpu
//	    }
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
