// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/fastmath/internal/backend/cpu"
	"github.com/born-ml/fastmath/internal/parallel"
	"github.com/born-ml/fastmath/ndarray"
)

// Backend represents the CPU backend implementation.
//
// Element-wise kernels split the buffer across goroutines and the matrix
// multiply gives each goroutine a band of output rows.
type Backend = internalcpu.CPUBackend

// Config controls how many goroutines the backend uses.
type Config = parallel.Config

// Compile-time check that Backend implements ndarray.Backend.
var _ ndarray.Backend = (*Backend)(nil)

// New creates a CPU backend with one worker per CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/fastmath/backend/cpu"
//	    "github.com/born-ml/fastmath/ndarray"
//	)
//
//	func main() {
//	    engine := ndarray.NewEngine(ndarray.WithBackend(cpu.New()))
//	    c, err := engine.Multiply(a, b)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit worker settings.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns worker settings based on the CPU count.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Sequential returns settings that keep every kernel on the calling goroutine.
func Sequential() Config {
	return parallel.Sequential()
}
