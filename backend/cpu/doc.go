// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for ndarray operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Goroutine-parallel element-wise kernels
//   - Row-banded parallel matrix multiply
//
// Results are bit-identical to ndarray.Reference because every output
// element is accumulated in the same order.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fastmath/backend/cpu"
//	    "github.com/born-ml/fastmath/ndarray"
//	)
//
//	func main() {
//	    engine := ndarray.NewEngine(ndarray.WithBackend(cpu.New()))
//	    sum, err := engine.Add(a, b)
//	}
//
// Small inputs run on the calling goroutine; spawning workers only pays
// off once the buffers reach a few thousand elements.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. It holds only its
// configuration and never shares mutable state between calls.
package cpu
