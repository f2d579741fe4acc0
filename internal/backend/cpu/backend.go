// Package cpu implements a multi-core CPU backend.
//
// Results are bit-identical to the reference backend: work is split by
// output position only, and every output element is computed with the same
// operation order.
package cpu

import (
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/born-ml/fastmath/internal/parallel"
)

// elementwiseChunk keeps element-wise goroutines busy long enough to cover
// their start-up cost.
const elementwiseChunk = 16 * 1024

// CPUBackend runs kernels on all available cores.
type CPUBackend struct {
	cfg parallel.Config
}

// New creates a CPU backend with parallel.DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() ndarray.Device {
	return ndarray.CPU
}

// Config returns the worker configuration.
func (cpu *CPUBackend) Config() parallel.Config {
	return cpu.cfg
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(dst, a, b []float32) error {
	parallel.ForRange(len(dst), func(start, end int) {
		addRange(dst[start:end], a[start:end], b[start:end])
	}, cpu.elementwiseConfig())
	return nil
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(dst, a, b []float32) error {
	parallel.ForRange(len(dst), func(start, end int) {
		subRange(dst[start:end], a[start:end], b[start:end])
	}, cpu.elementwiseConfig())
	return nil
}

func (cpu *CPUBackend) elementwiseConfig() parallel.Config {
	cfg := cpu.cfg
	cfg.MinChunkSize = max(cfg.MinChunkSize, elementwiseChunk)
	return cfg
}

func addRange(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subRange(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// Compile-time check that CPUBackend implements ndarray.Backend.
var _ ndarray.Backend = (*CPUBackend)(nil)
