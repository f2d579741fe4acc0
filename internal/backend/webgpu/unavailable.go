//go:build !windows

package webgpu

import "github.com/born-ml/fastmath/internal/ndarray"

// Backend is a placeholder on platforms without the WebGPU binding.
// Every kernel returns ErrUnavailable.
type Backend struct{}

// New always returns ErrUnavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false on this platform.
func IsAvailable() bool {
	return false
}

// Release is a no-op.
func (b *Backend) Release() {}

// PoolStats returns zero stats.
func (b *Backend) PoolStats() PoolStats {
	return PoolStats{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "webgpu"
}

// Device returns the compute device.
func (b *Backend) Device() ndarray.Device {
	return ndarray.WebGPU
}

// Add returns ErrUnavailable.
func (b *Backend) Add(_, _, _ []float32) error {
	return ErrUnavailable
}

// Sub returns ErrUnavailable.
func (b *Backend) Sub(_, _, _ []float32) error {
	return ErrUnavailable
}

// MatMul returns ErrUnavailable.
func (b *Backend) MatMul(_, _, _ []float32, _, _, _ int) error {
	return ErrUnavailable
}

var _ ndarray.Backend = (*Backend)(nil)
