package ndarray

// Device represents the compute device a backend runs on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Backend executes the numeric kernels behind Add, Subtract and Multiply.
//
// Operands are validated and the destination is allocated before a backend
// is called, so implementations may assume:
//   - Add/Sub: len(dst) == len(a) == len(b)
//   - MatMul: len(a) == m*k, len(b) == k*n, len(dst) == m*n
//
// MatMul computes the row-major product dst[m×n] = a[m×k] · b[k×n].
// Implementations must only write to dst.
type Backend interface {
	Name() string
	Device() Device

	Add(dst, a, b []float32) error
	Sub(dst, a, b []float32) error
	MatMul(dst, a, b []float32, m, k, n int) error
}

type reference struct{}

// Reference returns the serial backend. Every other backend is checked
// against it.
func Reference() Backend {
	return reference{}
}

func (reference) Name() string {
	return "reference"
}

func (reference) Device() Device {
	return CPU
}

func (reference) Add(dst, a, b []float32) error {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
	return nil
}

func (reference) Sub(dst, a, b []float32) error {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
	return nil
}

func (reference) MatMul(dst, a, b []float32, m, k, n int) error {
	MatMulRows(dst, a, b, 0, m, k, n)
	return nil
}

// MatMulRows computes output rows [rowStart, rowEnd) of dst = a · b.
// Each element is accumulated in increasing k, so any partition of the rows
// produces bit-identical results.
func MatMulRows(dst, a, b []float32, rowStart, rowEnd, k, n int) {
	for r := rowStart; r < rowEnd; r++ {
		for c := 0; c < n; c++ {
			var sum float32
			for v := 0; v < k; v++ {
				sum += a[v+r*k] * b[c+v*n]
			}
			dst[c+r*n] = sum
		}
	}
}
