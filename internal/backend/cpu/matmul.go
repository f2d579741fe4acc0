package cpu

import (
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/born-ml/fastmath/internal/parallel"
)

// MatMul performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N), row-major.
// Output rows are distributed across workers; each worker owns a disjoint
// range of dst.
func (cpu *CPUBackend) MatMul(dst, a, b []float32, m, k, n int) error {
	cfg := cpu.cfg
	// A row costs k*n multiply-adds; small products stay on one goroutine.
	if k*n > 0 {
		cfg.MinChunkSize = max(1, cfg.MinChunkSize/(k*n))
	}
	if m*k*n < elementwiseChunk {
		cfg = parallel.Sequential()
	}

	parallel.ForRange(m, func(start, end int) {
		ndarray.MatMulRows(dst, a, b, start, end, k, n)
	}, cfg)
	return nil
}
