package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/fastmath/internal/bench"
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/evilsocket/islazy/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroProduct leaves every product element at zero.
type zeroProduct struct {
	ndarray.Backend
}

func (zeroProduct) MatMul(_, _, _ []float32, _, _, _ int) error {
	return nil
}

// countingOpener wraps openBackend and counts release calls.
func countingOpener(released *int, wrap func(ndarray.Backend) ndarray.Backend) backendOpener {
	return func(name string, workers int) (ndarray.Backend, func(), error) {
		b, release, err := openBackend(name, workers)
		if err != nil {
			return nil, release, err
		}
		if wrap != nil {
			b = wrap(b)
		}
		return b, func() {
			*released++
			release()
		}, nil
	}
}

func smallBenchConfig() bench.Config {
	cfg := bench.DefaultConfig()
	cfg.Iterations = 5
	cfg.ScalarIterations = 100
	cfg.CollectGarbage = false
	return cfg
}

func TestCheck_WritesProduct(t *testing.T) {
	var buf bytes.Buffer
	err := check(checkOptions{backend: "cpu", open: openBackend}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "50 60\n114 140\n178 220\n", buf.String())
}

func TestCheck_ReleasesBackendOnFailure(t *testing.T) {
	released := 0
	opts := checkOptions{
		backend: "reference",
		open: countingOpener(&released, func(b ndarray.Backend) ndarray.Backend {
			return zeroProduct{b}
		}),
	}

	var buf bytes.Buffer
	err := check(opts, &buf)
	require.ErrorIs(t, err, bench.ErrCheckFailed)
	assert.Equal(t, 1, released)
	assert.Empty(t, buf.String())
}

func TestRunCheck_ReturnsErrorAndClosesLog(t *testing.T) {
	prevOutput := log.Output
	path := filepath.Join(t.TempDir(), "fastmath.log")

	err := runCheck([]string{"-backend", "cuda", "-log-file", path})
	require.ErrorIs(t, err, errUnknownBackend)
	assert.Equal(t, prevOutput, log.Output)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unknown backend")
}

func TestRunCheck_HelpIsNotAnError(t *testing.T) {
	assert.NoError(t, runCheck([]string{"-h"}))
	assert.Error(t, runCheck([]string{"-no-such-flag"}))
}

func TestBenchmark_ReleasesBackends(t *testing.T) {
	released := 0
	opts := benchOptions{
		backends: "reference,cpu",
		cfg:      smallBenchConfig(),
		open:     countingOpener(&released, nil),
	}

	var buf bytes.Buffer
	require.NoError(t, benchmark(context.Background(), opts, &buf))
	assert.Equal(t, 2, released)
	assert.Contains(t, buf.String(), "ndarray")
	assert.Contains(t, buf.String(), "cpu")
}

func TestBenchmark_ReleasesBackendsWhenInterrupted(t *testing.T) {
	released := 0
	opts := benchOptions{
		backends: "reference,blas",
		cfg:      smallBenchConfig(),
		open:     countingOpener(&released, nil),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := benchmark(ctx, opts, &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, released)
}

func TestBenchmark_WritesPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.png")
	opts := benchOptions{
		backends: "reference",
		plotFile: path,
		cfg:      smallBenchConfig(),
		open:     openBackend,
	}

	var buf bytes.Buffer
	require.NoError(t, benchmark(context.Background(), opts, &buf))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunBench_InvalidConfig(t *testing.T) {
	err := runBench([]string{"-iterations", "0", "-backends", "reference"})
	assert.ErrorIs(t, err, bench.ErrInvalidConfig)
}
