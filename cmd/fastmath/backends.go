package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/fastmath/internal/backend/blas"
	"github.com/born-ml/fastmath/internal/backend/cpu"
	"github.com/born-ml/fastmath/internal/backend/webgpu"
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/born-ml/fastmath/internal/parallel"
	"github.com/evilsocket/islazy/str"
)

var errUnknownBackend = errors.New("unknown backend")

var backendNames = []string{"reference", "cpu", "blas", "webgpu"}

func noRelease() {}

// parseBackends splits a comma separated backend list, dropping duplicates.
func parseBackends(csv string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, name := range str.Comma(strings.ToLower(csv)) {
		if !isKnownBackend(name) {
			return nil, fmt.Errorf("%w %q (want one of %s)", errUnknownBackend, name, strings.Join(backendNames, ", "))
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no backend selected")
	}
	return names, nil
}

func isKnownBackend(name string) bool {
	for _, known := range backendNames {
		if name == known {
			return true
		}
	}
	return false
}

// workerConfig maps the -workers flag onto a parallel config: 0 keeps the
// per-CPU default and 1 runs sequentially.
func workerConfig(workers int) parallel.Config {
	cfg := parallel.DefaultConfig()
	switch {
	case workers == 1:
		cfg = parallel.Sequential()
	case workers > 1:
		cfg.Enabled = true
		cfg.NumWorkers = workers
	}
	return cfg
}

// backendOpener creates a backend by name along with its release func.
type backendOpener func(name string, workers int) (ndarray.Backend, func(), error)

// openBackend creates the named backend. The returned release func must be
// called once the backend is no longer used.
func openBackend(name string, workers int) (ndarray.Backend, func(), error) {
	switch name {
	case "reference":
		return ndarray.Reference(), noRelease, nil
	case "cpu":
		return cpu.NewWithConfig(workerConfig(workers)), noRelease, nil
	case "blas":
		return blas.New(), noRelease, nil
	case "webgpu":
		b, err := webgpu.New()
		if err != nil {
			return nil, noRelease, err
		}
		return b, b.Release, nil
	default:
		return nil, noRelease, fmt.Errorf("%w %q", errUnknownBackend, name)
	}
}
