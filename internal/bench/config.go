// Package bench times the array operations and a scalar baseline in tight
// loops and reports the results.
package bench

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid bench config")

// Config controls a benchmark run.
type Config struct {
	Iterations       int  // Array workload repetitions per target.
	ScalarIterations int  // Scalar workload repetitions.
	Size             int  // Edge length of the square arrays in the array workload.
	CollectGarbage   bool // Run the GC before each timed target.
}

// DefaultConfig matches the classic driver: 10k array rounds on 4x4
// arrays and 500k scalar additions.
func DefaultConfig() Config {
	return Config{
		Iterations:       10000,
		ScalarIterations: 500000,
		Size:             4,
		CollectGarbage:   true,
	}
}

// Validate checks that every count is positive.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be > 0, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.ScalarIterations <= 0 {
		return fmt.Errorf("%w: scalar iterations must be > 0, got %d", ErrInvalidConfig, c.ScalarIterations)
	}
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be > 0, got %d", ErrInvalidConfig, c.Size)
	}
	return nil
}
