package bench

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/sirupsen/logrus"
)

// ctxCheckInterval is how many iterations run between context checks.
const ctxCheckInterval = 1024

// Target is a named workload to time.
type Target struct {
	Name       string
	Backend    string
	Iterations int
	Workload   Workload
}

// Result holds the measurements for one target.
type Result struct {
	Name       string
	Backend    string
	Iterations int
	Elapsed    time.Duration
	AllocBytes uint64
	Mallocs    uint64
}

// PerOp returns the mean duration of one iteration.
func (r Result) PerOp() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

// Runner times targets one after another.
type Runner struct {
	cfg Config
	log logrus.FieldLogger
}

// NewRunner creates a runner. A nil logger uses the logrus standard logger.
func NewRunner(cfg Config, log logrus.FieldLogger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// Config returns the runner configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// ScalarTarget times add with the configured scalar iteration count.
func (r *Runner) ScalarTarget(name string, add func(int, int) int) Target {
	return Target{
		Name:       name,
		Iterations: r.cfg.ScalarIterations,
		Workload:   NewScalarWorkload(add),
	}
}

// ArrayTarget times the array workload on engine's backend.
func (r *Runner) ArrayTarget(name string, engine *ndarray.Engine) Target {
	return Target{
		Name:       name,
		Backend:    engine.Backend().Name(),
		Iterations: r.cfg.Iterations,
		Workload:   NewArrayWorkload(engine, r.cfg.Size),
	}
}

// Run times each target in order. It stops at the first workload error or
// when ctx is done, returning the results gathered so far.
func (r *Runner) Run(ctx context.Context, targets []Target) ([]Result, error) {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		res, err := r.runOne(ctx, t)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, t Target) (Result, error) {
	log := r.log.WithFields(logrus.Fields{
		"workload":   t.Name,
		"backend":    t.Backend,
		"iterations": t.Iterations,
	})
	log.Debug("starting")

	if r.cfg.CollectGarbage {
		runtime.GC()
		runtime.GC()
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i := 0; i < t.Iterations; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("%s: interrupted after %d iterations: %w", t.Name, i, err)
			}
		}
		if err := t.Workload.Run(); err != nil {
			return Result{}, fmt.Errorf("%s on %s: iteration %d: %w", t.Name, t.Backend, i, err)
		}
	}
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)

	res := Result{
		Name:       t.Name,
		Backend:    t.Backend,
		Iterations: t.Iterations,
		Elapsed:    elapsed,
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
		Mallocs:    after.Mallocs - before.Mallocs,
	}

	log.WithFields(logrus.Fields{
		"elapsed": res.Elapsed,
		"per_op":  res.PerOp(),
	}).Info("finished")

	return res, nil
}
