package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/fastmath/internal/backend/webgpu"
	"github.com/born-ml/fastmath/internal/bench"
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/evilsocket/islazy/log"
	"github.com/sirupsen/logrus"
)

type benchOptions struct {
	backends string
	workers  int
	plotFile string
	cfg      bench.Config
	open     backendOpener
}

func runBench(args []string) error {
	opts := benchOptions{cfg: bench.DefaultConfig(), open: openBackend}
	var noGC bool

	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	lf := registerLogFlags(fs)
	fs.StringVar(&opts.backends, "backends", "reference,cpu,blas", "Comma separated backends to time.")
	fs.IntVar(&opts.cfg.Iterations, "iterations", opts.cfg.Iterations, "Array workload repetitions per backend.")
	fs.IntVar(&opts.cfg.ScalarIterations, "scalar-iterations", opts.cfg.ScalarIterations, "Scalar workload repetitions.")
	fs.IntVar(&opts.cfg.Size, "size", opts.cfg.Size, "Edge length of the square arrays.")
	fs.IntVar(&opts.workers, "workers", 0, "CPU backend goroutines, 0 for one per CPU.")
	fs.StringVar(&opts.plotFile, "plot", "", "If filled, save a bar chart of the timings to this file.")
	fs.BoolVar(&noGC, "no-gc", false, "Do not collect garbage before each run.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	opts.cfg.CollectGarbage = !noGC

	teardown, err := setupLogging(lf)
	if err != nil {
		return err
	}
	defer teardown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := benchmark(ctx, opts, os.Stdout); err != nil {
		log.Error("%v", err)
		return err
	}
	return nil
}

// benchmark times the scalar baseline and the array workload on every
// selected backend, then prints a table and optionally saves a chart.
func benchmark(ctx context.Context, opts benchOptions, w io.Writer) error {
	names, err := parseBackends(opts.backends)
	if err != nil {
		return err
	}

	runner, err := bench.NewRunner(opts.cfg, logrus.StandardLogger())
	if err != nil {
		return err
	}

	log.Info("fastmath %s on %s", version, bench.SystemSummary())

	targets := []bench.Target{runner.ScalarTarget("add", bench.AddInts)}
	for _, name := range names {
		backend, release, err := opts.open(name, opts.workers)
		if errors.Is(err, webgpu.ErrUnavailable) {
			log.Warning("skipping %s: %v", name, err)
			continue
		} else if err != nil {
			return fmt.Errorf("cannot open backend %s: %w", name, err)
		}
		defer release()

		targets = append(targets, runner.ArrayTarget("ndarray", ndarray.NewEngine(ndarray.WithBackend(backend))))
	}

	results, err := runner.Run(ctx, targets)
	if len(results) > 0 {
		bench.WriteTable(w, results)
	}
	if err != nil {
		return err
	}

	if opts.plotFile != "" {
		if err := bench.SavePlot(results, opts.plotFile, "fastmath "+version); err != nil {
			return err
		}
		log.Info("chart saved to %s", opts.plotFile)
	}
	return nil
}
