package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/fastmath/internal/bench"
	"github.com/born-ml/fastmath/internal/ndarray"
	"github.com/evilsocket/islazy/log"
)

type checkOptions struct {
	backend string
	strict  bool
	workers int
	open    backendOpener
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	lf := registerLogFlags(fs)
	opts := checkOptions{open: openBackend}
	fs.StringVar(&opts.backend, "backend", "reference", "Backend to check: reference, cpu, blas or webgpu.")
	fs.BoolVar(&opts.strict, "strict", false, "Require equal shapes for add and subtract.")
	fs.IntVar(&opts.workers, "workers", 0, "CPU backend goroutines, 0 for one per CPU.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	teardown, err := setupLogging(lf)
	if err != nil {
		return err
	}
	defer teardown()

	if err := check(opts, os.Stdout); err != nil {
		log.Error("%v", err)
		return err
	}
	return nil
}

// check runs the conformance routine on one backend and prints the product.
func check(opts checkOptions, w io.Writer) error {
	if !isKnownBackend(opts.backend) {
		return fmt.Errorf("%w %q", errUnknownBackend, opts.backend)
	}

	backend, release, err := opts.open(opts.backend, opts.workers)
	if err != nil {
		return fmt.Errorf("cannot open backend %s: %w", opts.backend, err)
	}
	defer release()

	engineOpts := []ndarray.Option{ndarray.WithBackend(backend)}
	if opts.strict {
		engineOpts = append(engineOpts, ndarray.WithStrictShapes())
	}

	log.Debug("checking backend %s on %s", backend.Name(), backend.Device())
	m, err := bench.Check(ndarray.NewEngine(engineOpts...))
	if err != nil {
		return fmt.Errorf("%s: %w", backend.Name(), err)
	}

	log.Info("%s: check passed, product %v", backend.Name(), m.Shape())
	return bench.WriteGrid(w, m)
}
