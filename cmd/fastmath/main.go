// Package main provides the fastmath CLI.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0-dev"

func usage(w io.Writer) {
	fmt.Fprintf(w, "fastmath %s - n-dimensional float32 arrays for Go\n\n", version)
	fmt.Fprintln(w, "Usage: fastmath <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  check      Run the conformance check on one backend")
	fmt.Fprintln(w, "  bench      Time the scalar baseline and the array workload per backend")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'fastmath <command> -h' for the flags of a command.")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "version":
		fmt.Printf("fastmath %s\n", version)
	case "check":
		err = runCheck(args)
	case "bench":
		err = runBench(args)
	case "help", "-h", "-help", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}

	// The commands have released their backends and closed the log by now.
	if err != nil {
		os.Exit(1)
	}
}
