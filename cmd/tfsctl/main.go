// Command tfsctl is a thin driver around the tfs library: it replays
// operation scripts, serves Prometheus metrics for a long-running
// instance, and runs a concurrency stress test. None of this is part
// of the filesystem engine itself; it exists only to exercise it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
