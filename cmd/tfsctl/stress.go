package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tfs-go/tfs/tfs"
)

var (
	workers  int
	scenario string
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Hammer a shared filesystem with concurrent goroutines",
	RunE:  runStress,
}

func init() {
	stressCmd.Flags().IntVar(&workers, "workers", 8, "number of concurrent goroutines")
	stressCmd.Flags().StringVar(&scenario, "scenario", "handles", "handles (distinct open-file handles) or writers (concurrent same-block writes)")
}

func runStress(cmd *cobra.Command, args []string) error {
	fs, err := tfs.New()
	if err != nil {
		return fmt.Errorf("tfs.New: %w", err)
	}
	defer fs.Close()

	switch scenario {
	case "handles":
		return stressDistinctHandles(fs)
	case "writers":
		return stressConcurrentWriters(fs)
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
}

// stressDistinctHandles is the goroutine analogue of thread_1.c: every
// worker opens the same pre-created file and collects its own handle.
// Unlike the C test it doesn't need a separate mutex to guard a shared
// array — each goroutine just returns its handle to the caller.
func stressDistinctHandles(fs *tfs.Filesystem) error {
	const path = "/stress_handles"
	h, err := fs.Open(path, tfs.Creat)
	if err != nil {
		return err
	}
	if err := fs.CloseHandle(h); err != nil {
		return err
	}

	handles := make([]int, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			h, err := fs.Open(path, 0)
			if err != nil {
				return err
			}
			handles[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	seen := make(map[int]bool, workers)
	for _, h := range handles {
		if seen[h] {
			return fmt.Errorf("duplicate handle %d returned to two workers", h)
		}
		seen[h] = true
	}
	fmt.Printf("[ tfs_stress ] %d workers, %d distinct handles\n", workers, len(seen))

	for _, h := range handles {
		if err := fs.CloseHandle(h); err != nil {
			return err
		}
	}
	return nil
}

// stressConcurrentWriters is the goroutine analogue of thread_2.c:
// every worker writes BlockSize bytes of its own fill character into a
// shared file opened once per worker, all targeting the first block.
func stressConcurrentWriters(fs *tfs.Filesystem) error {
	const path = "/stress_writers"
	h0, err := fs.Open(path, tfs.Creat)
	if err != nil {
		return err
	}
	if err := fs.CloseHandle(h0); err != nil {
		return err
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		fill := byte('A' + i%26)
		g.Go(func() error {
			h, err := fs.Open(path, 0)
			if err != nil {
				return err
			}
			defer fs.CloseHandle(h)
			buf := make([]byte, 1024)
			for j := range buf {
				buf[j] = fill
			}
			_, err = fs.Write(h, buf)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("[ tfs_stress ] %d workers wrote concurrently to %s\n", workers, path)
	return nil
}
