package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

// InterruptContext is cancelled on SIGINT/SIGTERM. On a signal the
// unfinished *_tmp folders under outputDir are removed; calling the returned
// stop func ends the watch without cleaning.
func InterruptContext(parent context.Context, outputDir string, w io.Writer) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	finished := make(chan struct{})

	go func() {
		select {
		case <-finished:
			return
		case <-ctx.Done():
		}

		select {
		case <-finished:
			return
		default:
		}
		if parent.Err() != nil {
			return
		}

		fmt.Fprintln(w, "\nInterrupt received. Cleaning up...")
		CleanupUnfinishedTempFolders(outputDir, w)
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() { close(finished) })
		stop()
	}
}

func CleanupUnfinishedTempFolders(outputDir string, w io.Writer) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !strings.HasSuffix(name, "_tmp") {
			continue
		}

		full := filepath.Join(outputDir, name)
		if err := os.RemoveAll(full); err != nil {
			fmt.Fprintf(w, "Error cleaning up %s: %v\n", full, err)
		} else {
			fmt.Fprintf(w, "Removed %s\n", full)
		}
	}
}

func CleanupFolder(folder string) {
	_ = os.RemoveAll(folder)
}
