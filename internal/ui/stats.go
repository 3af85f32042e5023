package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/komikcast/internal/util"
)

type Stats struct {
	Chapters atomic.Int64
	Pages    atomic.Int64
	Skipped  atomic.Int64
	Failed   atomic.Int64
	Bytes    atomic.Int64
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w, "Download Summary:")
	fmt.Fprintf(w, "Chapters: %d\n", s.Chapters.Load())
	fmt.Fprintf(w, "Pages:    %d\n", s.Pages.Load())
	if n := s.Skipped.Load(); n > 0 {
		fmt.Fprintf(w, "Skipped:  %d\n", n)
	}
	if n := s.Failed.Load(); n > 0 {
		fmt.Fprintf(w, "Failed:   %d\n", n)
	}
	fmt.Fprintf(w, "Data:     %s\n", util.Human(s.Bytes.Load()))
	fmt.Fprintf(w, "Time:     %s\n", elapsed.Round(time.Second))
}
