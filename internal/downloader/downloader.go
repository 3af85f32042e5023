package downloader

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/komikcast/internal/providers"
)

// Progress receives page counts and byte totals while a chapter downloads.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type nopProgress struct{}

func (nopProgress) Update(int, int, int64) {}
func (nopProgress) MarkDone()              {}

type Options struct {
	Workers    int
	SkipBroken bool
	// AllowExt limits pages to these extensions; empty allows everything.
	AllowExt []string
	Attempts int
	Backoff  time.Duration
}

type Downloader struct {
	client *http.Client
	opts   Options
	allow  map[string]bool
}

func New(c *http.Client, opts Options) *Downloader {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Attempts < 1 {
		opts.Attempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}

	allow := map[string]bool{}
	for _, ext := range opts.AllowExt {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			allow[ext] = true
		}
	}

	return &Downloader{client: c, opts: opts, allow: allow}
}

// Result lists the written files in page order.
type Result struct {
	Files   []string
	Bytes   int64
	Skipped int
	Failed  int
}

func pageExt(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	return strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
}

func (d *Downloader) allowed(ext string) bool {
	if len(d.allow) == 0 {
		return true
	}

	return d.allow[ext]
}

type chapterState struct {
	mu     sync.Mutex
	done   int
	total  int
	bytes  int64
	failed []error
	ph     Progress
}

func (cs *chapterState) page(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if err != nil {
		cs.failed = append(cs.failed, err)
	}
	cs.done++
	cs.ph.Update(cs.done, cs.total, cs.bytes)
}

func (cs *chapterState) addBytes(n int64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.bytes += n
	cs.ph.Update(cs.done, cs.total, cs.bytes)
}

// Pages downloads every page into folder as page_NNN.<ext>, using referer
// for the Referer header. Pages with a disallowed extension are skipped.
func (d *Downloader) Pages(
	ctx context.Context,
	pages []providers.ReadPage,
	folder string,
	referer string,
	ph Progress,
) (Result, error) {
	if ph == nil {
		ph = nopProgress{}
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return Result{}, err
	}

	total := len(pages)
	workers := min(d.opts.Workers, max(total, 1))

	cs := &chapterState{total: total, ph: ph}
	ph.Update(0, total, 0)

	files := make([]string, total)
	skipped := make([]bool, total)

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			u := strings.TrimSpace(pages[i].URL)
			ext := pageExt(u)

			if u == "" || !d.allowed(ext) {
				skipped[i] = true
				cs.page(nil)
				continue
			}

			if ext == "" {
				ext = "jpg"
			}
			out := filepath.Join(folder, fmt.Sprintf("page_%03d.%s", i+1, ext))

			if err := d.downloadWithRetry(ctx, u, out, referer, cs.addBytes); err != nil {
				cs.page(fmt.Errorf("page %d: %w", i+1, err))
				continue
			}

			files[i] = out
			cs.page(nil)
		}
	}

	wg.Add(workers)
	for range workers {
		go worker()
	}

	var ctxErr error
feed:
	for i := range pages {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	ph.MarkDone()

	res := Result{Bytes: cs.bytes, Failed: len(cs.failed)}
	for i, f := range files {
		if f != "" {
			res.Files = append(res.Files, f)
		}
		if skipped[i] {
			res.Skipped++
		}
	}

	if ctxErr != nil {
		return res, ctxErr
	}
	if res.Failed > 0 && !d.opts.SkipBroken {
		return res, fmt.Errorf("failed %d/%d pages (use --skip-broken to continue): %w", res.Failed, total, cs.failed[0])
	}

	return res, nil
}

func (d *Downloader) downloadWithRetry(
	ctx context.Context,
	u, output, referer string,
	progress func(n int64),
) error {
	var err error
	for attempt := 1; attempt <= d.opts.Attempts; attempt++ {
		var got int64
		err = d.download(ctx, u, output, referer, func(n int64) {
			got += n
			progress(n)
		})
		if err == nil {
			return nil
		}
		// a failed attempt's bytes are not part of the result
		if got > 0 {
			progress(-got)
		}
		if attempt == d.opts.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.opts.Backoff):
		}
	}

	return err
}

func (d *Downloader) download(
	ctx context.Context,
	u, output, referer string,
	progress func(n int64),
) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = copyWithProgress(f, resp.Body, progress)
	return err
}
