package downloader

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/brogergvhs/komikcast/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProgress struct {
	mu      sync.Mutex
	updates int
	done    bool
	last    [2]int
	bytes   int64
}

func (p *countingProgress) Update(done, total int, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.last = [2]int{done, total}
	p.bytes = bytes
}

func (p *countingProgress) MarkDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = true
}

func imageServer(t *testing.T) (*httptest.Server, chan string) {
	t.Helper()

	referers := make(chan string, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referers <- r.Header.Get("Referer")
		switch r.URL.Path {
		case "/missing.jpg":
			http.NotFound(w, r)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(bytes.Repeat([]byte{0xff}, 100))
		}
	}))
	t.Cleanup(srv.Close)

	return srv, referers
}

func TestPagesWritesInOrder(t *testing.T) {
	srv, referers := imageServer(t)
	dir := t.TempDir()

	d := New(srv.Client(), Options{Workers: 3, AllowExt: []string{"jpg", "png"}})
	ph := &countingProgress{}

	pages := []providers.ReadPage{
		{URL: srv.URL + "/1.jpg"},
		{URL: srv.URL + "/2.png?v=3"},
		{URL: srv.URL + "/anim.gif"},
		{URL: ""},
		{URL: srv.URL + "/5.jpg"},
	}

	res, err := d.Pages(context.Background(), pages, dir, "https://site.test/chapter/x/", ph)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "page_001.jpg"),
		filepath.Join(dir, "page_002.png"),
		filepath.Join(dir, "page_005.jpg"),
	}, res.Files)
	assert.Equal(t, int64(300), res.Bytes)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	assert.True(t, ph.done)
	assert.Equal(t, [2]int{5, 5}, ph.last)

	for range 3 {
		assert.Equal(t, "https://site.test/chapter/x/", <-referers)
	}

	b, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Len(t, b, 100)
}

func TestPagesFailures(t *testing.T) {
	srv, _ := imageServer(t)
	pages := []providers.ReadPage{
		{URL: srv.URL + "/1.jpg"},
		{URL: srv.URL + "/missing.jpg"},
		{URL: srv.URL + "/page.html"},
	}

	strict := New(srv.Client(), Options{Workers: 2, Attempts: 1, Backoff: time.Millisecond})
	res, err := strict.Pages(context.Background(), pages, t.TempDir(), "", nil)
	require.Error(t, err)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, res.Files, 1)

	lenient := New(srv.Client(), Options{Workers: 2, Attempts: 2, Backoff: time.Millisecond, SkipBroken: true})
	res, err = lenient.Pages(context.Background(), pages, t.TempDir(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, res.Files, 1)
}

func TestPagesRetryDoesNotCountFailedAttempt(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", "100")
		if first {
			// cut the body short so the client sees an unexpected EOF
			_, _ = w.Write(bytes.Repeat([]byte{0xff}, 50))
			return
		}
		_, _ = w.Write(bytes.Repeat([]byte{0xff}, 100))
	}))
	t.Cleanup(srv.Close)

	ph := &countingProgress{}
	d := New(srv.Client(), Options{Workers: 1, Attempts: 2, Backoff: time.Millisecond})

	res, err := d.Pages(context.Background(), []providers.ReadPage{{URL: srv.URL + "/1.jpg"}}, t.TempDir(), "", ph)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
	assert.Equal(t, int64(100), res.Bytes)
	assert.Equal(t, int64(100), ph.bytes)

	b, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	assert.Len(t, b, 100)
}

func TestPagesFailedPageAddsNoBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write(bytes.Repeat([]byte{0xff}, 30))
	}))
	t.Cleanup(srv.Close)

	d := New(srv.Client(), Options{Workers: 1, Attempts: 2, Backoff: time.Millisecond, SkipBroken: true})
	res, err := d.Pages(context.Background(), []providers.ReadPage{{URL: srv.URL + "/1.jpg"}}, t.TempDir(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, int64(0), res.Bytes)
}

func TestPagesCancelled(t *testing.T) {
	srv, _ := imageServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(srv.Client(), Options{})
	_, err := d.Pages(ctx, []providers.ReadPage{{URL: srv.URL + "/1.jpg"}, {URL: srv.URL + "/2.jpg"}}, t.TempDir(), "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageExt(t *testing.T) {
	assert.Equal(t, "jpg", pageExt("https://cdn.test/a/B.JPG?x=1"))
	assert.Equal(t, "webp", pageExt("/p/001.webp"))
	assert.Equal(t, "", pageExt("https://cdn.test/image"))
}
