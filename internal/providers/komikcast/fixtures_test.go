package komikcast

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const listingHTML = `
<html><body>
<div class="list-update_items">
  <div class="list-update_item">
    <a href="{{base}}/komik/one-piece/" class="data-tooltip">
      <div class="list-update_item-image">
        <img src="https://cdn.test/one-piece.jpg" class="ts-post-image">
        <span class="type Manga">  Manga </span>
        <span class="status">Ongoing</span>
      </div>
      <div class="list-update_item-info">
        <h3 class="title">
          One Piece
        </h3>
        <div class="other">
          <div class="chapter">Ch. 1091</div>
          <div class="rating"><div class="numscore"> 9.8 </div></div>
        </div>
      </div>
    </a>
  </div>
  <div class="list-update_item">
    <a href="{{base}}/komik/solo-leveling/" class="data-tooltip">
      <div class="list-update_item-image">
        <img src="https://cdn.test/solo.jpg">
        <span class="type Manhwa">Manhwa</span>
        <span class="status">Completed</span>
      </div>
      <div class="list-update_item-info">
        <h3 class="title">Solo Leveling</h3>
        <div class="other">
          <div class="chapter">Ch.179</div>
          <div class="rating"><div class="numscore">9.5</div></div>
        </div>
      </div>
    </a>
  </div>
  <div class="list-update_item">
    <a class="data-tooltip">
      <div class="list-update_item-info">
        <h3 class="title">Broken Entry</h3>
      </div>
    </a>
  </div>
</div>
</body></html>
`

const seriesHTML = `
<html><body>
<div class="komik_info">
  <div class="komik_info-cover-box">
    <div class="komik_info-cover-image"><img src="https://cdn.test/op-cover.jpg"></div>
    <div class="komik_info-content-rating"><div class="data-rating" data-ratingkomik="9.8"></div></div>
  </div>
  <div class="komik_info-content">
    <div class="komik_info-content-body">
      <h1 class="komik_info-content-body-title"> One Piece </h1>
      <div class="komik_info-content-genre">
        <a href="{{base}}/genres/action/" class="genre-item">Action</a>
        <a href="{{base}}/genres/adventure/" class="genre-item">Adventure</a>
        <a href="{{base}}/genres/action/" class="genre-item">Action</a>
      </div>
      <div class="komik_info-content-meta">
<span class="komik_info-content-info-release"><b>Released:</b>
1997</span>
<span class="komik_info-content-info"><b>Author:</b>
Eiichiro Oda</span>
<span class="komik_info-content-info"><b>Status:</b>
Ongoing</span>
<span class="komik_info-content-info-type"><b>Type:</b> <a href="{{base}}/type/manga/">Manga</a></span>
<span class="komik_info-content-info"><b>Total Chapter:</b>
1091</span>
      </div>
      <div class="komik_info-content-update">Updated on: <time datetime="2024-01-02">January 2, 2024</time></div>
    </div>
  </div>
  <div class="komik_info-description">
    <div class="komik_info-description-sinopsis"><p>
      Gol D. Roger was known as the Pirate King.
    </p></div>
  </div>
  <div class="komik_info-chapters">
    <ul class="komik_info-chapters-wrapper">
      <li class="komik_info-chapters-item">
        <a href="{{base}}/chapter/one-piece-chapter-1091-bahasa-indonesia/" class="chapter-link-item">Chapter 1091</a>
        <div class="chapter-link-time"> 2 days ago </div>
      </li>
      <li class="komik_info-chapters-item">
        <a href="{{base}}/chapter/one-piece-chapter-1090-bahasa-indonesia/" class="chapter-link-item">Chapter 1090</a>
        <div class="chapter-link-time">1 week ago</div>
      </li>
    </ul>
  </div>
</div>
</body></html>
`

// No cover block, no chapters block.
const seriesPartialHTML = `
<div class="komik_info">
  <div class="komik_info-content">
    <h1 class="komik_info-content-body-title">Lonely Title</h1>
  </div>
  <div class="komik_info-description">
    <div class="komik_info-description-sinopsis">Only a synopsis.</div>
  </div>
</div>
`

// Meta and rating only: no title, cover, synopsis or chapters.
const seriesMetaOnlyHTML = `
<div class="komik_info">
  <div class="data-rating" data-ratingkomik="9.1"></div>
  <div class="komik_info-content-meta">
<span class="komik_info-content-info-release"><b>Released:</b>
2020</span>
<span class="komik_info-content-info"><b>Author:</b>
Jane Doe</span>
<span class="komik_info-content-info"><b>Status:</b>
Ongoing</span>
  </div>
</div>
`

const readHTML = `
<html><body>
<img src="https://cdn.test/logo.png">
<div class="main-reading-area">
  <img src="https://cdn.test/A.jpg">
  <p><img src="https://cdn.test/B.jpg"></p>
  <img src="https://cdn.test/C.jpg">
</div>
</body></html>
`

const emptyHTML = `<html><body><p>Nothing here</p></body></html>`

type recorded struct {
	mu      sync.Mutex
	queries []string
	paths   []string
}

func (r *recorded) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.URL.Path)
	r.queries = append(r.queries, req.URL.RawQuery)
}

func (r *recorded) last() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return "", ""
	}
	return r.paths[len(r.paths)-1], r.queries[len(r.queries)-1]
}

// newSiteServer serves the fixtures above, with {{base}} set to its own URL.
func newSiteServer(t *testing.T) (*httptest.Server, *recorded) {
	t.Helper()

	rec := &recorded{}
	mux := http.NewServeMux()
	var srv *httptest.Server

	serve := func(page string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rec.add(r)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, strings.ReplaceAll(page, "{{base}}", srv.URL))
		}
	}

	mux.HandleFunc("/", serve(listingHTML))
	mux.HandleFunc("/daftar-komik/", serve(listingHTML))
	mux.HandleFunc("/type/manhwa", serve(listingHTML))
	mux.HandleFunc("/type/empty", serve(emptyHTML))
	mux.HandleFunc("/komik/one-piece/", serve(seriesHTML))
	mux.HandleFunc("/komik/lonely/", serve(seriesPartialHTML))
	mux.HandleFunc("/komik/meta-only/", serve(seriesMetaOnlyHTML))
	mux.HandleFunc("/komik/none/", serve(emptyHTML))
	mux.HandleFunc("/chapter/one-piece-chapter-1091/", serve(readHTML))
	mux.HandleFunc("/chapter/empty/", serve(emptyHTML))

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, rec
}

func newStatusServer(t *testing.T, code int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", code)
	}))
	t.Cleanup(srv.Close)

	return srv
}
