package komikcast

import (
	"strings"

	"github.com/brogergvhs/komikcast/internal/extract"
	"github.com/brogergvhs/komikcast/internal/providers"
)

const (
	labelReleased     = "Released:\n"
	labelAuthor       = "Author:\n"
	labelStatus       = "Status:\n"
	labelType         = "Type:"
	labelTotalChapter = "Total Chapter:\n"

	labelChapterShort = "Ch."
)

// stripLabel removes label only when s starts with it.
func stripLabel(s, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, label))
}

// Search listings render "Ch. 42" as "Chapter\n42".
func searchChapter(raw string) string {
	rest, ok := strings.CutPrefix(raw, labelChapterShort)
	if !ok {
		return raw
	}

	return "Chapter\n" + strings.TrimSpace(rest)
}

// Latest listings render "Ch. 42" as "Chapter 42".
func latestChapter(raw string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(raw, labelChapterShort))
	if rest == "" {
		return ""
	}

	return "Chapter " + rest
}

func (c *Client) searchHit(r extract.Record) providers.SearchHit {
	return providers.SearchHit{
		Title:   r.Get("title"),
		Slug:    slugFrom(r.Get("href"), c.base, seriesPath),
		Cover:   r.Get("cover"),
		Status:  r.Get("status"),
		Type:    r.Get("type"),
		Score:   r.Get("score"),
		Chapter: searchChapter(r.Get("chapter")),
	}
}

func (c *Client) listItem(r extract.Record, chapter func(string) string) providers.LatestItem {
	return providers.LatestItem{
		Title:   r.Get("title"),
		Type:    r.Get("type"),
		Chapter: chapter(r.Get("chapter")),
		Slug:    slugFrom(r.Get("href"), c.base, seriesPath),
		Cover:   r.Get("cover"),
		Status:  r.Get("status"),
		Score:   r.Get("score"),
	}
}

func (c *Client) seriesDetail(r extract.Record) providers.SeriesDetail {
	genres := r.List("genre")
	chapters := r.List("chapters")

	d := providers.SeriesDetail{
		Title:        r.Get("title"),
		Genre:        make([]providers.Genre, 0, len(genres)),
		Released:     stripLabel(r.Get("released"), labelReleased),
		Author:       stripLabel(r.Get("author"), labelAuthor),
		Status:       stripLabel(r.Get("status"), labelStatus),
		Type:         stripLabel(r.Get("type"), labelType),
		TotalChapter: stripLabel(r.Get("total_chapter"), labelTotalChapter),
		Updated:      r.Get("updated"),
		Cover:        r.Get("cover"),
		Score:        r.Get("score"),
		Synopsis:     r.Get("synopsis"),
		Chapters:     make([]providers.ChapterRef, 0, len(chapters)),
	}

	for _, g := range genres {
		d.Genre = append(d.Genre, providers.Genre{
			Name: g.Get("name"),
			URL:  g.Get("url"),
		})
	}

	for _, ch := range chapters {
		d.Chapters = append(d.Chapters, providers.ChapterRef{
			Title:    ch.Get("title"),
			Slug:     slugFrom(ch.Get("href"), c.base, chapterPath),
			Released: ch.Get("released"),
		})
	}

	return d
}

func readPage(r extract.Record) providers.ReadPage {
	return providers.ReadPage{URL: r.Get("url")}
}
