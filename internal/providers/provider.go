package providers

import (
	"context"
	"encoding/json"
)

type SearchHit struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Cover   string `json:"cover"`
	Status  string `json:"status"`
	Type    string `json:"type"`
	Score   string `json:"score"`
	Chapter string `json:"chapter"`
}

type Genre struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ChapterRef struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Released string `json:"released"`
}

type SeriesDetail struct {
	Title        string       `json:"title"`
	Genre        []Genre      `json:"genre"`
	Released     string       `json:"released"`
	Author       string       `json:"author"`
	Status       string       `json:"status"`
	Type         string       `json:"type"`
	TotalChapter string       `json:"total_chapter"`
	Updated      string       `json:"updated"`
	Cover        string       `json:"cover"`
	Score        string       `json:"score"`
	Synopsis     string       `json:"synopsis"`
	Chapters     []ChapterRef `json:"chapters"`
}

// Empty reports whether d carries no data at all, which is the "no series"
// value returned when a detail page could not be fetched or held no series
// block. Any single field, such as the author alone, makes d non-empty.
func (d SeriesDetail) Empty() bool {
	if len(d.Genre) > 0 || len(d.Chapters) > 0 {
		return false
	}

	for _, v := range [...]string{
		d.Title, d.Released, d.Author, d.Status, d.Type, d.TotalChapter,
		d.Updated, d.Cover, d.Score, d.Synopsis,
	} {
		if v != "" {
			return false
		}
	}

	return true
}

// MarshalJSON encodes an empty detail as {}.
func (d SeriesDetail) MarshalJSON() ([]byte, error) {
	if d.Empty() {
		return []byte("{}"), nil
	}

	type plain SeriesDetail
	p := plain(d)
	if p.Genre == nil {
		p.Genre = []Genre{}
	}
	if p.Chapters == nil {
		p.Chapters = []ChapterRef{}
	}

	return json.Marshal(p)
}

type ReadPage struct {
	URL string `json:"url"`
}

type LatestItem struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Chapter string `json:"chapter"`
	Slug    string `json:"slug"`
	Cover   string `json:"cover"`
	Status  string `json:"status"`
	Score   string `json:"score"`
}

// Source is the read-only surface a manga site client exposes. None of the
// operations fail; degraded results are expressed as fallback or empty data.
type Source interface {
	Search(ctx context.Context, query string) []SearchHit
	SeriesDetail(ctx context.Context, slug string) SeriesDetail
	Info(ctx context.Context, slug string) SeriesDetail
	ChapterRead(ctx context.Context, slug string) []ReadPage
	ByType(ctx context.Context, typ string) []LatestItem
	Latest(ctx context.Context, page int) []LatestItem
}
