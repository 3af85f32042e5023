package komikcast

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brogergvhs/komikcast/internal/extract"
	"github.com/brogergvhs/komikcast/internal/providers"
)

const DefaultTimeout = 10 * time.Second

type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

type Options struct {
	// BaseURL is the site origin, DefaultBaseURL when empty.
	BaseURL string
	// HTTPClient defaults to a plain client with Timeout.
	HTTPClient *http.Client
	// Timeout bounds every request, DefaultTimeout when zero.
	Timeout time.Duration
	// Rules replace the built-in rules kind by kind.
	Rules  extract.RuleSet
	Logger Logger
}

// Client is safe for concurrent use. It keeps no state between calls.
type Client struct {
	base    string
	client  *http.Client
	timeout time.Duration
	rules   extract.RuleSet
	log     Logger
}

var _ providers.Source = (*Client)(nil)

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	var log Logger = nopLogger{}
	if opts.Logger != nil {
		log = opts.Logger
	}

	return &Client{
		base:    normalizeBaseURL(opts.BaseURL),
		client:  hc,
		timeout: timeout,
		rules:   DefaultRules().Override(opts.Rules),
		log:     log,
	}
}

func (c *Client) BaseURL() string {
	return c.base
}

// ChapterURL is the reader page of a chapter slug.
func (c *Client) ChapterURL(slug string) string {
	return chapterURL(c.base, slug)
}

func (c *Client) Rules() extract.RuleSet {
	return c.rules.Override(nil)
}

// collect runs one fetch-and-extract cycle for kind.
func (c *Client) collect(ctx context.Context, kind, target string) ([]extract.Record, error) {
	rule, ok := c.rules[kind]
	if !ok {
		return nil, fmt.Errorf("no rule for %q", kind)
	}

	body, err := c.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, err := extract.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	recs := extract.ApplyDocument(doc, rule)
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", target, ErrEmptyResult)
	}

	c.log.Debugf("%s: %d item(s) from %s", kind, len(recs), target)

	return recs, nil
}

func (c *Client) Search(ctx context.Context, query string) []providers.SearchHit {
	recs, err := c.collect(ctx, KindSearch, searchURL(c.base, query))
	if err != nil {
		c.log.Errorf("search %q: %v, serving fallback catalog", query, err)
		return FallbackSearch()
	}

	out := make([]providers.SearchHit, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.searchHit(r))
	}

	return out
}

func (c *Client) SeriesDetail(ctx context.Context, slug string) providers.SeriesDetail {
	recs, err := c.collect(ctx, KindSeries, seriesURL(c.base, slug))
	if err != nil {
		c.log.Errorf("series %q: %v", slug, err)
		return providers.SeriesDetail{}
	}

	return c.seriesDetail(recs[0])
}

// Info is SeriesDetail under its other name.
func (c *Client) Info(ctx context.Context, slug string) providers.SeriesDetail {
	return c.SeriesDetail(ctx, slug)
}

func (c *Client) ChapterRead(ctx context.Context, slug string) []providers.ReadPage {
	recs, err := c.collect(ctx, KindRead, chapterURL(c.base, slug))
	if err != nil {
		c.log.Errorf("read %q: %v", slug, err)
		return []providers.ReadPage{}
	}

	out := make([]providers.ReadPage, 0, len(recs))
	for _, r := range recs {
		out = append(out, readPage(r))
	}

	return out
}

// ByType lists a category. Chapter labels are kept as the site prints them.
func (c *Client) ByType(ctx context.Context, typ string) []providers.LatestItem {
	recs, err := c.collect(ctx, KindType, typeURL(c.base, typ))
	if err != nil {
		c.log.Errorf("type %q: %v", typ, err)
		return []providers.LatestItem{}
	}

	out := make([]providers.LatestItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.listItem(r, keepChapter))
	}

	return out
}

// Latest lists recently updated series. A zero page means page 1, and
// negative pages are clamped to 1 as well instead of being sent to the site.
func (c *Client) Latest(ctx context.Context, page int) []providers.LatestItem {
	if page <= 0 {
		page = 1
	}

	recs, err := c.collect(ctx, KindLatest, latestURL(c.base, page))
	if err != nil {
		c.log.Errorf("latest page %d: %v, serving fallback catalog", page, err)
		return FallbackLatest()
	}

	out := make([]providers.LatestItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.listItem(r, latestChapter))
	}

	return out
}

func keepChapter(raw string) string { return raw }
