package komikcast

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://komikcast02.com"

const (
	seriesPath  = "/komik/"
	chapterPath = "/chapter/"
)

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL
	}

	return strings.TrimRight(raw, "/")
}

// encodeQuery escapes like encodeURIComponent: spaces become %20.
func encodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

func searchURL(base, query string) string {
	return base + "/?s=" + encodeQuery(query)
}

func seriesURL(base, slug string) string {
	return base + seriesPath + slug
}

func chapterURL(base, slug string) string {
	return base + chapterPath + slug
}

func typeURL(base, typ string) string {
	return base + "/type/" + typ
}

// latestURL clamps page to at least 1, negative values included.
func latestURL(base string, page int) string {
	if page <= 0 {
		page = 1
	}

	return fmt.Sprintf("%s/daftar-komik/page/%d/?orderby=update", base, page)
}

// slugFrom removes the absolute prefix (base + path) from href. Site-relative
// hrefs have only the path removed. Anything else is returned as is.
func slugFrom(href, base, path string) string {
	if s, ok := strings.CutPrefix(href, base+path); ok {
		return s
	}
	if s, ok := strings.CutPrefix(href, path); ok {
		return s
	}

	return href
}
