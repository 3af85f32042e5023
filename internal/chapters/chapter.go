package chapters

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/komikcast/internal/providers"
)

var reNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// Chapter is a ChapterRef with the number label used for selection and
// file names.
type Chapter struct {
	providers.ChapterRef
	Label string
}

// FromRefs keeps the listing order of refs.
func FromRefs(refs []providers.ChapterRef) []Chapter {
	out := make([]Chapter, 0, len(refs))
	for _, r := range refs {
		out = append(out, Chapter{ChapterRef: r, Label: labelOf(r)})
	}

	return out
}

func labelOf(r providers.ChapterRef) string {
	if m := reNumber.FindString(r.Title); m != "" {
		return m
	}

	return strings.Trim(r.Slug, "/")
}

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := strings.NewReplacer(
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"\n", "_",
		"(", "",
		")", "",
	)
	s = repl.Replace(s)

	clean := make([]rune, 0, len(s))
	prev := rune(0)
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			continue
		}
		if r == '_' && prev == '_' {
			continue
		}
		clean = append(clean, r)
		prev = r
	}

	return strings.Trim(string(clean), "_")
}

func (c Chapter) baseName(series string) string {
	lbl := sanitize(c.Label)
	if lbl == "" {
		lbl = sanitize(c.Slug)
	}

	if s := sanitize(series); s != "" {
		return s + "_ch_" + lbl
	}

	return "ch_" + lbl
}

func (c Chapter) FolderName(series string) string {
	return c.baseName(series) + "_tmp"
}

func (c Chapter) OutputCBZ(series string) string {
	return c.baseName(series) + ".cbz"
}

func (c Chapter) OutputCBZPath(out, series string) string {
	return filepath.Join(out, c.OutputCBZ(series))
}
