package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/brogergvhs/komikcast/internal/config"
	"github.com/brogergvhs/komikcast/internal/providers"
)

// render writes v as indented JSON or, for the table format, as aligned
// columns. Types without a table layout fall back to JSON.
func render(w io.Writer, format string, v any) error {
	if format == config.FormatTable {
		if ok, err := renderTable(w, v); ok {
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderTable(out io.Writer, v any) (bool, error) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	switch rows := v.(type) {
	case []providers.SearchHit:
		fmt.Fprintln(w, "TITLE\tSLUG\tTYPE\tSTATUS\tSCORE\tCHAPTER")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", cell(r.Title), cell(r.Slug), cell(r.Type), cell(r.Status), cell(r.Score), cell(r.Chapter))
		}
	case []providers.LatestItem:
		fmt.Fprintln(w, "TITLE\tSLUG\tTYPE\tSTATUS\tSCORE\tCHAPTER")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", cell(r.Title), cell(r.Slug), cell(r.Type), cell(r.Status), cell(r.Score), cell(r.Chapter))
		}
	case []providers.ReadPage:
		fmt.Fprintln(w, "#\tURL")
		for i, r := range rows {
			fmt.Fprintf(w, "%d\t%s\n", i+1, r.URL)
		}
	case providers.SeriesDetail:
		if rows.Empty() {
			fmt.Fprintln(w, "no series found")
			break
		}
		genres := make([]string, 0, len(rows.Genre))
		for _, g := range rows.Genre {
			genres = append(genres, g.Name)
		}
		fmt.Fprintf(w, "Title:\t%s\n", cell(rows.Title))
		fmt.Fprintf(w, "Author:\t%s\n", cell(rows.Author))
		fmt.Fprintf(w, "Status:\t%s\n", cell(rows.Status))
		fmt.Fprintf(w, "Type:\t%s\n", cell(rows.Type))
		fmt.Fprintf(w, "Released:\t%s\n", cell(rows.Released))
		fmt.Fprintf(w, "Updated:\t%s\n", cell(rows.Updated))
		fmt.Fprintf(w, "Score:\t%s\n", cell(rows.Score))
		fmt.Fprintf(w, "Genre:\t%s\n", strings.Join(genres, ", "))
		fmt.Fprintf(w, "Total Chapter:\t%s\n", cell(rows.TotalChapter))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "#\tCHAPTER\tSLUG\tRELEASED")
		for i, ch := range rows.Chapters {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, cell(ch.Title), cell(ch.Slug), cell(ch.Released))
		}
	default:
		return false, nil
	}

	return true, w.Flush()
}

// cell keeps multi-line values on one table row.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
