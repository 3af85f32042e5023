package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Value is a captured field. Present is false when the node or attribute
// was missing; Text is then "".
type Value struct {
	Text    string
	Present bool
}

type Record struct {
	fields map[string]Value
	lists  map[string][]Record
}

// Get returns the trimmed text of a field, or "" when it was absent.
func (r Record) Get(name string) string {
	return r.fields[name].Text
}

func (r Record) Value(name string) Value {
	return r.fields[name]
}

func (r Record) List(name string) []Record {
	return r.lists[name]
}

func Parse(body io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(body)
}

func ParseString(html string) (*goquery.Document, error) {
	return Parse(strings.NewReader(html))
}

// Apply evaluates rule against root and returns one record per container,
// in document order. A rule without container treats root as the only one.
func Apply(root *goquery.Selection, rule Rule) []Record {
	if rule.Container == "" {
		if root.Length() == 0 {
			return []Record{}
		}
		return []Record{applyOne(root.First(), rule)}
	}

	containers := root.Find(rule.Container)
	out := make([]Record, 0, containers.Length())
	containers.Each(func(_ int, c *goquery.Selection) {
		out = append(out, applyOne(c, rule))
	})

	return out
}

// ApplyDocument is Apply on the whole document.
func ApplyDocument(doc *goquery.Document, rule Rule) []Record {
	return Apply(doc.Selection, rule)
}

func applyOne(container *goquery.Selection, rule Rule) Record {
	rec := Record{
		fields: make(map[string]Value, len(rule.Fields)),
		lists:  make(map[string][]Record, len(rule.Lists)),
	}

	for _, f := range rule.Fields {
		rec.fields[f.Name] = capture(container, f)
	}

	for _, l := range rule.Lists {
		rec.lists[l.Name] = Apply(container, l.Rule)
	}

	return rec
}

func capture(container *goquery.Selection, f Field) Value {
	node := container
	if f.Selector != "" {
		node = container.Find(f.Selector).First()
	}
	if node.Length() == 0 {
		return Value{}
	}

	if f.Attr == "" {
		return Value{Text: strings.TrimSpace(node.Text()), Present: true}
	}

	v, ok := node.Attr(f.Attr)
	if !ok {
		return Value{}
	}

	return Value{Text: strings.TrimSpace(v), Present: true}
}
