package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
<ul class="items">
  <li class="item">
    <a href="/a/one/"><h3>  One  </h3></a>
    <img src=" https://cdn.test/1.jpg ">
    <span class="tag">x</span><span class="tag">y</span>
  </li>
  <li class="item">
    <a><h3>Two</h3></a>
  </li>
</ul>
<div class="pages"><img src="p1"><img src="p2"><img data-src="p3"><img src="p4"></div>
`

var itemRule = Rule{
	Container: ".item",
	Fields: []Field{
		{Name: "title", Selector: "h3"},
		{Name: "href", Selector: "a", Attr: "href"},
		{Name: "cover", Selector: "img", Attr: "src"},
	},
	Lists: []List{
		{Name: "tags", Rule: Rule{Container: ".tag", Fields: []Field{{Name: "name"}}}},
	},
}

func TestApplyContainersInOrder(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	recs := ApplyDocument(doc, itemRule)
	require.Len(t, recs, 2)

	assert.Equal(t, "One", recs[0].Get("title"))
	assert.Equal(t, "/a/one/", recs[0].Get("href"))
	assert.Equal(t, "https://cdn.test/1.jpg", recs[0].Get("cover"))
	require.Len(t, recs[0].List("tags"), 2)
	assert.Equal(t, "x", recs[0].List("tags")[0].Get("name"))
	assert.Equal(t, "y", recs[0].List("tags")[1].Get("name"))

	assert.Equal(t, "Two", recs[1].Get("title"))
}

func TestApplyAbsentValues(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	recs := ApplyDocument(doc, itemRule)
	require.Len(t, recs, 2)

	// anchor without href
	assert.Equal(t, Value{}, recs[1].Value("href"))
	// no img at all
	assert.Equal(t, "", recs[1].Get("cover"))
	assert.False(t, recs[1].Value("cover").Present)
	assert.NotNil(t, recs[1].List("tags"))
	assert.Empty(t, recs[1].List("tags"))

	// unknown field name
	assert.Equal(t, "", recs[0].Get("nope"))
}

func TestApplyKeepsDocumentOrderAndSkipsNothing(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	recs := ApplyDocument(doc, Rule{
		Container: ".pages img",
		Fields:    []Field{{Name: "url", Attr: "src"}},
	})
	require.Len(t, recs, 4)

	var got []string
	for _, r := range recs {
		got = append(got, r.Get("url"))
	}
	assert.Equal(t, []string{"p1", "p2", "", "p4"}, got)
}

func TestApplyWithoutContainer(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	block := doc.Find(".items")
	recs := Apply(block, Rule{Fields: []Field{{Name: "first", Selector: "h3"}}})
	require.Len(t, recs, 1)
	assert.Equal(t, "One", recs[0].Get("first"))

	recs = Apply(doc.Find(".missing"), Rule{Fields: []Field{{Name: "first", Selector: "h3"}}})
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestApplyNoMatches(t *testing.T) {
	doc, err := ParseString("<html><body></body></html>")
	require.NoError(t, err)

	recs := ApplyDocument(doc, itemRule)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRuleSetValidate(t *testing.T) {
	good := RuleSet{"items": itemRule}
	assert.NoError(t, good.Validate())

	bad := RuleSet{"items": {Container: "div[", Fields: []Field{{Name: "a"}}}}
	assert.Error(t, bad.Validate())

	dup := RuleSet{"items": {Container: "div", Fields: []Field{{Name: "a"}, {Name: "a"}}}}
	assert.ErrorContains(t, dup.Validate(), "duplicate field")

	nested := RuleSet{"items": {Container: "div", Lists: []List{{Name: "l", Rule: Rule{Container: "p["}}}}}
	assert.Error(t, nested.Validate())
}

func TestRuleSetOverride(t *testing.T) {
	base := RuleSet{
		"a": {Container: ".a"},
		"b": {Container: ".b"},
	}
	over := base.Override(RuleSet{"b": {Container: ".bb"}})

	assert.Equal(t, ".a", over["a"].Container)
	assert.Equal(t, ".bb", over["b"].Container)
	assert.Equal(t, ".b", base["b"].Container)
	assert.Equal(t, []string{"a", "b"}, over.Kinds())
}

func TestRuleSetOverrideDeepCopies(t *testing.T) {
	shared := Rule{
		Container: ".item",
		Fields:    []Field{{Name: "title", Selector: "h3"}},
		Lists: []List{{Name: "tags", Rule: Rule{
			Container: ".tag",
			Fields:    []Field{{Name: "name"}},
		}}},
	}
	base := RuleSet{"a": shared, "b": shared}

	cp := base.Override(nil)
	cp["a"].Fields[0].Selector = "h1"
	cp["a"].Lists[0].Rule.Fields[0].Name = "label"

	assert.Equal(t, "h3", base["a"].Fields[0].Selector)
	assert.Equal(t, "h3", cp["b"].Fields[0].Selector)
	assert.Equal(t, "name", shared.Lists[0].Rule.Fields[0].Name)
	assert.Equal(t, "name", cp["b"].Lists[0].Rule.Fields[0].Name)
}

func TestRuleSetYAMLRoundTrip(t *testing.T) {
	rs := RuleSet{"items": itemRule}
	b, err := rs.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, b, 0644))

	loaded, err := LoadRuleSet(path)
	require.NoError(t, err)
	assert.Equal(t, rs, loaded)
}

func TestLoadRuleSetRejectsBadSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  container: \"div[\"\n"), 0644))

	_, err := LoadRuleSet(path)
	assert.Error(t, err)
}
