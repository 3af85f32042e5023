package komikcast

import "github.com/brogergvhs/komikcast/internal/extract"

// Operation kinds, also the keys of a rule file.
const (
	KindSearch = "search"
	KindSeries = "series"
	KindRead   = "read"
	KindType   = "type"
	KindLatest = "latest"
)

// Selectors below are bound to the site's current markup and break when it
// changes. A rule file (see extract.LoadRuleSet) can replace any kind.

var listUpdateRule = extract.Rule{
	Container: ".list-update_item",
	Fields: []extract.Field{
		{Name: "title", Selector: ".list-update_item-info h3.title"},
		{Name: "href", Selector: "a", Attr: "href"},
		{Name: "cover", Selector: ".list-update_item-image img", Attr: "src"},
		{Name: "type", Selector: ".list-update_item-image .type"},
		{Name: "status", Selector: ".list-update_item-image .status"},
		{Name: "chapter", Selector: ".list-update_item-info .other .chapter"},
		{Name: "score", Selector: ".list-update_item-info .other .rating .numscore"},
	},
}

var seriesRule = extract.Rule{
	Container: ".komik_info",
	Fields: []extract.Field{
		// content body
		{Name: "title", Selector: ".komik_info-content-body-title"},
		{Name: "released", Selector: ".komik_info-content-info-release"},
		{Name: "author", Selector: ".komik_info-content-meta > span:nth-child(2)"},
		{Name: "status", Selector: ".komik_info-content-meta > span:nth-child(3)"},
		{Name: "type", Selector: ".komik_info-content-info-type"},
		{Name: "total_chapter", Selector: ".komik_info-content-meta > span:nth-child(5)"},
		{Name: "updated", Selector: ".komik_info-content-update time"},
		// cover / rating
		{Name: "cover", Selector: ".komik_info-cover-image img", Attr: "src"},
		{Name: "score", Selector: ".data-rating", Attr: "data-ratingkomik"},
		// description
		{Name: "synopsis", Selector: ".komik_info-description-sinopsis"},
	},
	Lists: []extract.List{
		{Name: "genre", Rule: extract.Rule{
			Container: ".komik_info-content-genre a",
			Fields: []extract.Field{
				{Name: "name"},
				{Name: "url", Attr: "href"},
			},
		}},
		{Name: "chapters", Rule: extract.Rule{
			Container: ".komik_info-chapters-item",
			Fields: []extract.Field{
				{Name: "title", Selector: "a.chapter-link-item"},
				{Name: "href", Selector: "a.chapter-link-item", Attr: "href"},
				{Name: "released", Selector: ".chapter-link-time"},
			},
		}},
	},
}

var readRule = extract.Rule{
	Container: ".main-reading-area img",
	Fields: []extract.Field{
		{Name: "url", Attr: "src"},
	},
}

// DefaultRules returns a fresh copy of the built-in rule table keyed by
// operation kind.
func DefaultRules() extract.RuleSet {
	return extract.RuleSet{
		KindSearch: listUpdateRule.Clone(),
		KindSeries: seriesRule.Clone(),
		KindRead:   readRule.Clone(),
		KindType:   listUpdateRule.Clone(),
		KindLatest: listUpdateRule.Clone(),
	}
}
