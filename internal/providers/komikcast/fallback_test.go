package komikcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackCatalogOrder(t *testing.T) {
	latest := FallbackLatest()
	require.Len(t, latest, 6)

	var slugs []string
	for _, it := range latest {
		slugs = append(slugs, it.Slug)
		assert.NotEmpty(t, it.Cover)
	}
	assert.Equal(t, []string{
		"one-piece",
		"jujutsu-kaisen",
		"kimetsu-no-yaiba",
		"boku-no-hero-academia",
		"solo-leveling",
		"tower-of-god",
	}, slugs)

	assert.Equal(t, "Demon Slayer", latest[2].Title)
	assert.Equal(t, "Completed", latest[2].Status)
	assert.Equal(t, "Chapter 205", latest[2].Chapter)
	assert.Equal(t, "manhwa", latest[5].Type)
	assert.Equal(t, "9.2", latest[5].Score)
}

func TestFallbackSearchMirrorsCatalog(t *testing.T) {
	hits := FallbackSearch()
	latest := FallbackLatest()
	require.Len(t, hits, len(latest))

	for i := range hits {
		assert.Equal(t, latest[i].Title, hits[i].Title)
		assert.Equal(t, latest[i].Slug, hits[i].Slug)
		assert.Equal(t, latest[i].Chapter, hits[i].Chapter)
		assert.Equal(t, latest[i].Score, hits[i].Score)
	}
}

func TestFallbackIsCopied(t *testing.T) {
	first := FallbackLatest()
	first[0].Title = "changed"

	hits := FallbackSearch()
	hits[1].Slug = "changed"

	assert.Equal(t, "One Piece", FallbackLatest()[0].Title)
	assert.Equal(t, "jujutsu-kaisen", FallbackSearch()[1].Slug)
}
