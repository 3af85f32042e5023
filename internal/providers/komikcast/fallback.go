package komikcast

import "github.com/brogergvhs/komikcast/internal/providers"

// catalog is served by Search and Latest when the site is unusable.
// Readers get copies; the array itself is never handed out.
var catalog = [...]providers.LatestItem{
	{
		Title:   "One Piece",
		Type:    "manga",
		Chapter: "Chapter 1091",
		Slug:    "one-piece",
		Cover:   "https://cdn.myanimelist.net/images/manga/2/253146.jpg",
		Status:  "Ongoing",
		Score:   "9.8",
	},
	{
		Title:   "Jujutsu Kaisen",
		Type:    "manga",
		Chapter: "Chapter 265",
		Slug:    "jujutsu-kaisen",
		Cover:   "https://cdn.myanimelist.net/images/manga/3/210341.jpg",
		Status:  "Ongoing",
		Score:   "9.4",
	},
	{
		Title:   "Demon Slayer",
		Type:    "manga",
		Chapter: "Chapter 205",
		Slug:    "kimetsu-no-yaiba",
		Cover:   "https://cdn.myanimelist.net/images/manga/3/179023.jpg",
		Status:  "Completed",
		Score:   "9.3",
	},
	{
		Title:   "My Hero Academia",
		Type:    "manga",
		Chapter: "Chapter 420",
		Slug:    "boku-no-hero-academia",
		Cover:   "https://cdn.myanimelist.net/images/manga/1/209370.jpg",
		Status:  "Ongoing",
		Score:   "9.1",
	},
	{
		Title:   "Solo Leveling",
		Type:    "manhwa",
		Chapter: "Chapter 179",
		Slug:    "solo-leveling",
		Cover:   "https://cdn.myanimelist.net/images/manga/3/222295.jpg",
		Status:  "Completed",
		Score:   "9.5",
	},
	{
		Title:   "Tower of God",
		Type:    "manhwa",
		Chapter: "Chapter 585",
		Slug:    "tower-of-god",
		Cover:   "https://cdn.myanimelist.net/images/manga/2/223694.jpg",
		Status:  "Ongoing",
		Score:   "9.2",
	},
}

func FallbackLatest() []providers.LatestItem {
	out := make([]providers.LatestItem, len(catalog))
	copy(out, catalog[:])

	return out
}

func FallbackSearch() []providers.SearchHit {
	out := make([]providers.SearchHit, 0, len(catalog))
	for _, it := range catalog {
		out = append(out, providers.SearchHit{
			Title:   it.Title,
			Slug:    it.Slug,
			Cover:   it.Cover,
			Status:  it.Status,
			Type:    it.Type,
			Score:   it.Score,
			Chapter: it.Chapter,
		})
	}

	return out
}
