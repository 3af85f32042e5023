package chapters

import (
	"testing"

	"github.com/brogergvhs/komikcast/internal/providers"

	"github.com/stretchr/testify/assert"
)

func sample() []Chapter {
	return FromRefs([]providers.ChapterRef{
		{Title: "Chapter 1091", Slug: "one-piece-chapter-1091-bahasa-indonesia/"},
		{Title: "Chapter 1090.5", Slug: "one-piece-chapter-1090-5/"},
		{Title: "Chapter 1090", Slug: "one-piece-chapter-1090/"},
		{Title: "Oneshot", Slug: "one-piece-oneshot/"},
	})
}

func TestFromRefsLabels(t *testing.T) {
	all := sample()
	assert.Equal(t, "1091", all[0].Label)
	assert.Equal(t, "1090.5", all[1].Label)
	assert.Equal(t, "one-piece-oneshot", all[3].Label)
	assert.Equal(t, "one-piece-chapter-1091-bahasa-indonesia/", all[0].Slug)
}

func TestFilter(t *testing.T) {
	all := sample()

	assert.Equal(t, []Chapter{all[1]}, Filter(all, "1090.5", "", ""))
	assert.Equal(t, []Chapter{all[2]}, Filter(all, "3", "", ""))
	assert.Empty(t, Filter(all, "99", "", ""))
	assert.Equal(t, all[1:3], Filter(all, "", "2-3", ""))
	assert.Nil(t, Filter(all, "", "3-2", ""))
	assert.Nil(t, Filter(all, "", "1-9", ""))
	assert.Nil(t, Filter(all, "", "x", ""))
	assert.Equal(t, []Chapter{all[0], all[3]}, Filter(all, "", "", "1, 4, 7, z"))
	assert.Equal(t, all, Filter(all, "", "", ""))
}

func TestFileNames(t *testing.T) {
	all := sample()

	assert.Equal(t, "one_piece_ch_1091.cbz", all[0].OutputCBZ("one-piece/"))
	assert.Equal(t, "one_piece_ch_1090_5_tmp", all[1].FolderName("one-piece/"))
	assert.Equal(t, "ch_1090.cbz", all[2].OutputCBZ(""))
	assert.Equal(t, "out/one_piece_ch_one_piece_oneshot.cbz", all[3].OutputCBZPath("out", "One Piece"))
}
