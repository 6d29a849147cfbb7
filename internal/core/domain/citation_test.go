package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitationFrom(t *testing.T) {
	t.Run("uses basename and page label", func(t *testing.T) {
		c := CitationFrom(map[string]any{
			MetaFilePath:  "/data/spec.pdf",
			MetaPageLabel: "12",
		})

		assert.Equal(t, "spec.pdf", c.FileName)
		assert.Equal(t, "12", c.Page)
		assert.Equal(t, "/data/spec.pdf", c.FullPath)
	})

	t.Run("missing page becomes N/A", func(t *testing.T) {
		c := CitationFrom(map[string]any{MetaFileName: "notes.txt"})

		assert.Equal(t, "notes.txt", c.FileName)
		assert.Equal(t, NoPage, c.Page)
	})

	t.Run("missing identity becomes Unknown", func(t *testing.T) {
		c := CitationFrom(map[string]any{})

		assert.Equal(t, UnknownDocument, c.FileName)
		assert.Equal(t, NoPage, c.Page)
	})
}

func TestDedupCitations(t *testing.T) {
	t.Run("removes duplicates keeping first occurrence", func(t *testing.T) {
		citations := []Citation{
			{FileName: "a.pdf", Page: "1", FullPath: "/x/a.pdf"},
			{FileName: "b.pdf", Page: "2"},
			{FileName: "a.pdf", Page: "1", FullPath: "/y/a.pdf"},
			{FileName: "a.pdf", Page: "2"},
		}

		unique := DedupCitations(citations)

		require.Len(t, unique, 3)
		assert.Equal(t, "a.pdf", unique[0].FileName)
		assert.Equal(t, "/x/a.pdf", unique[0].FullPath, "first occurrence wins")
		assert.Equal(t, "b.pdf", unique[1].FileName)
		assert.Equal(t, "a.pdf", unique[2].FileName)
		assert.Equal(t, "2", unique[2].Page)
	})

	t.Run("dedup is idempotent", func(t *testing.T) {
		citations := []Citation{
			{FileName: "a.pdf", Page: "1"},
			{FileName: "a.pdf", Page: "1"},
			{FileName: "b.pdf", Page: "1"},
		}

		once := DedupCitations(citations)
		twice := DedupCitations(once)

		assert.Equal(t, once, twice)
	})

	t.Run("same file different pages kept", func(t *testing.T) {
		citations := []Citation{
			{FileName: "a.pdf", Page: "1"},
			{FileName: "a.pdf", Page: "2"},
		}

		unique := DedupCitations(citations)

		assert.Len(t, unique, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, DedupCitations(nil))
	})
}
