package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".md", ".markdown"}, New().Extensions())
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	content := "# Title\n\nSome **bold** text with a [link](https://example.com).\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := New().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "guide.md", doc.FileName)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "1", doc.Pages[0].Label)
	assert.Contains(t, doc.Pages[0].Text, "Title")
	assert.Contains(t, doc.Pages[0].Text, "bold")
	assert.Contains(t, doc.Pages[0].Text, "link")
	assert.NotContains(t, doc.Pages[0].Text, "**")
	assert.NotContains(t, doc.Pages[0].Text, "https://example.com")
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "headings stripped",
			input:    "## Section\nBody",
			contains: "Section",
			excludes: "##",
		},
		{
			name:     "code blocks removed",
			input:    "before\n```\ncode here\n```\nafter",
			contains: "after",
			excludes: "code here",
		},
		{
			name:     "inline code removed",
			input:    "run `make test` now",
			contains: "now",
			excludes: "make test",
		},
		{
			name:     "images removed",
			input:    "see ![diagram](img.png) here",
			contains: "here",
			excludes: "img.png",
		},
		{
			name:     "links keep text",
			input:    "read [the docs](https://docs.example.com)",
			contains: "the docs",
			excludes: "https://docs.example.com",
		},
		{
			name:     "blockquotes unwrapped",
			input:    "> quoted line",
			contains: "quoted line",
			excludes: ">",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := stripMarkdown(tc.input)
			assert.Contains(t, out, tc.contains)
			assert.NotContains(t, out, tc.excludes)
		})
	}
}
