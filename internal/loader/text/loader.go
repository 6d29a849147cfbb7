// Package text loads plain text files as single-page documents.
package text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader handles plain text files.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".txt"}
}

// Load reads the whole file as one page labelled "1".
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &domain.ExtractedDocument{
		FilePath:     path,
		FileName:     filepath.Base(path),
		LastModified: info.ModTime(),
		Pages: []domain.ExtractedPage{
			{Label: "1", Text: string(content)},
		},
	}, nil
}
