// Package pdf loads PDF files page by page.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ledongthuc/pdf"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader handles PDF files.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".pdf"}
}

// Load extracts text per page. Page labels are the 1-based page
// numbers. Pages that fail text extraction are skipped rather than
// failing the whole document.
func (l *Loader) Load(_ context.Context, path string) (*domain.ExtractedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]domain.ExtractedPage, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, domain.ExtractedPage{
			Label: strconv.Itoa(i),
			Text:  text,
		})
	}

	return &domain.ExtractedDocument{
		FilePath:     path,
		FileName:     filepath.Base(path),
		LastModified: info.ModTime(),
		Pages:        pages,
	}, nil
}
