package domain

import (
	"strings"
	"time"
)

// ExtractedPage is one page of text pulled from a source file.
// Loaders for formats without pages emit a single page labelled "1".
type ExtractedPage struct {
	// Label is the page label, usually the 1-based page number.
	Label string

	// Text is the extracted page text.
	Text string
}

// ExtractedDocument is the loader output before chunking.
type ExtractedDocument struct {
	// FilePath is the absolute source path.
	FilePath string

	// FileName is the basename of the source path.
	FileName string

	// LastModified is the file modification time at extraction.
	LastModified time.Time

	// Pages holds the extracted text in page order.
	Pages []ExtractedPage
}

// Empty reports whether extraction produced no usable text.
func (d ExtractedDocument) Empty() bool {
	for _, page := range d.Pages {
		if strings.TrimSpace(page.Text) != "" {
			return false
		}
	}
	return true
}
