package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// DocumentView is the aggregated picture of one indexed document,
// reconstructed from the metadata of its chunks.
type DocumentView struct {
	// FileName is the document identity (basename of the source path).
	FileName string

	// FilePath is the full source path from the first chunk seen.
	FilePath string

	// ChunkCount is the number of chunks stored for this document.
	ChunkCount int

	// Pages holds the distinct page labels, sorted numerically.
	// Non-numeric labels sort as zero.
	Pages []string
}

// PageCount returns the number of distinct pages.
func (d DocumentView) PageCount() int {
	return len(d.Pages)
}

// AggregateDocuments folds a chunk metadata snapshot into per-document
// views. The result is sorted by file name; each view's pages are
// deduplicated and sorted.
func AggregateDocuments(chunks []ChunkInfo) []DocumentView {
	type bucket struct {
		view  DocumentView
		pages map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, chunk := range chunks {
		key := DocumentKey(chunk.Metadata)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				view: DocumentView{
					FileName: key,
					FilePath: SourcePath(chunk.Metadata),
				},
				pages: make(map[string]struct{}),
			}
			buckets[key] = b
		}

		b.view.ChunkCount++
		if page := PageOf(chunk.Metadata); page != "" {
			b.pages[page] = struct{}{}
		}
	}

	views := make([]DocumentView, 0, len(buckets))
	for _, b := range buckets {
		b.view.Pages = sortPages(b.pages)
		views = append(views, b.view)
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].FileName < views[j].FileName
	})
	return views
}

// sortPages orders page labels numerically, treating any label that is
// not a whole number as zero. Ordering among non-numeric labels is
// stabilised by the label text.
func sortPages(pages map[string]struct{}) []string {
	labels := make([]string, 0, len(pages))
	for page := range pages {
		labels = append(labels, page)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := pageOrdinal(labels[i]), pageOrdinal(labels[j])
		if a != b {
			return a < b
		}
		return labels[i] < labels[j]
	})
	return labels
}

func pageOrdinal(label string) int {
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0
	}
	return n
}

// anyToString renders a metadata value as a page-label style string.
// Whole floats lose their fractional part so JSON round-tripped
// integers keep their original label.
func anyToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
