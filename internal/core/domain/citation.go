package domain

// NoPage is the page value cited when a chunk carries no page metadata.
const NoPage = "N/A"

// Citation attributes a retrieved chunk to its source document and page.
type Citation struct {
	// FileName is the basename of the source file, or UnknownDocument.
	FileName string

	// Page is the page label, or NoPage when the chunk has none.
	Page string

	// FullPath is the original source path for display.
	FullPath string
}

// CitationFrom builds a citation from chunk metadata, applying the
// file name and page fallback chains.
func CitationFrom(metadata map[string]any) Citation {
	page := PageOf(metadata)
	if page == "" {
		page = NoPage
	}
	return Citation{
		FileName: DocumentKey(metadata),
		Page:     page,
		FullPath: SourcePath(metadata),
	}
}

// DedupCitations removes duplicate citations by (file name, page),
// keeping the first occurrence of each pair so retrieval ranking
// order is preserved.
func DedupCitations(citations []Citation) []Citation {
	type key struct{ name, page string }
	seen := make(map[key]struct{}, len(citations))

	unique := make([]Citation, 0, len(citations))
	for _, c := range citations {
		k := key{c.FileName, c.Page}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
