package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.DocumentLoader = (*Registry)(nil)

// Registry dispatches loading to the format loader registered for the
// file's extension.
type Registry struct {
	byExt map[string]driven.DocumentLoader
}

// NewRegistry builds a registry from the given format loaders. A later
// loader claiming an extension overrides an earlier one.
func NewRegistry(loaders ...driven.DocumentLoader) *Registry {
	byExt := make(map[string]driven.DocumentLoader)
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[strings.ToLower(ext)] = l
		}
	}
	return &Registry{byExt: byExt}
}

// Load extracts the file at path using the loader registered for its
// extension.
func (r *Registry) Load(ctx context.Context, path string) (*domain.ExtractedDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no loader for %q", domain.ErrUnsupportedType, ext)
	}
	return l.Load(ctx, path)
}

// Extensions returns the sorted union of all registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
