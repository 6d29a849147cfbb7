package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
)

// fakeLibrary implements driving.LibraryService for command tests.
type fakeLibrary struct {
	docs    []domain.DocumentView
	deleted []string
	cleared bool
	err     error
}

func (f *fakeLibrary) ListDocuments(_ context.Context) ([]domain.DocumentView, error) {
	return f.docs, f.err
}

func (f *fakeLibrary) GetDocumentInfo(_ context.Context, fileName string) (*domain.DocumentView, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.docs {
		if f.docs[i].FileName == fileName {
			return &f.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLibrary) DeleteDocument(_ context.Context, fileName string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, doc := range f.docs {
		if doc.FileName == fileName {
			f.deleted = append(f.deleted, fileName)
			return doc.ChunkCount, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (f *fakeLibrary) ClearAll(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.cleared = true
	total := 0
	for _, doc := range f.docs {
		total += doc.ChunkCount
	}
	return total, nil
}

func (f *fakeLibrary) Stats(_ context.Context) domain.CollectionStats {
	return domain.StatsFrom(f.docs)
}

func (f *fakeLibrary) DocumentCount(_ context.Context) (int, error) {
	return len(f.docs), f.err
}

// fakeSession implements driving.ChatSession for command tests.
type fakeSession struct {
	persona  string
	answer   *driving.Answer
	asked    []string
	err      error
	closedOK bool
}

func (f *fakeSession) Ask(_ context.Context, text string) (*driving.Answer, error) {
	f.asked = append(f.asked, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeSession) Persona() string { return f.persona }

func (f *fakeSession) Welcome(_ context.Context) string { return "GhostVault System Online" }

// fakeConfigStore implements driven.ConfigStore over a map.
type fakeConfigStore struct {
	data map[string]any
	path string
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{data: make(map[string]any), path: "/tmp/config.toml"}
}

func (f *fakeConfigStore) Get(key string) (any, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeConfigStore) GetString(key string) string {
	v, _ := f.data[key].(string)
	return v
}

func (f *fakeConfigStore) GetInt(key string) int {
	v, _ := f.data[key].(int)
	return v
}

func (f *fakeConfigStore) GetBool(key string) bool {
	v, _ := f.data[key].(bool)
	return v
}

func (f *fakeConfigStore) GetStringSlice(key string) []string {
	v, _ := f.data[key].([]string)
	return v
}

func (f *fakeConfigStore) Set(key string, value any) error {
	f.data[key] = value
	return nil
}

func (f *fakeConfigStore) Save() error { return nil }
func (f *fakeConfigStore) Load() error { return nil }
func (f *fakeConfigStore) Path() string {
	return f.path
}

// configureTest wires fakes into the package and restores the previous
// wiring when the test ends.
func configureTest(t *testing.T, deps Dependencies) {
	t.Helper()

	prevLibrary := newLibrary
	prevSession := newSession
	prevWatch := runWatchFn
	prevStore := configStore
	prevDelay := streamDelay

	Configure(deps)

	t.Cleanup(func() {
		newLibrary = prevLibrary
		newSession = prevSession
		runWatchFn = prevWatch
		configStore = prevStore
		streamDelay = prevDelay
	})
}

// libraryDeps wires a single fake library service.
func libraryDeps(lib *fakeLibrary) Dependencies {
	return Dependencies{
		Library: func(context.Context) (driving.LibraryService, func() error, error) {
			return lib, func() error { return nil }, nil
		},
	}
}

// missingCollectionDeps wires factories that fail the way a fresh
// install does: the collection database has never been created.
func missingCollectionDeps() Dependencies {
	err := fmt.Errorf("%w: collection %q", domain.ErrCollectionNotFound, "ghostvault")
	return Dependencies{
		Library: func(context.Context) (driving.LibraryService, func() error, error) {
			return nil, nil, err
		},
		Session: func(context.Context, string) (driving.ChatSession, func() error, error) {
			return nil, nil, err
		},
	}
}

// sessionDeps wires a single fake chat session.
func sessionDeps(s *fakeSession) Dependencies {
	return Dependencies{
		Session: func(_ context.Context, persona string) (driving.ChatSession, func() error, error) {
			s.persona = persona
			return s, func() error { s.closedOK = true; return nil }, nil
		},
	}
}
