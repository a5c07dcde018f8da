package docstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MemoryStore is an in-memory hierarchical document store.
//
// Documents are keyed by their full path. A document may exist under a path
// whose ancestors hold no document, as in Firestore.
type MemoryStore struct {
	mu        sync.Mutex
	documents map[string]map[string]any
	deletes   []string
	err       error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]map[string]any),
	}
}

// WithError makes subsequent RecursiveDelete calls fail with err without
// touching any document. Passing nil clears it.
func (m *MemoryStore) WithError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Set creates or replaces the document at path.
func (m *MemoryStore) Set(path string, fields map[string]any) error {
	if err := ValidateDocumentPath(path); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid document path %q: %v", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[path] = maps.Clone(fields)
	return nil
}

// Get returns a copy of the document at path.
func (m *MemoryStore) Get(path string) (map[string]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[path]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// Exists reports whether a document exists at path.
func (m *MemoryStore) Exists(path string) bool {
	_, ok := m.Get(path)
	return ok
}

// Paths returns the paths of all stored documents in lexical order.
func (m *MemoryStore) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Sorted(maps.Keys(m.documents))
}

// Deletes returns the paths passed to RecursiveDelete, in call order.
func (m *MemoryStore) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.deletes)
}

func (m *MemoryStore) RecursiveDelete(ctx context.Context, path string) error {
	_, span := tracer.Start(ctx, "MemoryStore.RecursiveDelete")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, path)

	if m.err != nil {
		return m.err
	}

	if err := ValidateDocumentPath(path); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid document path %q: %v", path, err)
	}

	prefix := path + "/"
	deleted := 0
	for docPath := range m.documents {
		if strings.HasPrefix(docPath, prefix) {
			delete(m.documents, docPath)
			deleted++
		}
	}

	if _, ok := m.documents[path]; ok {
		delete(m.documents, path)
		deleted++
	}

	recordDeleted(span, deleted)
	return nil
}

var _ Store = (*MemoryStore)(nil)
