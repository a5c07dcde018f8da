// Package docstore provides recursive subtree deletion over a hierarchical
// document store.
package docstore

import (
	"context"
	"errors"
	"strings"
)

// Store deletes document subtrees.
type Store interface {
	// RecursiveDelete removes the document at path and every document nested
	// beneath it, at any depth.
	//
	// Deleting a path that holds nothing succeeds. On failure the subtree may
	// be partially removed, but the document at path itself is removed last,
	// so calling RecursiveDelete again resumes the deletion.
	RecursiveDelete(ctx context.Context, path string) error
}

var (
	// ErrEmptyPath is returned for an empty path.
	ErrEmptyPath = errors.New("path is empty")
	// ErrEmptySegment is returned when a path has an empty segment.
	ErrEmptySegment = errors.New("path has an empty segment")
	// ErrNotDocumentPath is returned when a path names a collection instead of a document.
	ErrNotDocumentPath = errors.New("path does not name a document")
)

// PathJoin joins path segments with "/".
func PathJoin(segments ...string) string {
	return strings.Join(segments, "/")
}

// ValidateDocumentPath checks that path has the collection/document/... shape
// of a document path.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	segments := strings.Split(path, "/")
	for _, segment := range segments {
		if segment == "" {
			return ErrEmptySegment
		}
	}

	if len(segments)%2 != 0 {
		return ErrNotDocumentPath
	}

	return nil
}
