package docstore_test

import (
	"testing"

	"github.com/database-playground/account-eraser/internal/docstore"
	"github.com/stretchr/testify/assert"
)

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "document", path: "users/abc123", want: nil},
		{name: "nested document", path: "users/abc123/notes/n1", want: nil},
		{name: "empty", path: "", want: docstore.ErrEmptyPath},
		{name: "collection", path: "users", want: docstore.ErrNotDocumentPath},
		{name: "nested collection", path: "users/abc123/notes", want: docstore.ErrNotDocumentPath},
		{name: "empty segment", path: "users//notes/n1", want: docstore.ErrEmptySegment},
		{name: "trailing slash", path: "users/abc123/", want: docstore.ErrEmptySegment},
		{name: "leading slash", path: "/users/abc123", want: docstore.ErrEmptySegment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, docstore.ValidateDocumentPath(tt.path), tt.want)
		})
	}
}

func TestPathJoin(t *testing.T) {
	assert.Equal(t, "users/abc123", docstore.PathJoin("users", "abc123"))
	assert.Equal(t, "users/abc123/notes/n1", docstore.PathJoin("users", "abc123", "notes", "n1"))
}
