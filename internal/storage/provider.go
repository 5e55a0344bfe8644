// Package storage defines the document directory abstraction.
package storage

import "github.com/starford/rowlight/internal/models"

// DefaultInclude selects the files treated as documents.
var DefaultInclude = []string{"**/*.html", "**/*.htm"}

// Provider is the interface for document file operations.
type Provider interface {
	// List returns metadata for every document under dir (relative to the root).
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to the root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to the root).
	Move(oldPath, newPath string) error
	// Match reports whether path (relative to the root) is a document.
	Match(path string) bool
}
