// Package testutil provides shared test helpers for setting up document
// directories, databases and services.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/rowlight/internal/docservice"
	"github.com/starford/rowlight/internal/highlighter"
	"github.com/starford/rowlight/internal/index"
	"github.com/starford/rowlight/internal/storage"
)

// PeopleTable is a small document used across tests.
const PeopleTable = `<html><head><title>People</title></head><body>` +
	`<table><tbody>` +
	`<tr><td>Alice</td><td>Bob</td></tr>` +
	`<tr><td>Catherine</td><td>Smith</td></tr>` +
	`</tbody></table></body></html>`

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "rowlight-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDocs creates a temporary document directory with a storage.Provider.
func TestDocs(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestService wires a document service over a temporary directory and
// database with default highlighter options.
func TestService(t *testing.T, cacheSize int) (*docservice.Service, *storage.FS) {
	t.Helper()
	_, store := TestDocs(t)
	db := TestDB(t)
	hl := highlighter.New(highlighter.Options{}, nil)
	svc, err := docservice.NewService(store, db, hl, cacheSize)
	if err != nil {
		t.Fatal(err)
	}
	return svc, store
}
