package index

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/rowlight/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "rowlight-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("documents table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{
		Path:      "people.html",
		Title:     "People",
		Checksum:  "abc123",
		Tables:    1,
		Rows:      2,
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDocument(row, "Alice\tBob\nCatherine\tSmith\n"); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	cs, err := db.GetChecksum("people.html")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "a.html", Title: "A", Checksum: "1", Tables: 2, Rows: 7}, "x")

	d, err := db.GetDocument("a.html")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if d.Title != "A" || d.Tables != 2 || d.Rows != 7 {
		t.Errorf("document = %+v", d)
	}
	if d.UpdatedAt.IsZero() {
		t.Error("updated_at should default to now")
	}

	if _, err := db.GetDocument("missing.html"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing document: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "del.html", Checksum: "x"}, "body")

	if err := db.DeleteDocument("del.html"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	cs, _ := db.GetChecksum("del.html")
	if cs != "" {
		t.Errorf("deleted document still has checksum %q", cs)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "up.html", Title: "Old", Checksum: "1"}, "old body")
	_ = db.UpsertDocument(DocumentRow{Path: "up.html", Title: "New", Checksum: "2"}, "new body")

	cs, _ := db.GetChecksum("up.html")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	results, _ := db.Search("old body", 10)
	if len(results) != 0 {
		t.Errorf("stale body still searchable: %+v", results)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestListDocuments(t *testing.T) {
	db := testDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = db.UpsertDocument(DocumentRow{Path: "b.html", Title: "alpha", Checksum: "1", UpdatedAt: base}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "a.html", Title: "Charlie", Checksum: "2", UpdatedAt: base.Add(time.Hour)}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "c.html", Title: "Bravo", Checksum: "3", UpdatedAt: base.Add(2 * time.Hour)}, "")

	cases := []struct {
		sort string
		want []string
	}{
		{"", []string{"a.html", "b.html", "c.html"}},
		{"bogus", []string{"a.html", "b.html", "c.html"}},
		{"title", []string{"b.html", "c.html", "a.html"}},
		{"updated_at", []string{"c.html", "a.html", "b.html"}},
	}
	for _, tc := range cases {
		rows, total, err := db.ListDocuments(0, 0, tc.sort)
		if err != nil {
			t.Fatalf("ListDocuments(%q): %v", tc.sort, err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		var got []string
		for _, r := range rows {
			got = append(got, r.Path)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("sort %q: got %v, want %v", tc.sort, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("sort %q: got %v, want %v", tc.sort, got, tc.want)
				break
			}
		}
	}

	rows, total, err := db.ListDocuments(1, 1, "path")
	if err != nil {
		t.Fatalf("ListDocuments page: %v", err)
	}
	if total != 3 || len(rows) != 1 || rows[0].Path != "b.html" {
		t.Errorf("page = %+v, total = %d", rows, total)
	}
}

func TestAllPathsAndChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "a.html", Checksum: "1"}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "b.html", Checksum: "2"}, "")

	paths, err := db.AllPaths()
	if err != nil {
		t.Fatalf("AllPaths: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("paths = %v", paths)
	}
	sums, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if sums["a.html"] != "1" || sums["b.html"] != "2" {
		t.Errorf("checksums = %v", sums)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "s.html", Title: "Staff", Checksum: "1"}, "Alice\tBob\nCatherine\tuniqueword\n")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.html" {
		t.Fatalf("search results = %+v, want 1 hit for s.html", results)
	}
}
