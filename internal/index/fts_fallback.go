//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE fallback on the documents.body column.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _ string) error {
	// Body is already stored in the documents table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
// The snippet is the first table row containing the query.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT path, title, body
		FROM documents
		WHERE title LIKE ? OR body LIKE ?
		ORDER BY path
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		var body string
		if err := rows.Scan(&r.Path, &r.Title, &body); err != nil {
			return nil, err
		}
		r.Snippet = matchingLine(body, query)
		out = append(out, r)
	}
	return out, rows.Err()
}

func matchingLine(body, query string) string {
	q := strings.ToLower(query)
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(strings.ToLower(line), q) {
			return line
		}
	}
	if len(body) > 200 {
		return body[:200]
	}
	return strings.TrimRight(body, "\n")
}
