// Package docservice coordinates document storage, the index and the
// highlighter.
package docservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/starford/rowlight/internal/apperr"
	"github.com/starford/rowlight/internal/checksum"
	"github.com/starford/rowlight/internal/highlighter"
	"github.com/starford/rowlight/internal/index"
	"github.com/starford/rowlight/internal/models"
	"github.com/starford/rowlight/internal/parser"
	"github.com/starford/rowlight/internal/storage"
)

// DocumentDetail is the full representation of a document.
type DocumentDetail struct {
	models.Document
	Content string `json:"content"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem = index.DocumentRow

// Service coordinates storage, index and highlighting operations.
type Service struct {
	store storage.Provider
	db    index.DocumentIndex
	hl    *highlighter.Highlighter
	cache *lru.Cache[string, *highlighter.Result]
}

// NewService creates a new document service. cacheSize bounds the number of
// highlight results kept for stored documents; zero disables caching.
func NewService(store storage.Provider, db index.DocumentIndex, hl *highlighter.Highlighter, cacheSize int) (*Service, error) {
	s := &Service{store: store, db: db, hl: hl}
	if cacheSize > 0 {
		cache, err := lru.New[string, *highlighter.Result](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("highlight cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Highlighter returns the highlighter used by the service.
func (s *Service) Highlighter() *highlighter.Highlighter {
	return s.hl
}

// GetDocument reads a document from storage and describes it. UpdatedAt
// comes from the index when the document has been indexed.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		return nil, err
	}
	detail, err := buildDetail(path, data)
	if err != nil {
		return nil, err
	}
	if row, err := s.db.GetDocument(path); err == nil && row.Checksum == detail.Checksum {
		detail.UpdatedAt = row.UpdatedAt
	}
	return detail, nil
}

// CreateDocument writes a new document and indexes it.
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*DocumentDetail, error) {
	if !s.store.Match(path) {
		return nil, fmt.Errorf("path %q is not a document: %w", path, apperr.ErrInvalidRequest)
	}
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return buildDetail(path, content)
}

// UpdateDocument writes updated content with optimistic concurrency.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*DocumentDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return buildDetail(path, content)
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns one page of indexed documents.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, sort string) ([]DocumentListItem, int, error) {
	return s.db.ListDocuments(limit, offset, sort)
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// HighlightDocument runs the table search on a stored document. Results are
// cached per document checksum and must not be modified by callers.
func (s *Service) HighlightDocument(ctx context.Context, path string, req highlighter.Request) (*highlighter.Result, error) {
	data, err := s.store.Read(path)
	if err != nil {
		return nil, err
	}

	key := cacheKey(checksum.Sum(data), req)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			return res, nil
		}
	}

	res, err := s.hl.Apply(ctx, bytes.NewReader(data), req)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	slog.Debug("highlighted document",
		slog.String("path", path),
		slog.String("query", res.Query),
		slog.Int("matched_rows", res.MatchedRows))
	return res, nil
}

// HighlightHTML runs the table search on caller-supplied markup.
func (s *Service) HighlightHTML(ctx context.Context, html string, req highlighter.Request) (*highlighter.Result, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("html is empty: %w", apperr.ErrInvalidRequest)
	}
	return s.hl.Apply(ctx, strings.NewReader(html), req)
}

// IndexFile parses data and upserts it into the index.
// Exported so that sync and watcher can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	return index.IndexFile(s.db, path, data)
}

func buildDetail(path string, data []byte) (*DocumentDetail, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return &DocumentDetail{
		Document: models.Document{
			Path:      path,
			Title:     res.Title,
			Checksum:  checksum.Sum(data),
			Tables:    res.Tables,
			Rows:      res.Rows,
			UpdatedAt: time.Now().UTC(),
		},
		Content: string(data),
	}, nil
}

func cacheKey(sum string, req highlighter.Request) string {
	return strings.Join([]string{
		sum,
		req.TableSelector,
		req.RowSelector,
		req.ColumnSelector,
		strings.TrimSpace(req.Query),
	}, "\x00")
}
