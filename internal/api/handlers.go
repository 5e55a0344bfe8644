package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rowlight/internal/checksum"
	"github.com/starford/rowlight/internal/docservice"
	"github.com/starford/rowlight/internal/highlighter"
)

// maxBodyBytes bounds request bodies for document and highlight payloads.
const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// documentPath extracts the document path from the URL wildcard.
// Supports encoded slashes from OpenAPI clients (e.g. reports%2Fq1.html).
func documentPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func writeDocument(w http.ResponseWriter, status int, doc *DocumentDetail) {
	w.Header().Set("ETag", checksum.ETag(doc.Checksum))
	writeJSON(w, status, doc)
}

// ListDocuments handles GET /api/documents.
//
//	@Summary		List documents with optional pagination
//	@Tags			documents
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			sort	query		string	false	"Sort field"	Enums(updated_at, title, path)
//	@Success		200		{object}	DocumentListResponse
//	@Security		BearerAuth
//	@Router			/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.svc.ListDocuments(r.Context(), limit, offset, q.Get("sort"))
	if err != nil {
		writeError(w, "list documents", err)
		return
	}
	if items == nil {
		items = []DocumentListItem{}
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, Total: total})
}

// GetDocument handles GET /api/documents/*.
//
//	@Summary		Get a single document by path
//	@Tags			documents
//	@Produce		json
//	@Param			path	path		string	true	"Document path"
//	@Success		200		{object}	DocumentDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	doc, err := h.svc.GetDocument(r.Context(), path)
	if err != nil {
		writeError(w, "get document", err, slog.String("path", path))
		return
	}
	writeDocument(w, http.StatusOK, doc)
}

// CreateDocument handles POST /api/documents.
//
//	@Summary		Create a new document
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateDocumentRequest	true	"Document to create"
//	@Success		201		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents [post]
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path and content are required"))
		return
	}
	doc, err := h.svc.CreateDocument(r.Context(), req.Path, []byte(req.Content))
	if err != nil {
		writeError(w, "create document", err, slog.String("path", req.Path))
		return
	}
	writeDocument(w, http.StatusCreated, doc)
}

// UpdateDocument handles PUT /api/documents/*.
//
//	@Summary		Update a document with optimistic concurrency
//	@Tags			documents
//	@Accept			json
//	@Produce		json
//	@Param			path		path	string					true	"Document path"
//	@Param			If-Match	header	string					false	"ETag of the version being replaced"
//	@Param			body		body	UpdateDocumentRequest	true	"Updated content"
//	@Success		200		{object}	DocumentDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [put]
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}

	var req UpdateDocumentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	ifMatch := checksum.FromETag(r.Header.Get("If-Match"))
	doc, err := h.svc.UpdateDocument(r.Context(), path, []byte(req.Content), ifMatch)
	if err != nil {
		writeError(w, "update document", err, slog.String("path", path))
		return
	}
	writeDocument(w, http.StatusOK, doc)
}

// DeleteDocument handles DELETE /api/documents/*.
//
//	@Summary		Delete a document
//	@Tags			documents
//	@Param			path	path	string	true	"Document path"
//	@Success		204		"Document deleted"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/documents/{path} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteDocument(r.Context(), path); err != nil {
		writeError(w, "delete document", err, slog.String("path", path))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across documents
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search", err, slog.String("query", q))
		return
	}
	if results == nil {
		results = []SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// HighlightDocument handles GET /api/highlight/*.
//
//	@Summary		Run a table search on a stored document
//	@Tags			highlight
//	@Produce		json
//	@Param			path	path		string	true	"Document path"
//	@Param			q		query		string	false	"Search query; empty leaves the markup unchanged"
//	@Param			table	query		string	false	"Table selector"
//	@Param			rows	query		string	false	"Row selector, relative to each table"
//	@Param			cols	query		string	false	"Cell selector, relative to each row"
//	@Success		200		{object}	HighlightResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/highlight/{path} [get]
func (h *Handler) HighlightDocument(w http.ResponseWriter, r *http.Request) {
	path := documentPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	q := r.URL.Query()
	req := highlighter.Request{
		Query:          q.Get("q"),
		TableSelector:  q.Get("table"),
		RowSelector:    q.Get("rows"),
		ColumnSelector: q.Get("cols"),
	}
	res, err := h.svc.HighlightDocument(r.Context(), path, req)
	if err != nil {
		writeError(w, "highlight document", err, slog.String("path", path))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HighlightHTML handles POST /api/highlight.
//
//	@Summary		Run a table search on caller-supplied HTML
//	@Tags			highlight
//	@Accept			json
//	@Produce		json
//	@Param			body	body		HighlightRequest	true	"Markup and query"
//	@Success		200		{object}	HighlightResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/highlight [post]
func (h *Handler) HighlightHTML(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.svc.HighlightHTML(r.Context(), req.HTML, highlighter.Request{
		Query:          req.Query,
		TableSelector:  req.TableSelector,
		RowSelector:    req.RowSelector,
		ColumnSelector: req.ColumnSelector,
	})
	if err != nil {
		writeError(w, "highlight html", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SearchOptions handles GET /api/options.
//
//	@Summary		Describe the default selectors and classes
//	@Tags			highlight
//	@Produce		json
//	@Success		200	{object}	SearchOptionsResponse
//	@Security		BearerAuth
//	@Router			/options [get]
func (h *Handler) SearchOptions(w http.ResponseWriter, _ *http.Request) {
	opts := h.svc.Highlighter().Options()
	writeJSON(w, http.StatusOK, SearchOptionsResponse{
		TableSelector: opts.TableSelector,
		NoMatchClass:  opts.NoMatchClass,
		Settings:      opts.Settings,
	})
}
