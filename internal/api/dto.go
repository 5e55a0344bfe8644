package api

import (
	"github.com/starford/rowlight/internal/docservice"
	"github.com/starford/rowlight/internal/highlighter"
	"github.com/starford/rowlight/internal/index"
	"github.com/starford/rowlight/internal/tablesearch"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Path    string `json:"path" example:"reports/q1.html" validate:"required"`
	Content string `json:"content" example:"<table><tr><td>Alice</td></tr></table>" validate:"required"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Content string `json:"content" example:"<table><tr><td>Bob</td></tr></table>" validate:"required"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// HighlightRequest is the request body for highlighting caller-supplied HTML.
type HighlightRequest struct {
	HTML           string `json:"html" example:"<table><tr><td>Catherine</td></tr></table>" validate:"required"`
	Query          string `json:"query" example:"cat"`
	TableSelector  string `json:"table_selector,omitempty" example:"table"`
	RowSelector    string `json:"row_selector,omitempty" example:"tbody tr"`
	ColumnSelector string `json:"column_selector,omitempty" example:"td"`
}

// HighlightResponse is the annotated markup and its match counts.
type HighlightResponse = highlighter.Result

// SearchOptionsResponse describes the selectors and classes in effect.
type SearchOptionsResponse struct {
	TableSelector string               `json:"table_selector" example:"table"`
	NoMatchClass  string               `json:"no_match_class,omitempty"`
	Settings      tablesearch.Settings `json:"settings"`
}
