// Package highlighter runs table searches over whole HTML documents.
package highlighter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/starford/rowlight/internal/tablesearch"
	"github.com/starford/rowlight/internal/tablesearch/dom"
)

// DefaultTableSelector selects the tables searched in a document.
const DefaultTableSelector = "table"

var documentRe = regexp.MustCompile(`(?i)<(?:!doctype|html|body)[\s>]`)

// Options are the document-wide defaults. Empty fields fall back to the
// tablesearch defaults.
type Options struct {
	TableSelector string
	Settings      tablesearch.Settings
	// NoMatchClass, when set, is added to rows that do not match and removed
	// again on reset.
	NoMatchClass string
}

// Request describes one highlight run. Empty selectors use the defaults.
type Request struct {
	Query          string `json:"query"`
	TableSelector  string `json:"table_selector,omitempty"`
	RowSelector    string `json:"row_selector,omitempty"`
	ColumnSelector string `json:"column_selector,omitempty"`
}

// TableResult holds the match counts for one table.
type TableResult struct {
	Index int `json:"index"`
	tablesearch.Stats
}

// Result is the annotated document and its match counts.
type Result struct {
	Query         string        `json:"query"`
	HTML          string        `json:"html"`
	Tables        []TableResult `json:"tables"`
	MatchedRows   int           `json:"matched_rows"`
	UnmatchedRows int           `json:"unmatched_rows"`
	MatchedCells  int           `json:"matched_cells"`
}

// Highlighter applies table searches to HTML documents. It is safe for
// concurrent use; every call works on its own parsed document.
type Highlighter struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Highlighter.
func New(opts Options, logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TableSelector == "" {
		opts.TableSelector = DefaultTableSelector
	}
	opts.Settings = opts.Settings.Merge(tablesearch.DefaultSettings())
	return &Highlighter{opts: opts, logger: logger}
}

// Options returns the defaults in effect.
func (h *Highlighter) Options() Options {
	return h.opts
}

// Apply parses the HTML read from r, searches every selected table for
// req.Query and returns the annotated markup. Input without an html or body
// element is treated as a fragment and rendered back as one.
func (h *Highlighter) Apply(ctx context.Context, r io.Reader, req Request) (*Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("highlighter: read: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("highlighter: parse: %w", err)
	}

	tableSelector := req.TableSelector
	if tableSelector == "" {
		tableSelector = h.opts.TableSelector
	}
	settings := tablesearch.Settings{
		RowSelector:    req.RowSelector,
		ColumnSelector: req.ColumnSelector,
	}.Merge(h.opts.Settings)

	opts := []tablesearch.Option{
		tablesearch.WithSettings(settings),
		tablesearch.WithLogger(h.logger),
	}
	if class := h.opts.NoMatchClass; class != "" {
		opts = append(opts,
			tablesearch.WithOnNoMatchRow(func(row tablesearch.Node) { row.AddClass(class) }),
			tablesearch.WithResetNoMatchRow(func(row tablesearch.Node) { row.RemoveClass(class) }),
		)
	}

	res := &Result{
		Query:  strings.TrimSpace(req.Query),
		Tables: []TableResult{},
	}
	for i, table := range dom.Split(doc.Find(tableSelector)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := tablesearch.New(table, opts...)
		s.SearchFor(req.Query)

		st := s.Stats()
		res.Tables = append(res.Tables, TableResult{Index: i, Stats: st})
		res.MatchedRows += st.MatchedRows
		res.UnmatchedRows += st.UnmatchedRows
		res.MatchedCells += st.MatchedCells
	}

	root := doc.Selection
	if !documentRe.Match(src) {
		root = doc.Find("body")
	}
	if res.HTML, err = root.Html(); err != nil {
		return nil, fmt.Errorf("highlighter: render: %w", err)
	}

	h.logger.Debug("highlighter: applied",
		slog.String("query", res.Query),
		slog.Int("tables", len(res.Tables)),
		slog.Int("matched_rows", res.MatchedRows))
	return res, nil
}
