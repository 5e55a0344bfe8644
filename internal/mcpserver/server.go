// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes rowlight tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/rowlight/internal/docservice"
	"github.com/starford/rowlight/internal/highlighter"
)

// SearchOptionsURI is the resource describing the table search options.
const SearchOptionsURI = "rowlight://search-options"

// Server wraps the MCP server with rowlight tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all rowlight tools registered.
func New(svc *docservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"rowlight",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search through document titles and table text."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List indexed HTML documents with their table and row counts."),
		mcp.WithNumber("limit", mcp.Description("Page size (default: all)")),
		mcp.WithNumber("offset", mcp.Description("Page offset")),
		mcp.WithString("sort", mcp.Description("Sort field: path, title or updated_at")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the raw HTML of a stored document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. reports/q1.html)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("create_document",
		mcp.WithDescription("Store a new HTML document at the specified path and index it."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new document (must end with .html or .htm)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("HTML content")),
	), s.createDocument)

	s.mcp.AddTool(mcp.NewTool("highlight_document",
		mcp.WithDescription("Filter the table rows of a stored document by a query and "+
			"highlight the matching cell text. Read get_search_options first to learn the matching rules."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query; empty leaves the markup unchanged")),
		mcp.WithString("table_selector", mcp.Description("CSS selector for the tables to search")),
		mcp.WithString("row_selector", mcp.Description("CSS selector for rows, relative to each table")),
		mcp.WithString("column_selector", mcp.Description("CSS selector for cells, relative to each row")),
	), s.highlightDocument)

	s.mcp.AddTool(mcp.NewTool("highlight_html",
		mcp.WithDescription("Filter the table rows of the supplied HTML by a query and highlight the matching cell text."),
		mcp.WithString("html", mcp.Required(), mcp.Description("HTML fragment or document containing tables")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query; empty leaves the markup unchanged")),
		mcp.WithString("table_selector", mcp.Description("CSS selector for the tables to search")),
		mcp.WithString("row_selector", mcp.Description("CSS selector for rows, relative to each table")),
		mcp.WithString("column_selector", mcp.Description("CSS selector for cells, relative to each row")),
	), s.highlightHTML)

	s.mcp.AddTool(mcp.NewTool("get_search_options",
		mcp.WithDescription("Returns the selectors, classes and matching rules used by table search."),
	), s.getSearchOptions)

	s.mcp.AddResource(
		mcp.NewResource(SearchOptionsURI, "Table Search Options",
			mcp.WithResourceDescription("Selectors, classes and matching rules used by table search."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSearchOptionsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func highlightRequest(req mcp.CallToolRequest) highlighter.Request {
	return highlighter.Request{
		Query:          req.GetString("query", ""),
		TableSelector:  req.GetString("table_selector", ""),
		RowSelector:    req.GetString("row_selector", ""),
		ColumnSelector: req.GetString("column_selector", ""),
	}
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, total, err := s.svc.ListDocuments(ctx,
		req.GetInt("limit", 0),
		req.GetInt("offset", 0),
		req.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if items == nil {
		items = []docservice.DocumentListItem{}
	}
	return jsonResult(map[string]any{"documents": items, "total": total})
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.GetDocument(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(doc.Content), nil
}

func (s *Server) createDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.CreateDocument(ctx, path, []byte(content)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create %s: %v", path, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) highlightDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.HighlightDocument(ctx, path, highlightRequest(req))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("highlight %s: %v", path, err)), nil
	}
	return jsonResult(res)
}

func (s *Server) highlightHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, err := req.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.HighlightHTML(ctx, html, highlightRequest(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) getSearchOptions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SearchOptionsContract(s.svc.Highlighter().Options())), nil
}

func (s *Server) readSearchOptionsResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SearchOptionsURI,
			MIMEType: "text/markdown",
			Text:     SearchOptionsContract(s.svc.Highlighter().Options()),
		},
	}, nil
}
