package tablesearch

import "log/slog"

// Default selectors and class names.
const (
	DefaultColumnSelector     = "td"
	DefaultRowSelector        = "tbody tr"
	DefaultRowMatchClass      = "match"
	DefaultSearchResultsClass = "results"
	DefaultSearchingClass     = "searching"
)

// CellFunc is invoked for a matched cell with the normalised query.
type CellFunc func(cell Node, query string)

// NodeFunc is a row, cell, or table hook.
type NodeFunc func(n Node)

// Settings is the serialisable part of the configuration. Empty fields keep
// their defaults.
type Settings struct {
	ColumnSelector     string `yaml:"column_selector" json:"column_selector,omitempty"`
	RowSelector        string `yaml:"row_selector" json:"row_selector,omitempty"`
	RowMatchClass      string `yaml:"row_match_class" json:"row_match_class,omitempty"`
	SearchResultsClass string `yaml:"search_results_class" json:"search_results_class,omitempty"`
	SearchingClass     string `yaml:"searching_class" json:"searching_class,omitempty"`
}

// Merge returns s with empty fields taken from other.
func (s Settings) Merge(other Settings) Settings {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return Settings{
		ColumnSelector:     pick(s.ColumnSelector, other.ColumnSelector),
		RowSelector:        pick(s.RowSelector, other.RowSelector),
		RowMatchClass:      pick(s.RowMatchClass, other.RowMatchClass),
		SearchResultsClass: pick(s.SearchResultsClass, other.SearchResultsClass),
		SearchingClass:     pick(s.SearchingClass, other.SearchingClass),
	}
}

// DefaultSettings returns the built-in selectors and class names.
func DefaultSettings() Settings {
	return Settings{
		ColumnSelector:     DefaultColumnSelector,
		RowSelector:        DefaultRowSelector,
		RowMatchClass:      DefaultRowMatchClass,
		SearchResultsClass: DefaultSearchResultsClass,
		SearchingClass:     DefaultSearchingClass,
	}
}

type config struct {
	Settings

	onMatchCell     CellFunc
	resetCell       NodeFunc
	onMatchRow      NodeFunc
	onNoMatchRow    NodeFunc
	resetMatchRow   NodeFunc
	resetNoMatchRow NodeFunc
	onStart         NodeFunc
	onCompleted     NodeFunc
	resetTable      NodeFunc

	logger *slog.Logger
}

// newConfig builds the default configuration. The default hooks read class
// names through c at call time, so class options may be applied in any order.
func newConfig() *config {
	c := &config{
		Settings: DefaultSettings(),
		logger:   slog.Default(),
	}
	c.onMatchCell = func(cell Node, query string) {
		cell.SetHTML(HighlightText(cell.HTML(), query))
	}
	c.resetCell = func(cell Node) {
		cell.SetHTML(HighlightText(cell.HTML(), ""))
	}
	c.onMatchRow = func(row Node) { row.AddClass(c.RowMatchClass) }
	c.resetMatchRow = func(row Node) { row.RemoveClass(c.RowMatchClass) }
	c.onStart = func(table Node) { table.AddClass(c.SearchingClass) }
	c.onCompleted = func(table Node) {
		table.RemoveClass(c.SearchingClass)
		table.AddClass(c.SearchResultsClass)
	}
	c.resetTable = func(table Node) { table.RemoveClass(c.SearchResultsClass) }
	return c
}

// Option configures a Searcher.
type Option func(*config)

// WithSettings applies the non-empty fields of s.
func WithSettings(s Settings) Option {
	return func(c *config) {
		c.Settings = s.Merge(c.Settings)
	}
}

// WithColumnSelector sets the selector for searchable cells within a row.
func WithColumnSelector(selector string) Option {
	return func(c *config) { c.ColumnSelector = selector }
}

// WithRowSelector sets the selector for rows within the table.
func WithRowSelector(selector string) Option {
	return func(c *config) { c.RowSelector = selector }
}

// WithRowMatchClass sets the class added to matched rows by the default hooks.
func WithRowMatchClass(class string) Option {
	return func(c *config) { c.RowMatchClass = class }
}

// WithSearchResultsClass sets the class added to the table once a search completes.
func WithSearchResultsClass(class string) Option {
	return func(c *config) { c.SearchResultsClass = class }
}

// WithSearchingClass sets the class the table carries while a search runs.
func WithSearchingClass(class string) Option {
	return func(c *config) { c.SearchingClass = class }
}

// WithOnMatchCell replaces the matched-cell hook. nil disables it.
func WithOnMatchCell(fn CellFunc) Option {
	return func(c *config) { c.onMatchCell = fn }
}

// WithResetCell replaces the cell reset hook. nil disables it.
func WithResetCell(fn NodeFunc) Option {
	return func(c *config) { c.resetCell = fn }
}

// WithOnMatchRow replaces the matched-row hook. nil disables it.
func WithOnMatchRow(fn NodeFunc) Option {
	return func(c *config) { c.onMatchRow = fn }
}

// WithOnNoMatchRow sets the hook for rows that did not match. Disabled by default.
func WithOnNoMatchRow(fn NodeFunc) Option {
	return func(c *config) { c.onNoMatchRow = fn }
}

// WithResetMatchRow replaces the matched-row reset hook. nil disables it.
func WithResetMatchRow(fn NodeFunc) Option {
	return func(c *config) { c.resetMatchRow = fn }
}

// WithResetNoMatchRow sets the reset hook for unmatched rows. Disabled by default.
func WithResetNoMatchRow(fn NodeFunc) Option {
	return func(c *config) { c.resetNoMatchRow = fn }
}

// WithOnStart replaces the hook run before the match pass. nil disables it.
func WithOnStart(fn NodeFunc) Option {
	return func(c *config) { c.onStart = fn }
}

// WithOnCompleted replaces the hook run after the match pass. nil disables it.
func WithOnCompleted(fn NodeFunc) Option {
	return func(c *config) { c.onCompleted = fn }
}

// WithResetTable replaces the table reset hook. nil disables it.
func WithResetTable(fn NodeFunc) Option {
	return func(c *config) { c.resetTable = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
