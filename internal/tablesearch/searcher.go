package tablesearch

import (
	"log/slog"
	"strings"
)

// Searcher searches one table and remembers what it annotated so the next
// search or an explicit Reset can undo it.
//
// A Searcher is not safe for concurrent use.
type Searcher struct {
	table Node
	cfg   *config

	matchedCells  []Node
	matchedRows   []Node
	unmatchedRows []Node
}

// Stats summarises the annotations currently applied.
type Stats struct {
	MatchedRows   int `json:"matched_rows"`
	UnmatchedRows int `json:"unmatched_rows"`
	MatchedCells  int `json:"matched_cells"`
}

// New returns a Searcher over table. A nil table makes every search and
// reset a no-op.
func New(table Node, opts ...Option) *Searcher {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Searcher{table: table, cfg: cfg}
}

// Settings returns the selectors and class names in effect.
func (s *Searcher) Settings() Settings {
	return s.cfg.Settings
}

// Stats reports the size of the current match state.
func (s *Searcher) Stats() Stats {
	return Stats{
		MatchedRows:   len(s.matchedRows),
		UnmatchedRows: len(s.unmatchedRows),
		MatchedCells:  len(s.matchedCells),
	}
}

// SearchFor resets previous annotations and, unless the trimmed query is
// empty, marks every row whose searchable text contains it.
func (s *Searcher) SearchFor(query string) {
	s.Reset()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || s.table == nil {
		return
	}

	if s.cfg.onStart != nil {
		s.cfg.onStart(s.table)
	}

	for _, row := range s.rows() {
		cells := row.Find(s.cfg.ColumnSelector)
		texts := make([]string, len(cells))
		for i, cell := range cells {
			texts[i] = strings.ToLower(cell.Text())
		}

		if !strings.Contains(strings.Join(texts, ""), q) {
			s.unmatchedRows = append(s.unmatchedRows, row)
			if s.cfg.onNoMatchRow != nil {
				s.cfg.onNoMatchRow(row)
			}
			continue
		}

		for i, cell := range cells {
			if !strings.Contains(texts[i], q) {
				continue
			}
			s.matchedCells = append(s.matchedCells, cell)
			if s.cfg.onMatchCell != nil {
				s.cfg.onMatchCell(cell, q)
			}
		}
		s.matchedRows = append(s.matchedRows, row)
		if s.cfg.onMatchRow != nil {
			s.cfg.onMatchRow(row)
		}
	}

	if s.cfg.onCompleted != nil {
		s.cfg.onCompleted(s.table)
	}

	s.cfg.logger.Debug("tablesearch: search completed",
		slog.String("query", q),
		slog.Int("matched_rows", len(s.matchedRows)),
		slog.Int("unmatched_rows", len(s.unmatchedRows)),
		slog.Int("matched_cells", len(s.matchedCells)))
}

// Reset undoes every annotation made by the last search, newest first.
func (s *Searcher) Reset() {
	if fn := s.cfg.resetCell; fn != nil {
		for i := len(s.matchedCells) - 1; i >= 0; i-- {
			fn(s.matchedCells[i])
		}
	}
	if fn := s.cfg.resetMatchRow; fn != nil {
		for i := len(s.matchedRows) - 1; i >= 0; i-- {
			fn(s.matchedRows[i])
		}
	}
	if fn := s.cfg.resetNoMatchRow; fn != nil {
		for i := len(s.unmatchedRows) - 1; i >= 0; i-- {
			fn(s.unmatchedRows[i])
		}
	}
	if s.cfg.resetTable != nil && s.table != nil {
		s.cfg.resetTable(s.table)
	}

	s.matchedCells = nil
	s.matchedRows = nil
	s.unmatchedRows = nil
}

func (s *Searcher) rows() []Node {
	return s.table.Find(s.cfg.RowSelector)
}
