package mcpserver

import (
	"fmt"

	"github.com/starford/rowlight/internal/highlighter"
	"github.com/starford/rowlight/internal/tablesearch"
)

// SearchOptionsContract describes how table search behaves with the given
// options, so that LLM consumers can choose queries and selectors.
func SearchOptionsContract(opts highlighter.Options) string {
	noMatch := "(none)"
	if opts.NoMatchClass != "" {
		noMatch = "`" + opts.NoMatchClass + "`"
	}
	return fmt.Sprintf(`# rowlight Table Search

A table search filters the rows of every selected table by a query and
highlights the matching text.

## Selectors in effect

| Setting | Value |
|---------|-------|
| table selector | `+"`%s`"+` |
| row selector (relative to each table) | `+"`%s`"+` |
| cell selector (relative to each row) | `+"`%s`"+` |
| matching row class | `+"`%s`"+` |
| searched table class | `+"`%s`"+` |
| in-progress table class | `+"`%s`"+` |
| non-matching row class | %s |

## Matching rules

1. The query is trimmed and compared case-insensitively.
2. A row matches when the query occurs in the concatenation of its cell
   texts, joined with no separator. A match may therefore span two cells.
3. Only cells whose own text contains the query are highlighted. Each
   occurrence is wrapped in `+"`%s...%s`"+`.
4. The query is used as a regular expression when highlighting. Characters
   such as `+"`.`"+` or `+"`(`"+` keep their regex meaning; an invalid pattern
   still filters rows but highlights nothing.
5. Text inside attribute values and tags is never highlighted.
6. An empty query leaves the markup unchanged and reports no rows.

## Tools

- `+"`highlight_document`"+`: run a search on a stored document.
- `+"`highlight_html`"+`: run a search on markup you supply.
- `+"`search_documents`"+`: find documents whose text contains a term.
`,
		opts.TableSelector,
		opts.Settings.RowSelector,
		opts.Settings.ColumnSelector,
		opts.Settings.RowMatchClass,
		opts.Settings.SearchResultsClass,
		opts.Settings.SearchingClass,
		noMatch,
		tablesearch.MarkOpen, tablesearch.MarkClose,
	)
}
