package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/rowlight/internal"
	"github.com/starford/rowlight/internal/highlighter"
	pkgconfig "github.com/starford/rowlight/pkg/config"
)

func highlightCommand() *cli.Command {
	return &cli.Command{
		Name:      "highlight",
		Usage:     "Search the tables of an HTML file and print the annotated markup",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search query; an empty query leaves the markup unchanged",
			},
			&cli.StringFlag{Name: "table", Usage: "CSS selector for the tables to search"},
			&cli.StringFlag{Name: "rows", Usage: "CSS selector for rows, relative to each table"},
			&cli.StringFlag{Name: "cols", Usage: "CSS selector for cells, relative to each row"},
		},
		Action: runHighlight,
	}
}

func runHighlight(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	in := io.Reader(os.Stdin)
	if name := cmd.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	req := highlighter.Request{
		Query:          cmd.String("query"),
		TableSelector:  cmd.String("table"),
		RowSelector:    cmd.String("rows"),
		ColumnSelector: cmd.String("cols"),
	}
	logger := internal.NewLogger(cfg, internal.WithLogOutput(os.Stderr))
	return highlight(ctx, highlighter.New(cfg.Search.HighlighterOptions(), logger), in, os.Stdout, os.Stderr, req)
}

// highlight writes the annotated markup to out and a one-line summary per
// table plus the totals to summary.
func highlight(ctx context.Context, hl *highlighter.Highlighter, in io.Reader, out, summary io.Writer, req highlighter.Request) error {
	res, err := hl.Apply(ctx, in, req)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, res.HTML); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	for _, t := range res.Tables {
		fmt.Fprintf(summary, "table %d: %d matched rows, %d unmatched rows, %d highlighted cells\n",
			t.Index, t.MatchedRows, t.UnmatchedRows, t.MatchedCells)
	}
	fmt.Fprintf(summary, "query %q: %d of %d rows matched in %d tables\n",
		res.Query, res.MatchedRows, res.MatchedRows+res.UnmatchedRows, len(res.Tables))
	return nil
}
