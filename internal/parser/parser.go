// Package parser extracts titles and table text from HTML documents.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result holds the output of parsing an HTML document.
type Result struct {
	Title  string
	Tables int
	Rows   int
	// Text holds the table text, one row per line with cells separated by
	// tabs. It feeds the index; matching itself happens on the live DOM.
	Text string
}

// Parse extracts the title and table contents from raw HTML.
func Parse(data []byte) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	tables := doc.Find("table")
	rows := tables.Find("tr")

	return &Result{
		Title:  deriveTitle(doc),
		Tables: tables.Length(),
		Rows:   rows.Length(),
		Text:   tableText(rows),
	}, nil
}

// deriveTitle returns the <title> if present, otherwise the first table
// caption, otherwise the first <h1>, otherwise the empty string.
func deriveTitle(doc *goquery.Document) string {
	for _, sel := range []string{"title", "caption", "h1"} {
		if t := collapseSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func tableText(rows *goquery.Selection) string {
	var b strings.Builder
	rows.Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, collapseSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	})
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
