package tablesearch

import (
	"regexp"
	"strings"
)

// Highlight marker tags.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

var (
	markerRe  = regexp.MustCompile(`(?i)</?mark>`)
	textRunRe = regexp.MustCompile(`[^<>]+`)
	charRefRe = regexp.MustCompile(`&[#A-Za-z0-9]+;`)
)

// HighlightText strips existing highlight markers from html and, when query
// is non-empty, wraps every case-insensitive occurrence of query found in a
// text run between tags.
//
// This is textual pattern matching, not HTML parsing. query is embedded in
// the pattern as-is, so pattern metacharacters keep their meaning. A query
// that does not compile leaves html stripped but otherwise unchanged. Runs
// containing a double quote are never highlighted, and matches cannot span
// sibling elements. Character references such as &#39; or &amp; are never
// split: only the text between them is highlighted, so a match never covers
// part or all of an escaped character.
func HighlightText(html, query string) string {
	html = markerRe.ReplaceAllString(html, "")
	if query == "" {
		return html
	}

	occurrence, err := regexp.Compile(`(?i)` + query)
	if err != nil {
		return html
	}
	eligible, err := regexp.Compile(`(?i)^[^<>"]*?(?:` + query + `)[^<>"]*$`)
	if err != nil {
		return html
	}

	var b strings.Builder
	b.Grow(len(html))
	last := 0
	for _, loc := range textRunRe.FindAllStringIndex(html, -1) {
		start, end := loc[0], loc[1]
		// A run is text only when it sits between '>' (or the start) and
		// '<' (or the end); anything else is inside a tag.
		if start > 0 && html[start-1] != '>' {
			continue
		}
		if end < len(html) && html[end] != '<' {
			continue
		}
		run := html[start:end]
		if !eligible.MatchString(run) {
			continue
		}
		b.WriteString(html[last:start])
		mark(&b, run, occurrence)
		last = end
	}
	b.WriteString(html[last:])
	return b.String()
}

// mark writes run to b with every occurrence wrapped in markers, leaving
// character references intact.
func mark(b *strings.Builder, run string, occurrence *regexp.Regexp) {
	wrap := func(m string) string {
		if m == "" {
			return m
		}
		return MarkOpen + m + MarkClose
	}
	last := 0
	for _, ref := range charRefRe.FindAllStringIndex(run, -1) {
		b.WriteString(occurrence.ReplaceAllStringFunc(run[last:ref[0]], wrap))
		b.WriteString(run[ref[0]:ref[1]])
		last = ref[1]
	}
	b.WriteString(occurrence.ReplaceAllStringFunc(run[last:], wrap))
}
