package tablesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightText(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		query string
		want  string
	}{
		{"preserves case of match", "Catherine", "cat", "<mark>Cat</mark>herine"},
		{"every occurrence in a run", "cat concat", "cat", "<mark>cat</mark> con<mark>cat</mark>"},
		{"no match", "Alice", "cat", "Alice"},
		{"empty query strips markers", "<mark>Cat</mark>herine", "", "Catherine"},
		{"strips markers case-insensitively", "<MARK>Cat</Mark>herine", "", "Catherine"},
		{"replaces stale markers", "<mark>Dog</mark> cat", "cat", "Dog <mark>cat</mark>"},
		{"leaves attributes alone", `<a title="cat">cat</a>`, "cat", `<a title="cat"><mark>cat</mark></a>`},
		{"runs across nested tags", "<b>cat</b> and cat", "cat", "<b><mark>cat</mark></b> and <mark>cat</mark>"},
		{"quoted runs are skipped", `say "cat"`, "cat", `say "cat"`},
		{"character references are not split", "O&#39;Brien 3", "3", "O&#39;Brien <mark>3</mark>"},
		{"named references are not split", "camp &amp; co", "amp", "c<mark>amp</mark> &amp; co"},
		{"match only inside a reference", "O&#39;Brien", "39", "O&#39;Brien"},
		{"escaped quotes are text", "say &#34;cat&#34;", "cat", "say &#34;<mark>cat</mark>&#34;"},
		{"invalid pattern only strips", "<mark>a(</mark>b", "(", "a(b"},
		{"pattern metacharacters are live", "cat cot", "c.t", "<mark>cat</mark> <mark>cot</mark>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightText(tt.html, tt.query))
		})
	}
}

func TestHighlightText_Idempotent(t *testing.T) {
	html := "<b>Catherine</b> concat"
	once := HighlightText(html, "cat")
	assert.Equal(t, once, HighlightText(once, "cat"))
	assert.Equal(t, html, HighlightText(once, ""))
}

func TestHighlightText_SwitchingQueriesLeavesNoResidue(t *testing.T) {
	html := HighlightText("cat and dog", "cat")
	html = HighlightText(html, "dog")
	assert.Equal(t, "cat and <mark>dog</mark>", html)
}
