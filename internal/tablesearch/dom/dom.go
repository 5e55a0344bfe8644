// Package dom binds tablesearch.Node to goquery selections.
package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/starford/rowlight/internal/tablesearch"
)

// Selection adapts a goquery selection to tablesearch.Node. Mutations apply
// to every element in the selection.
type Selection struct {
	sel *goquery.Selection
}

var _ tablesearch.Node = (*Selection)(nil)

// Wrap returns sel as a Node, or nil when sel is empty.
func Wrap(sel *goquery.Selection) tablesearch.Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Selection{sel: sel}
}

// FromNode wraps a parsed HTML node.
func FromNode(n *html.Node) tablesearch.Node {
	if n == nil {
		return nil
	}
	return &Selection{sel: goquery.NewDocumentFromNode(n).Selection}
}

// Split returns one Node per element of sel, in document order.
func Split(sel *goquery.Selection) []tablesearch.Node {
	if sel == nil {
		return nil
	}
	out := make([]tablesearch.Node, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, &Selection{sel: el})
	})
	return out
}

// Selection returns the underlying goquery selection.
func (s *Selection) Selection() *goquery.Selection {
	return s.sel
}

// Find returns the descendants matching selector. An invalid selector
// matches nothing.
func (s *Selection) Find(selector string) []tablesearch.Node {
	return Split(s.sel.Find(selector))
}

// Text returns the combined text of the selection.
func (s *Selection) Text() string {
	return s.sel.Text()
}

// HTML returns the inner HTML of the first element.
func (s *Selection) HTML() string {
	h, err := s.sel.Html()
	if err != nil {
		return ""
	}
	return h
}

// SetHTML replaces the inner HTML of every element.
func (s *Selection) SetHTML(h string) {
	s.sel.SetHtml(h)
}

// AddClass adds class to every element.
func (s *Selection) AddClass(class string) {
	if class == "" {
		return
	}
	s.sel.AddClass(class)
}

// RemoveClass removes class from every element and drops class attributes
// left empty, so that add/remove round-trips render identically.
func (s *Selection) RemoveClass(class string) {
	if class == "" {
		return
	}
	s.sel.RemoveClass(class)
	s.sel.Each(func(_ int, el *goquery.Selection) {
		if v, ok := el.Attr("class"); ok && v == "" {
			el.RemoveAttr("class")
		}
	})
}
