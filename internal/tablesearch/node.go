// Package tablesearch finds a query in the visible text of table rows and
// annotates matching rows and cells through configurable hooks.
//
// The searcher works on any DOM-like tree that satisfies Node. A goquery
// binding lives in the dom subpackage.
package tablesearch

// Node is a single element of a DOM-like tree.
type Node interface {
	// Find returns the descendants matching selector, in document order.
	Find(selector string) []Node
	// Text returns the combined text content of the node and its descendants.
	Text() string
	// HTML returns the inner HTML of the node.
	HTML() string
	// SetHTML replaces the inner HTML of the node.
	SetHTML(html string)
	AddClass(class string)
	RemoveClass(class string)
}
