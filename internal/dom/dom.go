// Package dom provides predicate-based traversal over parsed HTML trees.
//
// The extractor code works in terms of "first descendant matching P" and
// "all descendants matching P" lookups over golang.org/x/net/html node
// trees, plus attribute and text-content helpers:
//
//	doc, _ := html.Parse(strings.NewReader(page))
//	table := dom.Find(doc, dom.ByID("user_list"))
//	for _, row := range dom.FindAll(table, dom.ByTag("tr")) {
//	    title := dom.Text(dom.Find(row, dom.ByTagClass("a", "list_album")))
//	}
//
// All lookups tolerate nil nodes and return nil/empty results, so chained
// lookups over partially missing markup never panic.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Predicate decides whether a node matches a lookup.
type Predicate func(*html.Node) bool

// ByTag matches element nodes with the given tag name.
func ByTag(tag string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// ByID matches element nodes whose id attribute equals id.
func ByID(id string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	}
}

// ByClass matches element nodes carrying class in their class list.
func ByClass(class string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	}
}

// ByTagClass matches element nodes with the given tag name carrying class
// in their class list.
func ByTagClass(tag, class string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag && HasClass(n, class)
	}
}

// Find returns the first node in depth-first document order, starting at and
// including root, that matches p. It returns nil when root is nil or nothing
// matches.
func Find(root *html.Node, p Predicate) *html.Node {
	if root == nil {
		return nil
	}
	if p(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, p); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node under root (root included) matching p, in
// depth-first document order. A nil root yields an empty result.
func FindAll(root *html.Node, p Predicate) []*html.Node {
	var out []*html.Node
	if root == nil {
		return out
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if p(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Attr returns the value of the named attribute on n, or "" when n is nil or
// the attribute is absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n carries class in its space-separated class
// attribute.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n with runs of whitespace
// collapsed to single spaces and the result trimmed. A nil node yields "".
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
