package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is the structural query surface the field extractors depend on
type Node interface {
	// Find returns the first descendant matching selector
	Find(selector string) Node
	// FindAll returns every descendant matching selector
	FindAll(selector string) []Node
	// Attr reads an attribute of the node
	Attr(name string) (string, bool)
	// Text returns the trimmed text content
	Text() string
	// HTML returns the node's outer markup
	HTML() string
	// Exists reports whether the node matched anything
	Exists() bool
}

// selectionNode implements Node on top of a goquery selection
type selectionNode struct {
	sel *goquery.Selection
}

// NewNode wraps a goquery selection
func NewNode(sel *goquery.Selection) Node {
	return selectionNode{sel: sel}
}

// ParseFragment parses an HTML snippet and returns its body as a Node
func ParseFragment(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return NewNode(doc.Find("body")), nil
}

func (n selectionNode) Find(selector string) Node {
	return selectionNode{sel: n.sel.Find(selector).First()}
}

func (n selectionNode) FindAll(selector string) []Node {
	matches := n.sel.Find(selector)
	nodes := make([]Node, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selectionNode{sel: s})
	})
	return nodes
}

func (n selectionNode) Attr(name string) (string, bool) {
	v, ok := n.sel.Attr(name)
	return strings.TrimSpace(v), ok
}

func (n selectionNode) Text() string {
	return strings.Join(strings.Fields(n.sel.Text()), " ")
}

func (n selectionNode) HTML() string {
	if n.sel.Length() == 0 {
		return ""
	}
	html, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return ""
	}
	return html
}

func (n selectionNode) Exists() bool {
	return n.sel.Length() > 0
}
