// Package dom provides helpers for building and rearranging HTML fragment
// trees (golang.org/x/net/html nodes). Block decorators use these to turn
// authored row/cell grids into component markup.
package dom

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elem creates an element node with the given tag, attributes and children.
// Attribute order follows html.Node semantics (map iteration order is not
// significant for rendering equality in tests; use sorted keys there).
func Elem(tag string, attrs map[string]string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	// Deterministic attribute order keeps rendered output stable.
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	for _, c := range children {
		Append(n, c)
	}
	return n
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append detaches child from any current parent and appends it to parent.
func Append(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	Detach(child)
	parent.AppendChild(child)
}

// Detach removes n from its parent. Safe to call on parentless nodes.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns a snapshot of n's direct children. Mutating the tree
// while ranging over the snapshot is safe.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns a snapshot of n's direct element children,
// skipping text and comment nodes.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range Children(n) {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ReplaceChildren detaches all current children of parent and appends the
// given nodes in order.
func ReplaceChildren(parent *html.Node, nodes ...*html.Node) {
	for _, c := range Children(parent) {
		Detach(c)
	}
	for _, n := range nodes {
		Append(parent, n)
	}
}

// Attr returns the value of the named attribute, or "".
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

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries the given class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class unless already present.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	existing := Attr(n, "class")
	if existing == "" {
		SetAttr(n, "class", class)
		return
	}
	SetAttr(n, "class", existing+" "+class)
}

// Pred is a node predicate used by the Find helpers.
type Pred func(*html.Node) bool

// ByTag matches element nodes with the given tag name.
func ByTag(tag string) Pred {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// ByClass matches element nodes carrying the given class.
func ByClass(class string) Pred {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	}
}

// FindFirst returns the first descendant (pre-order, root excluded) matching
// pred, or nil.
func FindFirst(root *html.Node, pred Pred) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := FindFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendants matching pred in document order.
func FindAll(root *html.Node, pred Pred) []*html.Node {
	var out []*html.Node
	if root == nil {
		return out
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// TextContent returns the concatenated text of all text-node descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}

// IsWhitespace reports whether n is a text node containing only whitespace.
func IsWhitespace(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// ParseFragment parses an HTML fragment as body content and returns the
// top-level nodes.
func ParseFragment(r io.Reader) ([]*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// RenderFragment renders the given nodes in order.
func RenderFragment(w io.Writer, nodes []*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}
