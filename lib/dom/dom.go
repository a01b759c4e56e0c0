// Package dom is the element layer used by views: it turns templ output into
// element trees, finds elements with CSS selectors and moves them between
// parents. Nodes are golang.org/x/net/html nodes, so any tree built here can
// be serialized with html.Render.
package dom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render renders c and parses the markup into its top-level elements. The
// returned nodes are detached siblings-to-be: they have no parent.
func Render(ctx context.Context, c templ.Component) ([]*html.Node, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return Parse(buf.String())
}

// Parse parses an HTML fragment in a <body> context. Whitespace-only text
// between top-level elements is dropped.
func Parse(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return doc, nil
}

// Find returns the first element matching selector among roots and their
// descendants, or nil.
func Find(roots []*html.Node, selector string) (*html.Node, error) {
	m, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}
	for _, root := range roots {
		if root == nil {
			continue
		}
		if m.Match(root) {
			return root, nil
		}
		if n := cascadia.Query(root, m); n != nil {
			return n, nil
		}
	}
	return nil, nil
}

// FindAll returns every element matching selector among roots and their
// descendants, in document order.
func FindAll(roots []*html.Node, selector string) ([]*html.Node, error) {
	m, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}
	var out []*html.Node
	for _, root := range roots {
		if root == nil {
			continue
		}
		if m.Match(root) {
			out = append(out, root)
		}
		out = append(out, cascadia.QueryAll(root, m)...)
	}
	return out, nil
}

// Append moves nodes to the end of parent, keeping their order. Nodes that
// are attached elsewhere are detached first.
func Append(parent *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		detach(n)
		parent.AppendChild(n)
	}
}

// Remove detaches nodes from their parents.
func Remove(nodes ...*html.Node) {
	for _, n := range nodes {
		detach(n)
	}
}

// Replace puts next where old currently sits and detaches old. If old is
// not attached, next stays detached as well.
func Replace(old, next []*html.Node) {
	var anchor *html.Node
	for _, n := range old {
		if n != nil && n.Parent != nil {
			anchor = n
			break
		}
	}
	if anchor != nil {
		parent := anchor.Parent
		for _, n := range next {
			detach(n)
			parent.InsertBefore(n, anchor)
		}
	}
	Remove(old...)
}

func detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// String serializes nodes one after another.
func String(nodes ...*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// Component adapts nodes into a templ.Component so rendered views can be
// embedded in other templ templates.
func Component(nodes ...*html.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if err := html.Render(w, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}
