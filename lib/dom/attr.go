package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of the attribute key, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the attribute key, adding it if absent.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries the class name.
func HasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds the class name to every element node.
func AddClass(nodes []*html.Node, name string) {
	for _, n := range nodes {
		if n.Type != html.ElementNode || HasClass(n, name) {
			continue
		}
		classes := strings.Fields(Attr(n, "class"))
		SetAttr(n, "class", strings.Join(append(classes, name), " "))
	}
}

// RemoveClass removes the class name from every element node.
func RemoveClass(nodes []*html.Node, name string) {
	for _, n := range nodes {
		if n.Type != html.ElementNode || !HasClass(n, name) {
			continue
		}
		classes := strings.Fields(Attr(n, "class"))
		kept := classes[:0]
		for _, c := range classes {
			if c != name {
				kept = append(kept, c)
			}
		}
		SetAttr(n, "class", strings.Join(kept, " "))
	}
}
