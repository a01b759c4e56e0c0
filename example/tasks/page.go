package tasks

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/pthm/mvcpack"
	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

//go:embed page.html
var pageHTML []byte

// AppSelector locates the element that receives the rendered mode.
const AppSelector = "#app"

// Page parses a fresh copy of the page document.
func Page() (*html.Node, error) {
	return dom.ParseDocument(bytes.NewReader(pageHTML))
}

// Mount replaces the content of the page's #app element with nodes.
func Mount(doc *html.Node, nodes []*html.Node) error {
	app, err := dom.Find([]*html.Node{doc}, AppSelector)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("%w: page has no %s element", mvcpack.ErrUndefinedReference, AppSelector)
	}
	for c := app.FirstChild; c != nil; {
		next := c.NextSibling
		app.RemoveChild(c)
		c = next
	}
	dom.Append(app, nodes...)
	return nil
}
