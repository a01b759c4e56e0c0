package mvcpack

import (
	"context"
	"strings"

	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

// TestResult holds the output of rendering a view for testing.
//
// Provides convenience methods for asserting on the markup and on the
// rendered element tree.
type TestResult struct {
	HTML     string
	Elements []*html.Node
}

// TestRender renders a view and returns testable output.
//
// The view must already have a model; use TestMode to render a whole mode.
//
//	result, err := mvcpack.TestRender(ctx, view)
//	if !result.HTMLContains("expected text") {
//	    t.Fatal("missing expected content")
//	}
func TestRender(ctx context.Context, v View) (*TestResult, error) {
	nodes, err := v.Render(ctx)
	if err != nil {
		return nil, err
	}
	return newTestResult(nodes)
}

// TestMode composes the mode's active view (see Mode.Compose) and returns
// testable output.
//
//	mode.DecorateWith("panel")
//	result, err := mvcpack.TestMode(ctx, mode)
func TestMode(ctx context.Context, m *Mode) (*TestResult, error) {
	nodes, err := m.Compose(ctx)
	if err != nil {
		return nil, err
	}
	return newTestResult(nodes)
}

func newTestResult(nodes []*html.Node) (*TestResult, error) {
	s, err := dom.String(nodes...)
	if err != nil {
		return nil, err
	}
	return &TestResult{HTML: s, Elements: nodes}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// Find returns the first element matching selector, or nil. An invalid
// selector also gives nil.
func (r *TestResult) Find(selector string) *html.Node {
	n, _ := dom.Find(r.Elements, selector)
	return n
}

// Count returns how many elements match selector.
func (r *TestResult) Count(selector string) int {
	nodes, _ := dom.FindAll(r.Elements, selector)
	return len(nodes)
}

// Roots returns the number of top-level elements.
func (r *TestResult) Roots() int {
	return len(r.Elements)
}
