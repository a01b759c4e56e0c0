package mvcpack

import (
	"context"
	"fmt"

	"github.com/pthm/mvcpack/lib/class"
	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

// StaticView is bound to markup that already exists in a document. Render
// never creates markup; it only runs the InitElements and AttachEvents
// hooks against the bound element.
type StaticView struct {
	*AView
	selector string
}

// NewStaticView binds a view to the first element of doc matching selector.
func NewStaticView(doc *html.Node, selector string, config any) (*StaticView, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: static view %q needs a document", ErrInvalidArgument, selector)
	}
	el, err := dom.Find([]*html.Node{doc}, selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: no element matches %q", ErrUndefinedReference, selector)
	}
	v := &StaticView{AView: NewAView(config), selector: selector}
	v.elements = []*html.Node{el}
	return v, nil
}

// StaticViewFor returns the static view registered for selector, binding
// it on first use. Every later call with the same selector returns the same
// view, whatever document and config are passed.
func StaticViewFor(reg *class.Registry, doc *html.Node, selector string, config any) (*StaticView, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidArgument)
	}
	return class.Singleton(reg, staticViewKey(selector), func() (*StaticView, error) {
		return NewStaticView(doc, selector, config)
	})
}

func staticViewKey(selector string) string {
	return "static-view:" + selector
}

func (v *StaticView) base() *AView {
	if v == nil {
		return nil
	}
	return v.AView
}

// Selector returns the selector the view was bound with.
func (v *StaticView) Selector() string {
	return v.selector
}

// Element returns the bound element.
func (v *StaticView) Element() *html.Node {
	if len(v.elements) == 0 {
		return nil
	}
	return v.elements[0]
}

// Render runs the element hooks and returns the bound element.
func (v *StaticView) Render(ctx context.Context) ([]*html.Node, error) {
	if err := v.bindElements(); err != nil {
		return nil, err
	}
	return v.elements, nil
}

// Destruct drops the model, config and control. The bound markup is owned
// by the document and stays in place.
func (v *StaticView) Destruct() {
	v.control = nil
	v.events.Reset()
	v.ModeComponent.Destruct()
}
