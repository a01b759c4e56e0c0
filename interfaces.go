package mvcpack

import (
	"context"

	"golang.org/x/net/html"
)

// Component is the contract shared by every participant of a mode: views,
// controls and decorators.
//
// SetModel rejects values that are not structured (see IsStructured) with
// ErrInvalidModel. Connect is a hook called once the component is wired to
// the model and its counterpart; it must be safe to call with no model set.
// Destruct drops the model and config and may be called any number of times.
type Component interface {
	SetModel(model any) error
	Model() any
	Config() any
	Connect() error
	Destruct()
}

// View is a renderable component. The family is closed: only types that
// embed *AView (directly or through StaticView, DynamicView or ADecorator)
// implement it.
//
// Render produces the view's top-level elements; a view may render several
// sibling roots. Update refreshes an already rendered view.
type View interface {
	Component
	SetControl(control any) error
	Control() Control
	Render(ctx context.Context) ([]*html.Node, error)
	Update(ctx context.Context) error
	Elements() []*html.Node
	base() *AView
}

// Control is the behavior counterpart of a view. Only types that embed
// *AControl implement it.
type Control interface {
	Component
	SetView(view any) error
	View() View
	controlBase() *AControl
}

// Decorator is a view that embeds another, already rendered, view inside
// its own markup. Only types that embed *ADecorator implement it.
type Decorator interface {
	View
	SetComponent(component any) error
	Component() View
	decoratorBase() *ADecorator
}

// ElementBinder is implemented by views that keep references to elements of
// their rendered markup. InitElements runs after every render.
//
//	func (v *ListView) InitElements() error {
//	    v.items = v.FindAll(".task")
//	    return nil
//	}
type ElementBinder interface {
	InitElements() error
}

// EventBinder is implemented by views that register handlers on their event
// dispatcher. AttachEvents runs after InitElements on every render.
type EventBinder interface {
	AttachEvents()
}

// IsView reports whether v belongs to the view family.
func IsView(v any) bool {
	_, ok := asView(v)
	return ok
}

// IsControl reports whether v belongs to the control family.
func IsControl(v any) bool {
	_, ok := asControl(v)
	return ok
}

// IsDecorator reports whether v belongs to the decorator family.
func IsDecorator(v any) bool {
	_, ok := asDecorator(v)
	return ok
}

func asView(v any) (View, bool) {
	if isNil(v) {
		return nil, false
	}
	view, ok := v.(View)
	if !ok || view.base() == nil {
		return nil, false
	}
	return view, true
}

func asControl(v any) (Control, bool) {
	if isNil(v) {
		return nil, false
	}
	c, ok := v.(Control)
	if !ok || c.controlBase() == nil {
		return nil, false
	}
	return c, true
}

func asDecorator(v any) (Decorator, bool) {
	if isNil(v) {
		return nil, false
	}
	d, ok := v.(Decorator)
	if !ok || d.decoratorBase() == nil {
		return nil, false
	}
	return d, true
}
