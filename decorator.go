package mvcpack

import (
	"context"
	"fmt"

	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

// ContainerClass marks the element of a decorator's markup that receives
// the decorated component's elements.
const ContainerClass = "component-container"

// ADecorator is a dynamic view that wraps another, already rendered, view.
// Its template must contain an element with the ContainerClass class.
type ADecorator struct {
	*DynamicView
	component View
	container *html.Node
}

// NewADecorator creates a decorator base.
func NewADecorator(tmpl Template, config any) *ADecorator {
	return &ADecorator{DynamicView: NewDynamicView(tmpl, config)}
}

func (d *ADecorator) base() *AView {
	if d == nil {
		return nil
	}
	return d.DynamicView.base()
}

func (d *ADecorator) decoratorBase() *ADecorator { return d }

// SetComponent sets the view to decorate.
func (d *ADecorator) SetComponent(component any) error {
	v, ok := asView(component)
	if !ok {
		return fmt.Errorf("%w: incorrect type of the component, expected a view, got %T", ErrInvalidType, component)
	}
	d.component = v
	return nil
}

// Component returns the decorated view, or nil.
func (d *ADecorator) Component() View {
	return d.component
}

// Container returns the container element from the last render, or nil.
func (d *ADecorator) Container() *html.Node {
	return d.container
}

// Render renders the decorator's own markup and moves the component's
// elements into the container. The component itself is not rendered.
func (d *ADecorator) Render(ctx context.Context) ([]*html.Node, error) {
	if err := d.render(ctx); err != nil {
		return nil, err
	}
	return d.elements, nil
}

// Update updates the component, then re-renders the decorator around it.
func (d *ADecorator) Update(ctx context.Context) error {
	if d.component != nil {
		if err := d.component.Update(ctx); err != nil {
			return err
		}
	}
	return d.render(ctx)
}

// Destruct destructs the component, then the decorator.
func (d *ADecorator) Destruct() {
	if d.component != nil {
		d.component.Destruct()
		d.component = nil
	}
	d.container = nil
	d.DynamicView.Destruct()
}

func (d *ADecorator) render(ctx context.Context) error {
	return d.DynamicView.render(ctx, func() error {
		d.container, _ = dom.Find(d.elements, "."+ContainerClass)
		if d.component == nil {
			return nil
		}
		if d.container == nil {
			return fmt.Errorf("%w: decorator markup has no .%s element", ErrUndefinedReference, ContainerClass)
		}
		dom.Append(d.container, d.component.Elements()...)
		return nil
	})
}
