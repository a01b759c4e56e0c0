package mvcpack

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

// TemplateData is passed to a view's template on every render.
type TemplateData struct {
	Model  any
	Config any
	// View is the concrete view being rendered, so templates can reach
	// accessors declared on the embedding type.
	View View
}

// Template builds a view's markup. A template may produce several sibling
// root elements.
type Template func(TemplateData) templ.Component

// DynamicView re-materializes its markup from a template on every render.
// When the view is already mounted, the new elements take the place of the
// old ones in the tree.
type DynamicView struct {
	*AView
	template Template
}

// NewDynamicView creates a dynamic view. A nil template renders nothing.
func NewDynamicView(tmpl Template, config any) *DynamicView {
	return &DynamicView{AView: NewAView(config), template: tmpl}
}

func (v *DynamicView) base() *AView {
	if v == nil {
		return nil
	}
	return v.AView
}

// Render runs the template with the view's model and config, swaps the
// result in for the previous elements and then runs the InitElements and
// AttachEvents hooks.
func (v *DynamicView) Render(ctx context.Context) ([]*html.Node, error) {
	if err := v.render(ctx, nil); err != nil {
		return nil, err
	}
	return v.elements, nil
}

// Update re-renders the view in place.
func (v *DynamicView) Update(ctx context.Context) error {
	return v.render(ctx, nil)
}

// SetTemplate replaces the template used by the next render.
func (v *DynamicView) SetTemplate(tmpl Template) {
	v.template = tmpl
}

// render materializes the template. materialized runs after the new
// elements are in place and before the element hooks.
func (v *DynamicView) render(ctx context.Context, materialized func() error) error {
	if v.model == nil {
		return fmt.Errorf("%w: model is not connected", ErrInvalidModel)
	}

	var c templ.Component
	if v.template != nil {
		self, _ := asView(v.parent)
		if self == nil {
			self = v
		}
		c = v.template(TemplateData{Model: v.model, Config: v.config, View: self})
	}

	nodes, err := dom.Render(ctx, c)
	if err != nil {
		return fmt.Errorf("render view: %w", err)
	}
	dom.Replace(v.elements, nodes)
	v.elements = nodes

	if materialized != nil {
		if err := materialized(); err != nil {
			return err
		}
	}
	return v.bindElements()
}
