package mvcpack

import (
	"context"
	"fmt"

	"github.com/pthm/mvcpack/lib/dom"
	"github.com/pthm/mvcpack/lib/event"
	"golang.org/x/net/html"
)

// HiddenClass is toggled by Show and Hide.
const HiddenClass = "hidden"

// AView is the abstract view. Concrete views embed *StaticView,
// *DynamicView or *ADecorator; embedding *AView directly gives a view whose
// Render returns whatever elements were assigned with SetElements.
type AView struct {
	*ModeComponent
	control  Control
	elements []*html.Node
	events   event.Handler
}

// NewAView creates an abstract view base.
func NewAView(config any) *AView {
	return &AView{ModeComponent: NewModeComponent(config)}
}

func (v *AView) base() *AView { return v }

// SetControl attaches the control. Anything outside the control family is
// rejected with ErrInvalidType.
func (v *AView) SetControl(control any) error {
	c, ok := asControl(control)
	if !ok {
		return fmt.Errorf("%w: incorrect type of control component, got %T", ErrInvalidType, control)
	}
	v.control = c
	return nil
}

// Control returns the attached control, or nil.
func (v *AView) Control() Control {
	return v.control
}

// Render returns the current elements.
func (v *AView) Render(ctx context.Context) ([]*html.Node, error) {
	return v.elements, nil
}

// Update is a no-op hook.
func (v *AView) Update(ctx context.Context) error {
	return nil
}

// Elements returns the view's top-level elements from the last render.
func (v *AView) Elements() []*html.Node {
	return v.elements
}

// SetElements replaces the view's top-level elements.
func (v *AView) SetElements(nodes []*html.Node) {
	v.elements = nodes
}

// Find returns the first element matching selector inside the view.
func (v *AView) Find(selector string) *html.Node {
	n, _ := dom.Find(v.elements, selector)
	return n
}

// FindAll returns the elements matching selector inside the view.
func (v *AView) FindAll(selector string) []*html.Node {
	nodes, _ := dom.FindAll(v.elements, selector)
	return nodes
}

// Show removes the hidden class from the view's elements.
func (v *AView) Show() {
	dom.RemoveClass(v.elements, HiddenClass)
}

// Hide adds the hidden class to the view's elements.
func (v *AView) Hide() {
	dom.AddClass(v.elements, HiddenClass)
}

// On registers an event handler on the view's dispatcher.
func (v *AView) On(name string, fn event.Func) event.ListenerID {
	return v.events.Listen(name, fn)
}

// Off removes an event handler registered with On.
func (v *AView) Off(name string, id event.ListenerID) {
	v.events.RemoveListener(name, id)
}

// Trigger dispatches an event to the handlers registered with On.
func (v *AView) Trigger(name string, args ...any) {
	v.events.Trigger(name, args...)
}

// Destruct detaches the view's elements, drops the control and clears the
// model and config.
func (v *AView) Destruct() {
	dom.Remove(v.elements...)
	v.control = nil
	v.events.Reset()
	v.ModeComponent.Destruct()
}

// bindElements runs the element and event hooks of the concrete view.
func (v *AView) bindElements() error {
	target := v.parent
	if target == nil {
		target = v
	}
	if b, ok := target.(ElementBinder); ok {
		if err := b.InitElements(); err != nil {
			return err
		}
	}
	if b, ok := target.(EventBinder); ok {
		b.AttachEvents()
	}
	return nil
}

// AControl is the abstract control.
type AControl struct {
	*ModeComponent
	view View
}

// NewAControl creates an abstract control base.
func NewAControl(config any) *AControl {
	return &AControl{ModeComponent: NewModeComponent(config)}
}

func (c *AControl) controlBase() *AControl { return c }

// SetView attaches the view. Anything outside the view family is rejected
// with ErrInvalidType.
func (c *AControl) SetView(view any) error {
	v, ok := asView(view)
	if !ok {
		return fmt.Errorf("%w: incorrect type of view component, got %T", ErrInvalidType, view)
	}
	c.view = v
	return nil
}

// View returns the attached view, or nil.
func (c *AControl) View() View {
	return c.view
}

// Destruct drops the view and clears the model and config.
func (c *AControl) Destruct() {
	c.view = nil
	c.ModeComponent.Destruct()
}
