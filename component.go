package mvcpack

import "fmt"

// ModeComponent is the base embedded by every view and control. It holds
// the model reference and the component's configuration.
//
// Components are composed by embedding, so a base type cannot call methods
// that the embedding type overrides. SetParent records the outermost value
// so hooks (ElementBinder, EventBinder) declared on the concrete type are
// found. Mode and the factories call SetParent automatically.
type ModeComponent struct {
	model  any
	config any
	parent any
}

// StateComponent is the historical name of ModeComponent.
type StateComponent = ModeComponent

// NewModeComponent creates a component base. config is kept only if it is a
// structured value.
func NewModeComponent(config any) *ModeComponent {
	c := &ModeComponent{}
	if IsStructured(config) {
		c.config = config
	}
	return c
}

// SetModel stores the model. Models must be structured values.
func (c *ModeComponent) SetModel(model any) error {
	if !IsStructured(model) {
		return fmt.Errorf("%w: model for the mode is not defined, got %T", ErrInvalidModel, model)
	}
	c.model = model
	return nil
}

// Model returns the model, nil until SetModel succeeds.
func (c *ModeComponent) Model() any {
	return c.model
}

// Config returns the configuration given at construction, or nil.
func (c *ModeComponent) Config() any {
	return c.config
}

// Connect is a no-op hook. Concrete components override it to subscribe to
// the model or their counterpart.
func (c *ModeComponent) Connect() error {
	return nil
}

// Destruct clears the model and config.
func (c *ModeComponent) Destruct() {
	c.model = nil
	c.config = nil
}

// SetParent records the concrete value that embeds this component.
func (c *ModeComponent) SetParent(parent any) {
	c.parent = parent
}

// Parent returns the value recorded by SetParent, or nil.
func (c *ModeComponent) Parent() any {
	return c.parent
}

// bindParent records comp as its own parent unless one is already set.
func bindParent(comp any) {
	type parented interface {
		Parent() any
		SetParent(any)
	}
	if p, ok := comp.(parented); ok && p.Parent() == nil {
		p.SetParent(comp)
	}
}
