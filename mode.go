package mvcpack

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/net/html"
)

// DefaultUsage is the usage name ViewFor falls back to.
const DefaultUsage = "default"

// ModeProps are the parts a Mode is assembled from.
type ModeProps struct {
	// Model is required and must be a structured value.
	Model any
	// View is required and must belong to the view family.
	View any
	// Control is optional. When set it must belong to the control family.
	Control any
	// Decorators maps names to decorators. Entries that are not decorators
	// are dropped with a warning.
	Decorators map[string]any
	// DecoratorOrder is the registration order of Decorators: Connect binds
	// and renders them in this order. Names missing from it follow in name
	// order.
	DecoratorOrder []string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Mode binds one model to one view, an optional control and a set of named
// decorators. It connects on construction.
type Mode struct {
	model      any
	base       View
	view       View
	control    Control
	decorators map[string]Decorator
	names      []string
	connected  bool
	logger     *slog.Logger

	// set when the mode was built by a mode factory
	ctors  *Constructors
	config any
	usages map[string]View
}

// State is the historical name of Mode.
type State = Mode

// NewMode validates props, assembles the mode and connects it.
func NewMode(ctx context.Context, props ModeProps) (*Mode, error) {
	if !IsStructured(props.Model) {
		return nil, fmt.Errorf("%w: incorrect type of the model, got %T", ErrInvalidModel, props.Model)
	}
	view, ok := asView(props.View)
	if !ok {
		return nil, fmt.Errorf("%w: view should belong to the view family, got %T", ErrInvalidView, props.View)
	}

	logger := props.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Mode{
		model:      props.Model,
		base:       view,
		view:       view,
		decorators: make(map[string]Decorator),
		logger:     logger,
	}

	if props.Control != nil {
		control, ok := asControl(props.Control)
		if !ok {
			return nil, fmt.Errorf("%w: control should belong to the control family, got %T", ErrInvalidType, props.Control)
		}
		m.control = control
	}

	for name, d := range props.Decorators {
		dec, ok := asDecorator(d)
		if !ok {
			logger.Warn("incompatible decorator dropped", "name", name, "type", fmt.Sprintf("%T", d))
			continue
		}
		m.decorators[name] = dec
	}
	m.names = decoratorOrder(props.DecoratorOrder, m.decorators)

	bindParent(view)
	if m.control != nil {
		bindParent(m.control)
	}
	for _, d := range m.decorators {
		bindParent(d)
	}

	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// decoratorOrder lists the registered decorator names: those in order first,
// then the rest sorted by name.
func decoratorOrder(order []string, decorators map[string]Decorator) []string {
	names := make([]string, 0, len(decorators))
	seen := make(map[string]bool, len(decorators))
	for _, name := range order {
		if _, ok := decorators[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(decorators)) {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

// Connect wires the parts together and renders them. Only the first
// successful call has an effect.
//
// The order is fixed: the model is bound to the view; if there is a
// control, it receives the model and the view, the view receives the
// control and the control's Connect runs; then the view's Connect runs and
// the view renders; finally every decorator, in registration order (see
// ModeProps.DecoratorOrder), receives the model and renders.
func (m *Mode) Connect(ctx context.Context) error {
	if m.connected {
		return nil
	}

	if err := m.base.SetModel(m.model); err != nil {
		return err
	}
	if m.control != nil {
		if err := m.control.SetModel(m.model); err != nil {
			return err
		}
		if err := m.control.SetView(m.base); err != nil {
			return err
		}
		if err := m.base.SetControl(m.control); err != nil {
			return err
		}
		if err := m.control.Connect(); err != nil {
			return fmt.Errorf("connect control: %w", err)
		}
	}
	if err := m.base.Connect(); err != nil {
		return fmt.Errorf("connect view: %w", err)
	}
	if _, err := m.base.Render(ctx); err != nil {
		return err
	}

	for _, name := range m.names {
		d := m.decorators[name]
		if err := d.SetModel(m.model); err != nil {
			return err
		}
		if _, err := d.Render(ctx); err != nil {
			return fmt.Errorf("decorator %q: %w", name, err)
		}
	}

	m.connected = true
	return nil
}

// IsConnected reports whether Connect has completed.
func (m *Mode) IsConnected() bool {
	return m.connected
}

// DecorateWith wraps the base view with the named decorators, innermost
// first, and makes the outermost one the active view. Unknown names and
// names already used earlier in the same call are skipped. With no names
// the base view becomes active again; to keep the current decoration, do
// not call DecorateWith at all (Module.GetMode only calls it when names are
// given).
//
// Decorators are not re-rendered; call Compose to move the wrapped
// elements into their containers.
func (m *Mode) DecorateWith(names ...string) {
	var v View = m.base
	used := make(map[string]bool, len(names))
	for _, name := range names {
		d, ok := m.decorators[name]
		if !ok || used[name] {
			continue
		}
		used[name] = true
		// v is always a view, so this cannot fail.
		_ = d.SetComponent(v)
		v = d
	}
	m.view = v
}

// Compose re-renders the active decorator chain from the innermost
// decorator outwards and returns the elements of the active view.
func (m *Mode) Compose(ctx context.Context) ([]*html.Node, error) {
	var chain []Decorator
	for v := m.view; v != nil; {
		d, ok := asDecorator(v)
		if !ok {
			break
		}
		chain = append(chain, d)
		v = d.Component()
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if _, err := chain[i].Render(ctx); err != nil {
			return nil, err
		}
	}
	return m.view.Elements(), nil
}

// View returns the active view: the base view or its outermost decorator.
func (m *Mode) View() View {
	return m.view
}

// BaseView returns the undecorated view.
func (m *Mode) BaseView() View {
	return m.base
}

// Control returns the control, or nil.
func (m *Mode) Control() Control {
	return m.control
}

// Model returns the model.
func (m *Mode) Model() any {
	return m.model
}

// Decorators returns the registered decorator names in registration order.
func (m *Mode) Decorators() []string {
	return slices.Clone(m.names)
}

// Decorator returns the named decorator, or nil.
func (m *Mode) Decorator(name string) Decorator {
	return m.decorators[name]
}

// ViewFor returns the view instance kept for usage, building it on first
// request: a new view is created from the factory's constructors, bound to
// the model and the mode's control, rendered, and wrapped with fresh
// instances of the named decorators. An empty usage means DefaultUsage.
//
// ViewFor is only available on modes built by a mode factory. Unlike
// DecorateWith, an unknown decorator name is an error here.
func (m *Mode) ViewFor(ctx context.Context, usage string, decorators ...string) (View, error) {
	if m.ctors == nil {
		return nil, fmt.Errorf("%w: mode has no view constructors", ErrUndefinedReference)
	}
	if usage == "" {
		usage = DefaultUsage
	}
	if v, ok := m.usages[usage]; ok {
		return v, nil
	}

	view, ok := asView(m.ctors.View(m.config))
	if !ok {
		return nil, fmt.Errorf("%w: view constructor did not return a view", ErrInvalidView)
	}
	bindParent(view)
	if err := view.SetModel(m.model); err != nil {
		return nil, err
	}
	if m.control != nil {
		if err := view.SetControl(m.control); err != nil {
			return nil, err
		}
	}
	if err := view.Connect(); err != nil {
		return nil, fmt.Errorf("connect view: %w", err)
	}
	if _, err := view.Render(ctx); err != nil {
		return nil, err
	}

	var v View = view
	for _, name := range decorators {
		ctor := m.ctors.Decorators[name]
		if ctor == nil {
			return nil, fmt.Errorf("%w: constructor for decorator %q is not defined", ErrUndefinedReference, name)
		}
		d, ok := asDecorator(ctor(m.config))
		if !ok {
			return nil, fmt.Errorf("%w: decorator %q should embed ADecorator", ErrInvalidType, name)
		}
		bindParent(d)
		if err := d.SetComponent(v); err != nil {
			return nil, err
		}
		if err := d.SetModel(m.model); err != nil {
			return nil, err
		}
		if _, err := d.Render(ctx); err != nil {
			return nil, fmt.Errorf("decorator %q: %w", name, err)
		}
		v = d
	}

	if m.usages == nil {
		m.usages = make(map[string]View)
	}
	m.usages[usage] = v
	return v, nil
}
