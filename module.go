package mvcpack

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pthm/mvcpack/lib/class"
)

// ImplicitMode is the name of the single mode a module factory builds when
// it is given View and Control constructors instead of mode builders.
const ImplicitMode = "_implicit"

// Module holds one model, its named modes and an optional environment map
// from external context names to mode names.
type Module struct {
	model any
	modes map[string]*Mode
	env   map[string]string
}

// NewModule creates a module. env may be nil.
func NewModule(model any, modes map[string]*Mode, env map[string]string) (*Module, error) {
	if !IsStructured(model) {
		return nil, fmt.Errorf("%w: incorrect type of the module model, got %T", ErrInvalidModel, model)
	}
	if modes == nil {
		return nil, fmt.Errorf("%w: modes are not defined", ErrInvalidArgument)
	}
	return &Module{
		model: model,
		modes: maps.Clone(modes),
		env:   maps.Clone(env),
	}, nil
}

// Model returns the module's model.
func (m *Module) Model() any {
	return m.model
}

// Modes returns the registered mode names in sorted order.
func (m *Module) Modes() []string {
	return slices.Sorted(maps.Keys(m.modes))
}

// GetMode returns the named mode, or nil if it is not registered. When
// decorator names are given the mode is decorated with them first.
func (m *Module) GetMode(name string, decorators ...string) *Mode {
	mode := m.modes[name]
	if mode == nil {
		return nil
	}
	if len(decorators) > 0 {
		mode.DecorateWith(decorators...)
	}
	return mode
}

// GetModeFor resolves env through the environment map and returns that
// mode, or nil if env is not mapped.
func (m *Module) GetModeFor(env string, decorators ...string) *Mode {
	name, ok := m.env[env]
	if !ok {
		return nil
	}
	return m.GetMode(name, decorators...)
}

// GetState is the historical name of GetMode.
func (m *Module) GetState(name string, decorators ...string) *State {
	return m.GetMode(name, decorators...)
}

// GetStateFor is the historical name of GetModeFor.
func (m *Module) GetStateFor(env string, decorators ...string) *State {
	return m.GetModeFor(env, decorators...)
}

// ModuleConstructors describe how a module factory builds a module.
type ModuleConstructors struct {
	// Model is instantiated with the builder's model arguments.
	Model *class.Type
	// Modes maps mode names to builders.
	Modes map[string]ModeBuilder
	// View and Control are used when Modes is empty: they make up a single
	// mode registered as ImplicitMode.
	View    func(config any) View
	Control func(config any) Control
}

// ModuleBuilder builds a module. configs holds per-mode configs keyed by
// mode name; modes without an entry get a nil config.
type ModuleBuilder func(ctx context.Context, modelArgs []any, env map[string]string, configs map[string]any) (*Module, error)

// NewModuleFactory validates c and returns a module builder.
func NewModuleFactory(c ModuleConstructors) (ModuleBuilder, error) {
	if c.Model == nil {
		return nil, fmt.Errorf("%w: model type is not defined", ErrInvalidArgument)
	}

	modes := maps.Clone(c.Modes)
	if len(modes) == 0 {
		if c.View == nil {
			return nil, fmt.Errorf("%w: no modes are defined", ErrInvalidArgument)
		}
		b, err := NewModeFactory(Constructors{View: c.View, Control: c.Control})
		if err != nil {
			return nil, err
		}
		modes = map[string]ModeBuilder{ImplicitMode: b}
	}
	for name, b := range modes {
		if b == nil {
			return nil, fmt.Errorf("%w: builder for mode %q is not defined", ErrInvalidArgument, name)
		}
	}

	return func(ctx context.Context, modelArgs []any, env map[string]string, configs map[string]any) (*Module, error) {
		model, err := c.Model.New(modelArgs...)
		if err != nil {
			return nil, fmt.Errorf("build model: %w", err)
		}
		return BuildModule(ctx, model, modes, env, configs)
	}, nil
}

// BuildModule builds every mode for model, in name order, and returns the
// module holding them.
func BuildModule(ctx context.Context, model any, modes map[string]ModeBuilder, env map[string]string, configs map[string]any) (*Module, error) {
	built := make(map[string]*Mode, len(modes))
	for _, name := range slices.Sorted(maps.Keys(modes)) {
		mode, err := modes[name](ctx, model, configs[name])
		if err != nil {
			return nil, fmt.Errorf("build mode %q: %w", name, err)
		}
		built[name] = mode
	}
	return NewModule(model, built, env)
}
