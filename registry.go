package mvcpack

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/pthm/mvcpack/lib/class"
)

// Registry holds the module factories of an application by name, together
// with the shared collaborators their components need: the singleton
// registry used by static views and the snapshot encoder.
type Registry struct {
	mu         sync.RWMutex
	modules    map[string]ModuleBuilder
	singletons *class.Registry
	encoder    *Encoder
	logger     *slog.Logger
}

// NewRegistry creates a registry. The key is used for model snapshots.
func NewRegistry(key []byte, logger *slog.Logger) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("mvcpack: failed to create encoder: %v", err))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		modules:    make(map[string]ModuleBuilder),
		singletons: class.NewRegistry(logger),
		encoder:    enc,
		logger:     logger,
	}
}

// Encoder returns the registry's snapshot encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Singletons returns the registry used for singleton types and static views.
func (reg *Registry) Singletons() *class.Registry {
	return reg.singletons
}

// Logger returns the registry's logger.
func (reg *Registry) Logger() *slog.Logger {
	return reg.logger
}

// Add registers a module builder under name.
// Panics on an empty name, a nil builder or a name collision.
func (reg *Registry) Add(name string, builder ModuleBuilder) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if name == "" || builder == nil {
		panic("mvcpack: module needs a name and a builder")
	}
	if _, exists := reg.modules[name]; exists {
		panic(fmt.Sprintf("mvcpack: module name collision for %q", name))
	}
	reg.modules[name] = builder
}

// Names returns the registered module names in sorted order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return slices.Sorted(maps.Keys(reg.modules))
}

// Build builds the named module.
func (reg *Registry) Build(ctx context.Context, name string, modelArgs []any, env map[string]string, configs map[string]any) (*Module, error) {
	reg.mu.RLock()
	builder, ok := reg.modules[name]
	reg.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: module %q is not registered", ErrUndefinedReference, name)
	}
	reg.logger.Debug("building module", "module", name)
	return builder(ctx, modelArgs, env, configs)
}
