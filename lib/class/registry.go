package class

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Registry holds the shared instances of singleton types. It replaces a
// hidden per-type cache: whoever needs a singleton is handed the registry,
// and the owner controls its lifecycle through Reset and ResetAll.
type Registry struct {
	mu       sync.Mutex
	logger   *slog.Logger
	types    map[*Type]*Instance
	values   map[string]any
	building map[any]bool
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		types:    make(map[*Type]*Instance),
		values:   make(map[string]any),
		building: make(map[any]bool),
	}
}

// DefineSingleton builds a type whose instances are cached in reg: the first
// New runs the full construction, every later New returns that instance
// without running any constructor body.
func DefineSingleton(reg *Registry, ctor Constructor, args ...any) (*Type, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: singleton registry is nil", ErrInvalidArgument)
	}
	t, err := Define(ctor, args...)
	if err != nil {
		return nil, err
	}
	t.singleton = true
	t.registry = reg
	return t, nil
}

// Instance returns the cached instance of t, constructing it on first use.
func (reg *Registry) Instance(t *Type, args ...any) (*Instance, error) {
	return reg.instance(t, nil, args)
}

func (reg *Registry) instance(t *Type, data map[string]any, args []any) (*Instance, error) {
	reg.mu.Lock()
	if inst, ok := reg.types[t]; ok {
		reg.mu.Unlock()
		return inst, nil
	}
	if reg.building[t] {
		reg.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrReentrant, t.Name())
	}
	reg.building[t] = true
	reg.mu.Unlock()

	inst, err := t.construct(data, args)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.building, t)
	if err != nil {
		return nil, err
	}
	reg.types[t] = inst
	reg.logger.Debug("singleton constructed", "type", t.Name())
	return inst, nil
}

// Has reports whether an instance of t is cached.
func (reg *Registry) Has(t *Type) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	_, ok := reg.types[t]
	return ok
}

// Reset drops the cached instance of t. The next New constructs a fresh one.
func (reg *Registry) Reset(t *Type) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.types, t)
}

// ResetAll drops every cached instance, typed singletons included.
func (reg *Registry) ResetAll() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.types = make(map[*Type]*Instance)
	reg.values = make(map[string]any)
}

// Singleton returns the Go value cached under key, calling build on first
// use. It gives native Go types the same one-instance-per-declared-type
// semantics as singleton class types.
//
// Panics if key is already bound to a value of a different type.
func Singleton[T any](reg *Registry, key string, build func() (T, error)) (T, error) {
	var zero T

	reg.mu.Lock()
	if v, ok := reg.values[key]; ok {
		reg.mu.Unlock()
		typed, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("class: singleton %q holds %T, not %s", key, v, reflect.TypeFor[T]()))
		}
		return typed, nil
	}
	if reg.building[key] {
		reg.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", ErrReentrant, key)
	}
	reg.building[key] = true
	reg.mu.Unlock()

	v, err := build()

	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.building, key)
	if err != nil {
		return zero, err
	}
	reg.values[key] = v
	reg.logger.Debug("singleton constructed", "key", key)
	return v, nil
}

// Forget drops the Go value cached under key.
func (reg *Registry) Forget(key string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.values, key)
}
