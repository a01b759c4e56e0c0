package class

import (
	"fmt"
	"sort"
	"strings"
)

// Instance is an object built from a Type. It owns its data and borrows its
// methods from the type.
type Instance struct {
	typ  *Type
	data map[string]any
}

// Type returns the type the instance was built from.
func (i *Instance) Type() *Type {
	return i.typ
}

// Is reports whether the instance was built from t or from a descendant of t.
func (i *Instance) Is(t *Type) bool {
	return i != nil && i.typ.Is(t)
}

// Get returns the value stored under key. Dotted keys walk nested records:
// Get("config.title").
func (i *Instance) Get(key string) any {
	var cur any = i.data
	for _, part := range strings.Split(key, ".") {
		rec, ok := asRecord(cur)
		if !ok {
			return nil
		}
		cur = rec[part]
	}
	return cur
}

// Set stores value under key, replacing any previous value.
func (i *Instance) Set(key string, value any) {
	i.data[key] = value
}

// Delete removes key from the instance data.
func (i *Instance) Delete(key string) {
	delete(i.data, key)
}

// Keys returns the sorted top-level data keys.
func (i *Instance) Keys() []string {
	keys := make([]string, 0, len(i.data))
	for k := range i.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Data returns the live data map. Mutations are visible to the instance.
func (i *Instance) Data() map[string]any {
	return i.data
}

// Snapshot returns a deep copy of the instance data.
func (i *Instance) Snapshot() map[string]any {
	return cloneMap(i.data)
}

// Call invokes a method resolved by the instance's type.
func (i *Instance) Call(name string, args ...any) (any, error) {
	return i.CallAs(i.typ, name, args...)
}

// CallAs invokes the method as resolved by ancestor t. It reaches methods
// that a descendant overrides.
func (i *Instance) CallAs(t *Type, name string, args ...any) (any, error) {
	if !i.Is(t) {
		return nil, fmt.Errorf("%w: %s is not a %s", ErrInvalidArgument, i.typ.Name(), t.Name())
	}
	m, ok := t.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: method %q on %s", ErrUndefinedReference, name, t.Name())
	}
	return m(i, args...)
}
