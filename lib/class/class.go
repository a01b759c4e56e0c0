// Package class builds prototype-style type descriptors: single-parent
// inheritance, constructor chaining from root to leaf, shared methods and
// default data that every instance receives as its own deep copy.
//
//	List, _ := class.Define(func(self *class.Instance, args ...any) error {
//	    if len(args) > 0 {
//	        self.Set("title", args[0])
//	    }
//	    return nil
//	}, class.Props{
//	    "title": "",
//	    "items": []any{},
//	    "count": class.Method(func(self *class.Instance, _ ...any) (any, error) {
//	        return len(self.Get("items").([]any)), nil
//	    }),
//	})
//
//	l, _ := List.New("Groceries")
//
// Types are immutable once Define returns. Default data is resolved at
// definition time and cloned once per instance, so mutating an instance never
// leaks into another instance or into the type.
package class

import (
	"fmt"
	"sort"
)

// Reserved property keys.
const (
	// EncapsulateKey names the mixin directive inside Props. Its value is a
	// single source or a []any of sources. It is stripped before merging.
	EncapsulateKey = "Encapsulate"

	// DefaultsKey addresses the top-level default-data bag of a source.
	DefaultsKey = "_defaults"

	constructorKey = "constructor"
)

// Constructor is a per-level constructor body. It runs once per instance,
// after the bodies of every ancestor.
type Constructor func(self *Instance, args ...any) error

// Method is a shared method. Methods live on the Type and are never copied
// into instances.
type Method func(self *Instance, args ...any) (any, error)

// Props is a property table: Method values become methods, everything else
// becomes default data.
type Props map[string]any

// Type is a compiled class definition.
type Type struct {
	name      string
	parent    *Type
	ctor      Constructor
	methods   map[string]Method
	defaults  map[string]any
	singleton bool
	registry  *Registry
}

// Define builds a new root or derived type.
//
// The variadic arguments accept the forms
//
//	Define(ctor)
//	Define(ctor, props)
//	Define(ctor, parent)
//	Define(ctor, parent, props)
//	Define(ctor, parent, source1, source2, props)
//
// When the first argument is not a *Type it is taken as props and the type
// has no parent. Sources between parent and props are encapsulated in order
// before props. A nil ctor, or a last argument that is not a property table,
// fails with ErrInvalidArgument.
func Define(ctor Constructor, args ...any) (*Type, error) {
	if ctor == nil {
		return nil, fmt.Errorf("%w: constructor is not defined", ErrInvalidArgument)
	}
	return define(ctor, args)
}

// Extend derives a subtype that has no constructor body of its own. Its
// level is skipped when the constructor chain runs.
func (t *Type) Extend(props Props, sources ...any) (*Type, error) {
	args := make([]any, 0, len(sources)+2)
	args = append(args, t)
	args = append(args, sources...)
	args = append(args, props)
	return define(nil, args)
}

func define(ctor Constructor, args []any) (*Type, error) {
	var parent *Type
	var props Props
	var sources []any

	if len(args) > 0 {
		if p, ok := args[0].(*Type); ok {
			if p == nil {
				return nil, fmt.Errorf("%w: parent type is nil", ErrInvalidArgument)
			}
			parent = p
			args = args[1:]
		}
	}
	if len(args) > 0 {
		last := args[len(args)-1]
		tbl, err := toProps(last)
		if err != nil {
			return nil, err
		}
		props = tbl
		sources = args[:len(args)-1]
	}

	t := &Type{
		parent:   parent,
		ctor:     ctor,
		methods:  make(map[string]Method),
		defaults: make(map[string]any),
	}
	if parent != nil {
		for name, m := range parent.methods {
			t.methods[name] = m
		}
		t.defaults = cloneMap(parent.defaults)
	}

	// The directive is removed from a private copy so the caller's table is
	// left untouched and the key never reaches the type.
	own := make(Props, len(props))
	for k, v := range props {
		own[k] = v
	}
	if directive, ok := own[EncapsulateKey]; ok {
		delete(own, EncapsulateKey)
		if list, ok := directive.([]any); ok {
			sources = append(sources, list...)
		} else if directive != nil {
			sources = append(sources, directive)
		}
	}
	for _, src := range sources {
		if err := Encapsulate(src, t); err != nil {
			return nil, err
		}
	}
	if err := Encapsulate(own, t); err != nil {
		return nil, err
	}
	return t, nil
}

func toProps(v any) (Props, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case Props:
		return p, nil
	case map[string]any:
		return Props(p), nil
	}
	return nil, fmt.Errorf("%w: props must be a property table, got %T", ErrInvalidArgument, v)
}

// Named sets the name reported by the type. It is only meant to be used
// right after Define, before the type is shared.
func (t *Type) Named(name string) *Type {
	t.name = name
	return t
}

// Name returns the type's name, or the nearest ancestor's name.
func (t *Type) Name() string {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.name != "" {
			return cur.name
		}
	}
	return "class"
}

// Parent returns the parent type, nil for root types.
func (t *Type) Parent() *Type {
	return t.parent
}

// IsSingleton reports whether the type returns one cached instance.
func (t *Type) IsSingleton() bool {
	return t.singleton
}

// Defaults returns a copy of the resolved default data.
func (t *Type) Defaults() map[string]any {
	return cloneMap(t.defaults)
}

// HasMethod reports whether the type resolves a method by that name.
func (t *Type) HasMethod(name string) bool {
	_, ok := t.methods[name]
	return ok
}

// Methods returns the sorted names of the resolved methods.
func (t *Type) Methods() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Is reports whether t is ancestor or derives from it.
func (t *Type) Is(ancestor *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// New constructs an instance. Singleton types return the instance cached in
// their registry.
func (t *Type) New(args ...any) (*Instance, error) {
	return t.NewWithData(nil, args...)
}

// NewWithData constructs an instance whose cloned defaults are deep-merged
// with data before any constructor body runs.
func (t *Type) NewWithData(data map[string]any, args ...any) (*Instance, error) {
	if t.singleton && t.registry != nil {
		return t.registry.instance(t, data, args)
	}
	return t.construct(data, args)
}

func (t *Type) construct(data map[string]any, args []any) (*Instance, error) {
	if err := checkData("data", data); err != nil {
		return nil, err
	}
	inst := &Instance{typ: t, data: make(map[string]any, len(t.defaults))}
	if data != nil {
		deepCopy(inst.data, data)
	}
	deepExtend(inst.data, t.defaults)

	chain := make([]*Type, 0, 4)
	for cur := t; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		level := chain[i]
		if level.ctor == nil {
			continue
		}
		if err := level.ctor(inst, args...); err != nil {
			return nil, fmt.Errorf("construct %s: %w", level.Name(), err)
		}
	}
	return inst, nil
}
