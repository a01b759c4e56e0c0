package class

import "fmt"

// Bundle is a named capability bundle: a set of methods plus default data
// that can be encapsulated into any type.
type Bundle struct {
	Name     string
	Methods  map[string]Method
	Defaults map[string]any
}

// Encapsulate merges the methods and default data of source into into.
//
// A *Type source contributes its resolved methods and defaults; its
// constructor body is not imported. A Bundle contributes its methods and
// defaults. A property table is walked key by key:
//   - Method values replace the method of the same name,
//   - records are deep-merged into the default slot of the same name, except
//     DefaultsKey which merges into the top-level defaults,
//   - anything else (scalars, nil, slices) overwrites the default.
//
// The key "constructor" is ignored. Encapsulate is called by Define while the
// type is being built; calling it on a shared type is a data race.
func Encapsulate(source any, into *Type) error {
	if into == nil {
		return fmt.Errorf("%w: target type is nil", ErrInvalidArgument)
	}
	switch src := source.(type) {
	case nil:
		return nil
	case *Type:
		if src == nil {
			return nil
		}
		for name, m := range src.methods {
			into.methods[name] = m
		}
		deepCopy(into.defaults, src.defaults)
		return nil
	case Bundle:
		return encapsulateBundle(&src, into)
	case *Bundle:
		if src == nil {
			return nil
		}
		return encapsulateBundle(src, into)
	case Props:
		return encapsulateTable(src, into)
	case map[string]any:
		return encapsulateTable(src, into)
	}
	return fmt.Errorf("%w: cannot encapsulate %T", ErrInvalidArgument, source)
}

func encapsulateBundle(b *Bundle, into *Type) error {
	for name, m := range b.Methods {
		if m == nil {
			return fmt.Errorf("%w: bundle %q method %q is nil", ErrInvalidArgument, b.Name, name)
		}
		into.methods[name] = m
	}
	if err := checkData(b.Name, b.Defaults); err != nil {
		return err
	}
	deepCopy(into.defaults, b.Defaults)
	return nil
}

// encapsulateTable merges the DefaultsKey bag first so that explicit keys of
// the same table always win over it.
func encapsulateTable(tbl map[string]any, into *Type) error {
	if bag, ok := tbl[DefaultsKey]; ok {
		if err := encapsulateEntry(DefaultsKey, bag, into); err != nil {
			return err
		}
	}
	for key, value := range tbl {
		if key == constructorKey || key == EncapsulateKey || key == DefaultsKey {
			continue
		}
		if err := encapsulateEntry(key, value, into); err != nil {
			return err
		}
	}
	return nil
}

func encapsulateEntry(key string, value any, into *Type) error {
	switch v := value.(type) {
	case Method:
		if v == nil {
			into.defaults[key] = nil
			return nil
		}
		into.methods[key] = v
		return nil
	case func(*Instance, ...any) (any, error):
		into.methods[key] = v
		return nil
	}

	if err := checkData(key, value); err != nil {
		return err
	}
	if rec, ok := asRecord(value); ok {
		if key == DefaultsKey {
			deepCopy(into.defaults, rec)
			return nil
		}
		slot, ok := asRecord(into.defaults[key])
		if !ok {
			slot = make(map[string]any, len(rec))
		}
		into.defaults[key] = deepCopy(slot, rec)
		return nil
	}
	into.defaults[key] = cloneValue(value)
	return nil
}
