package class

import (
	"fmt"
	"reflect"
)

// cloneMap returns a structural copy of src. Nested maps and slices are
// copied so that the result never shares mutable state with src.
func cloneMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return cloneMap(val)
	case Props:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Struct:
		// Unexported fields are copied as is; checkData only admits scalars
		// there.
		out := reflect.New(rv.Type()).Elem()
		out.Set(rv)
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				out.Field(i).Set(cloneReflect(rv.Field(i)))
			}
		}
		return out.Interface()
	default:
		return v
	}
}

func cloneReflect(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return v
	}
	c := cloneValue(v.Interface())
	if c == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(c).Convert(v.Type())
}

// deepCopy copies every key of source into target. Nested records are merged
// recursively, everything else overwrites the existing value.
func deepCopy(target, source map[string]any) map[string]any {
	for key, value := range source {
		if rec, ok := asRecord(value); ok {
			existing, ok := asRecord(target[key])
			if !ok {
				existing = make(map[string]any, len(rec))
			}
			target[key] = deepCopy(existing, rec)
			continue
		}
		target[key] = cloneValue(value)
	}
	return target
}

// deepExtend fills target with the keys of source it does not have yet.
// Existing nested records are extended recursively; existing scalars win.
func deepExtend(target, source map[string]any) map[string]any {
	for key, value := range source {
		if current, exists := target[key]; exists {
			dst, dok := asRecord(current)
			src, sok := asRecord(value)
			if dok && sok {
				target[key] = deepExtend(dst, src)
			}
			continue
		}
		target[key] = cloneValue(value)
	}
	return target
}

// asRecord reports whether v is a record-like value (a string keyed map).
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Props:
		return map[string]any(m), m != nil
	}
	return nil, false
}

// checkData rejects values that cannot live in default data: functions,
// channels and pointers would be shared between instances. Unexported struct
// fields cannot be copied deeply, so they may only hold scalars.
func checkData(path string, v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Pointer:
		return fmt.Errorf("%w: default %q holds a %s", ErrInvalidArgument, path, rv.Kind())
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if err := checkData(fmt.Sprintf("%s.%v", path, iter.Key().Interface()), iter.Value().Interface()); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := checkData(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			fpath := path + "." + field.Name
			if !field.IsExported() {
				if !isScalarKind(field.Type.Kind()) {
					return fmt.Errorf("%w: default %q has unexported %s field", ErrInvalidArgument, fpath, field.Type.Kind())
				}
				continue
			}
			if err := checkData(fpath, rv.Field(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
