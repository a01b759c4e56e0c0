package class

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noop(self *Instance, args ...any) error { return nil }

func TestDefine_NilConstructor(t *testing.T) {
	_, err := Define(nil, Props{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Define(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestDefine_InvalidProps(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{"string props", []any{"props"}},
		{"int props", []any{42}},
		{"parent and slice props", []any{mustDefine(t, noop), []any{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Define(noop, tt.args...)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Define() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestDefine_CallingForms(t *testing.T) {
	parent := mustDefine(t, noop, Props{"a": 1})

	tests := []struct {
		name       string
		args       []any
		wantParent *Type
		wantKeys   []string
	}{
		{"no arguments", nil, nil, []string{}},
		{"props only", []any{Props{"b": 2}}, nil, []string{"b"}},
		{"plain map props", []any{map[string]any{"b": 2}}, nil, []string{"b"}},
		{"parent only", []any{parent}, parent, []string{"a"}},
		{"parent and props", []any{parent, Props{"b": 2}}, parent, []string{"a", "b"}},
		{"parent and nil props", []any{parent, nil}, parent, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Define(noop, tt.args...)
			if err != nil {
				t.Fatalf("Define() error = %v", err)
			}
			if typ.Parent() != tt.wantParent {
				t.Errorf("Parent() = %v, want %v", typ.Parent(), tt.wantParent)
			}
			inst, err := typ.New()
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantKeys, inst.Keys()); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew_NotSingleton(t *testing.T) {
	typ := mustDefine(t, noop)
	a := mustNew(t, typ)
	b := mustNew(t, typ)
	if a == b {
		t.Error("two New() calls returned the same instance")
	}
}

func TestNew_DeepCopyIsolation(t *testing.T) {
	parent := mustDefine(t, noop, Props{
		"settings": map[string]any{
			"limits": map[string]any{"max": 10},
		},
		"tags": []any{"a", map[string]any{"k": "v"}},
	})
	child := mustDefine(t, noop, parent, Props{"extra": map[string]any{"n": 1}})

	a := mustNew(t, child)
	b := mustNew(t, child)

	a.Get("settings.limits").(map[string]any)["max"] = 99
	a.Get("tags").([]any)[1].(map[string]any)["k"] = "changed"
	a.Get("extra").(map[string]any)["n"] = 2

	if got := b.Get("settings.limits.max"); got != 10 {
		t.Errorf("sibling instance max = %v, want 10", got)
	}
	if got := b.Get("tags").([]any)[1].(map[string]any)["k"]; got != "v" {
		t.Errorf("sibling instance tag = %v, want v", got)
	}
	if got := b.Get("extra.n"); got != 1 {
		t.Errorf("sibling instance extra.n = %v, want 1", got)
	}

	want := map[string]any{
		"settings": map[string]any{"limits": map[string]any{"max": 10}},
		"tags":     []any{"a", map[string]any{"k": "v"}},
		"extra":    map[string]any{"n": 1},
	}
	if diff := cmp.Diff(want, child.Defaults()); diff != "" {
		t.Errorf("type defaults changed (-want +got):\n%s", diff)
	}
	if got := parent.Defaults()["settings"].(map[string]any)["limits"].(map[string]any)["max"]; got != 10 {
		t.Errorf("parent defaults max = %v, want 10", got)
	}
}

func TestNew_TypedCollectionsAreCopied(t *testing.T) {
	typ := mustDefine(t, noop, Props{
		"ids":    []int{1, 2, 3},
		"labels": map[string]string{"x": "y"},
	})
	a := mustNew(t, typ)
	b := mustNew(t, typ)

	a.Get("ids").([]int)[0] = 100
	a.Get("labels").(map[string]string)["x"] = "z"

	if got := b.Get("ids").([]int)[0]; got != 1 {
		t.Errorf("b.ids[0] = %d, want 1", got)
	}
	if got := b.Get("labels").(map[string]string)["x"]; got != "y" {
		t.Errorf("b.labels[x] = %q, want y", got)
	}
}

type limits struct {
	Items []string
	Meta  map[string]int
	Max   int
}

func TestNew_StructsAndArraysAreCopied(t *testing.T) {
	typ := mustDefine(t, noop, Props{
		"rec": limits{Items: []string{"a"}, Meta: map[string]int{"n": 1}, Max: 3},
		"arr": [1][]string{{"x"}},
	})
	a := mustNew(t, typ)
	b := mustNew(t, typ)

	rec := a.Get("rec").(limits)
	rec.Items[0] = "changed"
	rec.Meta["n"] = 99
	a.Get("arr").([1][]string)[0][0] = "changed"

	want := limits{Items: []string{"a"}, Meta: map[string]int{"n": 1}, Max: 3}
	if diff := cmp.Diff(want, b.Get("rec")); diff != "" {
		t.Errorf("b.rec mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, typ.Defaults()["rec"]); diff != "" {
		t.Errorf("type defaults mismatch (-want +got):\n%s", diff)
	}
	if got := b.Get("arr").([1][]string)[0][0]; got != "x" {
		t.Errorf("b.arr[0][0] = %q, want x", got)
	}
}

func TestDefine_RejectsUnexportedReferenceFields(t *testing.T) {
	type hidden struct {
		Name  string
		items []string
	}
	type plain struct {
		Name string
		size int
	}

	if _, err := Define(noop, Props{"h": hidden{Name: "x"}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unexported slice field error = %v, want ErrInvalidArgument", err)
	}
	if _, err := Define(noop, Props{"p": plain{Name: "x", size: 2}}); err != nil {
		t.Errorf("unexported scalar field error = %v", err)
	}
	if _, err := Define(noop, Props{"nested": limits{Meta: map[string]int{}, Items: nil}}); err != nil {
		t.Errorf("exported reference fields error = %v", err)
	}
}

func TestNew_ConstructorChainOrder(t *testing.T) {
	var calls []string
	record := func(name string) Constructor {
		return func(self *Instance, args ...any) error {
			calls = append(calls, name)
			return nil
		}
	}

	grandparent := mustDefine(t, record("grandparent"))
	parent := mustDefine(t, record("parent"), grandparent)
	child := mustDefine(t, record("child"), parent)

	mustNew(t, child)

	want := []string{"grandparent", "parent", "child"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("constructor order mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_SkipsLevelsWithoutConstructor(t *testing.T) {
	var calls []string
	root := mustDefine(t, func(self *Instance, args ...any) error {
		calls = append(calls, "root")
		return nil
	})
	middle, err := root.Extend(Props{"m": true})
	if err != nil {
		t.Fatalf("Extend() error = %v", err)
	}
	leaf := mustDefine(t, func(self *Instance, args ...any) error {
		calls = append(calls, "leaf")
		return nil
	}, middle)

	inst := mustNew(t, leaf)

	if diff := cmp.Diff([]string{"root", "leaf"}, calls); diff != "" {
		t.Errorf("constructor calls mismatch (-want +got):\n%s", diff)
	}
	if inst.Get("m") != true {
		t.Errorf("inherited default m = %v, want true", inst.Get("m"))
	}
}

func TestNew_ConstructorArguments(t *testing.T) {
	parent := mustDefine(t, func(self *Instance, args ...any) error {
		self.Set("a", args[0])
		return nil
	})
	child := mustDefine(t, func(self *Instance, args ...any) error {
		self.Set("b", args[1])
		return nil
	}, parent)

	inst := mustNew(t, child, "first", "second")

	if inst.Get("a") != "first" || inst.Get("b") != "second" {
		t.Errorf("got a=%v b=%v, want first/second", inst.Get("a"), inst.Get("b"))
	}
}

func TestNew_ConstructorError(t *testing.T) {
	boom := errors.New("boom")
	typ := mustDefine(t, func(self *Instance, args ...any) error {
		return boom
	})

	_, err := typ.New()
	if !errors.Is(err, boom) {
		t.Fatalf("New() error = %v, want wrapped boom", err)
	}
}

func TestNewWithData(t *testing.T) {
	var seen any
	typ := mustDefine(t, func(self *Instance, args ...any) error {
		seen = self.Get("title")
		return nil
	}, Props{
		"title": "untitled",
		"meta":  map[string]any{"owner": "nobody", "tags": []any{}},
	})

	supplied := map[string]any{
		"title": "Groceries",
		"meta":  map[string]any{"owner": "me"},
	}
	inst, err := typ.NewWithData(supplied)
	if err != nil {
		t.Fatalf("NewWithData() error = %v", err)
	}

	if seen != "Groceries" {
		t.Errorf("constructor saw title %v, want supplied value", seen)
	}
	want := map[string]any{
		"title": "Groceries",
		"meta":  map[string]any{"owner": "me", "tags": []any{}},
	}
	if diff := cmp.Diff(want, inst.Snapshot()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	supplied["meta"].(map[string]any)["owner"] = "someone else"
	if got := inst.Get("meta.owner"); got != "me" {
		t.Errorf("instance aliases supplied data: owner = %v", got)
	}
}

func TestNewWithData_RejectsFunctions(t *testing.T) {
	typ := mustDefine(t, noop)
	_, err := typ.NewWithData(map[string]any{"fn": func() {}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewWithData() error = %v, want ErrInvalidArgument", err)
	}
}

func TestMethods_OverrideAndQualifiedCall(t *testing.T) {
	parent := mustDefine(t, noop, Props{
		"describe": Method(func(self *Instance, args ...any) (any, error) {
			return "parent", nil
		}),
		"shared": Method(func(self *Instance, args ...any) (any, error) {
			return "shared", nil
		}),
	})
	child := mustDefine(t, noop, parent, Props{
		"describe": Method(func(self *Instance, args ...any) (any, error) {
			base, err := self.CallAs(parent, "describe")
			if err != nil {
				return nil, err
			}
			return "child of " + base.(string), nil
		}),
	})

	inst := mustNew(t, child)

	got, err := inst.Call("describe")
	if err != nil {
		t.Fatalf("Call(describe) error = %v", err)
	}
	if got != "child of parent" {
		t.Errorf("Call(describe) = %v, want %q", got, "child of parent")
	}
	if got, _ := inst.Call("shared"); got != "shared" {
		t.Errorf("Call(shared) = %v, want inherited method", got)
	}

	if _, err := inst.Call("missing"); !errors.Is(err, ErrUndefinedReference) {
		t.Errorf("Call(missing) error = %v, want ErrUndefinedReference", err)
	}

	other := mustDefine(t, noop)
	if _, err := inst.CallAs(other, "describe"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CallAs(unrelated) error = %v, want ErrInvalidArgument", err)
	}
}

func TestMethods_SharedByReference(t *testing.T) {
	calls := 0
	typ := mustDefine(t, noop, Props{
		"touch": Method(func(self *Instance, args ...any) (any, error) {
			calls++
			return nil, nil
		}),
	})

	for i := 0; i < 3; i++ {
		if _, err := mustNew(t, typ).Call("touch"); err != nil {
			t.Fatalf("Call(touch) error = %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if diff := cmp.Diff([]string{}, mustNew(t, typ).Keys()); diff != "" {
		t.Errorf("methods leaked into instance data (-want +got):\n%s", diff)
	}
}

func TestInstanceIs(t *testing.T) {
	root := mustDefine(t, noop)
	child := mustDefine(t, noop, root)
	other := mustDefine(t, noop)

	inst := mustNew(t, child)
	if !inst.Is(root) || !inst.Is(child) {
		t.Error("instance should be a root and a child")
	}
	if inst.Is(other) {
		t.Error("instance should not be an unrelated type")
	}
	if mustNew(t, root).Is(child) {
		t.Error("parent instance should not be a child")
	}
}

func TestNamed(t *testing.T) {
	root := mustDefine(t, noop).Named("Root")
	child := mustDefine(t, noop, root)

	if child.Name() != "Root" {
		t.Errorf("child.Name() = %q, want inherited Root", child.Name())
	}
	if mustDefine(t, noop).Name() != "class" {
		t.Error("unnamed type should report the generic name")
	}
}

func mustDefine(t *testing.T, ctor Constructor, args ...any) *Type {
	t.Helper()
	typ, err := Define(ctor, args...)
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	return typ
}

func mustNew(t *testing.T, typ *Type, args ...any) *Instance {
	t.Helper()
	inst, err := typ.New(args...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return inst
}
