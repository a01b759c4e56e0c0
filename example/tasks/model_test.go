package tasks

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pthm/mvcpack"
	"github.com/pthm/mvcpack/lib/class"
)

func newList(t *testing.T, args ...any) *class.Instance {
	t.Helper()
	typ, err := NewListType()
	if err != nil {
		t.Fatalf("NewListType() error = %v", err)
	}
	inst, err := typ.New(args...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return inst
}

func call(t *testing.T, inst *class.Instance, method string, args ...any) any {
	t.Helper()
	out, err := inst.Call(method, args...)
	if err != nil {
		t.Fatalf("Call(%q) error = %v", method, err)
	}
	return out
}

func TestListType_Defaults(t *testing.T) {
	inst := newList(t)
	if Title(inst) != "Tasks" {
		t.Errorf("Title() = %q, want Tasks", Title(inst))
	}
	if len(List(inst)) != 0 {
		t.Error("new list should be empty")
	}
	if inst.Get("labels.empty") != "Nothing to do" {
		t.Errorf("labels.empty = %v", inst.Get("labels.empty"))
	}
	if inst.Type().Name() != "TaskList" {
		t.Errorf("type name = %q", inst.Type().Name())
	}
}

func TestListType_Constructor(t *testing.T) {
	inst := newList(t, "Inbox", []string{"write docs", "ship"})
	want := []Task{
		{ID: 1, Title: "write docs"},
		{ID: 2, Title: "ship"},
	}
	if diff := cmp.Diff(want, List(inst)); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if Title(inst) != "Inbox" {
		t.Errorf("Title() = %q", Title(inst))
	}

	typ, err := NewListType()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := typ.New(3); !errors.Is(err, class.ErrInvalidArgument) {
		t.Errorf("New(3) error = %v", err)
	}
	if _, err := typ.New("x", []string{""}); !errors.Is(err, class.ErrInvalidArgument) {
		t.Errorf("empty seed title error = %v", err)
	}
}

func TestListMethods(t *testing.T) {
	inst := newList(t, "", []string{"a", "b", "c"})

	if done := call(t, inst, "toggle", 2); done != true {
		t.Errorf("toggle() = %v, want true", done)
	}
	if n := call(t, inst, "pending"); n != 2 {
		t.Errorf("pending() = %v, want 2", n)
	}
	call(t, inst, "remove", 1)
	if n := call(t, inst, "count"); n != 2 {
		t.Errorf("count() = %v, want 2", n)
	}
	if id := call(t, inst, "add", "  d  "); id != 4 {
		t.Errorf("add() id = %v, want 4", id)
	}

	want := []Task{{ID: 2, Title: "b", Done: true}, {ID: 3, Title: "c"}, {ID: 4, Title: "d"}}
	if diff := cmp.Diff(want, List(inst)); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}

	if _, err := inst.Call("toggle", 99); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("toggle(99) error = %v", err)
	}
	if _, err := inst.Call("remove"); !errors.Is(err, class.ErrInvalidArgument) {
		t.Errorf("remove() error = %v", err)
	}
	if _, err := inst.Call("add", ""); !errors.Is(err, class.ErrInvalidArgument) {
		t.Errorf("add(\"\") error = %v", err)
	}
}

func TestListInstancesAreIsolated(t *testing.T) {
	typ, err := NewListType()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := typ.New()
	b, _ := typ.New()

	call(t, a, "add", "only in a")
	if len(List(b)) != 0 {
		t.Error("adding to one list should not change another")
	}
	if tasks, _ := typ.Defaults()["tasks"].([]any); len(tasks) != 0 {
		t.Error("adding to a list should not change the type defaults")
	}
}

func TestListSnapshotRoundTrip(t *testing.T) {
	enc, err := mvcpack.NewEncoder([]byte("tasks-test-key"))
	if err != nil {
		t.Fatal(err)
	}
	typ, err := NewListType()
	if err != nil {
		t.Fatal(err)
	}
	inst, err := typ.New("Inbox", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}

	encoded, err := mvcpack.EncodeModel(enc, inst, true)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := mvcpack.DecodeModel(enc, typ, encoded, true)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(List(inst), List(restored)); diff != "" {
		t.Errorf("restored tasks mismatch (-want +got):\n%s", diff)
	}
	// Decoded ids are int64; the methods must still find them.
	call(t, restored, "toggle", 1)
	if id := call(t, restored, "add", "c"); id != 3 {
		t.Errorf("add() after restore id = %v, want 3", id)
	}
}
