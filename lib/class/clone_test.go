package class

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeepExtend(t *testing.T) {
	target := map[string]any{
		"keep":   "target",
		"nested": map[string]any{"a": 1},
		"scalar": 5,
	}
	source := map[string]any{
		"keep":   "source",
		"nested": map[string]any{"a": 2, "b": 3},
		"scalar": map[string]any{"x": 1},
		"new":    []any{1},
	}

	got := deepExtend(target, source)

	want := map[string]any{
		"keep":   "target",
		"nested": map[string]any{"a": 1, "b": 3},
		"scalar": 5,
		"new":    []any{1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("deepExtend mismatch (-want +got):\n%s", diff)
	}

	source["new"].([]any)[0] = 99
	if target["new"].([]any)[0] != 1 {
		t.Error("deepExtend aliased a source slice")
	}
}

func TestDeepCopy(t *testing.T) {
	target := map[string]any{
		"nested": map[string]any{"a": 1, "keep": true},
		"scalar": map[string]any{"old": 1},
	}
	source := map[string]any{
		"nested": map[string]any{"a": 2},
		"scalar": 7,
	}

	got := deepCopy(target, source)

	want := map[string]any{
		"nested": map[string]any{"a": 2, "keep": true},
		"scalar": 7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("deepCopy mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneValue_NilCollections(t *testing.T) {
	var m map[string]int
	var s []string

	if got := cloneValue(m).(map[string]int); got != nil {
		t.Errorf("clone of nil map = %v, want nil", got)
	}
	if got := cloneValue(s).([]string); got != nil {
		t.Errorf("clone of nil slice = %v, want nil", got)
	}
	if cloneValue(nil) != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestCloneValue_SliceOfTypedMaps(t *testing.T) {
	src := []map[string]int{{"a": 1}}
	dst := cloneValue(src).([]map[string]int)
	dst[0]["a"] = 2
	if src[0]["a"] != 1 {
		t.Error("clone aliased a nested typed map")
	}
}
