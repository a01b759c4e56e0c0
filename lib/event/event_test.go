package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTrigger_Order(t *testing.T) {
	var h Handler
	var calls []string

	h.Listen("save", func(src *Handler, args ...any) { calls = append(calls, "first") })
	h.Listen("save", func(src *Handler, args ...any) { calls = append(calls, "second") })
	h.Listen("other", func(src *Handler, args ...any) { calls = append(calls, "other") })

	h.Trigger("save")

	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Errorf("handler order mismatch (-want +got):\n%s", diff)
	}
}

func TestTrigger_Arguments(t *testing.T) {
	var h Handler
	var gotSrc *Handler
	var gotArgs []any

	h.Listen("change", func(src *Handler, args ...any) {
		gotSrc = src
		gotArgs = args
	})
	h.Trigger("change", "title", 42)

	if gotSrc != &h {
		t.Error("handler did not receive the dispatcher")
	}
	if diff := cmp.Diff([]any{"title", 42}, gotArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestTrigger_Unknown(t *testing.T) {
	var h Handler
	h.Trigger("nothing")
}

func TestListenAll(t *testing.T) {
	var h Handler
	count := 0
	ids := h.ListenAll(map[string]Func{
		"a": func(src *Handler, args ...any) { count++ },
		"b": func(src *Handler, args ...any) { count += 10 },
	})

	h.Trigger("a")
	h.Trigger("b")

	if count != 11 {
		t.Errorf("count = %d, want 11", count)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want two entries", ids)
	}
}

func TestRemoveListener(t *testing.T) {
	var h Handler
	var calls []string

	first := h.Listen("e", func(src *Handler, args ...any) { calls = append(calls, "first") })
	h.Listen("e", func(src *Handler, args ...any) { calls = append(calls, "second") })

	h.RemoveListener("e", first)
	h.RemoveListener("e", 999)
	h.RemoveListener("missing", first)
	h.Trigger("e")

	if diff := cmp.Diff([]string{"second"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveDuringTrigger(t *testing.T) {
	var h Handler
	calls := 0
	var id ListenerID
	id = h.Listen("e", func(src *Handler, args ...any) {
		calls++
		src.RemoveListener("e", id)
	})
	h.Listen("e", func(src *Handler, args ...any) { calls++ })

	h.Trigger("e")
	h.Trigger("e")

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestHasAndReset(t *testing.T) {
	var h Handler
	id := h.Listen("e", func(src *Handler, args ...any) {})
	if !h.Has("e") {
		t.Error("Has(e) = false after Listen")
	}
	h.RemoveListener("e", id)
	if h.Has("e") {
		t.Error("Has(e) = true after RemoveListener")
	}
	h.Listen("e", func(src *Handler, args ...any) {})
	h.Reset()
	if h.Has("e") {
		t.Error("Has(e) = true after Reset")
	}
}
