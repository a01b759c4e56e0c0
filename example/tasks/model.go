package tasks

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/mvcpack/lib/class"
)

// ErrTaskNotFound is returned when a task id is unknown.
var ErrTaskNotFound = errors.New("tasks: task not found")

//go:embed defaults.yaml
var defaultsYAML []byte

// Task is a read-only view of one task record.
type Task struct {
	ID    int
	Title string
	Done  bool
}

// collection holds the methods that change the task records.
var collection = class.Bundle{
	Name: "collection",
	Methods: map[string]class.Method{
		"add":    addTask,
		"toggle": toggleTask,
		"remove": removeTask,
	},
}

// progress holds the counting methods.
var progress = class.Bundle{
	Name: "progress",
	Methods: map[string]class.Method{
		"count": func(self *class.Instance, _ ...any) (any, error) {
			return len(records(self)), nil
		},
		"pending": func(self *class.Instance, _ ...any) (any, error) {
			n := 0
			for _, t := range List(self) {
				if !t.Done {
					n++
				}
			}
			return n, nil
		},
	},
}

// NewListType builds the task list model type. Instances take an optional
// title and an optional []string of seed task titles.
func NewListType() (*class.Type, error) {
	defaults, err := class.BundleFromYAML("defaults", defaultsYAML)
	if err != nil {
		return nil, err
	}
	t, err := class.Define(construct, defaults, collection, progress, class.Props{})
	if err != nil {
		return nil, err
	}
	return t.Named("TaskList"), nil
}

func construct(self *class.Instance, args ...any) error {
	if len(args) > 0 && args[0] != nil {
		title, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("%w: title must be a string, got %T", class.ErrInvalidArgument, args[0])
		}
		if title != "" {
			self.Set("title", title)
		}
	}
	if len(args) > 1 && args[1] != nil {
		seed, ok := args[1].([]string)
		if !ok {
			return fmt.Errorf("%w: seed tasks must be a []string, got %T", class.ErrInvalidArgument, args[1])
		}
		for _, title := range seed {
			if _, err := self.Call("add", title); err != nil {
				return err
			}
		}
	}
	return nil
}

func addTask(self *class.Instance, args ...any) (any, error) {
	var title string
	if len(args) > 0 {
		title, _ = args[0].(string)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is empty", class.ErrInvalidArgument)
	}

	id := toInt(self.Get("next_id"))
	if id < 1 {
		id = 1
	}
	self.Set("next_id", id+1)
	self.Set("tasks", append(records(self), map[string]any{
		"id":    id,
		"title": title,
		"done":  false,
	}))
	return id, nil
}

func toggleTask(self *class.Instance, args ...any) (any, error) {
	rec, err := find(self, args)
	if err != nil {
		return nil, err
	}
	done, _ := rec["done"].(bool)
	rec["done"] = !done
	return !done, nil
}

func removeTask(self *class.Instance, args ...any) (any, error) {
	rec, err := find(self, args)
	if err != nil {
		return nil, err
	}
	all := records(self)
	kept := make([]any, 0, len(all))
	for _, r := range all {
		if m, ok := r.(map[string]any); ok && toInt(m["id"]) == toInt(rec["id"]) {
			continue
		}
		kept = append(kept, r)
	}
	self.Set("tasks", kept)
	return nil, nil
}

func find(self *class.Instance, args []any) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: task id is missing", class.ErrInvalidArgument)
	}
	id := toInt(args[0])
	for _, r := range records(self) {
		if m, ok := r.(map[string]any); ok && toInt(m["id"]) == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: id %v", ErrTaskNotFound, args[0])
}

func records(self *class.Instance) []any {
	all, _ := self.Get("tasks").([]any)
	return all
}

// List returns the tasks of a task list instance in insertion order.
func List(self *class.Instance) []Task {
	all := records(self)
	out := make([]Task, 0, len(all))
	for _, r := range all {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		done, _ := m["done"].(bool)
		out = append(out, Task{ID: toInt(m["id"]), Title: title, Done: done})
	}
	return out
}

// Title returns the task list title.
func Title(self *class.Instance) string {
	s, _ := self.Get("title").(string)
	return s
}

// toInt accepts the integer widths produced by Go code, YAML and msgpack.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case uint64:
		return int(n)
	case uint32:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
