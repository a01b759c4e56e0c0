package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm/mvcpack"
	"github.com/pthm/mvcpack/lib/event"
)

// ListControl turns ListView events into model changes and refreshes the
// view afterwards.
type ListControl struct {
	*mvcpack.AControl
	logger *slog.Logger
	// Err holds the error of the last handled event, if any.
	Err error
}

// NewListControl creates a list control.
func NewListControl(config any) mvcpack.Control {
	return &ListControl{AControl: mvcpack.NewAControl(config), logger: slog.Default()}
}

// Connect subscribes to the view's events.
func (c *ListControl) Connect() error {
	view, ok := c.View().(*ListView)
	if !ok {
		return fmt.Errorf("%w: list control needs a *ListView, got %T", mvcpack.ErrInvalidType, c.View())
	}
	view.On(EventAdd, c.handle("add"))
	view.On(EventToggle, c.handle("toggle"))
	view.On(EventRemove, c.handle("remove"))
	return nil
}

// handle calls the model method named method with the event arguments. The
// first event argument is the context used to refresh the view.
func (c *ListControl) handle(method string) event.Func {
	return func(_ *event.Handler, args ...any) {
		ctx := context.Background()
		if len(args) > 0 {
			if x, ok := args[0].(context.Context); ok {
				ctx = x
				args = args[1:]
			}
		}
		c.Err = c.apply(ctx, method, args)
		if c.Err != nil {
			c.logger.Warn("task event failed", "method", method, "error", c.Err)
		}
	}
}

func (c *ListControl) apply(ctx context.Context, method string, args []any) error {
	model := modelOf(c.Model())
	if model == nil {
		return fmt.Errorf("%w: control has no task list", mvcpack.ErrInvalidModel)
	}
	if _, err := model.Call(method, args...); err != nil {
		return err
	}
	return c.View().Update(ctx)
}
