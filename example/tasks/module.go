// Package tasks is a task-list module built on mvcpack. It shows every kind
// of component: a dynamic list view with its control, a summary view, a
// static header bound to the page, and two decorators.
package tasks

import (
	"context"
	"fmt"

	"github.com/pthm/mvcpack"
	"golang.org/x/net/html"
)

// Mode names.
const (
	ModeList    = "list"
	ModeSummary = "summary"
	ModeHeader  = "header"
)

// Decorator names.
const (
	DecoratorPanel = "panel"
	DecoratorCard  = "card"
)

// ModuleName is the name Register uses.
const ModuleName = "tasks"

// NewModuleFactory returns the module builder. When doc is not nil the
// module also gets the header mode, bound to doc's #app-header element
// through reg's singleton registry.
func NewModuleFactory(reg *mvcpack.Registry, doc *html.Node) (mvcpack.ModuleBuilder, error) {
	listType, err := NewListType()
	if err != nil {
		return nil, err
	}
	modes, err := Modes(reg, doc)
	if err != nil {
		return nil, err
	}
	return mvcpack.NewModuleFactory(mvcpack.ModuleConstructors{Model: listType, Modes: modes})
}

// Modes returns the mode builders of the module. Use it with
// mvcpack.BuildModule to build a module around an existing model, such as
// one restored from a snapshot.
func Modes(reg *mvcpack.Registry, doc *html.Node) (map[string]mvcpack.ModeBuilder, error) {
	decorators := map[string]func(any) mvcpack.View{
		DecoratorPanel: NewPanel,
		DecoratorCard:  NewCard,
	}
	order := []string{DecoratorPanel, DecoratorCard}
	list, err := mvcpack.NewModeFactory(mvcpack.Constructors{
		View:           NewListView,
		Control:        NewListControl,
		Decorators:     decorators,
		DecoratorOrder: order,
		Logger:         reg.Logger(),
	})
	if err != nil {
		return nil, err
	}
	summary, err := mvcpack.NewModeFactory(mvcpack.Constructors{
		View:           NewSummaryView,
		Decorators:     decorators,
		DecoratorOrder: order,
		Logger:         reg.Logger(),
	})
	if err != nil {
		return nil, err
	}

	modes := map[string]mvcpack.ModeBuilder{
		ModeList:    list,
		ModeSummary: summary,
	}
	if doc != nil {
		modes[ModeHeader] = func(ctx context.Context, model, config any) (*mvcpack.Mode, error) {
			header, err := HeaderViewFor(reg.Singletons(), doc, config)
			if err != nil {
				return nil, fmt.Errorf("header view: %w", err)
			}
			return mvcpack.NewMode(ctx, mvcpack.ModeProps{Model: model, View: header, Logger: reg.Logger()})
		}
	}
	return modes, nil
}

// Register adds the tasks module to reg.
func Register(reg *mvcpack.Registry, doc *html.Node) error {
	build, err := NewModuleFactory(reg, doc)
	if err != nil {
		return err
	}
	reg.Add(ModuleName, build)
	return nil
}

// DefaultEnv maps the usual environments to modes.
func DefaultEnv() map[string]string {
	return map[string]string{
		"desktop": ModeList,
		"mobile":  ModeSummary,
	}
}
