package mvcpack

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Constructors are the component constructors a mode factory instantiates
// for every mode it builds. Each receives the config passed to the builder.
type Constructors struct {
	View    func(config any) View
	Control func(config any) Control
	// Decorators may return any view; values that do not embed ADecorator
	// are dropped when the mode is assembled.
	Decorators map[string]func(config any) View
	// DecoratorOrder is passed to every mode as ModeProps.DecoratorOrder.
	DecoratorOrder []string
	Logger         *slog.Logger
}

// ModeBuilder builds a connected mode for a model and a config.
type ModeBuilder func(ctx context.Context, model, config any) (*Mode, error)

// StateBuilder is the historical name of ModeBuilder.
type StateBuilder = ModeBuilder

// NewModeFactory returns a builder that instantiates the constructors in c
// and assembles a mode from them. A nil View constructor is an error; nil
// decorator constructors are skipped with a warning.
func NewModeFactory(c Constructors) (ModeBuilder, error) {
	if c.View == nil {
		return nil, fmt.Errorf("%w: view constructor is not defined", ErrInvalidArgument)
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctors := c
	ctors.Logger = logger
	ctors.DecoratorOrder = slices.Clone(c.DecoratorOrder)
	ctors.Decorators = make(map[string]func(config any) View, len(c.Decorators))
	for _, name := range slices.Sorted(maps.Keys(c.Decorators)) {
		if c.Decorators[name] == nil {
			logger.Warn("decorator constructor is not defined", "name", name)
			continue
		}
		ctors.Decorators[name] = c.Decorators[name]
	}

	return func(ctx context.Context, model, config any) (*Mode, error) {
		props := ModeProps{
			Model:          model,
			View:           ctors.View(config),
			DecoratorOrder: ctors.DecoratorOrder,
			Logger:         logger,
		}
		if ctors.Control != nil {
			props.Control = ctors.Control(config)
		}
		if len(ctors.Decorators) > 0 {
			props.Decorators = make(map[string]any, len(ctors.Decorators))
			for name, ctor := range ctors.Decorators {
				props.Decorators[name] = ctor(config)
			}
		}

		m, err := NewMode(ctx, props)
		if err != nil {
			return nil, err
		}
		m.ctors = &ctors
		m.config = config
		return m, nil
	}, nil
}

// NewStateFactory is the historical name of NewModeFactory.
func NewStateFactory(c Constructors) (StateBuilder, error) {
	return NewModeFactory(c)
}

// NewState is the historical name of NewMode.
func NewState(ctx context.Context, props ModeProps) (*State, error) {
	return NewMode(ctx, props)
}
