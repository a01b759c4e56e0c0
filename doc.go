// Package mvcpack provides a small model-view-control component system for
// server-side markup, built on templ templates and golang.org/x/net/html
// element trees.
//
// # Core Concepts
//
// Components embed one of the abstract bases and are composed by Go
// embedding:
//
//   - *AControl for controls, the behavior counterpart of a view
//   - *StaticView for views bound to markup that already exists in a document
//   - *DynamicView for views rendered from a Template on every render
//   - *ADecorator for views that wrap another rendered view
//
// The families are closed. IsView, IsControl and IsDecorator are the
// capability checks used wherever a component of a given family is
// required; SetControl, SetView and SetComponent fail with ErrInvalidType
// otherwise.
//
//	type ListView struct {
//	    *mvcpack.DynamicView
//	    items []*html.Node
//	}
//
//	func (v *ListView) InitElements() error {
//	    v.items = v.FindAll(".task")
//	    return nil
//	}
//
// # Modes
//
// A Mode binds one model to a view, an optional control and named
// decorators, and connects them on construction:
//
//	mode, err := mvcpack.NewMode(ctx, mvcpack.ModeProps{
//	    Model:      model,
//	    View:       list,
//	    Control:    control,
//	    Decorators: map[string]any{"panel": panel},
//	})
//	mode.DecorateWith("panel")
//	nodes, err := mode.Compose(ctx)
//
// NewModeFactory turns a set of constructors into a ModeBuilder, so one
// mode definition can serve many models. Modes built this way also hand out
// per-usage view instances through ViewFor.
//
// # Modules
//
// A Module groups the modes of one model and maps environment names to
// modes. GetMode and GetModeFor return nil for unknown names. Module
// factories build the model from a class.Type (see lib/class) and every
// mode from its builder.
//
// A Registry names the module builders of an application and shares one
// singleton registry, snapshot encoder and logger between them:
//
//	reg := mvcpack.NewRegistry(key, logger)
//	reg.Add("tasks", build)
//	module, err := reg.Build(ctx, "tasks", args, env, configs)
//
// # Snapshots
//
// EncodeModel and DecodeModel store a model's data in a signed or
// encrypted string using lib/encoding.
//
// # Historical names
//
// State, StateComponent, NewState, NewStateFactory, GetState and
// GetStateFor are aliases of the Mode names.
package mvcpack
