package mvcpack

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

type testModel struct {
	Title string
}

type testConfig struct {
	Label string
}

// recorder collects call names across cooperating mocks.
type recorder struct {
	calls []string
}

func (r *recorder) add(call string) {
	if r != nil {
		r.calls = append(r.calls, call)
	}
}

func rawTemplate(markup string) Template {
	return recordingTemplate(nil, "", markup)
}

func recordingTemplate(rec *recorder, name, markup string) Template {
	return func(TemplateData) templ.Component {
		rec.add(name + ".template")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, markup)
			return err
		})
	}
}

// spyView is a dynamic view that records its lifecycle calls.
type spyView struct {
	*DynamicView
	rec       *recorder
	name      string
	renders   int
	updates   int
	connects  int
	onDestroy func()
}

func newSpyView(rec *recorder, name, markup string) *spyView {
	return &spyView{
		DynamicView: NewDynamicView(rawTemplate(markup), nil),
		rec:         rec,
		name:        name,
	}
}

func (v *spyView) SetModel(model any) error {
	v.rec.add(v.name + ".SetModel")
	return v.DynamicView.SetModel(model)
}

func (v *spyView) SetControl(control any) error {
	v.rec.add(v.name + ".SetControl")
	return v.DynamicView.SetControl(control)
}

func (v *spyView) Connect() error {
	v.connects++
	v.rec.add(v.name + ".Connect")
	return nil
}

func (v *spyView) Render(ctx context.Context) ([]*html.Node, error) {
	v.renders++
	v.rec.add(v.name + ".Render")
	return v.DynamicView.Render(ctx)
}

func (v *spyView) Update(ctx context.Context) error {
	v.updates++
	v.rec.add(v.name + ".Update")
	return v.DynamicView.Update(ctx)
}

func (v *spyView) Destruct() {
	if v.onDestroy != nil {
		v.onDestroy()
	}
	v.DynamicView.Destruct()
}

// spyControl records its lifecycle calls.
type spyControl struct {
	*AControl
	rec      *recorder
	connects int
}

func newSpyControl(rec *recorder, config any) *spyControl {
	return &spyControl{AControl: NewAControl(config), rec: rec}
}

func (c *spyControl) SetModel(model any) error {
	c.rec.add("control.SetModel")
	return c.AControl.SetModel(model)
}

func (c *spyControl) SetView(view any) error {
	c.rec.add("control.SetView")
	return c.AControl.SetView(view)
}

func (c *spyControl) Connect() error {
	c.connects++
	c.rec.add("control.Connect")
	return nil
}

// spyDecorator records its lifecycle calls.
type spyDecorator struct {
	*ADecorator
	rec     *recorder
	name    string
	renders int
}

func newSpyDecorator(rec *recorder, name string) *spyDecorator {
	markup := `<section class="` + name + `"><div class="component-container"></div></section>`
	return &spyDecorator{
		ADecorator: NewADecorator(recordingTemplate(rec, name, markup), nil),
		rec:        rec,
		name:       name,
	}
}

func (d *spyDecorator) SetModel(model any) error {
	d.rec.add(d.name + ".SetModel")
	return d.ADecorator.SetModel(model)
}

func (d *spyDecorator) Render(ctx context.Context) ([]*html.Node, error) {
	d.renders++
	d.rec.add(d.name + ".Render")
	return d.ADecorator.Render(ctx)
}
