package tasks

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pthm/mvcpack"
	"github.com/pthm/mvcpack/lib/class"
	"github.com/pthm/mvcpack/lib/dom"
	"golang.org/x/net/html"
)

// Events triggered by ListView and handled by ListControl.
const (
	EventAdd    = "add"
	EventToggle = "toggle"
	EventRemove = "remove"
)

// Config is the per-mode configuration.
type Config struct {
	Label    string `yaml:"label"`
	HideDone bool   `yaml:"hide_done"`
}

func configOf(v any) *Config {
	if c, ok := v.(*Config); ok && c != nil {
		return c
	}
	return &Config{}
}

func modelOf(v any) *class.Instance {
	inst, _ := v.(*class.Instance)
	return inst
}

func markup(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

// ListView renders the title and the task list as two sibling roots.
type ListView struct {
	*mvcpack.DynamicView
	items []*html.Node
}

// NewListView creates a list view.
func NewListView(config any) mvcpack.View {
	v := &ListView{}
	v.DynamicView = mvcpack.NewDynamicView(listTemplate, config)
	return v
}

func listTemplate(data mvcpack.TemplateData) templ.Component {
	model := modelOf(data.Model)
	cfg := configOf(data.Config)
	return markup(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h2 class="title">%s</h2><ul class="tasks">`, templ.EscapeString(Title(model))); err != nil {
			return err
		}
		shown := 0
		for _, t := range List(model) {
			if t.Done && cfg.HideDone {
				continue
			}
			cls := "task"
			if t.Done {
				cls += " done"
			}
			if _, err := fmt.Fprintf(w, `<li class="%s" data-id="%d">%s</li>`, cls, t.ID, templ.EscapeString(t.Title)); err != nil {
				return err
			}
			shown++
		}
		if shown == 0 {
			empty, _ := model.Get("labels.empty").(string)
			if _, err := fmt.Fprintf(w, `<li class="empty">%s</li>`, templ.EscapeString(empty)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

// InitElements collects the rendered task items.
func (v *ListView) InitElements() error {
	v.items = v.FindAll("li.task")
	return nil
}

// Items returns the task elements of the last render.
func (v *ListView) Items() []*html.Node {
	return v.items
}

// ItemID returns the task id of a task element.
func ItemID(n *html.Node) int {
	id, _ := strconv.Atoi(dom.Attr(n, "data-id"))
	return id
}

// Add reports that the user asked for a new task.
func (v *ListView) Add(ctx context.Context, title string) {
	v.Trigger(EventAdd, ctx, title)
}

// Toggle reports that the user clicked a task.
func (v *ListView) Toggle(ctx context.Context, id int) {
	v.Trigger(EventToggle, ctx, id)
}

// Remove reports that the user deleted a task.
func (v *ListView) Remove(ctx context.Context, id int) {
	v.Trigger(EventRemove, ctx, id)
}

// SummaryView renders a one-line progress summary.
type SummaryView struct {
	*mvcpack.DynamicView
}

// NewSummaryView creates a summary view.
func NewSummaryView(config any) mvcpack.View {
	return &SummaryView{DynamicView: mvcpack.NewDynamicView(summaryTemplate, config)}
}

func summaryTemplate(data mvcpack.TemplateData) templ.Component {
	model := modelOf(data.Model)
	return markup(func(w io.Writer) error {
		all := List(model)
		done := 0
		for _, t := range all {
			if t.Done {
				done++
			}
		}
		label, _ := model.Get("labels.done").(string)
		_, err := fmt.Fprintf(w, `<p class="summary">%d/%d %s</p>`, done, len(all), templ.EscapeString(label))
		return err
	})
}

// HeaderView is bound to the page header. It writes the list title and the
// number of pending tasks into existing elements.
type HeaderView struct {
	*mvcpack.StaticView
	title *html.Node
	count *html.Node
}

// HeaderSelector locates the page header.
const HeaderSelector = "#app-header"

// HeaderViewFor returns the page's header view. Header views are singletons
// per registry.
func HeaderViewFor(reg *class.Registry, doc *html.Node, config any) (*HeaderView, error) {
	return class.Singleton(reg, "tasks:header", func() (*HeaderView, error) {
		sv, err := mvcpack.NewStaticView(doc, HeaderSelector, config)
		if err != nil {
			return nil, err
		}
		return &HeaderView{StaticView: sv}, nil
	})
}

// InitElements locates the title and count slots and fills them.
func (v *HeaderView) InitElements() error {
	v.title = v.Find(".title")
	v.count = v.Find(".count")
	if v.title == nil || v.count == nil {
		return fmt.Errorf("%w: header needs .title and .count elements", mvcpack.ErrUndefinedReference)
	}
	return v.fill()
}

// Update refreshes the title and count.
func (v *HeaderView) Update(ctx context.Context) error {
	if v.title == nil {
		_, err := v.Render(ctx)
		return err
	}
	return v.fill()
}

func (v *HeaderView) fill() error {
	model := modelOf(v.Model())
	if model == nil {
		return fmt.Errorf("%w: header model is not a task list", mvcpack.ErrInvalidModel)
	}
	pending, err := model.Call("pending")
	if err != nil {
		return err
	}
	setText(v.title, Title(model))
	setText(v.count, strconv.Itoa(pending.(int)))
	return nil
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Panel wraps a view in a titled section.
type Panel struct {
	*mvcpack.ADecorator
}

// NewPanel creates a panel decorator.
func NewPanel(config any) mvcpack.View {
	return &Panel{ADecorator: mvcpack.NewADecorator(panelTemplate, config)}
}

func panelTemplate(data mvcpack.TemplateData) templ.Component {
	label := configOf(data.Config).Label
	if label == "" {
		label = Title(modelOf(data.Model))
	}
	return markup(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="panel"><header class="panel-title">%s</header><div class="%s"></div></section>`,
			templ.EscapeString(label), mvcpack.ContainerClass)
		return err
	})
}

// Card wraps a view in a plain card.
type Card struct {
	*mvcpack.ADecorator
}

// NewCard creates a card decorator.
func NewCard(config any) mvcpack.View {
	return &Card{ADecorator: mvcpack.NewADecorator(mvcpack.Template(func(mvcpack.TemplateData) templ.Component {
		return markup(func(w io.Writer) error {
			_, err := fmt.Fprintf(w, `<div class="card"><div class="%s"></div></div>`, mvcpack.ContainerClass)
			return err
		})
	}), config)}
}
