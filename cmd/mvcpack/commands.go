package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm/mvcpack"
	"github.com/pthm/mvcpack/example/tasks"
	"github.com/pthm/mvcpack/lib/class"
	"github.com/pthm/mvcpack/lib/dom"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

type options struct {
	configPath string
	key        string
	verbose    bool
	sensitive  bool
	state      string

	mode     string
	env      string
	decorate []string
	fragment bool

	add    []string
	toggle []int
	remove []int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "mvcpack",
		Short:         "Render mvcpack modes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&opts.key, "key", "", "snapshot key (overrides the config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.sensitive, "sensitive", true, "encrypt snapshots instead of signing them")
	flags.StringVar(&opts.state, "state", "", "start from a snapshot made by the snapshot command")

	root.AddCommand(newRenderCmd(opts), newSnapshotCmd(opts), newVersionCmd())
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a mode into the page and print the HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", "", "mode to render")
	flags.StringVarP(&opts.env, "env", "e", "desktop", "environment used when --mode is not set")
	flags.StringSliceVarP(&opts.decorate, "decorate", "d", nil, "decorators to apply, innermost first")
	flags.BoolVar(&opts.fragment, "fragment", false, "print only the composed mode, not the page")
	return cmd
}

func newSnapshotCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Apply task changes to the model and print its snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&opts.add, "add", nil, "titles of tasks to add")
	flags.IntSliceVar(&opts.toggle, "toggle", nil, "ids of tasks to toggle")
	flags.IntSliceVar(&opts.remove, "remove", nil, "ids of tasks to remove")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mvcpack version %s\n", version)
		},
	}
}

// app is what every command needs: the config, the registry and the model
// type.
type app struct {
	cfg      Config
	reg      *mvcpack.Registry
	listType *class.Type
	logger   *slog.Logger
}

func newApp(opts *options, stderr io.Writer) (*app, error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	key := cfg.Key
	if opts.key != "" {
		key = opts.key
	}
	listType, err := tasks.NewListType()
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		reg:      mvcpack.NewRegistry([]byte(key), logger),
		listType: listType,
		logger:   logger,
	}, nil
}

// model returns the task list from the snapshot when one is given, or a new
// one seeded from the config.
func (a *app) model(state string, sensitive bool) (*class.Instance, error) {
	if state == "" {
		return a.listType.New(a.cfg.ModelArgs()...)
	}
	a.logger.Debug("restoring model", "sensitive", sensitive)
	return mvcpack.DecodeModel(a.reg.Encoder(), a.listType, state, sensitive)
}

func runRender(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(opts, stderr)
	if err != nil {
		return err
	}
	doc, err := tasks.Page()
	if err != nil {
		return err
	}
	model, err := a.model(opts.state, opts.sensitive)
	if err != nil {
		return err
	}
	modes, err := tasks.Modes(a.reg, doc)
	if err != nil {
		return err
	}
	module, err := mvcpack.BuildModule(ctx, model, modes, a.cfg.Env, a.cfg.ModeConfigs())
	if err != nil {
		return err
	}

	var mode *mvcpack.Mode
	if opts.mode != "" {
		mode = module.GetMode(opts.mode, opts.decorate...)
	} else {
		mode = module.GetModeFor(opts.env, opts.decorate...)
	}
	if mode == nil {
		return fmt.Errorf("%w: no mode for --mode=%q --env=%q (have %v)",
			mvcpack.ErrUndefinedReference, opts.mode, opts.env, module.Modes())
	}
	a.logger.Debug("composing mode", "mode", opts.mode, "env", opts.env, "decorators", opts.decorate)

	nodes, err := mode.Compose(ctx)
	if err != nil {
		return err
	}
	var out []*html.Node
	if opts.fragment {
		out = nodes
	} else {
		if err := tasks.Mount(doc, nodes); err != nil {
			return err
		}
		out = []*html.Node{doc}
	}
	markup, err := dom.String(out...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, markup)
	return err
}

func runSnapshot(opts *options, stdout, stderr io.Writer) error {
	a, err := newApp(opts, stderr)
	if err != nil {
		return err
	}
	model, err := a.model(opts.state, opts.sensitive)
	if err != nil {
		return err
	}
	for _, title := range opts.add {
		if _, err := model.Call("add", title); err != nil {
			return err
		}
	}
	for _, id := range opts.toggle {
		if _, err := model.Call("toggle", id); err != nil {
			return err
		}
	}
	for _, id := range opts.remove {
		if _, err := model.Call("remove", id); err != nil {
			return err
		}
	}
	encoded, err := mvcpack.EncodeModel(a.reg.Encoder(), model, opts.sensitive)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, encoded)
	return err
}
