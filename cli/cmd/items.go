package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/ini"
)

// Items prints a subtree of the configuration.
type Items struct {
	Section string `help:"Select a single section."                     short:"S"`
	File    string `help:"Select a single source (with --files)."       short:"F"`
	Format  string `help:"Output format."                               short:"o" default:"ini" enum:"ini,json,yaml"`
	Indent  int    `help:"Indent width for JSON and YAML output."       short:"i" default:"2"`
}

// Run executes the items command.
func (i *Items) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	tree, err := cfg.Items(ctx, conf.Selector{Source: i.File, Section: i.Section})
	if err != nil {
		return err
	}

	return render(ctx, outputFrom(ctx), i.Format, i.Indent, tree)
}

// render writes tree to w in the named format.
func render(
	ctx context.Context,
	w io.Writer,
	format string,
	indent int,
	tree map[string]any,
) error {
	switch format {
	case "ini":
		return ini.FormatTree(ctx, w, tree)

	case "json":
		return ini.FormatJSON(ctx, w, tree, indent)

	case "yaml":
		return ini.FormatYAML(ctx, w, tree, indent)

	default:
		return ErrUnknownFormat.With(slog.String("format", format))
	}
}
