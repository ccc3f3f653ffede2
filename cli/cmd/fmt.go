package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/iconf/ini"
	"github.com/ardnew/iconf/log"
)

// Fmt parses a single source and renders it in the chosen format.
type Fmt struct {
	INI  FmtINI  `cmd:"" default:"withargs" help:"Format as canonical INI (default)." name:"ini"`
	JSON FmtJSON `cmd:""                    help:"Format as JSON."                    name:"json"`
	YAML FmtYAML `cmd:""                    help:"Format as YAML."                    name:"yaml"`
}

// FmtINI formats input as canonical INI.
type FmtINI struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt ini command.
func (f *FmtINI) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	return doc.Format(ctx, outputFrom(ctx))
}

// FmtJSON formats input as JSON.
type FmtJSON struct {
	Indent int    `default:"2" help:"Indent width for JSON output" short:"i"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt json command.
func (f *FmtJSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	return ini.FormatJSON(ctx, outputFrom(ctx), doc.Map(), f.Indent)
}

// FmtYAML formats input as YAML.
type FmtYAML struct {
	Indent int    `default:"2" help:"Indent width for YAML output" short:"i"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (f *FmtYAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	return ini.FormatYAML(ctx, outputFrom(ctx), doc.Map(), f.Indent)
}

// parseSource parses the named file, or stdin for "-". Sections are
// recognized unless the loaded configuration disables them.
func parseSource(ctx context.Context, name string) (*ini.Document, error) {
	sections := true
	if cfg, err := configFrom(ctx); err == nil {
		sections = cfg.SectionMatters()
	}

	file := os.Stdin

	if name != StdinSource {
		var err error

		file, err = os.Open(name)
		if err != nil {
			return nil, err
		}
		defer file.Close()
	}

	doc, err := ini.Parse(ctx, name, file,
		ini.WithSections(sections),
		ini.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "parsed source",
		slog.String("source", name),
		slog.Int("items", doc.Len()),
	)

	return doc, nil
}
