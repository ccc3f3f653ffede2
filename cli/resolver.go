package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/cli/cmd"
	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// an INI file, using this module's own reader.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.ini")
//
// A flag named "group-name" is looked up as item "name" in section
// "[group]" first, then as item "group-name" in section "[iconf]". Items may
// spell hyphens as underscores. For example:
//
//	[log]
//	level = debug
//	pretty = false
//
//	[iconf]
//	sections = true
//	source = base.ini,local.ini
//
// sets --log-level=debug, --no-log-pretty, --sections, and two sources.
// Command-line flags override config file values.
//
// A file that cannot be parsed is reported and otherwise ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		cfg, err := conf.New(ctx,
			conf.WithSilentErrors(false),
			conf.WithLogger(log.Default()),
		)
		if err != nil {
			return resolver{}, nil
		}

		err = cfg.LoadReader(ctx, baseConfigINI, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("file", baseConfigINI),
				slog.Any("error", err),
			)

			return resolver{}, nil
		}

		return resolver{ctx: ctx, cfg: cfg}, nil
	}
}

// resolver implements [kong.Resolver] over a loaded configuration.
type resolver struct {
	ctx context.Context //nolint:containedctx
	cfg *conf.Config
}

// Validate implements [kong.Resolver].
func (resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if r.cfg == nil {
		return nil, nil
	}

	for _, id := range flagIdentifiers(flag.Name) {
		if value, err := r.cfg.Item(r.ctx, id); err == nil {
			return value, nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flagIdentifiers lists the items that may hold the value of the named flag,
// in order of preference.
func flagIdentifiers(name string) []conf.Identifier {
	var ids []conf.Identifier

	add := func(section, item string) {
		ids = append(ids, conf.Identifier{Section: section, Item: item})

		if alt := strings.ReplaceAll(item, "-", "_"); alt != item {
			ids = append(ids, conf.Identifier{Section: section, Item: alt})
		}
	}

	if group, item, ok := strings.Cut(name, "-"); ok {
		add(group, item)
	}

	add(cmd.SectionGlobal, name)

	return ids
}
