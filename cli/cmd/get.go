package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/iconf/cli/cmd/browse"
	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
)

// maxSuggestions bounds the near matches listed for a missing key.
const maxSuggestions = 5

// Get prints the value of a single item.
type Get struct {
	Item    string `arg:"" help:"Item name."                                  name:"item"`
	Section string `       help:"Section containing the item."                short:"S"`
	File    string `       help:"Source containing the item (with --files)."  short:"F"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	id := conf.Identifier{Source: g.File, Section: g.Section, Item: g.Item}

	value, err := cfg.Item(ctx, id)
	if err != nil {
		var nf *conf.NotFoundError
		if errors.As(err, &nf) {
			suggest(ctx, cfg, id)
		}

		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), value)

	return err
}

// suggest writes the keys that fuzzily match the item name of id to the
// diagnostic writer.
func suggest(ctx context.Context, src browse.Source, id conf.Identifier) {
	keys := src.Keys()

	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = browse.Label(k)
	}

	matches := fuzzy.Find(id.Item, labels)
	if len(matches) == 0 {
		return
	}

	log.DebugContext(ctx, "suggesting keys",
		slog.Any("identifier", id),
		slog.Int("matches", len(matches)),
	)

	w := diagFrom(ctx)

	fmt.Fprintln(w, "did you mean:")

	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		fmt.Fprintf(w, "  %s\n", m.Str)
	}
}
