package conf

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
)

// Identifier names one item. Source and Section qualify it when the
// corresponding dimension is enabled and are ignored otherwise.
type Identifier struct {
	Source  string
	Section string
	Item    string
}

// LogValue implements slog.LogValuer.
func (id Identifier) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)

	if id.Source != "" {
		attrs = append(attrs, slog.String("source", id.Source))
	}

	if id.Section != "" {
		attrs = append(attrs, slog.String("section", id.Section))
	}

	return slog.GroupValue(append(attrs, slog.String("item", id.Item))...)
}

func compareIdentifier(a, b Identifier) int {
	return cmp.Or(
		cmp.Compare(a.Source, b.Source),
		cmp.Compare(a.Section, b.Section),
		cmp.Compare(a.Item, b.Item),
	)
}

// Result holds either a resolved value or the error explaining why none was
// found.
type Result struct {
	Value string
	Err   error
}

// Ok reports whether r holds a value.
func (r Result) Ok() bool { return r.Err == nil }

// OrElse returns r if it holds a value. Otherwise it returns the result of
// alt if that holds a value, or r with its original error.
func (r Result) OrElse(alt func() Result) Result {
	if r.Ok() {
		return r
	}

	if other := alt(); other.Ok() {
		return other
	}

	return r
}

// validate checks that every qualifier required by the enabled dimensions
// is present, in the order section, source, item.
func (c *Config) validate(id Identifier) error {
	switch {
	case c.sectionMatters && id.Section == "":
		return ErrInvalidIdentifier.Wrap(errors.New("section is required"))
	case c.fileMatters && id.Source == "":
		return ErrInvalidIdentifier.Wrap(errors.New("source is required"))
	case id.Item == "":
		return ErrInvalidIdentifier.Wrap(errors.New("item is required"))
	}

	return nil
}

// path returns the descent for id, skipping disabled dimensions.
func (c *Config) path(id Identifier) []step {
	path := make([]step, 0, 3)

	if c.fileMatters {
		path = append(path, step{ReasonFile, id.Source})
	}

	if c.sectionMatters {
		path = append(path, step{ReasonSection, id.Section})
	}

	return append(path, step{ReasonItem, id.Item})
}

// Item returns the value of the identified item.
//
// The item tree is searched source first, then section, then item. The first
// missing level determines the [*NotFoundError]. On a miss the same descent
// is repeated against the defaults, and a miss there keeps the original
// error. When lazy loading is enabled, an unseen source is loaded first.
//
// A missing required qualifier yields [ErrInvalidIdentifier] without
// consulting the defaults.
func (c *Config) Item(ctx context.Context, id Identifier) (string, error) {
	r := c.Lookup(ctx, id)

	return r.Value, r.Err
}

// Lookup is like [Config.Item] but returns a [Result].
func (c *Config) Lookup(ctx context.Context, id Identifier) Result {
	if err := c.validate(id); err != nil {
		return Result{Err: err}
	}

	path := c.path(id)

	if err := c.ensureSource(ctx, id.Source); err != nil {
		return Result{Err: err}
	}

	c.mu.RLock()
	value, err := descend(c.tree, path)
	c.mu.RUnlock()

	c.logger.TraceContext(ctx, "lookup",
		slog.Any("id", id),
		slog.Bool("found", err == nil),
	)

	return Result{Value: value, Err: err}.OrElse(func() Result {
		return c.fallback(ctx, id, path, err)
	})
}

func (c *Config) fallback(ctx context.Context, id Identifier, path []step, cause error) Result {
	if c.defaults == nil {
		return Result{Err: cause}
	}

	value, err := descend(c.defaults, path)

	c.logger.DebugContext(ctx, "default lookup",
		slog.Any("id", id),
		slog.Bool("found", err == nil),
		slog.Any("cause", cause),
	)

	return Result{Value: value, Err: err}
}

// ensureSource loads source on demand when lazy loading applies and the
// source has not been seen. Load failures follow the silent-errors policy.
func (c *Config) ensureSource(ctx context.Context, source string) error {
	if !c.fileMatters || c.explicitLoad {
		return nil
	}

	c.mu.RLock()
	_, ok := c.tree[source]
	c.mu.RUnlock()

	if ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have loaded it between the locks.
	if _, ok := c.tree[source]; ok {
		return nil
	}

	c.logger.DebugContext(ctx, "lazy load", slog.String("source", source))

	return c.load(ctx, source, c.silentErrors)
}

// Selector chooses a subtree for [Config.Items].
type Selector struct {
	Source  string
	Section string
}

// Items returns a deep copy of the selected subtree.
//
//   - No qualifiers: the whole tree.
//   - Source only: that source's subtree (files must matter). An unseen
//     source is loaded first when lazy loading is enabled.
//   - Section only: that section (sections must matter, files must not).
//   - Source and section: that source's section.
//
// A qualifier for a disabled dimension, or a section without a source when
// files matter, yields [ErrInvalidIdentifier]. Defaults are not consulted.
func (c *Config) Items(ctx context.Context, sel Selector) (Tree, error) {
	switch {
	case sel.Source != "" && !c.fileMatters:
		return nil, ErrInvalidIdentifier.Wrap(errors.New("source given but files do not matter"))
	case sel.Section != "" && !c.sectionMatters:
		return nil, ErrInvalidIdentifier.Wrap(errors.New("section given but sections do not matter"))
	case sel.Section != "" && sel.Source == "" && c.fileMatters:
		return nil, ErrInvalidIdentifier.Wrap(errors.New("section requires a source when files matter"))
	}

	if sel.Source != "" {
		if err := c.ensureSource(ctx, sel.Source); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	node := c.tree

	if sel.Source != "" {
		sub, ok := asNode(node[sel.Source])
		if !ok {
			return nil, notFound(ReasonFile, sel.Source)
		}

		node = sub
	}

	if sel.Section != "" {
		sub, ok := asNode(node[sel.Section])
		if !ok {
			return nil, notFound(ReasonSection, sel.Section)
		}

		node = sub
	}

	return Tree(cloneNode(node)), nil
}

// Keys returns the identifier of every item in the tree, sorted by source,
// section, then item.
func (c *Config) Keys() []Identifier {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []Identifier

	var walk func(node map[string]any, levels []Reason, id Identifier)

	walk = func(node map[string]any, levels []Reason, id Identifier) {
		for k, v := range node {
			next := id

			switch levels[0] {
			case ReasonFile:
				next.Source = k
			case ReasonSection:
				next.Section = k
			case ReasonItem:
				if _, ok := asLeaf(v); ok {
					next.Item = k
					keys = append(keys, next)
				}

				continue
			}

			if sub, ok := asNode(v); ok {
				walk(sub, levels[1:], next)
			}
		}
	}

	levels := make([]Reason, 0, 3)
	for _, s := range c.path(Identifier{}) {
		levels = append(levels, s.reason)
	}

	walk(c.tree, levels, Identifier{})

	slices.SortFunc(keys, compareIdentifier)

	return keys
}
