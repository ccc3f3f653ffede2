package conf

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/iconf/ini"
)

// LoadOption configures a single call to [Config.Load] or
// [Config.LoadReader].
type LoadOption func(*loadOptions)

type loadOptions struct {
	silent bool
}

// Silently returns a load option that overrides the silent-errors policy
// for one call.
func Silently(silent bool) LoadOption {
	return func(o *loadOptions) { o.silent = silent }
}

func (c *Config) loadOptions(opts ...LoadOption) loadOptions {
	o := loadOptions{silent: c.silentErrors}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Load reads and parses the named source and commits it to the tree.
//
// Relative names are tried in each search-path directory in order, then as
// given. The result is always stored under the name given. When files
// matter, loading a name again replaces that source's subtree. Otherwise
// the parsed sections (or items) are merged into the root, replacing
// existing keys.
//
// Open, read and parse failures are logged and, when silenced, swallowed.
// An empty name is never silenced. A failed load leaves the tree unchanged.
func (c *Config) Load(ctx context.Context, source string, opts ...LoadOption) error {
	o := c.loadOptions(opts...)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load(ctx, source, o.silent)
}

// LoadReader is like [Config.Load] but parses r instead of opening source.
func (c *Config) LoadReader(
	ctx context.Context,
	source string,
	r io.Reader,
	opts ...LoadOption,
) error {
	if source == "" {
		return errEmptySource
	}

	o := c.loadOptions(opts...)

	doc, err := ini.Parse(ctx, source, r,
		ini.WithSections(c.sectionMatters),
		ini.WithLogger(c.logger),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return c.failed(ctx, source, err, o.silent)
	}

	c.commit(ctx, source, doc)

	return nil
}

var errEmptySource = ErrInvalidIdentifier.Wrap(errors.New("empty source name"))

// load opens, parses and commits source. The caller holds the write lock.
func (c *Config) load(ctx context.Context, source string, silent bool) error {
	if source == "" {
		return errEmptySource
	}

	doc, err := c.read(ctx, source)
	if err != nil {
		return c.failed(ctx, source, err, silent)
	}

	c.commit(ctx, source, doc)

	return nil
}

func (c *Config) failed(ctx context.Context, source string, err error, silent bool) error {
	c.logger.WarnContext(ctx, "load failed",
		slog.String("source", source),
		slog.Bool("silent", silent),
		slog.Any("error", err),
	)

	if silent {
		return nil
	}

	return err
}

func (c *Config) read(ctx context.Context, source string) (*ini.Document, error) {
	rc, path, err := c.open(source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	c.logger.DebugContext(ctx, "reading source",
		slog.String("source", source),
		slog.String("path", path),
	)

	return ini.Parse(ctx, source, rc,
		ini.WithSections(c.sectionMatters),
		ini.WithLogger(c.logger),
	)
}

// open resolves source against the search path and opens it.
func (c *Config) open(source string) (io.ReadCloser, string, error) {
	candidates := make([]string, 0, len(c.searchPath)+1)

	if !filepath.IsAbs(source) {
		for _, dir := range c.searchPath {
			candidates = append(candidates, filepath.Join(dir, source))
		}
	}

	candidates = append(candidates, source)

	var last error

	for _, path := range candidates {
		rc, err := c.opener(path)
		if err == nil {
			return rc, path, nil
		}

		last = err

		if !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}

	return nil, "", ErrOpenSource.Wrap(last).With(slog.String("source", source))
}

// commit stores doc under source. The caller holds the write lock.
func (c *Config) commit(ctx context.Context, source string, doc *ini.Document) {
	m := doc.Map()

	if c.fileMatters {
		_, replaced := c.tree[source]
		c.tree[source] = m

		c.logger.DebugContext(ctx, "source committed",
			slog.String("source", source),
			slog.Bool("replaced", replaced),
			slog.Int("items", doc.Len()),
		)

		return
	}

	merge(c.tree, m)

	c.logger.DebugContext(ctx, "source merged",
		slog.String("source", source),
		slog.Int("keys", len(m)),
		slog.Int("items", doc.Len()),
	)
}
