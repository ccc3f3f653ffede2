package conf

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/ardnew/iconf/log"
)

// Opener opens a named source for reading.
type Opener func(name string) (io.ReadCloser, error)

// Config holds the item tree built from loaded sources and resolves lookups
// against it. It is safe for concurrent use.
type Config struct {
	mu   sync.RWMutex
	tree map[string]any

	defaults       Tree
	sectionMatters bool
	fileMatters    bool
	explicitLoad   bool
	silentErrors   bool
	sources        []string
	searchPath     []string
	opener         Opener

	logger log.Logger
}

// Option configures a [Config].
type Option func(*Config)

// WithDefaults returns an option that sets the fallback tree consulted when
// a lookup misses. It must have the same shape as the item tree.
func WithDefaults(defaults Tree) Option {
	return func(c *Config) { c.defaults = defaults }
}

// WithSectionMatters returns an option that controls whether items are
// grouped by section. Enabled by default.
func WithSectionMatters(enable bool) Option {
	return func(c *Config) { c.sectionMatters = enable }
}

// WithFileMatters returns an option that controls whether items are grouped
// by the source they were loaded from. Disabled by default.
func WithFileMatters(enable bool) Option {
	return func(c *Config) { c.fileMatters = enable }
}

// WithExplicitLoad returns an option that controls whether lookups may load
// an unseen source on demand. When enabled (the default), sources must be
// loaded explicitly. Lazy loading only applies when files matter.
func WithExplicitLoad(enable bool) Option {
	return func(c *Config) { c.explicitLoad = enable }
}

// WithSilentErrors returns an option that controls whether load failures are
// logged and swallowed. Enabled by default.
func WithSilentErrors(enable bool) Option {
	return func(c *Config) { c.silentErrors = enable }
}

// WithSources returns an option that loads each named source during [New].
func WithSources(sources ...string) Option {
	sources = slices.Clone(sources)

	return func(c *Config) { c.sources = append(c.sources, sources...) }
}

// WithSearchPath returns an option that sets the directories searched, in
// order, for relative source names.
func WithSearchPath(dirs ...string) Option {
	dirs = slices.Clone(dirs)

	return func(c *Config) { c.searchPath = dirs }
}

// WithOpener returns an option that replaces [os.Open] for reading sources.
func WithOpener(opener Opener) Option {
	return func(c *Config) {
		if opener != nil {
			c.opener = opener
		}
	}
}

// WithLogger returns an option that sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

func openFile(name string) (io.ReadCloser, error) { return os.Open(name) }

// New returns a Config with the given options applied, then loads every
// source given with [WithSources].
//
// Load failures are subject to the silent-errors policy. New returns an
// error only when silencing is disabled and a load fails.
func New(ctx context.Context, opts ...Option) (*Config, error) {
	c := &Config{
		tree:           make(map[string]any),
		sectionMatters: true,
		fileMatters:    false,
		explicitLoad:   true,
		silentErrors:   true,
		opener:         openFile,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.DebugContext(ctx, "config created",
		slog.Bool("section_matters", c.sectionMatters),
		slog.Bool("file_matters", c.fileMatters),
		slog.Bool("explicit_load", c.explicitLoad),
		slog.Bool("silent_errors", c.silentErrors),
		slog.Bool("defaults", c.defaults != nil),
		slog.Any("search_path", c.searchPath),
	)

	for _, source := range c.sources {
		if err := c.Load(ctx, source); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Depth returns the nesting depth of the item tree: 1 plus one for each of
// the file and section dimensions that is enabled.
func (c *Config) Depth() int {
	depth := 1

	if c.fileMatters {
		depth++
	}

	if c.sectionMatters {
		depth++
	}

	return depth
}

// SectionMatters reports whether items are grouped by section.
func (c *Config) SectionMatters() bool { return c.sectionMatters }

// FileMatters reports whether items are grouped by source.
func (c *Config) FileMatters() bool { return c.fileMatters }

// Sources returns the sorted names of the loaded sources. It returns nil
// when files do not matter.
func (c *Config) Sources() []string {
	if !c.fileMatters {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.tree))
}

// Defaults returns a deep copy of the fallback tree.
func (c *Config) Defaults() Tree { return c.defaults.Clone() }
