package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/cli/cmd"
	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
	"github.com/ardnew/iconf/pkg"
)

// CLI is the top-level command-line interface for iconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Conf  confConfig  `embed:"" group:"conf"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Get    cmd.Get    `cmd:"" help:"Print the value of an item"`
	Items  cmd.Items  `cmd:"" help:"Print a subtree of items"`
	Fmt    cmd.Fmt    `cmd:"" help:"Reformat an INI source"`
	Query  cmd.Query  `cmd:"" help:"Evaluate an expression against the items"`
	Browse cmd.Browse `cmd:"" help:"Browse items interactively"`
	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
}

// Run executes the iconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfigINI)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Conf.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Conf.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfigJSON)),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	cfg, err := cli.Conf.start(ctx)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithConfig(ctx, cfg)

	log.DebugContext(ctx, "running command",
		slog.String("command", ktx.Command()),
		slog.Int("depth", cfg.Depth()),
	)

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

// confConfig holds the flags that shape how sources are loaded and resolved.
type confConfig struct {
	Source   []string `help:"Input source file(s) or '-' for stdin."                  name:"source" short:"s" sep:","`
	Sections bool     `help:"Group items by section."                                 default:"true"        negatable:""`
	Files    bool     `help:"Group items by source; lookups must name a file."        default:"false"       negatable:""`
	Lazy     bool     `help:"Load sources on first lookup instead of up front."       default:"false"`
	Strict   bool     `help:"Report source load errors instead of ignoring them."     default:"false"`
	Defaults string   `help:"YAML or JSON file of fallback values."                   placeholder:"FILE"    type:"existingfile"`
	Path     []string `help:"Directories searched for relative source names."         placeholder:"DIR"     type:"path"`
}

func (*confConfig) vars() kong.Vars { return kong.Vars{} }

func (*confConfig) group() kong.Group {
	return kong.Group{Key: "conf", Title: "Configuration sources"}
}

// start builds the configuration described by the flags and loads every
// source. Stdin is read once, after every named file.
func (f *confConfig) start(ctx context.Context) (*conf.Config, error) {
	opts := []conf.Option{
		conf.WithSectionMatters(f.Sections),
		conf.WithFileMatters(f.Files),
		conf.WithExplicitLoad(!f.Lazy),
		conf.WithSilentErrors(!f.Strict),
		conf.WithSearchPath(searchPath(f.Path...)...),
		conf.WithLogger(log.Default()),
	}

	if f.Defaults != "" {
		defaults, err := f.decodeDefaults(ctx)
		if err != nil {
			return nil, err
		}

		opts = append(opts, conf.WithDefaults(defaults))
	}

	cfg, err := conf.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	for _, source := range cmd.UniqueSources(f.Source) {
		if source == cmd.StdinSource {
			err = cfg.LoadReader(ctx, source, os.Stdin)
		} else {
			err = cfg.Load(ctx, source)
		}

		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (f *confConfig) decodeDefaults(ctx context.Context) (conf.Tree, error) {
	file, err := os.Open(f.Defaults)
	if err != nil {
		return nil, conf.ErrDecodeDefaults.Wrap(err)
	}
	defer file.Close()

	return conf.DecodeDefaults(ctx, file)
}
