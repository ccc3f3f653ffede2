package cli

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/conf"
)

type resolverCLI struct {
	Log struct {
		Level      string `default:"info"`
		TimeLayout string `default:"RFC3339"`
		Pretty     bool   `default:"true"    negatable:""`
	} `embed:"" prefix:"log-"`

	Source   []string
	Sections bool `default:"true" negatable:""`
	Lazy     bool
}

func parseWith(t *testing.T, config string, args ...string) resolverCLI {
	t.Helper()

	var cli resolverCLI

	res, err := resolve(context.Background())(strings.NewReader(config))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(res))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cli
}

func TestResolve_GroupSection(t *testing.T) {
	cli := parseWith(t, "[log]\nlevel = debug\ntime_layout = kitchen\npretty = false\n")

	if cli.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cli.Log.Level)
	}

	if cli.Log.TimeLayout != "kitchen" {
		t.Errorf("time layout = %q, want kitchen", cli.Log.TimeLayout)
	}

	if cli.Log.Pretty {
		t.Error("pretty should be disabled by config")
	}
}

func TestResolve_GlobalSection(t *testing.T) {
	cli := parseWith(t, "[iconf]\nsource = a.ini,b.ini\nsections = false\nlazy = true\n")

	if !slices.Equal(cli.Source, []string{"a.ini", "b.ini"}) {
		t.Errorf("source = %v", cli.Source)
	}

	if cli.Sections || !cli.Lazy {
		t.Errorf("sections = %v, lazy = %v", cli.Sections, cli.Lazy)
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	cli := parseWith(t, "[log]\nlevel = debug\n", "--log-level=warn")

	if cli.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn", cli.Log.Level)
	}
}

func TestResolve_InvalidFileIgnored(t *testing.T) {
	cli := parseWith(t, "level = debug\n[log\n")

	if cli.Log.Level != "info" {
		t.Errorf("log level = %q, want default", cli.Log.Level)
	}
}

func TestFlagIdentifiers(t *testing.T) {
	got := flagIdentifiers("log-time-layout")

	want := []conf.Identifier{
		{Section: "log", Item: "time-layout"},
		{Section: "log", Item: "time_layout"},
		{Section: "iconf", Item: "log-time-layout"},
		{Section: "iconf", Item: "log_time_layout"},
	}

	if !slices.Equal(got, want) {
		t.Errorf("flagIdentifiers() = %v, want %v", got, want)
	}

	if got := flagIdentifiers("lazy"); len(got) != 1 || got[0] != (conf.Identifier{Section: "iconf", Item: "lazy"}) {
		t.Errorf("flagIdentifiers(lazy) = %v", got)
	}
}
