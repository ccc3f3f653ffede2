package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/ini"
	"github.com/ardnew/iconf/log"
	"github.com/ardnew/iconf/profile"
)

// Sections of the generated configuration file. Flags with a known group
// prefix are written under that group's section, all others under
// [SectionGlobal].
const (
	SectionLog    = "log"
	SectionGlobal = "iconf"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath := kongVar(ctx, ConfigIdentifier)
	if confPath == "" {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	err = ini.FormatTree(ctx, &buf, i.buildTree(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, buf.Bytes(), 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildTree collects the current flag values into sections.
func (i *Init) buildTree(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	tree := make(map[string]any)

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		value, ok := flagValue(ktx, flag)
		if !ok {
			continue
		}

		section, item := SectionGlobal, flag.Name
		if rest, found := strings.CutPrefix(flag.Name, SectionLog+"-"); found {
			section, item = SectionLog, rest
		}

		items, _ := tree[section].(map[string]any)
		if items == nil {
			items = make(map[string]any)
			tree[section] = items
		}

		items[item] = value
	}

	return tree
}

// flagValue renders the current value of flag as a single INI value.
// Unset values, and values that are not a single INI token, are reported as
// absent.
func flagValue(ktx *kong.Context, flag *kong.Flag) (string, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return "", false
	}

	var s string

	switch v := val.(type) {
	case bool:
		s = strconv.FormatBool(v)

	case []string:
		s = strings.Join(v, ",")

	case fmt.Stringer:
		s = v.String()

	default:
		s = fmt.Sprint(v)
	}

	if s == "" || strings.ContainsFunc(s, unicode.IsSpace) || strings.ContainsAny(s, "=#") {
		return "", false
	}

	return s, true
}
