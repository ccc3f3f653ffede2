package ini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the document as canonical INI: one "key = value" per line,
// sections in input order separated by a blank line.
func (d *Document) Format(ctx context.Context, w io.Writer) error {
	if !d.Sectioned {
		return d.formatItems(w, "")
	}

	for i, name := range d.sectionOrder {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return ErrFormat.Wrap(err)
			}
		}

		if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
			return ErrFormat.Wrap(err)
		}

		if err := d.formatItems(w, name); err != nil {
			return err
		}
	}

	d.logger.TraceContext(ctx, "format ini",
		slog.String("source", d.Source),
		slog.Int("sections", len(d.sectionOrder)),
	)

	return nil
}

func (d *Document) formatItems(w io.Writer, section string) error {
	items := d.Items
	if d.Sectioned {
		items = d.Sections[section]
	} else {
		section = ""
	}

	for _, name := range d.itemOrder[section] {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, items[name]); err != nil {
			return ErrFormat.Wrap(err)
		}
	}

	return nil
}

// FormatJSON writes tree as JSON with keys sorted. An indent of 0 writes
// compact output.
func FormatJSON(_ context.Context, w io.Writer, tree map[string]any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(tree, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(tree)
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "json"))
	}

	if _, err = fmt.Fprintln(w, string(jsonData)); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "json"))
	}

	return nil
}

// FormatYAML writes tree as YAML. An indent of 0 writes flow style.
func FormatYAML(ctx context.Context, w io.Writer, tree map[string]any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, tree, opts...)
	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "yaml"))
	}

	if _, err = fmt.Fprint(w, string(yamlData)); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "yaml"))
	}

	return nil
}

// FormatTree writes a nested tree as INI. Top-level leaves are written
// first as items. A map of leaves becomes a section. A map of maps (a
// source holding sections) is introduced by a "# name" comment followed by
// its sections. Keys are sorted at every level.
func FormatTree(_ context.Context, w io.Writer, tree map[string]any) error {
	var (
		leaves = make(map[string]string)
		nodes  = make(map[string]map[string]any)
	)

	for k, v := range tree {
		if m, ok := v.(map[string]any); ok {
			nodes[k] = m
		} else {
			leaves[k] = fmt.Sprint(v)
		}
	}

	if err := writeItems(w, leaves); err != nil {
		return err
	}

	first := len(leaves) == 0

	for _, name := range slices.Sorted(maps.Keys(nodes)) {
		node := nodes[name]

		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return ErrFormat.Wrap(err)
			}
		}

		first = false

		if !hasNodes(node) {
			if err := writeSection(w, name, node); err != nil {
				return err
			}

			continue
		}

		if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
			return ErrFormat.Wrap(err)
		}

		for i, section := range slices.Sorted(maps.Keys(node)) {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return ErrFormat.Wrap(err)
				}
			}

			sub, _ := node[section].(map[string]any)
			if err := writeSection(w, section, sub); err != nil {
				return err
			}
		}
	}

	return nil
}

func hasNodes(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.(map[string]any); ok {
			return true
		}
	}

	return false
}

func writeSection(w io.Writer, name string, node map[string]any) error {
	if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
		return ErrFormat.Wrap(err)
	}

	items := make(map[string]string, len(node))
	for k, v := range node {
		if _, ok := v.(map[string]any); !ok {
			items[k] = fmt.Sprint(v)
		}
	}

	return writeItems(w, items)
}

func writeItems(w io.Writer, items map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(items)) {
		if _, err := fmt.Fprintf(w, "%s = %s\n", k, items[k]); err != nil {
			return ErrFormat.Wrap(err)
		}
	}

	return nil
}
