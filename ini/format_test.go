package ini

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestDocument_Format(t *testing.T) {
	input := "# c\n[b]\nz = 1 # one\ny=2\n\n[a]\nx = 3\n"

	doc, err := ParseString(context.Background(), "f.ini", input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := doc.Format(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "[b]\nz = 1\ny = 2\n\n[a]\nx = 3\n"
	if buf.String() != want {
		t.Errorf("format mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDocument_Format_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sections bool
	}{
		{"sectioned", "[ A ]\nk = v\n[B]\nx = 1\ny = 2\n", true},
		{"flat", "k = v\nx = 1\n", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			first, err := ParseString(ctx, "rt.ini", tt.input, WithSections(tt.sections))
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := first.Format(ctx, &buf); err != nil {
				t.Fatalf("format error: %v", err)
			}

			second, err := ParseString(ctx, "rt.ini", buf.String(), WithSections(tt.sections))
			if err != nil {
				t.Fatalf("reparse error: %v\n%s", err, buf.String())
			}

			if !mapsEqualDeep(first.Map(), second.Map()) {
				t.Errorf("round trip mismatch: %v vs %v", first.Map(), second.Map())
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	tree := map[string]any{"s": map[string]any{"k": "v"}}

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := FormatJSON(context.Background(), &buf, tree, indent); err != nil {
			t.Fatalf("format error: %v", err)
		}

		if indent == 0 && strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected compact output, got %q", buf.String())
		}

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if !mapsEqualDeep(got, tree) {
			t.Errorf("got %v, want %v", got, tree)
		}
	}
}

func TestFormatYAML(t *testing.T) {
	tree := map[string]any{"s": map[string]any{"k": "v"}, "t": map[string]any{}}

	for _, indent := range []int{0, 4} {
		var buf bytes.Buffer
		if err := FormatYAML(context.Background(), &buf, tree, indent); err != nil {
			t.Fatalf("format error: %v", err)
		}

		if indent == 0 && !strings.HasPrefix(buf.String(), "{") {
			t.Errorf("expected flow output, got %q", buf.String())
		}

		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}

		if !mapsEqualDeep(got, tree) {
			t.Errorf("got %v, want %v", got, tree)
		}
	}
}

// mapsEqualDeep compares trees of nested map[string]any with string leaves.
func mapsEqualDeep(a, b map[string]any) bool {
	return maps.EqualFunc(a, b, func(x, y any) bool {
		mx, okx := x.(map[string]any)
		my, oky := y.(map[string]any)

		if okx || oky {
			return okx && oky && mapsEqualDeep(mx, my)
		}

		return x == y
	})
}

func TestFormatTree(t *testing.T) {
	tests := []struct {
		name string
		tree map[string]any
		want string
	}{
		{
			name: "flat",
			tree: map[string]any{"b": "2", "a": "1"},
			want: "a = 1\nb = 2\n",
		},
		{
			name: "sections",
			tree: map[string]any{
				"y": map[string]any{"k": "v"},
				"x": map[string]any{"b": "2", "a": "1"},
			},
			want: "[x]\na = 1\nb = 2\n\n[y]\nk = v\n",
		},
		{
			name: "sources",
			tree: map[string]any{
				"f.ini": map[string]any{
					"s": map[string]any{"k": "v"},
					"t": map[string]any{"k": "w"},
				},
			},
			want: "# f.ini\n[s]\nk = v\n\n[t]\nk = w\n",
		},
		{
			name: "leaves then sections",
			tree: map[string]any{"top": "1", "s": map[string]any{"k": "v"}},
			want: "top = 1\n\n[s]\nk = v\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatTree(context.Background(), &buf, tt.tree); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}
