package ini

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseString_Sectioned(t *testing.T) {
	input := `# settings
[Section A]
a = 1
b = 2 # trailing

[db]
host = localhost
`

	doc, err := ParseString(context.Background(), "app.ini", input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !doc.Sectioned || doc.Items != nil {
		t.Fatalf("expected sectioned document, got %+v", doc)
	}

	want := map[string]Items{
		"Section A": {"a": "1", "b": "2"},
		"db":        {"host": "localhost"},
	}

	if !maps.EqualFunc(doc.Sections, want, func(a, b Items) bool { return maps.Equal(a, b) }) {
		t.Errorf("sections = %v, want %v", doc.Sections, want)
	}

	if got := doc.SectionNames(); !slices.Equal(got, []string{"Section A", "db"}) {
		t.Errorf("section order = %v", got)
	}

	if got := doc.ItemNames("Section A"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("item order = %v", got)
	}

	if doc.Len() != 3 {
		t.Errorf("expected 3 items, got %d", doc.Len())
	}
}

func TestParseString_Flat(t *testing.T) {
	input := "[ignored]\nname = alice\n[other]\nname = bob\nage = 7\n"

	doc, err := ParseString(context.Background(), "flat.ini", input, WithSections(false))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.Sectioned || doc.Sections != nil {
		t.Fatalf("expected flat document, got %+v", doc)
	}

	want := Items{"name": "bob", "age": "7"}
	if !maps.Equal(doc.Items, want) {
		t.Errorf("items = %v, want %v", doc.Items, want)
	}

	if got := doc.ItemNames("whatever"); !slices.Equal(got, []string{"name", "age"}) {
		t.Errorf("item order = %v", got)
	}
}

func TestParseString_RepeatedSectionReplaces(t *testing.T) {
	input := "[s]\na = 1\nb = 2\n[t]\nc = 3\n[s]\nb = 9\n"

	doc, err := ParseString(context.Background(), "dup.ini", input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !maps.Equal(doc.Sections["s"], Items{"b": "9"}) {
		t.Errorf("expected repeated header to replace items, got %v", doc.Sections["s"])
	}

	if got := doc.SectionNames(); !slices.Equal(got, []string{"s", "t"}) {
		t.Errorf("section order = %v", got)
	}
}

func TestParseString_DuplicateItemLastWins(t *testing.T) {
	doc, err := ParseString(context.Background(), "dup.ini", "[s]\na = 1\na = 2\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := doc.Sections["s"]["a"]; got != "2" {
		t.Errorf("expected last value to win, got %q", got)
	}

	if got := doc.ItemNames("s"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("item order = %v", got)
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sections bool
		line     string
		number   int
	}{
		{"item before section", "# top\na = 1\n[s]\n", true, "a = 1", 2},
		{"garbage line", "[s]\na = 1\nnot an item\n", true, "not an item", 3},
		{"spaced value", "[s]\nname = John Doe", true, "name = John Doe", 2},
		{"crlf line", "[s]\r\nbad line\r\n", true, "bad line", 2},
		{"flat garbage", "a = 1\n==\n", false, "==", 2},
		{"nbsp value", "[s]\nname = a\u00a0b\n", true, "name = a\u00a0b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), "bad.ini", tt.input,
				WithSections(tt.sections))
			if err == nil {
				t.Fatal("expected parse error")
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}

			var perr *ParsingError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParsingError, got %T", err)
			}

			if perr.Source != "bad.ini" {
				t.Errorf("source = %q", perr.Source)
			}

			if perr.Line != tt.line {
				t.Errorf("line = %q, want %q", perr.Line, tt.line)
			}

			if perr.LineNumber != tt.number {
				t.Errorf("line number = %d, want %d", perr.LineNumber, tt.number)
			}
		})
	}
}

func TestParseString_FlatAllowsLeadingItem(t *testing.T) {
	doc, err := ParseString(context.Background(), "flat.ini", "a = 1\n", WithSections(false))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.Items["a"] != "1" {
		t.Errorf("expected a=1, got %v", doc.Items)
	}
}

func TestParseString_NoTrailingNewline(t *testing.T) {
	doc, err := ParseString(context.Background(), "x.ini", "[s]\nlast = yes")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.Sections["s"]["last"] != "yes" {
		t.Errorf("expected last=yes, got %v", doc.Sections)
	}
}

func TestParseString_Empty(t *testing.T) {
	doc, err := ParseString(context.Background(), "empty.ini", "")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(doc.Map()) != 0 {
		t.Errorf("expected empty map, got %v", doc.Map())
	}
}

func TestParse_ReadError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Parse(context.Background(), "broken", iotest.ErrReader(boom))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}

	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestParse_Reader(t *testing.T) {
	doc, err := Parse(context.Background(), "r.ini",
		io.MultiReader(strings.NewReader("[s]\n"), strings.NewReader("k = v\n")))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.Source != "r.ini" || doc.Sections["s"]["k"] != "v" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestDocument_Map(t *testing.T) {
	doc, err := ParseString(context.Background(), "m.ini", "[s]\nk = v\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	m := doc.Map()

	sec, ok := m["s"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", m["s"])
	}

	if sec["k"] != "v" {
		t.Errorf("expected k=v, got %v", sec)
	}

	sec["k"] = "changed"

	if doc.Sections["s"]["k"] != "v" {
		t.Error("Map must not alias the document")
	}
}

func TestParsingError_Message(t *testing.T) {
	err := &ParsingError{Source: "a.ini", Line: "oops", LineNumber: 4}

	msg := err.Error()
	for _, want := range []string{"line 4", `"a.ini"`, `"oops"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}
