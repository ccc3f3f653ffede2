package browse

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
)

func newSource(t *testing.T) *conf.Config {
	t.Helper()

	ctx := context.Background()

	c, err := conf.New(ctx, conf.WithFileMatters(true))
	if err != nil {
		t.Fatal(err)
	}

	if err := c.LoadReader(ctx, "app.ini", strings.NewReader(
		"[server]\nhost = example.com\nport = 8080\n[db]\nuser = admin\n")); err != nil {
		t.Fatal(err)
	}

	return c
}

func typeRunes(m model, s string) model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}

	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})

	return next.(model), cmd
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   conf.Identifier
		want string
	}{
		{conf.Identifier{Item: "k"}, "k"},
		{conf.Identifier{Section: "s", Item: "k"}, "[s] k"},
		{conf.Identifier{Source: "f", Section: "s", Item: "k"}, `"f" [s] k`},
		{conf.Identifier{Source: "f", Item: "k"}, `"f" k`},
		{conf.Identifier{Source: "a/b.ini", Section: "s", Item: "k"}, `"a/b.ini" [s] k`},
		{conf.Identifier{Source: `x "y".ini`, Item: "k"}, `"x \"y\".ini" k`},
	}

	for _, tt := range tests {
		if got := Label(tt.id); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLabel_Distinct(t *testing.T) {
	tests := []struct {
		name string
		a, b conf.Identifier
	}{
		{
			name: "path source versus slashed section",
			a:    conf.Identifier{Source: "a/b.ini", Section: "s", Item: "k"},
			b:    conf.Identifier{Source: "a", Section: "b.ini/s", Item: "k"},
		},
		{
			name: "source versus section",
			a:    conf.Identifier{Source: "s", Item: "k"},
			b:    conf.Identifier{Section: "s", Item: "k"},
		},
		{
			name: "spaced source versus section",
			a:    conf.Identifier{Source: "f [s]", Item: "k"},
			b:    conf.Identifier{Source: "f", Section: "s", Item: "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if la, lb := Label(tt.a), Label(tt.b); la == lb {
				t.Errorf("Label(%+v) == Label(%+v) == %q", tt.a, tt.b, la)
			}
		})
	}
}

func TestModel_EmptyPatternListsAll(t *testing.T) {
	src := newSource(t)
	m := newModel(context.Background(), src, src.Keys(), nil, log.Logger{})

	if len(m.matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(m.matches))
	}

	if m.selected != -1 {
		t.Errorf("expected no selection, got %d", m.selected)
	}
}

func TestModel_FilterAndSelect(t *testing.T) {
	src := newSource(t)
	m := newModel(context.Background(), src, src.Keys(), nil, log.Logger{})

	m = typeRunes(m, "port")

	if len(m.matches) == 0 || m.matches[0].Str != `"app.ini" [server] port` {
		t.Fatalf("expected port first, got %v", m.matches)
	}

	if view := m.View(); !strings.Contains(view, "8080") {
		t.Errorf("expected preview of value, got %q", view)
	}

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	if got := m.keys[m.selected]; got.Item != "port" || got.Section != "server" {
		t.Errorf("unexpected selection %+v", got)
	}
}

func TestModel_CursorMovement(t *testing.T) {
	src := newSource(t)
	m := newModel(context.Background(), src, src.Keys(), nil, log.Logger{})

	m, _ = press(m, tea.KeyUp)
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.cursor)
	}

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)

	if m.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.cursor)
	}

	m = typeRunes(m, "zzzz")
	if len(m.matches) != 0 || m.cursor != 0 {
		t.Errorf("expected no matches and reset cursor, got %d/%d", len(m.matches), m.cursor)
	}

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil || m.selected != -1 {
		t.Error("enter with no matches must not select")
	}
}

func TestModel_EscQuitsWithoutSelection(t *testing.T) {
	src := newSource(t)
	m := newModel(context.Background(), src, src.Keys(), nil, log.Logger{})

	m, cmd := press(m, tea.KeyEsc)
	if cmd == nil || !m.quitting || m.selected != -1 {
		t.Errorf("expected quit without selection: quitting=%v selected=%d", m.quitting, m.selected)
	}

	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestOrderKeys_RecentFirst(t *testing.T) {
	keys := []conf.Identifier{
		{Section: "a", Item: "1"},
		{Section: "b", Item: "2"},
		{Section: "c", Item: "3"},
	}

	_, labels := orderKeys(keys, []string{"[c] 3", "[b] 2"})

	if want := []string{"[c] 3", "[b] 2", "[a] 1"}; !slices.Equal(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestHistory_AddSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("load of missing file: %v", err)
	}

	h.Add("a/1")
	h.Add("b/2")
	h.Add("a/1")

	if err := h.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	h2 := NewHistory(path)
	if err := h2.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := h2.Recent(); !slices.Equal(got, []string{"a/1", "b/2"}) {
		t.Errorf("Recent() = %v", got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory("")

	for i := range maxHistory + 10 {
		h.Add(strings.Repeat("x", i+1))
	}

	if h.Len() != maxHistory {
		t.Errorf("expected %d entries, got %d", maxHistory, h.Len())
	}
}

func TestRun_NoKeys(t *testing.T) {
	c, err := conf.New(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	err = Run(context.Background(), c, nil, nil, t.TempDir(), log.Logger{})
	if !errors.Is(err, ErrNoKeys) {
		t.Errorf("expected ErrNoKeys, got %v", err)
	}
}
