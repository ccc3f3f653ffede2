package browse

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
)

const (
	defaultWidth  = 80
	defaultHeight = 10
)

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc  func() context.Context
	input    textinput.Model
	src      Source
	logger   log.Logger
	keys     []conf.Identifier
	labels   []string      // Label of each key, same order as keys
	matches  fuzzy.Matches // current fuzzy match results
	cursor   int           // index into matches
	selected int           // index into keys once chosen, else -1
	width    int
	height   int // rows available for candidates
	quitting bool
}

func newModel(
	ctx context.Context,
	src Source,
	keys []conf.Identifier,
	recent []string,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "type to filter keys"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	keys, labels := orderKeys(keys, recent)

	m := model{
		ctxFunc:  func() context.Context { return ctx },
		input:    ti,
		src:      src,
		logger:   logger,
		keys:     keys,
		labels:   labels,
		selected: -1,
		width:    defaultWidth,
		height:   defaultHeight,
	}

	refreshMatches(&m)

	return m
}

// orderKeys moves recently chosen keys to the front, newest first.
func orderKeys(keys []conf.Identifier, recent []string) ([]conf.Identifier, []string) {
	rank := make(map[string]int, len(recent))
	for i, r := range recent {
		if _, ok := rank[r]; !ok {
			rank[r] = i
		}
	}

	ordered := slices.Clone(keys)

	slices.SortStableFunc(ordered, func(a, b conf.Identifier) int {
		ra, oka := rank[Label(a)]
		rb, okb := rank[Label(b)]

		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	})

	labels := make([]string, len(ordered))
	for i, id := range ordered {
		labels[i] = Label(id)
	}

	return ordered, labels
}

// refreshMatches recomputes matches for the current input. An empty pattern
// matches every key in order.
func refreshMatches(m *model) {
	pattern := strings.TrimSpace(m.input.Value())

	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.labels))
		for i, s := range m.labels {
			m.matches[i] = fuzzy.Match{Str: s, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(pattern, m.labels)
	}

	m.cursor = min(m.cursor, max(len(m.matches)-1, 0))
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2
		m.height = max(msg.Height-4, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"browse keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) == 0 {
			return m, nil
		}

		m.selected = m.matches[m.cursor].Index
		m.quitting = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyShiftTab, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case tea.KeyDown, tea.KeyTab, tea.KeyCtrlN:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Keep the cursor inside the visible window.
	start := max(m.cursor-m.height+1, 0)
	end := min(start+m.height, len(m.matches))

	for i := start; i < end; i++ {
		b.WriteString(renderCandidate(m.matches[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.preview())
	b.WriteString("\n")

	return b.String()
}

// preview renders the value of the highlighted key and the match count.
func (m model) preview() string {
	count := hintStyle.Render(fmt.Sprintf("%s/%d",
		lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(len(m.matches))),
		len(m.keys)))

	if len(m.matches) == 0 {
		return count + " " + hintStyle.Render("no matching keys")
	}

	id := m.keys[m.matches[m.cursor].Index]

	r := m.src.Lookup(m.ctxFunc(), id)
	if r.Err != nil {
		return count + " " + errorStyle.Render(r.Err.Error())
	}

	line := Label(id) + " = " + r.Value

	return count + " " + valueStyle.Render(ellipsize(line, m.width-lipgloss.Width(count)-1))
}
