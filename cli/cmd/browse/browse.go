package browse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/iconf/conf"
	"github.com/ardnew/iconf/log"
)

// Source is the read side of a [conf.Config] used by the browser.
type Source interface {
	Keys() []conf.Identifier
	Lookup(ctx context.Context, id conf.Identifier) conf.Result
}

// Label renders id as a single line of the form `"source" [section] item`,
// omitting empty qualifiers. The source is quoted since file paths may
// contain any separator a section name can.
func Label(id conf.Identifier) string {
	parts := make([]string, 0, 3)

	if id.Source != "" {
		parts = append(parts, strconv.Quote(id.Source))
	}

	if id.Section != "" {
		parts = append(parts, "["+id.Section+"]")
	}

	if id.Item != "" {
		parts = append(parts, id.Item)
	}

	return strings.Join(parts, " ")
}

// Run starts the interactive browser over every key of src. The program
// draws on tty. When a key is chosen, its value is written to out and the
// key is recorded in the history kept under cacheDir.
func Run(
	ctx context.Context,
	src Source,
	tty io.Writer,
	out io.Writer,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	keys := src.Keys()
	if len(keys) == 0 {
		return ErrNoKeys
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "browse start",
		slog.Int("keys", len(keys)),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, src, keys, history.Recent(), logger)

	final, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(tty),
	).Run()
	if err != nil {
		return err
	}

	chosen, ok := final.(model)
	if !ok || chosen.selected < 0 {
		return nil
	}

	id := chosen.keys[chosen.selected]

	r := src.Lookup(ctx, id)
	if r.Err != nil {
		return r.Err
	}

	if _, err := fmt.Fprintln(out, r.Value); err != nil {
		return err
	}

	history.Add(Label(id))

	if err := history.Save(); err != nil {
		return ErrNoHistory.Wrap(err)
	}

	return nil
}
