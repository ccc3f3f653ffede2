package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyState is shared by both pretty handlers: the attributes and group
// prefix accumulated through WithAttrs and WithGroup.
type prettyState struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyState(w io.Writer, opts *slog.HandlerOptions) prettyState {
	return prettyState{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (s prettyState) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if s.opts.Level != nil {
		threshold = s.opts.Level.Level()
	}

	return level >= threshold
}

// withAttrs returns a copy of s holding attrs qualified by the current group
// prefix. The receiver's slices are never appended in place.
func (s prettyState) withAttrs(attrs []slog.Attr) prettyState {
	prefix := s.prefix()

	next := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	next = append(next, s.attrs...)

	for _, a := range attrs {
		next = append(next, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}

	s.attrs = next

	return s
}

func (s prettyState) withGroup(name string) prettyState {
	if name == "" {
		return s
	}

	s.groups = append(s.groups[:len(s.groups):len(s.groups)], name)

	return s
}

func (s prettyState) prefix() string {
	if len(s.groups) == 0 {
		return ""
	}

	return strings.Join(s.groups, ".") + "."
}

// replace applies the configured ReplaceAttr, if any.
func (s prettyState) replace(a slog.Attr) slog.Attr {
	if s.opts.ReplaceAttr == nil {
		return a
	}

	return s.opts.ReplaceAttr(s.groups, a)
}

// source formats the record's call site as file:line.
func (s prettyState) source(r slog.Record) (string, bool) {
	if !s.opts.AddSource {
		return "", false
	}

	src := r.Source()
	if src == nil || src.File == "" {
		return "", false
	}

	return fmt.Sprintf("%s:%d", src.File, src.Line), true
}

func (s prettyState) write(buf *bytes.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf.WriteByte('\n')

	_, err := s.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	prettyState
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyState(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	h.writeAttr(buf, slog.Any(slog.LevelKey, r.Level))

	if src, ok := h.source(r); ok {
		h.writeAttr(buf, slog.String(slog.SourceKey, src))
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	prefix := h.prefix()

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, slog.Attr{Key: prefix + a.Key, Value: a.Value})

		return true
	})

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, slog.Attr{Key: a.Key + "." + ga.Key, Value: ga.Value})
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	writeColorValue(buf, a.Value)
}

// writeColorValue writes v unquoted, colored by kind.
func writeColorValue(buf *bytes.Buffer, v slog.Value) {
	color, text := colorCyan, v.String()

	switch v.Kind() {
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color = colorRed
		if v.Bool() {
			color = colorGreen
		}

	case slog.KindDuration:
		color = colorMagenta

	case slog.KindTime:
		color = colorBlue

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			color, text = levelColor(level), strings.ToUpper(Level(level).String())
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	prettyState
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyState(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{")

	first := true

	if !r.Time.IsZero() {
		h.writeField(buf, h.replace(slog.Time(slog.TimeKey, r.Time)), &first)
	}

	h.writeField(buf, slog.Any(slog.LevelKey, r.Level), &first)

	if src, ok := h.source(r); ok {
		h.writeField(buf, slog.String(slog.SourceKey, src), &first)
	}

	h.writeField(buf, slog.String(slog.MessageKey, r.Message), &first)

	for _, a := range h.attrs {
		h.writeField(buf, a, &first)
	}

	prefix := h.prefix()

	r.Attrs(func(a slog.Attr) bool {
		h.writeField(buf, slog.Attr{Key: prefix + a.Key, Value: a.Value}, &first)

		return true
	})

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	a slog.Attr,
	first *bool,
) {
	if a.Equal(slog.Attr{}) {
		return
	}

	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeField(buf, slog.Attr{Key: a.Key + "." + ga.Key, Value: ga.Value}, first)
		}

		return
	}

	if !*first {
		buf.WriteString(",")
	}

	*first = false

	buf.WriteString("\n  ")
	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteString(": ")

	writeColorValue(buf, a.Value)
}
