package ini

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Parse reads all of r and parses it as INI text. The source name is only
// used to identify the input in errors and log messages.
func Parse(
	ctx context.Context,
	source string,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", source))
	}

	return ParseString(ctx, source, string(data), opts...)
}

// ParseString parses text as INI. See [Parse].
func ParseString(
	ctx context.Context,
	source, text string,
	opts ...Option,
) (*Document, error) {
	d := newDocument(source, opts...)

	var (
		section string
		opened  bool
		number  int
	)

	for line := range strings.Lines(text) {
		number++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		kind, name, value := classify(line)

		d.logger.TraceContext(ctx, "classify",
			slog.String("source", source),
			slog.Int("line", number),
			slog.String("kind", kind.String()),
		)

		switch kind {
		case lineBlank:

		case lineSection:
			if d.Sectioned {
				section, opened = name, true
				d.openSection(section)
			}

		case lineItem:
			if d.Sectioned && !opened {
				return nil, &ParsingError{Source: source, Line: line, LineNumber: number}
			}

			d.setItem(section, name, value)

		default:
			return nil, &ParsingError{Source: source, Line: line, LineNumber: number}
		}
	}

	d.logger.DebugContext(ctx, "parse complete",
		slog.String("source", source),
		slog.Bool("sectioned", d.Sectioned),
		slog.Int("sections", len(d.sectionOrder)),
		slog.Int("items", d.Len()),
	)

	return d, nil
}
