package ini

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/iconf/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse     = pkg.NewError("parse error")
	ErrReadInput = pkg.NewError("failed to read input")
	ErrFormat    = pkg.NewError("failed to format output")
)

// ParsingError reports a line that is neither blank, a comment, a section
// header, nor an item, or an item that appears before any section header
// while sections are enabled.
//
// It matches [ErrParse] with [errors.Is].
type ParsingError struct {
	Source     string
	Line       string // raw line without its terminator
	LineNumber int    // 1-based
}

// Error implements the error interface.
func (e *ParsingError) Error() string {
	return fmt.Sprintf("%s on line %d in %q: %q",
		ErrParse.Error(), e.LineNumber, e.Source, e.Line)
}

// Unwrap returns [ErrParse].
func (e *ParsingError) Unwrap() error { return ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParsingError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.Error()),
		slog.String("source", e.Source),
		slog.Int("line_number", e.LineNumber),
		slog.String("line", e.Line),
	)
}
