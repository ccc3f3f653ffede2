package conf

//go:generate go tool stringer --linecomment --type Reason --output error_string.go

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/iconf/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidIdentifier = pkg.NewError("invalid identifier")
	ErrFileNotFound      = pkg.NewError("cannot load file")
	ErrSectionNotFound   = pkg.NewError("cannot load section")
	ErrItemNotFound      = pkg.NewError("cannot load item")
	ErrOpenSource        = pkg.NewError("cannot open source")
	ErrDecodeDefaults    = pkg.NewError("cannot decode defaults")
	ErrQuery             = pkg.NewError("query failed")
)

// Reason identifies which level of an identifier failed to resolve.
type Reason int

const (
	ReasonFile    Reason = iota // file
	ReasonSection               // section
	ReasonItem                  // item
)

func (r Reason) sentinel() *pkg.Error {
	switch r {
	case ReasonFile:
		return ErrFileNotFound
	case ReasonSection:
		return ErrSectionNotFound
	default:
		return ErrItemNotFound
	}
}

// NotFoundError reports the first qualifier of an identifier, searched in the
// order source, section, item, that is absent from the tree.
//
// It matches [ErrFileNotFound], [ErrSectionNotFound] or [ErrItemNotFound]
// with [errors.Is], according to Reason.
type NotFoundError struct {
	Reason Reason
	Name   string
}

func notFound(reason Reason, name string) *NotFoundError {
	return &NotFoundError{Reason: reason, Name: name}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q", e.Reason.sentinel().Error(), e.Name)
}

// Unwrap returns the sentinel matching e.Reason.
func (e *NotFoundError) Unwrap() error { return e.Reason.sentinel() }

// LogValue implements slog.LogValuer.
func (e *NotFoundError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Reason.sentinel().Error()),
		slog.String(e.Reason.String(), e.Name),
	)
}
