package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/conf"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or the empty string if there is
// no kong context or the variable is undefined.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

type (
	configKey struct{}
	outputKey struct{}
	diagKey   struct{}
)

// WithConfig returns a new context.Context carrying the loaded configuration
// that commands read from.
func WithConfig(ctx context.Context, cfg *conf.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom retrieves the configuration stored by WithConfig.
func configFrom(ctx context.Context) (*conf.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*conf.Config)
	if !ok || cfg == nil {
		return nil, ErrNoConfig
	}

	return cfg, nil
}

// WithOutput returns a new context.Context directing command results to out
// and diagnostics, such as suggestions, to diag. A nil writer keeps the
// default of [os.Stdout] or [os.Stderr].
func WithOutput(ctx context.Context, out, diag io.Writer) context.Context {
	if out != nil {
		ctx = context.WithValue(ctx, outputKey{}, out)
	}

	if diag != nil {
		ctx = context.WithValue(ctx, diagKey{}, diag)
	}

	return ctx
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok {
		return w
	}

	return os.Stdout
}

func diagFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(diagKey{}).(io.Writer); ok {
		return w
	}

	return os.Stderr
}
