package conf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query evaluates an expr-lang expression against a snapshot of the tree.
//
// Each top-level key of the tree is a variable, so nested values are
// reachable with member syntax (db.host) or, for names that are not
// identifiers, through $env (for example $env["Section A"].key).
// The function item resolves an identifier with default fallback. It takes
// one argument per enabled dimension, outermost first: item(source,
// section, name) when both dimensions matter, item(section, name) or
// item(source, name) when one does, and item(name) when neither does.
// The function lives outside the variables, so a top-level key named
// "item" is still reachable as item.key or $env["item"].
func (c *Config) Query(ctx context.Context, expression string) (any, error) {
	c.mu.RLock()
	env := cloneNode(c.tree)
	c.mu.RUnlock()

	item := expr.Function("item",
		func(params ...any) (any, error) {
			parts := make([]string, len(params))

			for i, p := range params {
				s, ok := p.(string)
				if !ok {
					return nil, ErrInvalidIdentifier.Wrap(
						fmt.Errorf("item argument %d is %T, not string", i+1, p))
				}

				parts[i] = s
			}

			id, err := c.identifier(parts)
			if err != nil {
				return nil, err
			}

			return c.Item(ctx, id)
		},
		new(func(...string) (string, error)),
	)

	program, err := expr.Compile(expression, expr.Env(env), item)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expression", expression))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expression", expression))
	}

	c.logger.DebugContext(ctx, "query",
		slog.String("expression", expression),
		slog.Any("result", result),
	)

	return result, nil
}

// identifier maps positional query arguments onto the enabled dimensions.
func (c *Config) identifier(parts []string) (Identifier, error) {
	if len(parts) != c.Depth() {
		return Identifier{}, ErrInvalidIdentifier.Wrap(
			fmt.Errorf("item takes %d arguments, got %d", c.Depth(), len(parts)))
	}

	var id Identifier

	if c.fileMatters {
		id.Source, parts = parts[0], parts[1:]
	}

	if c.sectionMatters {
		id.Section, parts = parts[0], parts[1:]
	}

	id.Item = parts[0]

	return id, nil
}
