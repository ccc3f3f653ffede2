package cmd

import (
	"context"
	"fmt"
)

// Query evaluates an expression against the configuration tree.
type Query struct {
	Expr   string `arg:"" help:"Expression to evaluate, e.g. 'item(\"server\", \"port\")'." name:"expr"`
	Indent int    `default:"2" help:"Indent width for map results" short:"i"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	result, err := cfg.Query(ctx, q.Expr)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if tree, ok := result.(map[string]any); ok {
		return render(ctx, w, "json", q.Indent, tree)
	}

	_, err = fmt.Fprintln(w, result)

	return err
}
