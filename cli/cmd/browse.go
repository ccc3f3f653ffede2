package cmd

import (
	"context"
	"os"

	"github.com/ardnew/iconf/cli/cmd/browse"
	"github.com/ardnew/iconf/log"
)

// Browse opens the interactive key browser.
type Browse struct{}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	return browse.Run(ctx, cfg,
		os.Stderr,
		outputFrom(ctx),
		kongVar(ctx, CacheIdentifier),
		log.Default(),
	)
}
