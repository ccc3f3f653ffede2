package cmd

import "github.com/ardnew/iconf/pkg"

var (
	ErrNoConfig      = pkg.NewError("configuration not loaded")
	ErrUnknownFormat = pkg.NewError("unknown output format")
	ErrWriteConfig   = pkg.NewError("write configuration file")
	ErrFileExists    = pkg.NewError("file exists (use --force to overwrite)")
)
