// Package cmd implements the iconf subcommands.
//
// Commands read the loaded [conf.Config] from their context, stored there
// with [WithConfig], and write results to the writer given with
// [WithOutput] (standard output by default).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the INI configuration file holding default flag values.
	ConfigIdentifier = "config"
)
