// Package cli contains the command line interface for iconf.
//
// # Usage
//
//	iconf [flags] <command> [args]
//
// Sources given with --source are loaded before the command runs. A source
// named "-" is read from stdin after every named file. Relative names are
// searched for in each --path directory, then in each directory listed in
// $ICONF_PATH, then as given.
//
// # Commands
//
//   - get ITEM [--section S] [--file F]: print one value, with near-match
//     suggestions when the item is missing
//   - items [--section S] [--file F] [--format ini|json|yaml]: print a subtree
//   - fmt ini|json|yaml [SOURCE]: reformat a single source
//   - query EXPR: evaluate an expression, such as item("server", "port")
//   - browse: pick a key with an interactive fuzzy finder
//   - init [--force]: write the current flag values as the configuration file
//
// # Configuration File
//
// Flag defaults are read from config.ini in the user configuration
// directory (for example ~/.config/iconf/config.ini), parsed by this
// module's own reader. Flags of a group are set from the group's section,
// and all others from section [iconf]:
//
//	[log]
//	level = debug
//
//	[iconf]
//	files = true
//	source = base.ini,local.ini
//
// A config.json beside it is also honored. Command-line flags override both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o iconf .
//
// Then --pprof-mode selects a profile (allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace) and --pprof-dir sets the output directory
// (default ~/.cache/iconf/pprof).
package cli
