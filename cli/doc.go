// Package cli contains the command line interface for pathfinder.
//
// # Usage
//
//	pathfinder [flags] <command> [args]
//
// Without a command, pathfinder lists every named path in the default paths
// document, <configdir>/paths.sdoc. Use --file (-f) to load another one.
//
// # Configuration
//
// Flag defaults are read from two files in the configuration directory, if
// they exist:
//
//   - cli.json, a JSON object keyed by flag name
//   - cli, an sdoc document whose "cli" group holds one item per flag
//
// For example:
//
//	!sdoc 1
//	cli {
//	  log_level = debug
//	  log_caller
//	}
//
// Command-line flags override configuration file values. The init command
// writes a configuration file holding the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
// Flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: <cachedir>/pprof)
package cli
