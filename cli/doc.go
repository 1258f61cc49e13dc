// Package cli is the command-line interface of luastd.
//
// Global flags select the standard library the analyzed code targets
// (--std), register custom library files (--library NAME=FILE), and name a
// host extension library (--extension, --extension-root). They may also be
// set in the TOML configuration file, which "luastd init" writes:
//
//	$XDG_CONFIG_HOME/luastd/luastd.toml
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --log-caller: include the source location of each message
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
//   - --pprof-mode: profile to collect (allocs, block, clock, cpu, ...)
//   - --pprof-dir: profile output directory
//
// Profiling is available only when built with the pprof tag:
//
//	go build -tags pprof .
//
// # Examples
//
//	luastd show lua52 --format toml
//	luastd --std lua51 find string.gmatch
//	luastd suggest bit32.band
//	luastd --library love=love.yaml check love.yaml
package cli
