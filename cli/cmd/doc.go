// Package cmd implements the luastd subcommands.
//
// Each command reads its shared state, the library registry and suggester,
// from a [Session] stored in the context by [WithSession].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
