// Package log is the structured logger shared by the luastd packages and
// command, built on [log/slog].
//
// A [Logger] is a value. Options never mutate a logger in place; [Make] and
// [Logger.Wrap] return a new one:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON))
//	logger.Info("library loaded", slog.String("library", "lua51"))
//
// The zero Logger discards every message.
//
// Text output is colorized with lipgloss when [WithPretty] is enabled and the
// output is a terminal. Levels are [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded.
//
// Package-level functions such as [Info] and [DebugContext] log through a
// default logger writing to standard error, reconfigured with [Config].
// Context-unaware variants use [DefaultContextProvider].
package log
