// Package profile provides optional runtime profiling for luastd, backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	luastd --pprof-mode cpu show lua52
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op
// profiler. Profiles are written to the directory given by --pprof-dir,
// which defaults to the pprof subdirectory of the user cache directory, and
// can be inspected with "go tool pprof".
package profile
