package std

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/luastd/log"
)

// DefaultConfigFile is the configuration file named in the guidance note.
const DefaultConfigFile = "luastd.toml"

// Suggester explains undefined identifiers by naming the standard libraries
// that would have recognized them.
type Suggester struct {
	registry   *Registry
	libraries  []string
	extension  *Extension
	configFile string
	logger     log.Logger
}

// SuggestOption configures a [Suggester].
type SuggestOption func(*Suggester)

// WithLibraries sets the libraries scanned for matches. By default every
// built-in library of the registry is scanned.
func WithLibraries(names ...string) SuggestOption {
	return func(s *Suggester) {
		s.libraries = slices.Clone(names)
	}
}

// WithExtension attaches a host-specific extension library. A matching
// extension is listed before every other library.
func WithExtension(ext *Extension) SuggestOption {
	return func(s *Suggester) {
		s.extension = ext
	}
}

// WithConfigFile sets the configuration file named in the guidance note.
func WithConfigFile(name string) SuggestOption {
	return func(s *Suggester) {
		s.configFile = name
	}
}

// WithSuggestLogger sets the logger used to report libraries that could not
// be scanned.
func WithSuggestLogger(logger log.Logger) SuggestOption {
	return func(s *Suggester) {
		s.logger = logger
	}
}

// NewSuggester returns a suggester scanning libraries of reg.
func NewSuggester(reg *Registry, opts ...SuggestOption) *Suggester {
	s := &Suggester{
		registry:   reg,
		configFile: DefaultConfigFile,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.libraries == nil {
		s.libraries = reg.Builtins()
	}

	return s
}

// PossibleLibraries returns the names of the libraries in which path
// resolves. Scanned libraries are listed in lexical order, preceded by the
// extension if it matches.
//
// The path must not be empty; PossibleLibraries panics otherwise.
func (s *Suggester) PossibleLibraries(ctx context.Context, path Path) []string {
	if len(path) == 0 {
		panic("std: suggestion for empty path")
	}

	var matches []string

	for _, name := range s.libraries {
		if s.extension != nil && name == s.extension.Name() {
			continue
		}

		lib, err := s.registry.Resolve(ctx, name)
		if err != nil {
			s.skip(ctx, name, err)

			continue
		}

		if _, ok := lib.FindGlobal(path); ok {
			matches = append(matches, name)
		}
	}

	slices.Sort(matches)

	if s.extension != nil {
		ok, err := s.extension.Matches(ctx, path)
		if err != nil {
			s.skip(ctx, s.extension.Name(), err)
		}

		if ok {
			matches = slices.Insert(matches, 0, s.extension.Name())
		}
	}

	return matches
}

// Notes returns zero, one, or two human-readable notes for an undefined
// path. The first names the libraries defining path. The second, emitted
// only when configured is false, shows how to select one of them.
func (s *Suggester) Notes(
	ctx context.Context,
	path Path,
	configured bool,
) []string {
	matches := s.PossibleLibraries(ctx, path)
	if len(matches) == 0 {
		return nil
	}

	notes := []string{fmt.Sprintf(
		"`%s` was found in the %s standard %s",
		path,
		englishList(matches, "and"),
		plural(len(matches), "library", "libraries"),
	)}

	if !configured {
		lines := make([]string, len(matches))
		for i, name := range matches {
			lines[i] = "std = \"" + name + "\""
		}

		notes = append(notes, fmt.Sprintf(
			"you can set the standard library by putting the following inside %s:\n%s",
			s.configFile,
			strings.Join(lines, "\n"),
		))
	}

	return notes
}

func (s *Suggester) skip(ctx context.Context, name string, err error) {
	level := s.logger.WarnContext
	if errors.Is(err, ErrLibraryNotFound) {
		level = s.logger.DebugContext
	}

	level(
		ctx,
		"skipping standard library",
		slog.String("library", name),
		slog.Any("error", err),
	)
}
