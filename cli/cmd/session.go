package cmd

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/luastd/log"
	"github.com/ardnew/luastd/pkg"
	"github.com/ardnew/luastd/std"
)

// DefaultStd is the library queried when no standard library is selected.
const DefaultStd = "lua51"

// Options configures a [Session].
type Options struct {
	// Std selects the standard library the analyzed code targets. Empty
	// means unconfigured: queries use [DefaultStd] and suggestion notes
	// include guidance on selecting a library.
	Std string
	// Libraries maps names to custom library files.
	Libraries map[string]string
	// Extension names a registered library consulted before the others
	// when suggesting, with ExtensionRoots always attributed to it.
	Extension      string
	ExtensionRoots []string
	// Out receives command output. Defaults to standard output.
	Out io.Writer
	// Logger defaults to the package logger.
	Logger *log.Logger
}

// Session is the state shared by every command of one invocation.
type Session struct {
	Registry  *std.Registry
	Suggester *std.Suggester
	Std       string

	out   io.Writer
	style styles
	log   log.Logger
}

// NewSession registers the custom libraries of opts and prepares the
// suggester.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	logger := log.Default()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	reg := std.NewRegistry(std.WithLogger(logger))

	for _, name := range slices.Sorted(maps.Keys(opts.Libraries)) {
		file := opts.Libraries[name]

		if err := reg.RegisterFile(name, file); err != nil {
			return nil, ErrRegisterLibrary.
				With(slog.String("library", name), slog.String("file", file)).
				Wrap(err)
		}

		logger.DebugContext(ctx, "registered library",
			slog.String("library", name),
			slog.String("file", file),
		)
	}

	known := reg.Names()

	for _, name := range []string{opts.Std, opts.Extension} {
		if name != "" && !slices.Contains(known, name) {
			return nil, ErrUnknownStd.With(
				slog.String("library", name),
				slog.String("known", strings.Join(known, ", ")),
			)
		}
	}

	suggestOpts := []std.SuggestOption{
		std.WithConfigFile(pkg.Name + ".toml"),
		std.WithSuggestLogger(logger),
	}

	if opts.Extension != "" {
		ext := std.RegistryExtension(reg, opts.Extension, opts.ExtensionRoots...)
		suggestOpts = append(suggestOpts, std.WithExtension(ext))

		logger.DebugContext(ctx, "using extension library",
			slog.String("library", ext.Name()),
			slog.Any("roots", ext.Roots()),
		)
	}

	return &Session{
		Registry:  reg,
		Suggester: std.NewSuggester(reg, suggestOpts...),
		Std:       opts.Std,
		out:       out,
		style:     newStyles(out),
		log:       logger,
	}, nil
}

// Configured reports whether a standard library was selected explicitly.
func (s *Session) Configured() bool { return s.Std != "" }

// library resolves name, or the selected standard library when name is
// empty.
func (s *Session) library(ctx context.Context, name string) (*std.Library, error) {
	if name == "" {
		name = s.Std
	}

	if name == "" {
		name = DefaultStd
	}

	return s.Registry.Resolve(ctx, name)
}

type styles struct {
	name, path, kind, ok, fail, note, dim lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		name: r.NewStyle().Bold(true),
		path: r.NewStyle().Foreground(lipgloss.Color("6")),
		kind: r.NewStyle().Foreground(lipgloss.Color("5")),
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		note: r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		dim:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
