package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/luastd/std"
)

// Find resolves a dotted path in the selected standard library.
type Find struct {
	Limit int `default:"5" help:"Maximum number of similar names suggested when the path is not defined."`

	Path string `arg:"" help:"Dotted path, such as string.format."`
}

// Run executes the find command. A path that is not defined is reported
// with similar names and suggestion notes, and fails with [ErrNotDefined].
func (f *Find) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	path := std.ParsePath(f.Path)
	if len(path) == 0 {
		return ErrEmptyPath
	}

	lib, err := s.library(ctx, "")
	if err != nil {
		return err
	}

	if field, ok := lib.FindGlobal(path); ok {
		return s.describe(path, field)
	}

	fmt.Fprintf(s.out, "%s is not defined in %s\n",
		s.style.path.Render(path.String()),
		s.style.name.Render(lib.Name),
	)

	if similar := lib.Similar(path, f.Limit); len(similar) > 0 {
		fmt.Fprintf(s.out, "%s did you mean %s?\n",
			s.style.note.Render("help:"),
			strings.Join(similar, ", "),
		)
	}

	s.notes(s.Suggester.Notes(ctx, path, s.Configured()))

	return ErrNotDefined.With(
		slog.String("path", path.String()),
		slog.String("library", lib.Name),
	)
}

func (s *Session) describe(path std.Path, field std.Field) error {
	_, err := fmt.Fprintf(s.out, "%s  %s\n",
		s.style.path.Render(path.String()),
		s.style.kind.Render(field.String()),
	)
	if err != nil || field.Kind != std.KindTable {
		return err
	}

	names := make([]string, 0, len(field.Children))
	for name := range field.Children {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		_, err = fmt.Fprintf(s.out, "  %s  %s\n",
			s.style.path.Render(path.Child(name).String()),
			s.style.dim.Render(field.Children[name].String()),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) notes(notes []string) {
	for _, note := range notes {
		fmt.Fprintf(s.out, "%s %s\n", s.style.note.Render("note:"), note)
	}
}

// Suggest explains which standard libraries define a path, the way a linter
// annotates an undefined-variable diagnostic.
type Suggest struct {
	Path string `arg:"" help:"Dotted path reported as undefined."`
}

// Run executes the suggest command.
func (c *Suggest) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	path := std.ParsePath(c.Path)
	if len(path) == 0 {
		return ErrEmptyPath
	}

	notes := s.Suggester.Notes(ctx, path, s.Configured())
	if len(notes) == 0 {
		s.log.DebugContext(ctx, "no standard library defines path",
			slog.String("path", path.String()),
		)

		return nil
	}

	s.notes(notes)

	return nil
}
