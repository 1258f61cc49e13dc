package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/luastd/std"
)

// Show prints an inflated standard library in the source schema.
type Show struct {
	Format string `default:"yaml" enum:"yaml,json,toml" help:"Output format."                          short:"f"`
	Indent int    `default:"2"                          help:"Indent width; 0 selects compact output." short:"i"`

	Name string `arg:"" help:"Library to print (default: the selected library)." optional:""`
}

// Run executes the show command.
func (c *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	format, err := std.ParseFormat(c.Format)
	if err != nil {
		return ErrUnknownFormat.With(slog.String("format", c.Format)).Wrap(err)
	}

	lib, err := s.library(ctx, c.Name)
	if err != nil {
		return err
	}

	return lib.Format(ctx, s.out, format, c.Indent)
}
