package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// List prints the registered standard libraries.
type List struct {
	Builtin bool `help:"List only built-in libraries." short:"b"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	names := s.Registry.Names()
	if l.Builtin {
		names = s.Registry.Builtins()
	}

	width := 0
	if len(names) > 0 {
		width = len(slices.MaxFunc(names, func(a, b string) int {
			return len(a) - len(b)
		}))
	}

	for _, name := range names {
		var detail []string

		if s.Registry.IsBuiltin(name) {
			detail = append(detail, "built-in")
		} else {
			detail = append(detail, "custom")
		}

		lib, err := s.Registry.Resolve(ctx, name)
		switch {
		case err != nil:
			detail = append(detail, s.style.fail.Render("invalid"))
		case lib.Base != "":
			detail = append(detail, "base "+lib.Base)
		}

		if name == s.Std {
			detail = append(detail, s.style.ok.Render("selected"))
		}

		_, err = fmt.Fprintf(s.out, "%s  %s\n",
			s.style.name.Width(width).Render(name),
			s.style.dim.Render(strings.Join(detail, ", ")),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
