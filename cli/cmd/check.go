package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/luastd/std"
)

// Check validates custom standard library files. Each file is registered
// under its base name without extension, so files may name one another,
// or a built-in library, as their base.
type Check struct {
	Files []string `arg:"" help:"Library files (YAML, JSON, or TOML)." type:"existingfile"`
}

type checkResult struct {
	file   string
	name   string
	lib    *std.Library
	fields int
	err    error
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	files := uniqueFiles(c.Files)
	results := make([]checkResult, len(files))

	// Register everything first so that a base named by one file is
	// available when another is resolved.
	for i, file := range files {
		base := filepath.Base(file)
		name := strings.TrimSuffix(base, filepath.Ext(base))

		results[i] = checkResult{
			file: file,
			name: name,
			err:  s.Registry.RegisterFile(name, file),
		}
	}

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range results {
		r := &results[i]
		if r.err != nil {
			continue
		}

		g.Go(func() error {
			r.lib, r.err = s.Registry.Resolve(ctx, r.name)
			if r.err == nil {
				for range r.lib.All() {
					r.fields++
				}
			}

			return nil
		})
	}

	_ = g.Wait()

	failed := 0

	for _, r := range results {
		if r.err != nil {
			failed++

			fmt.Fprintf(s.out, "%s %s: %v\n",
				s.style.fail.Render("FAIL"), r.file, r.err)

			continue
		}

		detail := fmt.Sprintf("%s, %d fields", r.name, r.fields)
		if r.lib.Base != "" {
			detail += ", base " + r.lib.Base
		}

		fmt.Fprintf(s.out, "%s %s %s\n",
			s.style.ok.Render("ok  "), r.file, s.style.dim.Render("("+detail+")"))
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("files", len(results)),
		)
	}

	return nil
}
