package std

import (
	"context"
	"slices"
	"sync"
)

// Extension is an optional, host-specific library consulted by [Suggester]
// in addition to the built-in libraries.
//
// The library is loaded on first use by exactly one caller and the result,
// including a failure, is shared by every later caller.
type Extension struct {
	name  string
	roots []string
	load  func(context.Context) (*Library, error)

	once sync.Once
	lib  *Library
	err  error
}

// NewExtension returns an extension called name.
//
// A path matches the extension when its first segment is one of roots, or
// when it resolves in the library returned by load.
func NewExtension(
	name string,
	roots []string,
	load func(context.Context) (*Library, error),
) *Extension {
	return &Extension{
		name:  name,
		roots: slices.Clone(roots),
		load:  load,
	}
}

// RegistryExtension returns an extension whose library is resolved from reg
// under name.
func RegistryExtension(reg *Registry, name string, roots ...string) *Extension {
	return NewExtension(name, roots, func(ctx context.Context) (*Library, error) {
		return reg.Resolve(ctx, name)
	})
}

// Name returns the name of the extension library.
func (e *Extension) Name() string { return e.name }

// Roots returns the root identifiers that always match the extension.
func (e *Extension) Roots() []string { return slices.Clone(e.roots) }

// Library returns the extension library, loading it on first call.
func (e *Extension) Library(ctx context.Context) (*Library, error) {
	e.once.Do(func() {
		e.lib, e.err = e.load(ctx)
	})

	return e.lib, e.err
}

// Matches reports whether path belongs to the extension. The library is
// loaded only when the first segment is not one of the roots.
func (e *Extension) Matches(ctx context.Context, path Path) (bool, error) {
	if slices.Contains(e.roots, path[0]) {
		return true, nil
	}

	lib, err := e.Library(ctx)
	if err != nil {
		return false, err
	}

	_, ok := lib.FindGlobal(path)

	return ok, nil
}
