package std

import (
	"iter"
)

// Library describes the globals available in one runtime environment.
//
// A library returned by [Registry.Resolve] is inflated: its base chain has
// been folded into Globals, no field is [KindRemoved], and it must not be
// modified. Base is kept for provenance.
type Library struct {
	Name    string
	Base    string
	Globals map[string]Field
}

// FindGlobal resolves a dotted path against the library's globals.
//
// Every segment but the last must name a table. The last segment may name
// any field. It reports false when a segment is missing or an intermediate
// segment is not a table.
//
// The path must not be empty; FindGlobal panics otherwise.
func (l *Library) FindGlobal(path Path) (Field, bool) {
	field, depth := l.Lookup(path)

	return field, depth == len(path)
}

// Lookup resolves as much of path as possible. It returns the field at the
// deepest resolved segment and the number of segments resolved; depth equals
// len(path) only when the whole path was found.
//
// The path must not be empty; Lookup panics otherwise.
func (l *Library) Lookup(path Path) (field Field, depth int) {
	if len(path) == 0 {
		panic("std: lookup of empty path")
	}

	current := l.Globals

	for i, name := range path {
		child, ok := current[name]
		if !ok {
			return field, i
		}

		field = child

		if i == len(path)-1 {
			return field, len(path)
		}

		// Cannot descend through anything but a table.
		if child.Kind != KindTable {
			return field, i + 1
		}

		current = child.Children
	}

	return field, len(path)
}

// All returns an iterator over every field in the library, depth-first in
// lexical order. Tables are yielded before their children.
func (l *Library) All() iter.Seq2[Path, Field] {
	return func(yield func(Path, Field) bool) {
		walkFields(nil, l.Globals, yield)
	}
}

func walkFields(
	prefix Path,
	fields map[string]Field,
	yield func(Path, Field) bool,
) bool {
	for _, name := range sortedKeys(fields) {
		path := prefix.Child(name)
		field := fields[name]

		if !yield(path, field) {
			return false
		}

		if field.Kind == KindTable {
			if !walkFields(path, field.Children, yield) {
				return false
			}
		}
	}

	return true
}
