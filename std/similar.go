package std

import (
	"github.com/sahilm/fuzzy"
)

// Similar suggests up to limit existing paths resembling path, best match
// first. It descends through path while segments name tables and
// fuzzy-matches the first unresolved segment against the members found
// there. A limit of zero or less returns every candidate.
//
// The path must not be empty; Similar panics otherwise.
func (l *Library) Similar(path Path, limit int) []string {
	if len(path) == 0 {
		panic("std: similar of empty path")
	}

	var prefix Path

	current := l.Globals

	for _, name := range path[:len(path)-1] {
		child, ok := current[name]
		if !ok || child.Kind != KindTable {
			break
		}

		prefix = prefix.Child(name)
		current = child.Children
	}

	candidates := sortedKeys(current)
	pattern := path[len(prefix)]

	similar := make([]string, 0, len(candidates))

	for _, match := range fuzzy.Find(pattern, candidates) {
		if match.Str == pattern && len(prefix) == len(path)-1 {
			continue // the path itself
		}

		similar = append(similar, prefix.Child(match.Str).String())

		if limit > 0 && len(similar) == limit {
			break
		}
	}

	return similar
}
