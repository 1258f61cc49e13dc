package std

// inflate folds raw onto the inflated globals of its base and returns the
// flattened library. Neither argument is modified. A nil base inflates raw
// on its own, which only consumes its removal sentinels.
func inflate(raw, base *Library) *Library {
	var globals map[string]Field

	if base != nil {
		globals = cloneFields(base.Globals)
	} else {
		globals = make(map[string]Field, len(raw.Globals))
	}

	merge(globals, raw.Globals)

	return &Library{
		Name:    raw.Name,
		Base:    raw.Base,
		Globals: globals,
	}
}

// merge applies overrides onto into, key by key:
//
//   - a removed field deletes the key;
//   - a table over a table merges their children recursively;
//   - anything else replaces the existing field.
//
// Keys absent from overrides are left unchanged.
func merge(into, overrides map[string]Field) {
	for name, field := range overrides {
		if field.Kind == KindRemoved {
			delete(into, name)

			continue
		}

		if conflict, ok := into[name]; ok &&
			conflict.Kind == KindTable && field.Kind == KindTable {
			merge(conflict.Children, field.Children)

			continue
		}

		into[name] = prune(field)
	}
}

// prune returns a deep copy of f without removal sentinels. A removal with
// nothing beneath it to remove simply disappears.
func prune(f Field) Field {
	if f.Kind != KindTable {
		return f.Clone()
	}

	children := make(map[string]Field, len(f.Children))

	for name, child := range f.Children {
		if child.Kind != KindRemoved {
			children[name] = prune(child)
		}
	}

	return NewTable(children)
}
