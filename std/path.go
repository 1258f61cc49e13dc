package std

import "strings"

// Path is a dotted identifier path such as string.format, one segment per
// element.
type Path []string

// ParsePath splits a dotted identifier into its segments.
// An empty string yields an empty path.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return nil
	}

	return strings.Split(dotted, ".")
}

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path with name appended. The receiver is not modified.
func (p Path) Child(name string) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = name

	return child
}
