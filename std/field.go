package std

import (
	"maps"
	"strconv"
	"strings"
)

// Kind indicates which variant a [Field] holds.
type Kind int

const (
	// KindFunction is a callable.
	KindFunction Kind = iota

	// KindProperty is a non-callable value.
	KindProperty

	// KindTable is a namespace queryable by further path segments.
	KindTable

	// KindRemoved deletes a name inherited from the base library.
	// It never appears in an inflated library.
	KindRemoved
)

// String returns a string representation of the field kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	case KindTable:
		return "table"
	case KindRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Field describes one global or nested member.
type Field struct {
	Kind Kind
	// Only the members belonging to Kind are meaningful.
	Arguments []Argument       // For functions
	Method    bool             // For functions called with an implicit self
	Writable  Writable         // For properties
	Children  map[string]Field // For tables
}

// NewFunction returns a function field.
func NewFunction(method bool, args ...Argument) Field {
	return Field{Kind: KindFunction, Method: method, Arguments: args}
}

// NewProperty returns a property field.
func NewProperty(writable Writable) Field {
	return Field{Kind: KindProperty, Writable: writable}
}

// NewTable returns a table field holding children.
func NewTable(children map[string]Field) Field {
	if children == nil {
		children = map[string]Field{}
	}

	return Field{Kind: KindTable, Children: children}
}

// NewRemoved returns the removal sentinel.
func NewRemoved() Field {
	return Field{Kind: KindRemoved}
}

// Clone returns a deep copy of f.
func (f Field) Clone() Field {
	switch f.Kind {
	case KindTable:
		f.Children = cloneFields(f.Children)
	case KindFunction:
		if f.Arguments != nil {
			args := make([]Argument, len(f.Arguments))
			for i, arg := range f.Arguments {
				args[i] = arg
				if arg.Type.Constants != nil {
					args[i].Type.Constants = append(
						[]string(nil), arg.Type.Constants...,
					)
				}
			}

			f.Arguments = args
		}
	}

	return f
}

// String summarizes the field for diagnostics, for example
// "function(string, number?)", "method(...)", "property (full)", or
// "table (12 members)".
func (f Field) String() string {
	switch f.Kind {
	case KindFunction:
		name := "function"
		if f.Method {
			name = "method"
		}

		args := make([]string, len(f.Arguments))
		for i, arg := range f.Arguments {
			args[i] = arg.String()
		}

		return name + "(" + strings.Join(args, ", ") + ")"

	case KindProperty:
		return "property (" + f.Writable.String() + ")"

	case KindTable:
		n := len(f.Children)
		if n == 1 {
			return "table (1 member)"
		}

		return "table (" + strconv.Itoa(n) + " members)"

	default:
		return f.Kind.String()
	}
}

func cloneFields(m map[string]Field) map[string]Field {
	if m == nil {
		return nil
	}

	out := make(map[string]Field, len(m))
	for name, field := range maps.All(m) {
		out[name] = field.Clone()
	}

	return out
}
