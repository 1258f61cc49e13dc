package std

import (
	"fmt"
	"strconv"
	"strings"
)

// Writable describes whether and how a property may be reassigned or
// extended by the analyzed script.
type Writable int

const (
	// WritableNone marks a read-only property.
	WritableNone Writable = iota
	// WritableNewFields allows adding and setting sub-fields, but the name
	// itself cannot be rebound.
	WritableNewFields
	// WritableOverridden allows rebinding the name, but no new sub-fields.
	WritableOverridden
	// WritableFull allows both.
	WritableFull
)

// String returns the kebab-cased source form of the policy.
func (w Writable) String() string {
	switch w {
	case WritableNone:
		return "read-only"
	case WritableNewFields:
		return "new-fields"
	case WritableOverridden:
		return "overridden"
	case WritableFull:
		return "full"
	default:
		return "Writable(" + strconv.Itoa(int(w)) + ")"
	}
}

// ParseWritable parses the kebab-cased source form of a [Writable].
// "read-only" is not accepted since a read-only property omits the key.
func ParseWritable(s string) (Writable, error) {
	switch s {
	case "new-fields":
		return WritableNewFields, nil
	case "overridden":
		return WritableOverridden, nil
	case "full":
		return WritableFull, nil
	default:
		return WritableNone, ErrUnknownWritable.Wrap(fmt.Errorf("%q", s))
	}
}

// Required describes whether an argument must be passed.
//
// The zero value is a required argument without a custom message.
type Required struct {
	// Optional marks an argument that may be omitted.
	Optional bool
	// Message explains why a required argument is needed.
	// It is ignored when Optional is set.
	Message string
}

// NotRequired is an argument that may be omitted.
var NotRequired = Required{Optional: true}

// RequiredWith returns a required argument with an explanatory message.
func RequiredWith(msg string) Required {
	return Required{Message: msg}
}

// TypeKind enumerates the argument types understood by the schema.
type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeBool
	TypeConstant
	TypeDisplay
	TypeFunction
	TypeNil
	TypeNumber
	TypeString
	TypeTable
	TypeVararg
)

// typeTokens maps the fixed string vocabulary to argument types.
var typeTokens = map[string]TypeKind{
	"any":      TypeAny,
	"bool":     TypeBool,
	"function": TypeFunction,
	"nil":      TypeNil,
	"number":   TypeNumber,
	"string":   TypeString,
	"table":    TypeTable,
	"...":      TypeVararg,
}

// ArgumentType describes the accepted type of a function argument.
//
// Constants is set only for [TypeConstant] and Display only for
// [TypeDisplay].
type ArgumentType struct {
	Kind      TypeKind
	Constants []string
	Display   string
}

// Constant returns an argument type accepting one of the given literals.
func Constant(values ...string) ArgumentType {
	return ArgumentType{Kind: TypeConstant, Constants: values}
}

// Display returns an argument type shown with a custom label.
func Display(label string) ArgumentType {
	return ArgumentType{Kind: TypeDisplay, Display: label}
}

// ParseType matches s against the fixed, case-sensitive type vocabulary.
func ParseType(s string) (ArgumentType, error) {
	kind, ok := typeTokens[s]
	if !ok {
		return ArgumentType{}, ErrUnknownType.Wrap(fmt.Errorf("%s", s))
	}

	return ArgumentType{Kind: kind}, nil
}

// String renders the type the way it is shown in diagnostics.
func (t ArgumentType) String() string {
	switch t.Kind {
	case TypeAny:
		return "any"
	case TypeBool:
		return "bool"
	case TypeConstant:
		quoted := make([]string, len(t.Constants))
		for i, c := range t.Constants {
			quoted[i] = strconv.Quote(c)
		}

		return strings.Join(quoted, ", ")
	case TypeDisplay:
		return t.Display
	case TypeFunction:
		return "function"
	case TypeNil:
		return "nil"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeVararg:
		return "..."
	default:
		return "unknown"
	}
}

// Argument is one positional parameter of a function.
type Argument struct {
	Required Required
	Type     ArgumentType
}

// Arg returns a required argument of the given type.
func Arg(t ArgumentType) Argument {
	return Argument{Type: t}
}

// OptionalArg returns an argument of the given type that may be omitted.
func OptionalArg(t ArgumentType) Argument {
	return Argument{Required: NotRequired, Type: t}
}

// String renders the argument, suffixed with "?" when it may be omitted.
func (a Argument) String() string {
	s := a.Type.String()
	if a.Type.Kind == TypeConstant {
		s = "(" + s + ")"
	}

	if a.Required.Optional && a.Type.Kind != TypeVararg {
		s += "?"
	}

	return s
}
