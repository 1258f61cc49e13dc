package std

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
)

// Reserved keys of a field entry. Every other key names a child field.
const (
	keyProperty = "property"
	keyMethod   = "method"
	keyRemoved  = "removed"
	keyWritable = "writable"
	keyArgs     = "args"

	keyRequired = "required"
	keyType     = "type"
	keyDisplay  = "display"

	keyBase = "base"
)

func isReserved(key string) bool {
	switch key {
	case keyProperty, keyMethod, keyRemoved, keyWritable, keyArgs:
		return true
	default:
		return false
	}
}

// Decode parses a library source without resolving its base.
//
// The returned library has an empty Name; it is the raw form consumed by
// [Registry], which assigns the name and inflates it.
func Decode(format Format, data []byte) (*Library, error) {
	doc, err := format.unmarshal(data)
	if err != nil {
		return nil, err
	}

	return decodeLibrary(doc)
}

func decodeLibrary(doc map[string]any) (*Library, error) {
	lib := &Library{Globals: make(map[string]Field, len(doc))}

	for _, key := range sortedKeys(doc) {
		value := doc[key]

		if key == keyBase {
			base, ok := asString(value)
			if !ok {
				return nil, ErrInvalidShape.
					With(slog.String("key", keyBase)).
					Wrap(fmt.Errorf("expected string, got %s", describe(value)))
			}

			lib.Base = base

			continue
		}

		field, err := decodeField(Path{key}, value)
		if err != nil {
			return nil, err
		}

		lib.Globals[key] = field
	}

	return lib, nil
}

// decodeField determines the kind of one raw entry and decodes it.
func decodeField(path Path, value any) (Field, error) {
	fail := func(err error) (Field, error) {
		return Field{}, ErrInvalidField.
			With(slog.String("field", path.String())).
			Wrap(err)
	}

	entry, ok := asMapping(value)
	if !ok {
		return fail(ErrInvalidShape.Wrap(
			fmt.Errorf("expected mapping, got %s", describe(value)),
		))
	}

	removed, err := decodeFlag(entry, keyRemoved)
	if err != nil {
		return fail(err)
	}

	// A removal ignores every other key of the entry.
	if removed {
		return NewRemoved(), nil
	}

	property, err := decodeFlag(entry, keyProperty)
	if err != nil {
		return fail(err)
	}

	method, err := decodeFlag(entry, keyMethod)
	if err != nil {
		return fail(err)
	}

	// A null argument list is the same as an absent one.
	rawArgs := entry[keyArgs]
	hasArgs := rawArgs != nil
	isFunction := hasArgs || method

	children := make(map[string]any, len(entry))

	for key, child := range entry {
		if !isReserved(key) {
			children[key] = child
		}
	}

	if property && isFunction {
		return fail(ErrAmbiguousField)
	}

	if !property && !isFunction && len(children) == 0 {
		return fail(ErrUnknownFieldKind)
	}

	switch {
	case property:
		writable, err := decodeWritable(entry)
		if err != nil {
			return fail(err)
		}

		return NewProperty(writable), nil

	case isFunction:
		var args []Argument

		if hasArgs {
			args, err = decodeArguments(rawArgs)
			if err != nil {
				return fail(err)
			}
		}

		return NewFunction(method, args...), nil
	}

	fields := make(map[string]Field, len(children))

	for _, key := range sortedKeys(children) {
		field, err := decodeField(path.Child(key), children[key])
		if err != nil {
			return Field{}, err
		}

		fields[key] = field
	}

	return NewTable(fields), nil
}

// decodeFlag reads an optional boolean marker; absent means false.
func decodeFlag(entry map[string]any, key string) (bool, error) {
	value, ok := entry[key]
	if !ok {
		return false, nil
	}

	flag, ok := asBool(value)
	if !ok {
		return false, ErrInvalidShape.
			With(slog.String("key", key)).
			Wrap(fmt.Errorf("expected boolean, got %s", describe(value)))
	}

	return flag, nil
}

func decodeWritable(entry map[string]any) (Writable, error) {
	value, ok := entry[keyWritable]
	if !ok {
		return WritableNone, nil
	}

	s, ok := asString(value)
	if !ok {
		return WritableNone, ErrInvalidShape.
			With(slog.String("key", keyWritable)).
			Wrap(fmt.Errorf("expected string, got %s", describe(value)))
	}

	return ParseWritable(s)
}

func decodeArguments(value any) ([]Argument, error) {
	seq, ok := asSequence(value)
	if !ok {
		return nil, ErrInvalidShape.
			With(slog.String("key", keyArgs)).
			Wrap(fmt.Errorf("expected sequence, got %s", describe(value)))
	}

	args := make([]Argument, 0, len(seq))

	for i, item := range seq {
		arg, err := decodeArgument(item)
		if err != nil {
			return nil, WrapError(err).
				With(slog.String("argument", strconv.Itoa(i+1)))
		}

		args = append(args, arg)
	}

	return args, nil
}

func decodeArgument(value any) (Argument, error) {
	entry, ok := asMapping(value)
	if !ok {
		return Argument{}, ErrInvalidShape.Wrap(
			fmt.Errorf("expected mapping, got %s", describe(value)),
		)
	}

	for key := range entry {
		if key != keyRequired && key != keyType {
			return Argument{}, ErrInvalidShape.Wrap(
				fmt.Errorf("unexpected argument key %q", key),
			)
		}
	}

	rawType, ok := entry[keyType]
	if !ok {
		return Argument{}, ErrInvalidShape.Wrap(
			fmt.Errorf("argument is missing %q", keyType),
		)
	}

	typ, err := decodeArgumentType(rawType)
	if err != nil {
		return Argument{}, err
	}

	var required Required

	if rawRequired, ok := entry[keyRequired]; ok {
		required, err = decodeRequired(rawRequired)
		if err != nil {
			return Argument{}, err
		}
	}

	return Argument{Required: required, Type: typ}, nil
}

// shape is one candidate interpretation of a generic value.
//
// A decoder reports ok == false when the value does not have this shape at
// all. A non-nil error means the shape matched but its content is invalid,
// which ends the attempt.
type shape[T any] struct {
	name   string
	decode func(value any) (result T, ok bool, err error)
}

// decodeShapes tries each shape in order and returns the first match.
// If none match, the error lists every shape that was tried.
func decodeShapes[T any](value any, shapes ...shape[T]) (T, error) {
	tried := make([]string, 0, len(shapes))

	for _, s := range shapes {
		result, ok, err := s.decode(value)
		if err != nil {
			return result, err
		}

		if ok {
			return result, nil
		}

		tried = append(tried, s.name)
	}

	var zero T

	return zero, ErrInvalidShape.Wrap(fmt.Errorf(
		"expected %s, got %s", englishList(tried, "or"), describe(value),
	))
}

var argumentTypeShapes = []shape[ArgumentType]{
	{
		name: "a type name",
		decode: func(value any) (ArgumentType, bool, error) {
			s, ok := asString(value)
			if !ok {
				return ArgumentType{}, false, nil
			}

			t, err := ParseType(s)

			return t, true, err
		},
	},
	{
		name: "a sequence of constant strings",
		decode: func(value any) (ArgumentType, bool, error) {
			seq, ok := asSequence(value)
			if !ok {
				return ArgumentType{}, false, nil
			}

			constants := make([]string, len(seq))

			for i, item := range seq {
				s, ok := asString(item)
				if !ok {
					return ArgumentType{}, true, ErrInvalidShape.Wrap(fmt.Errorf(
						"constant %d: expected string, got %s", i+1, describe(item),
					))
				}

				constants[i] = s
			}

			return Constant(constants...), true, nil
		},
	},
	{
		name: "a mapping with a `display` property",
		decode: func(value any) (ArgumentType, bool, error) {
			entry, ok := asMapping(value)
			if !ok {
				return ArgumentType{}, false, nil
			}

			raw, ok := entry[keyDisplay]
			if !ok {
				return ArgumentType{}, true, ErrInvalidShape.Wrap(
					fmt.Errorf("map value must have a `%s` property", keyDisplay),
				)
			}

			if len(entry) > 1 {
				extra := slices.DeleteFunc(sortedKeys(entry), func(k string) bool {
					return k == keyDisplay
				})

				return ArgumentType{}, true, ErrInvalidShape.Wrap(
					fmt.Errorf("unexpected display keys %q", extra),
				)
			}

			label, ok := asString(raw)
			if !ok {
				return ArgumentType{}, true, ErrInvalidShape.Wrap(fmt.Errorf(
					"display: expected string, got %s", describe(raw),
				))
			}

			return Display(label), true, nil
		},
	},
}

func decodeArgumentType(value any) (ArgumentType, error) {
	return decodeShapes(value, argumentTypeShapes...)
}

var requiredShapes = []shape[Required]{
	{
		name: "a boolean",
		decode: func(value any) (Required, bool, error) {
			b, ok := asBool(value)
			if !ok {
				return Required{}, false, nil
			}

			return Required{Optional: !b}, true, nil
		},
	},
	{
		name: "a string message",
		decode: func(value any) (Required, bool, error) {
			s, ok := asString(value)
			if !ok {
				return Required{}, false, nil
			}

			return RequiredWith(s), true, nil
		},
	},
}

func decodeRequired(value any) (Required, error) {
	return decodeShapes(value, requiredShapes...)
}

func asString(value any) (string, bool) {
	s, ok := value.(string)

	return s, ok
}

func asBool(value any) (bool, bool) {
	b, ok := value.(bool)

	return b, ok
}

func asSequence(value any) ([]any, bool) {
	seq, ok := value.([]any)

	return seq, ok
}

// asMapping accepts both string-keyed mappings and the any-keyed mappings a
// YAML decoder produces for non-string keys.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true

	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}

		return out, true

	default:
		return nil, false
	}
}

// describe names the shape of a generic value for error messages.
func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
