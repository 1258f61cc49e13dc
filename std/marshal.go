package std

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MarshalJSON implements json.Marshaler for Library.
func (l *Library) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToMap())
}

// ToMap converts the library to the generic tree accepted by [Decode]:
// reserved marker keys alongside nested children, plus "base" when set.
func (l *Library) ToMap() map[string]any {
	result := make(map[string]any, len(l.Globals)+1)

	if l.Base != "" {
		result[keyBase] = l.Base
	}

	for name, field := range l.Globals {
		result[name] = field.ToNative()
	}

	return result
}

// ToNative converts a Field to its generic source form.
func (f Field) ToNative() map[string]any {
	switch f.Kind {
	case KindRemoved:
		return map[string]any{keyRemoved: true}

	case KindProperty:
		result := map[string]any{keyProperty: true}
		if f.Writable != WritableNone {
			result[keyWritable] = f.Writable.String()
		}

		return result

	case KindFunction:
		// Args are always written so that a function without arguments or
		// method marker keeps its kind.
		args := make([]any, len(f.Arguments))
		for i, arg := range f.Arguments {
			args[i] = arg.ToNative()
		}

		result := map[string]any{keyArgs: args}
		if f.Method {
			result[keyMethod] = true
		}

		return result

	case KindTable:
		result := make(map[string]any, len(f.Children))
		for name, child := range f.Children {
			result[name] = child.ToNative()
		}

		return result

	default:
		return nil
	}
}

// ToNative converts an Argument to its generic source form.
func (a Argument) ToNative() map[string]any {
	result := map[string]any{keyType: a.Type.ToNative()}

	switch {
	case a.Required.Optional:
		result[keyRequired] = false
	case a.Required.Message != "":
		result[keyRequired] = a.Required.Message
	}

	return result
}

// ToNative converts an ArgumentType to its generic source form.
func (t ArgumentType) ToNative() any {
	switch t.Kind {
	case TypeConstant:
		constants := make([]any, len(t.Constants))
		for i, c := range t.Constants {
			constants[i] = c
		}

		return constants

	case TypeDisplay:
		return map[string]any{keyDisplay: t.Display}

	default:
		return t.String()
	}
}

// FormatJSON writes the library as JSON to the writer.
func (l *Library) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(l, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(l)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the library as YAML to the writer.
func (l *Library) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, l.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTOML writes the library as TOML to the writer.
func (l *Library) FormatTOML(_ context.Context, w io.Writer, indent int) error {
	enc := toml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndentTables(true)
		enc.SetIndentSymbol(strings.Repeat(" ", indent))
	}

	return enc.Encode(l.ToMap())
}

// Format writes the library to w in the given format.
func (l *Library) Format(
	ctx context.Context,
	w io.Writer,
	format Format,
	indent int,
) error {
	switch format {
	case FormatYAML:
		return l.FormatYAML(ctx, w, indent)
	case FormatTOML:
		return l.FormatTOML(ctx, w, indent)
	case FormatJSON:
		return l.FormatJSON(ctx, w, indent)
	default:
		return ErrUnknownFormat.Wrap(fmt.Errorf("%d", format))
	}
}
