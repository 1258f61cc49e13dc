package std

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format identifies the text encoding of a library source.
type Format int

const (
	FormatYAML Format = iota // yaml
	FormatTOML               // toml
	FormatJSON               // json
)

// String returns the lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. Matching is case-insensitive and "yml"
// is accepted as an alias of "yaml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, ErrUnknownFormat.With(slog.String("format", s))
	}
}

// FormatOf infers the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, ErrUnknownFormat.With(slog.String("file", path))
	}

	f, err := ParseFormat(ext)
	if err != nil {
		return 0, ErrUnknownFormat.With(slog.String("file", path))
	}

	return f, nil
}

// unmarshal decodes data into a generic tree of mappings, sequences and
// scalars. JSON is decoded as YAML, of which it is a subset.
func (f Format) unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any

	switch f {
	case FormatYAML, FormatJSON:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, ErrDecode.With(slog.String("format", f.String())).Wrap(err)
		}

	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, ErrDecode.With(slog.String("format", f.String())).Wrap(err)
		}

	default:
		return nil, ErrUnknownFormat.With(slog.String("format", f.String()))
	}

	return doc, nil
}
