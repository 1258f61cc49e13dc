package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// resolve is a [kong.ConfigurationLoader] reading a TOML configuration
// file. Top-level keys name flags, with either hyphens or underscores:
//
//	std = "lua52"
//	log_level = "debug"
//	extension-root = ["roblox"]
//
//	[library]
//	love = "~/.config/luastd/love.yaml"
//
// Command-line flags override values from the file.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	cfg := make(config, len(doc))
	for key, value := range doc {
		cfg[strings.ReplaceAll(key, "_", "-")] = flagText(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over the decoded configuration file.
// Keys use the hyphenated flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	value, ok := c[flag.Name]
	if !ok {
		return nil, nil
	}

	return value, nil
}

// flagText converts a decoded TOML value to the form kong parses from the
// command line. Booleans are left as is; numbers become strings; arrays
// join with the default kong separator and tables with the map separator.
func flagText(value any) any {
	switch v := value.(type) {
	case bool, string:
		return v

	case int64:
		return strconv.FormatInt(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(flagText(e))
		}

		return strings.Join(parts, ",")

	case map[string]any:
		parts := make([]string, 0, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, key+"="+fmt.Sprint(flagText(v[key])))
		}

		return strings.Join(parts, ";")

	default:
		return fmt.Sprint(v)
	}
}
