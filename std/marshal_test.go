package std

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLibrary_FormatRoundTripJSON(t *testing.T) {
	lib, ok := Builtin("lua52")
	if !ok {
		t.Fatal("Builtin(lua52) not found")
	}

	var buf bytes.Buffer
	if err := lib.Format(context.Background(), &buf, FormatJSON, 2); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got, err := Decode(FormatJSON, buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Base != "lua51" {
		t.Errorf("Base = %q, want lua51", got.Base)
	}

	if diff := cmp.Diff(lib.Globals, got.Globals, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary_FormatRoundTrip(t *testing.T) {
	lib := &Library{
		Base: "lua51",
		Globals: map[string]Field{
			"open": NewFunction(false,
				Arg(ArgumentType{Kind: TypeString}),
				OptionalArg(Constant("r", "w", "a")),
				Argument{Required: RequiredWith("needed"), Type: Display("handle")},
			),
			"app": NewTable(map[string]Field{
				"name":  NewProperty(WritableOverridden),
				"close": NewFunction(true),
			}),
		},
	}

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		for _, indent := range []int{0, 4} {
			t.Run(format.String(), func(t *testing.T) {
				var buf bytes.Buffer
				if err := lib.Format(context.Background(), &buf, format, indent); err != nil {
					t.Fatalf("Format() error = %v", err)
				}

				got, err := Decode(format, buf.Bytes())
				if err != nil {
					t.Fatalf("Decode() error = %v\n%s", err, buf.String())
				}

				if diff := cmp.Diff(lib, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestLibrary_FormatUnknown(t *testing.T) {
	err := (&Library{}).Format(context.Background(), &bytes.Buffer{}, Format(42), 0)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Format() error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestField_ToNative(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  map[string]any
	}{
		{
			name:  "read-only property omits writable",
			field: NewProperty(WritableNone),
			want:  map[string]any{"property": true},
		},
		{
			name:  "writable property",
			field: NewProperty(WritableNewFields),
			want:  map[string]any{"property": true, "writable": "new-fields"},
		},
		{
			name:  "method without arguments keeps args",
			field: NewFunction(true),
			want:  map[string]any{"args": []any{}, "method": true},
		},
		{
			name:  "removed",
			field: NewRemoved(),
			want:  map[string]any{"removed": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.field.ToNative()); diff != "" {
				t.Errorf("ToNative() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestField_String(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{NewFunction(false), "function()"},
		{
			NewFunction(true, Arg(ArgumentType{Kind: TypeString}), OptionalArg(ArgumentType{Kind: TypeNumber})),
			"method(string, number?)",
		},
		{NewFunction(false, OptionalArg(ArgumentType{Kind: TypeVararg})), "function(...)"},
		{NewProperty(WritableNone), "property (read-only)"},
		{NewProperty(WritableFull), "property (full)"},
		{NewTable(nil), "table (0 members)"},
		{NewRemoved(), "removed"},
	}

	for _, tt := range tests {
		if got := tt.field.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "yaml", want: FormatYAML},
		{in: " YML ", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "Toml", want: FormatTOML},
		{in: "ini", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}

	for file, want := range map[string]Format{
		"a/b/love.yaml": FormatYAML,
		"host.toml":     FormatTOML,
		"x.JSON":        FormatJSON,
	} {
		if got, err := FormatOf(file); err != nil || got != want {
			t.Errorf("FormatOf(%s) = %v, %v; want %v", file, got, err, want)
		}
	}

	if _, err := FormatOf("Makefile"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatOf(Makefile) error = %v", err)
	}
}

func TestPath(t *testing.T) {
	p := ParsePath("string.format")
	if diff := cmp.Diff(Path{"string", "format"}, p); diff != "" {
		t.Errorf("ParsePath() mismatch (-want +got):\n%s", diff)
	}

	child := p[:1].Child("rep")
	if child.String() != "string.rep" || p.String() != "string.format" {
		t.Errorf("Child() = %s, parent = %s", child, p)
	}

	if ParsePath("") != nil {
		t.Error(`ParsePath("") is not empty`)
	}
}

func TestEnglishList(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"lua51"}, "lua51"},
		{[]string{"lua51", "lua52"}, "lua51 and lua52"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
	}

	for _, tt := range tests {
		if got := englishList(tt.items, "and"); got != tt.want {
			t.Errorf("englishList(%q) = %q, want %q", tt.items, got, tt.want)
		}
	}

	if got := plural(1, "library", "libraries"); got != "library" {
		t.Errorf("plural(1) = %q", got)
	}

	if got := plural(0, "library", "libraries"); !strings.HasSuffix(got, "ies") {
		t.Errorf("plural(0) = %q", got)
	}
}

func TestError_Is(t *testing.T) {
	err := ErrInvalidLibrary.
		With(slog.String("library", "x")).
		Wrap(ErrInvalidField.Wrap(ErrUnknownType))

	for _, target := range []error{ErrInvalidLibrary, ErrInvalidField, ErrUnknownType} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(%v, %v) = false", err, target)
		}
	}

	if errors.Is(err, ErrCircularBase) {
		t.Error("errors.Is(err, ErrCircularBase) = true")
	}
}
