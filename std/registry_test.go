package std

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRegister(t *testing.T, reg *Registry, name, src string) {
	t.Helper()

	if err := reg.Register(name, FormatYAML, []byte(src)); err != nil {
		t.Fatalf("Register(%s) error = %v", name, err)
	}
}

func TestRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	want := []string{"lua51", "lua52"}
	if diff := cmp.Diff(want, reg.Builtins()); diff != "" {
		t.Fatalf("Builtins() mismatch (-want +got):\n%s", diff)
	}

	ctx := context.Background()

	for _, name := range want {
		lib, err := reg.Resolve(ctx, name)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", name, err)
		}

		if lib.Name != name || len(lib.Globals) == 0 {
			t.Errorf("Resolve(%s) = %q with %d globals", name, lib.Name, len(lib.Globals))
		}

		for path, field := range lib.All() {
			if field.Kind == KindRemoved {
				t.Errorf("%s: %s is a removal", name, path)
			}
		}
	}
}

func TestRegistry_Lua52Inherits(t *testing.T) {
	lib, ok := Builtin("lua52")
	if !ok {
		t.Fatal("Builtin(lua52) not found")
	}

	if lib.Base != "lua51" {
		t.Errorf("Base = %q, want lua51", lib.Base)
	}

	tests := []struct {
		path  string
		found bool
	}{
		{"print", true},
		{"string.format", true},
		{"bit32.band", true},
		{"rawlen", true},
		{"table.unpack", true},
		{"setfenv", false},
		{"unpack", false},
		{"table.getn", false},
	}

	for _, tt := range tests {
		if _, ok := lib.FindGlobal(ParsePath(tt.path)); ok != tt.found {
			t.Errorf("lua52 FindGlobal(%s) = %v, want %v", tt.path, ok, tt.found)
		}
	}

	if _, ok := Builtin("lua99"); ok {
		t.Error("Builtin(lua99) found")
	}
}

func TestRegistry_Lua51Type(t *testing.T) {
	lib, ok := Builtin("lua51")
	if !ok {
		t.Fatal("Builtin(lua51) not found")
	}

	field, ok := lib.FindGlobal(ParsePath("type"))
	if !ok || len(field.Arguments) == 0 {
		t.Fatalf("type = %v, %v", field, ok)
	}

	if msg := field.Arguments[0].Required.Message; msg == "" {
		t.Error("type argument has no required message")
	}
}

func TestRegistry_CustomBase(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "love", "base: lua51\nlove:\n  graphics:\n    print:\n      args:\n        - type: string\n")

	lib, err := reg.Resolve(context.Background(), "love")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for _, path := range []string{"love.graphics.print", "print", "setfenv"} {
		if _, ok := lib.FindGlobal(ParsePath(path)); !ok {
			t.Errorf("%s not found", path)
		}
	}

	if reg.IsBuiltin("love") {
		t.Error("IsBuiltin(love) = true")
	}
}

func TestRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]string
		resolve string
		is      error
		message string
	}{
		{
			name:    "not registered",
			resolve: "nope",
			is:      ErrLibraryNotFound,
		},
		{
			name:    "missing base",
			sources: map[string]string{"a": "base: ghost\nf:\n  args: []\n"},
			resolve: "a",
			is:      ErrBaseNotFound,
			message: "base=ghost",
		},
		{
			name: "cycle",
			sources: map[string]string{
				"a": "base: b\n",
				"b": "base: a\n",
			},
			resolve: "a",
			is:      ErrCircularBase,
			message: "a -> b -> a",
		},
		{
			name:    "self cycle",
			sources: map[string]string{"a": "base: a\n"},
			resolve: "a",
			is:      ErrCircularBase,
		},
		{
			name:    "invalid source",
			sources: map[string]string{"a": "f:\n  property: true\n  method: true\n"},
			resolve: "a",
			is:      ErrAmbiguousField,
			message: "library=a",
		},
		{
			name: "invalid base",
			sources: map[string]string{
				"a": "base: b\n",
				"b": "f: 1\n",
			},
			resolve: "a",
			is:      ErrInvalidLibrary,
			message: "library=b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(WithoutBuiltins())
			for name, src := range tt.sources {
				mustRegister(t, reg, name, src)
			}

			lib, err := reg.Resolve(context.Background(), tt.resolve)
			if !errors.Is(err, tt.is) {
				t.Fatalf("Resolve() = %v, %v; want %v", lib, err, tt.is)
			}

			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err, tt.message)
			}
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	src := "f:\n  args: []\n"

	mustRegister(t, reg, "custom", src)

	if err := reg.Register("custom", FormatYAML, []byte(src)); err != nil {
		t.Errorf("identical re-register error = %v", err)
	}

	err := reg.Register("custom", FormatYAML, []byte("g:\n  args: []\n"))
	if !errors.Is(err, ErrDuplicateLibrary) {
		t.Errorf("different re-register error = %v, want %v", err, ErrDuplicateLibrary)
	}

	err = reg.Register("lua51", FormatYAML, []byte(src))
	if !errors.Is(err, ErrDuplicateLibrary) {
		t.Errorf("built-in re-register error = %v, want %v", err, ErrDuplicateLibrary)
	}
}

func TestRegistry_RegisterSourceIsCopied(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())
	src := []byte("f:\n  args: []\n")

	if err := reg.Register("a", FormatYAML, src); err != nil {
		t.Fatal(err)
	}

	copy(src, "zz")

	if _, err := reg.Resolve(context.Background(), "a"); err != nil {
		t.Errorf("Resolve() error = %v after caller reused its buffer", err)
	}
}

func TestRegistry_RegisterReaderAndFile(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())

	err := reg.RegisterReader("json", FormatJSON,
		strings.NewReader(`{"f": {"args": [{"type": "number"}]}}`))
	if err != nil {
		t.Fatalf("RegisterReader() error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "host.toml")
	if err := os.WriteFile(file, []byte("base = \"json\"\n[g]\nproperty = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := reg.RegisterFile("host", file); err != nil {
		t.Fatalf("RegisterFile() error = %v", err)
	}

	lib, err := reg.Resolve(context.Background(), "host")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := lib.Globals["f"].String(); got != "function(number)" {
		t.Errorf("f = %q, want function(number)", got)
	}

	if got := lib.Globals["g"].String(); got != "property (read-only)" {
		t.Errorf("g = %q, want property (read-only)", got)
	}

	if diff := cmp.Diff([]string{"host", "json"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	err = reg.RegisterFile("bad", filepath.Join(t.TempDir(), "bad.txt"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("RegisterFile(bad.txt) error = %v, want %v", err, ErrUnknownFormat)
	}

	err = reg.RegisterFile("missing", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("RegisterFile(missing.yaml) error = %v, want %v", err, ErrReadInput)
	}
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "a", "base: lua52\nx:\n  property: true\n")

	const n = 16

	var (
		wg   sync.WaitGroup
		libs [n]*Library
		errs [n]error
	)

	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			libs[i], errs[i] = reg.Resolve(context.Background(), "a")
		}()
	}

	wg.Wait()

	for i := range n {
		if errs[i] != nil {
			t.Fatalf("Resolve() #%d error = %v", i, errs[i])
		}

		if libs[i] != libs[0] {
			t.Errorf("Resolve() #%d returned a different instance", i)
		}
	}
}

func TestRegistry_ConcurrentCycle(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())
	mustRegister(t, reg, "a", "base: b\n")
	mustRegister(t, reg, "b", "base: a\n")

	var wg sync.WaitGroup

	for _, name := range []string{"a", "b", "a", "b"} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := reg.Resolve(context.Background(), name); !errors.Is(err, ErrCircularBase) {
				t.Errorf("Resolve(%s) error = %v, want %v", name, err, ErrCircularBase)
			}
		}()
	}

	wg.Wait()
}

func TestRegistry_Preload(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "host", "base: lua52\nhost:\n  property: true\n")

	if err := reg.Preload(context.Background()); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}

	mustRegister(t, reg, "broken", "base: missing\n")

	if err := reg.Preload(context.Background()); !errors.Is(err, ErrBaseNotFound) {
		t.Errorf("Preload() error = %v, want %v", err, ErrBaseNotFound)
	}
}
