package std

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/luastd/log"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// builtinDir is the directory of builtinFS holding one file per library.
const builtinDir = "builtin"

// source is the raw text registered under a library name.
type source struct {
	format  Format
	data    []byte
	hash    uint64
	origin  string
	builtin bool
}

// Registry resolves library names to inflated libraries.
//
// Each name is decoded at most once and inflated at most once; the results
// are shared by every caller. A Registry is safe for concurrent use.
type Registry struct {
	mutex    sync.RWMutex
	sources  map[string]source
	decoded  cache
	inflated cache
	builtins bool
	logger   log.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithoutBuiltins creates a registry without the embedded libraries.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.builtins = false
	}
}

// NewRegistry returns a registry holding the embedded built-in libraries
// unless [WithoutBuiltins] is given.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sources:  make(map[string]source),
		builtins: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.builtins {
		r.registerBuiltins()
	}

	return r
}

func (r *Registry) registerBuiltins() {
	entries, err := fs.ReadDir(builtinFS, builtinDir)
	if err != nil {
		panic("std: read embedded libraries: " + err.Error())
	}

	for _, entry := range entries {
		file := path.Join(builtinDir, entry.Name())

		data, err := builtinFS.ReadFile(file)
		if err != nil {
			panic("std: read embedded library " + file + ": " + err.Error())
		}

		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))

		r.sources[name] = source{
			format:  FormatYAML,
			data:    data,
			hash:    xxh3.Hash(data),
			origin:  file,
			builtin: true,
		}
	}
}

// Register adds a custom library source under name.
//
// Registering identical content under the same name again is a no-op.
// Different content, or any content under a built-in name, fails with
// [ErrDuplicateLibrary]. The source is decoded lazily on first resolution.
func (r *Registry) Register(name string, format Format, data []byte) error {
	return r.register(name, format, data, "")
}

// RegisterReader reads a custom library source from rd and registers it.
func (r *Registry) RegisterReader(
	name string,
	format Format,
	rd io.Reader,
) error {
	// Wrap reader with async read-ahead so that reading overlaps with
	// buffer growth for large sources.
	ra := readahead.NewReader(rd)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return ErrReadInput.Wrap(err).With(slog.String("library", name))
	}

	return r.register(name, format, data, "")
}

// RegisterFile registers the library source in the named file. The format
// is inferred from the file extension.
func (r *Registry) RegisterFile(name, file string) error {
	format, err := FormatOf(file)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return ErrReadInput.Wrap(err).With(
			slog.String("library", name),
			slog.String("file", file),
		)
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return ErrReadInput.Wrap(err).With(
			slog.String("library", name),
			slog.String("file", file),
		)
	}

	return r.register(name, format, data, file)
}

func (r *Registry) register(
	name string,
	format Format,
	data []byte,
	origin string,
) error {
	hash := xxh3.Hash(data)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing, ok := r.sources[name]; ok {
		if existing.builtin || existing.hash != hash ||
			existing.format != format {
			return ErrDuplicateLibrary.With(slog.String("library", name))
		}

		r.logger.Trace(
			"register unchanged",
			slog.String("library", name),
			slog.String("hash", strconv.FormatUint(hash, 16)),
		)

		return nil
	}

	r.sources[name] = source{
		format: format,
		data:   slices.Clone(data),
		hash:   hash,
		origin: origin,
	}

	r.logger.Trace(
		"register",
		slog.String("library", name),
		slog.String("format", format.String()),
		slog.Int("source_bytes", len(data)),
		slog.String("hash", strconv.FormatUint(hash, 16)),
	)

	return nil
}

func (r *Registry) source(name string) (source, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	src, ok := r.sources[name]

	return src, ok
}

// Names returns every registered library name in lexical order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return sortedKeys(r.sources)
}

// Builtins returns the names of the embedded libraries in lexical order.
func (r *Registry) Builtins() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.sources))

	for name, src := range r.sources {
		if src.builtin {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// IsBuiltin reports whether name is one of the embedded libraries.
func (r *Registry) IsBuiltin(name string) bool {
	src, ok := r.source(name)

	return ok && src.builtin
}

// Resolve returns the inflated library registered under name.
//
// An unregistered name fails with [ErrLibraryNotFound], which callers probing
// optional names may treat as a normal outcome. A custom library that cannot
// be decoded, names a missing base, or takes part in a base cycle fails with
// a descriptive error. The same failures in a built-in library are defects
// and panic.
func (r *Registry) Resolve(ctx context.Context, name string) (*Library, error) {
	src, ok := r.source(name)
	if !ok {
		return nil, ErrLibraryNotFound.With(slog.String("library", name))
	}

	lib, err := r.resolve(ctx, name)
	if err != nil && src.builtin {
		panic(fmt.Sprintf(
			"std: built-in standard library %q failed to load: %v", name, err,
		))
	}

	return lib, err
}

func (r *Registry) resolve(ctx context.Context, name string) (*Library, error) {
	// Validate the whole base chain before inflating anything. The per-name
	// once guards would otherwise deadlock on a cycle resolved concurrently
	// from two of its members.
	chain, err := r.chain(ctx, name)
	if err != nil {
		return nil, err
	}

	r.logger.TraceContext(
		ctx,
		"resolve",
		slog.String("library", name),
		slog.String("chain", strings.Join(chain, " -> ")),
	)

	return r.flatten(ctx, name)
}

// chain follows the base references of name through the raw sources. It
// fails when a base is not registered or a name repeats.
func (r *Registry) chain(ctx context.Context, name string) ([]string, error) {
	var chain []string

	visiting := make(map[string]bool)

	for current := name; current != ""; {
		if visiting[current] {
			return nil, ErrCircularBase.With(
				slog.String("library", name),
				slog.String("chain", strings.Join(append(chain, current), " -> ")),
			)
		}

		visiting[current] = true
		chain = append(chain, current)

		raw, err := r.decode(ctx, current)
		if err != nil {
			if errors.Is(err, ErrLibraryNotFound) && len(chain) > 1 {
				return nil, ErrBaseNotFound.With(
					slog.String("library", chain[len(chain)-2]),
					slog.String("base", current),
				)
			}

			return nil, err
		}

		current = raw.Base
	}

	return chain, nil
}

// decode returns the raw, uninflated library registered under name.
func (r *Registry) decode(ctx context.Context, name string) (*Library, error) {
	src, ok := r.source(name)
	if !ok {
		return nil, ErrLibraryNotFound.With(slog.String("library", name))
	}

	return r.decoded.load(ctx, r, "decode", name, func() (*Library, error) {
		raw, err := Decode(src.format, src.data)
		if err != nil {
			attrs := []slog.Attr{slog.String("library", name)}
			if src.origin != "" {
				attrs = append(attrs, slog.String("origin", src.origin))
			}

			return nil, ErrInvalidLibrary.With(attrs...).Wrap(err)
		}

		raw.Name = name

		r.logger.TraceContext(
			ctx,
			"decode",
			slog.String("library", name),
			slog.String("format", src.format.String()),
			slog.Int("globals", len(raw.Globals)),
		)

		return raw, nil
	})
}

// flatten returns the inflated library for name. The base chain of name
// must already be validated by [Registry.chain].
func (r *Registry) flatten(ctx context.Context, name string) (*Library, error) {
	return r.inflated.load(ctx, r, "inflate", name, func() (*Library, error) {
		raw, err := r.decode(ctx, name)
		if err != nil {
			return nil, err
		}

		var base *Library

		if raw.Base != "" {
			base, err = r.flatten(ctx, raw.Base)
			if err != nil {
				return nil, err
			}
		}

		lib := inflate(raw, base)

		r.logger.TraceContext(
			ctx,
			"inflate",
			slog.String("library", name),
			slog.String("base", raw.Base),
			slog.Int("globals", len(lib.Globals)),
		)

		return lib, nil
	})
}

// Preload resolves every registered library concurrently and returns the
// first error encountered.
func (r *Registry) Preload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, name := range r.Names() {
		g.Go(func() error {
			_, err := r.Resolve(gctx, name)

			return err
		})
	}

	return g.Wait()
}

// defaultRegistry holds only the built-in libraries.
var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// Builtin returns the inflated built-in library called name, or false if
// there is none. It panics if the embedded library is defective.
func Builtin(name string) (*Library, bool) {
	reg := defaultRegistry()
	if !reg.IsBuiltin(name) {
		return nil, false
	}

	lib, err := reg.Resolve(context.Background(), name)
	if err != nil {
		return nil, false
	}

	return lib, true
}
