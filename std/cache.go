package std

import (
	"context"
	"log/slog"
	"sync"
)

// state holds the outcome of a computation that runs at most once.
// Callers racing on the same state block until it is published.
type state struct {
	once sync.Once
	lib  *Library
	err  error
}

// cache maps library names to once-computed results.
type cache struct {
	entries sync.Map // string -> *state
}

// load returns the published result for name, running compute first if no
// caller has done so yet.
func (c *cache) load(
	ctx context.Context,
	r *Registry,
	stage, name string,
	compute func() (*Library, error),
) (*Library, error) {
	value, hit := c.entries.LoadOrStore(name, new(state))

	st, ok := value.(*state)
	if !ok {
		panic("std: invalid cache entry type")
	}

	st.once.Do(func() {
		st.lib, st.err = compute()
	})

	r.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("stage", stage),
		slog.String("library", name),
		slog.Bool("cache_hit", hit),
		slog.Bool("failed", st.err != nil),
	)

	return st.lib, st.err
}
