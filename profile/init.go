package profile

// Tag names the build tag enabling profiling. It is also the name of the
// default output subdirectory and the prefix of the profiling flags.
const Tag = "pprof"

// Config describes a profiler: which mode to run, where to write the
// profile, and whether pkg/profile may log to standard error.
type Config struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option modifies a profiler [Config].
type Option func(Config) Config

// NewConfig returns a Config with opts applied.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(c Config) Config {
		c.Path = path

		return c
	}
}

// WithQuiet suppresses the messages pkg/profile writes on start and stop.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Start starts the profiler and returns the handle stopping it.
//
// When built without the pprof tag, or when the mode is empty or unknown,
// Start returns a no-op handle. Stop is always safe to call.
func (c Config) Start() interface{ Stop() } {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
