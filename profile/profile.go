package profile

import "github.com/ardnew/pathfinder/pkg"

// Config holds profiler settings.
type Config struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory
	Quiet bool   // suppress profiler log output
}

// Option configures a profiler.
type Option = pkg.Option[Config]

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start begins profiling as configured by opts.
//
// If built without the pprof tag, or the mode is empty or unknown, Start
// returns a no-op. Stop is always safe to call.
func Start(opts ...Option) Stopper {
	c := pkg.Make(opts...)

	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

func WithPath(path string) Option {
	return func(c Config) Config {
		c.Path = path

		return c
	}
}

func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

type ignore struct{}

func (ignore) Stop() {}
