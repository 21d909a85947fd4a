package sdoc

import (
	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pkg"
)

// Behavior is returned by a [WarningFunc] to decide how parsing proceeds.
type Behavior uint8

const (
	Continue Behavior = iota
	Abort
)

// WarningFunc receives each recoverable problem. Returning [Abort] turns the
// warning into the error returned by the parse.
type WarningFunc func(*Error) Behavior

// Option configures parsing.
type Option = pkg.Option[config]

type config struct {
	spacers  bool
	comments bool
	header   bool
	warn     WarningFunc
	logger   log.Logger
}

func makeConfig(opts ...Option) config {
	return pkg.Wrap(config{spacers: true, comments: true}, opts...)
}

// WithoutSpacers omits [Spacer] items from the document.
func WithoutSpacers() Option {
	return func(c config) config {
		c.spacers = false

		return c
	}
}

// WithoutComments omits [Comment] items from the document.
func WithoutComments() Option {
	return func(c config) config {
		c.comments = false

		return c
	}
}

// RequireHeader makes a missing "!sdoc" header an error.
func RequireHeader() Option {
	return func(c config) config {
		c.header = true

		return c
	}
}

// WithWarningFunc sets the function that receives recoverable problems.
// Without one, every warning is ignored.
func WithWarningFunc(fn WarningFunc) Option {
	return func(c config) config {
		c.warn = fn

		return c
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}
