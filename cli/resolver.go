package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pathfinder"
	"github.com/ardnew/pathfinder/sdoc"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from the
// group called name in an sdoc configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "cli"), "/path/to/config")
//
// Items of the group are converted as follows:
//   - A key-value item sets the flag with the same name. Hyphens in flag
//     names may be written as underscores (e.g., "log_level").
//   - A singlet sets a boolean flag to true.
//   - Environment references ("${HOME}") in values are expanded from the
//     process environment. Undefined variables expand to nothing.
//   - Nested groups and other items are ignored.
//
// Example configuration file:
//
//	!sdoc 1
//	cli {
//	  log_level = debug
//	  log_caller
//	  file = "${HOME}/.paths"
//	}
//
// A file that cannot be parsed, or has no such group, resolves nothing.
// Command-line flags override configuration file values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := sdoc.Parse(r, sdoc.WithoutSpacers(), sdoc.WithoutComments())
		if err != nil {
			log.WarnContext(ctx, "configuration ignored",
				slog.String("group", name),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		cfg := config{}

		for group := range doc.Groups(name) {
			for _, it := range group.Items {
				switch it.Kind {
				case sdoc.KeyValue:
					cfg[it.NameString()] = expandEnv(it.Value)

				case sdoc.Singlet:
					cfg[it.NameString()] = true
				}
			}
		}

		log.TraceContext(ctx, "configuration loaded",
			slog.String("group", name),
			slog.Int("count", len(cfg)),
		)

		return cfg, nil
	}
}

// expandEnv substitutes environment references in value. Text following an
// unpaired delimiter is dropped.
func expandEnv(value []rune) string {
	var b strings.Builder

	for tok, err := range pathfinder.Tokens(value) {
		if err != nil {
			break
		}

		switch tok.Kind {
		case pathfinder.TokenLiteral:
			b.WriteString(string(tok.Text))

		case pathfinder.TokenEnv:
			v, _ := pathfinder.OSEnvironment.LookupEnv(string(tok.Text))
			b.WriteString(v)
		}
	}

	return b.String()
}

// config implements [kong.Resolver] over the items of a configuration group.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
// Flags are matched by name, then by name with hyphens replaced by
// underscores. Unknown flags resolve to nil so that kong uses their defaults.
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
