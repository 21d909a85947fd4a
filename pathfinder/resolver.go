package pathfinder

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/pathfinder/diag"
	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pkg"
	"github.com/ardnew/pathfinder/sdoc"
)

// RootGroup is the name of the top-level group holding the path entries.
const RootGroup = "pathfinder"

// Source reads and parses the document at path, an absolute file path.
// Recoverable problems are delivered to warn.
type Source func(path string, warn sdoc.WarningFunc) (*sdoc.Document, error)

// DefaultSource reads an sdoc file that must begin with the "!sdoc" header.
// Spacers and comments are discarded.
func DefaultSource(path string, warn sdoc.WarningFunc) (*sdoc.Document, error) {
	return readSource(path, warn)
}

// loggedSource is [DefaultSource] tracing parser output to l.
func loggedSource(l log.Logger) Source {
	return func(path string, warn sdoc.WarningFunc) (*sdoc.Document, error) {
		return readSource(path, warn, sdoc.WithLogger(l))
	}
}

func readSource(path string, warn sdoc.WarningFunc, opts ...sdoc.Option) (*sdoc.Document, error) {
	return sdoc.ReadFile(path, append([]sdoc.Option{
		sdoc.WithoutSpacers(),
		sdoc.WithoutComments(),
		sdoc.RequireHeader(),
		sdoc.WithWarningFunc(warn),
	}, opts...)...)
}

// Option configures a [Resolver].
type Option = pkg.Option[config]

type config struct {
	env    Environment
	source Source
	logger log.Logger
	abs    func(string) (string, error)
}

// WithEnvironment sets the environment used to expand variable references.
// The default is [OSEnvironment].
func WithEnvironment(env Environment) Option {
	return func(c config) config {
		if env != nil {
			c.env = env
		}

		return c
	}
}

// WithSource sets the document reader. The default is [DefaultSource],
// tracing to the logger given with [WithLogger].
func WithSource(src Source) Option {
	return func(c config) config {
		if src != nil {
			c.source = src
		}

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

// Resolver owns a table of named, resolved paths.
//
// A Resolver is not safe for concurrent use. Callers that share one must
// serialize Load, Clear, and lookups, or swap between Resolver snapshots.
type Resolver struct {
	config

	sink  diag.Sink
	table map[string]string
}

// New returns an empty Resolver reporting to sink.
// A nil sink discards all diagnostics.
func New(sink diag.Sink, opts ...Option) *Resolver {
	if sink == nil {
		sink = diag.Discard
	}

	cfg := pkg.Wrap(config{env: OSEnvironment, abs: filepath.Abs}, opts...)
	if cfg.source == nil {
		cfg.source = loggedSource(cfg.logger)
	}

	return &Resolver{
		config: cfg,
		sink:   sink,
		table:  make(map[string]string),
	}
}

// Load reads the paths document at file and adds its entries to the table.
//
// Entries already in the table are kept, and a key defined again is ignored
// with a warning. Invalid entries are skipped with a diagnostic.
// Load reports false if file cannot be made absolute, cannot be parsed, or
// has no "pathfinder" group.
func (r *Resolver) Load(ctx context.Context, file string) bool {
	path := file

	if !filepath.IsAbs(path) {
		abs, err := r.abs(path)
		if err != nil {
			src, line := diag.Here(0)
			r.sink.Record(diag.Diagnostic{
				File:     src,
				Line:     line,
				Severity: diag.Error,
				Message:  `Unable to convert path "` + file + `" to an absolute path`,
			})

			return false
		}

		path = abs
	}

	doc, err := r.source(path, func(e *sdoc.Error) sdoc.Behavior {
		r.report(path, e.Line, e.Column, diag.Warning, parseMessage(e))

		return sdoc.Continue
	})
	if err != nil {
		var e *sdoc.Error
		if !errors.As(err, &e) {
			e = &sdoc.Error{Code: sdoc.Unknown}
		}

		r.report(path, e.Line, e.Column, diag.Error, parseMessage(e))

		return false
	}

	var root *sdoc.Item

	for _, it := range doc.Items {
		if it.Kind != sdoc.Group || it.NameString() != RootGroup {
			r.unused(path, it)

			continue
		}

		if root != nil {
			r.report(path, it.Line, it.Column, diag.Warning,
				`Multiple "`+RootGroup+`" groups specified in file (previously defined in `+
					strconv.FormatUint(uint64(root.Line), 10)+","+
					strconv.FormatUint(uint64(root.Column), 10)+")")

			continue
		}

		root = it

		for _, child := range it.Items {
			if child.Kind != sdoc.KeyValue {
				r.unused(path, child)

				continue
			}

			r.push(ctx, path, child)
		}
	}

	if root == nil {
		r.report(path, 0, 0, diag.Error, `No "`+RootGroup+`" group specified in file`)

		return false
	}

	r.logger.DebugContext(ctx, "paths loaded",
		slog.String("file", path),
		slog.Int("keys", len(r.table)))

	return true
}

// push validates one key-value entry and inserts its resolved path.
func (r *Resolver) push(ctx context.Context, file string, it *sdoc.Item) {
	fail := func(sev diag.Severity, msg string) {
		r.report(file, it.Line, it.Column, sev, msg)
	}

	if !ValidateKey(it.Name) {
		fail(diag.Error, "Invalid key "+quote(it.Name))

		return
	}

	key := keyBytes(it.Name)

	if _, ok := r.table[key]; ok {
		fail(diag.Warning, "Key "+quote(it.Name)+" already defined. Will be ignored!")

		return
	}

	if len(it.Value) == 0 {
		fail(diag.Error, "Invalid path "+quote(it.Name)+"=(empty)")

		return
	}

	text, ok := r.expand(it, fail)
	if !ok {
		return
	}

	path := text
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file), path)
	}

	path = filepath.Clean(path)
	r.table[key] = path

	r.logger.TraceContext(ctx, "path resolved",
		slog.String("key", it.NameString()),
		slog.String("path", path))
}

// expand concatenates the literal and environment segments of an entry's
// value in native encoding.
func (r *Resolver) expand(
	it *sdoc.Item,
	fail func(diag.Severity, string),
) (string, bool) {
	var sb strings.Builder

	for tok, err := range Tokens(it.Value) {
		if err != nil {
			fail(diag.Error, "Bad environment delimiters in "+quote(it.Name))

			return "", false
		}

		native := ToNative(tok.Text)

		switch tok.Kind {
		case TokenLiteral:
			if native == "" {
				fail(diag.Error, "Invalid path element "+quote(tok.Text)+
					" in key "+quote(it.Name))

				return "", false
			}

			sb.WriteString(native)

		case TokenEnv:
			if native == "" {
				fail(diag.Error, "Invalid environment variable "+quote(tok.Text)+
					" in key "+quote(it.Name))

				return "", false
			}

			value, ok := r.env.LookupEnv(native)
			if !ok {
				fail(diag.Warning, "Environment variable "+quote(tok.Text)+" not found")

				continue
			}

			sb.WriteString(value)
		}
	}

	return sb.String(), true
}

func (r *Resolver) unused(file string, it *sdoc.Item) {
	if msg, ok := unusedMessage(it); ok {
		r.report(file, it.Line, it.Column, diag.Warning, msg)
	}
}

func (r *Resolver) report(
	file string,
	line, col uint32,
	sev diag.Severity,
	msg string,
) {
	r.sink.Record(diag.Diagnostic{
		File:     file,
		Line:     line,
		Column:   col,
		Severity: sev,
		Message:  msg,
	})
}

// Path returns the resolved path for key, or "" if key is not defined.
func (r *Resolver) Path(key string) string {
	return r.table[key]
}

// Lookup returns the resolved path for key and whether it is defined.
func (r *Resolver) Lookup(key string) (string, bool) {
	p, ok := r.table[key]

	return p, ok
}

// Clear removes every entry from the table.
func (r *Resolver) Clear() {
	clear(r.table)
}

// Len returns the number of entries in the table.
func (r *Resolver) Len() int {
	return len(r.table)
}

// All yields every key and path in ascending key order.
func (r *Resolver) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range slices.Sorted(maps.Keys(r.table)) {
			if !yield(k, r.table[k]) {
				return
			}
		}
	}
}

// Table returns a copy of the table.
func (r *Resolver) Table() map[string]string {
	return maps.Clone(r.table)
}
