package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ardnew/mung"
	"github.com/iancoleman/strcase"

	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pathfinder"
)

const (
	shellPOSIX = "posix"
	shellFish  = "fish"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Env prints shell commands that export every resolved path as an
// environment variable.
//
// Variable names are the prefixed keys in screaming snake case. Keys that do
// not form a valid identifier are skipped.
type Env struct {
	Prefix string   `help:"Prefix prepended to each key to form variable names."`
	Path   []string `help:"Keys whose paths are prepended to PATH."               name:"path"`
	Shell  string   `default:"posix" enum:"posix,fish"                            help:"Shell syntax (${enum})."`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	keys, err := parseKeys(e.Path)
	if err != nil {
		return err
	}

	r, err := load(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for key, path := range r.All() {
		name := strcase.ToScreamingSnake(e.Prefix + pathfinder.DisplayKey(key))
		if !identifier.MatchString(name) {
			log.WarnContext(ctx, "key skipped",
				slog.String("key", pathfinder.DisplayKey(key)),
				slog.String("name", name),
			)

			continue
		}

		if err := e.export(out, name, path); err != nil {
			return err
		}
	}

	if len(keys) == 0 {
		return nil
	}

	prefix := make([]string, len(keys))

	for i, key := range keys {
		path, ok := r.Lookup(key)
		if !ok {
			return ErrKeyNotFound.With(slog.String("key", e.Path[i]))
		}

		prefix[i] = path
	}

	return e.export(out, "PATH", mungPrefix(os.Getenv("PATH"), prefix...))
}

func (e *Env) export(w io.Writer, name, value string) error {
	var err error

	switch e.Shell {
	case shellFish:
		_, err = fmt.Fprintf(w, "set -gx %s %s;\n", name, quoteFish(value))

	default:
		_, err = fmt.Fprintf(w, "export %s=%s\n", name, quotePOSIX(value))
	}

	return err
}

// mungPrefix prepends prefix to the path list subject, dropping duplicates.
func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func quotePOSIX(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteFish(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
