package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pathfinder"
	"github.com/ardnew/pathfinder/pkg"
	"github.com/ardnew/pathfinder/profile"
	"github.com/ardnew/pathfinder/sdoc"
)

// configGroup is the name of the group holding flag values in the
// configuration file.
const configGroup = "cli"

// Init writes a starter paths document and a configuration file holding the
// current flag values.
type Init struct {
	Force bool `help:"Overwrite existing files."`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if err := i.write(ctx, fileFrom(ctx), writePaths); err != nil {
		return err
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	return i.write(ctx, varFrom(ctx, ConfigIdentifier),
		func(w io.Writer) error { return writeConfig(w, ktx) },
	)
}

func (i *Init) write(
	ctx context.Context,
	path string,
	content func(io.Writer) error,
) error {
	if path == "" {
		return nil
	}

	_, err := os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if err := content(file); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized file", slog.String("path", path))

	return nil
}

// writePaths writes a paths document naming the user's home directory and
// the directories used by this program.
func writePaths(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "!sdoc %d\n", sdoc.SupportedVersion)
	fmt.Fprintf(&b, "# Named paths. Relative paths are anchored at this file.\n")
	fmt.Fprintf(&b, "%s {\n", pathfinder.RootGroup)
	fmt.Fprintf(&b, "  home = \"${HOME}\"\n")
	fmt.Fprintf(&b, "  config = %s\n", quote(pkg.ConfigDir()))
	fmt.Fprintf(&b, "  cache = %s\n", quote(pkg.CacheDir()))
	fmt.Fprintf(&b, "}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

// writeConfig writes the value of every visible flag in ktx as an item of the
// configuration group.
func writeConfig(w io.Writer, ktx *kong.Context) error {
	var b strings.Builder

	fmt.Fprintf(&b, "!sdoc %d\n", sdoc.SupportedVersion)
	fmt.Fprintf(&b, "%s {\n", configGroup)

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		value, ok := flagValue(ktx, flag)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "  %s = %s\n",
			strings.ReplaceAll(flag.Name, "-", "_"), quote(value))
	}

	fmt.Fprintf(&b, "}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

// flagValue returns the text of a flag's value, or false if it has none.
func flagValue(ktx *kong.Context, flag *kong.Flag) (string, bool) {
	switch v := ktx.FlagValue(flag).(type) {
	case nil:
		return "", false

	case string:
		return v, v != ""

	case []string:
		return strings.Join(v, ","), len(v) > 0

	case fmt.Stringer:
		return v.String(), true

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}

// quote returns s as a quoted sdoc value.
func quote(s string) string {
	return `"` + strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"\n", `\n`,
		"\t", `\t`,
	).Replace(s) + `"`
}
