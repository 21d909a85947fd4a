package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pathfinder/diag"
	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pathfinder"
)

type (
	contextKey struct{}
	fileKey    struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithFile returns a new context.Context naming the paths document that
// commands load.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileKey{}, file)
}

// fileFrom returns the paths document stored by [WithFile], or else the
// document named by the kong variable [PathsIdentifier].
func fileFrom(ctx context.Context) string {
	if file, ok := ctx.Value(fileKey{}).(string); ok && file != "" {
		return file
	}

	return varFrom(ctx, PathsIdentifier)
}

func varFrom(ctx context.Context, name string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Model.Vars()[name]
	}

	return ""
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// load returns a resolver populated from the paths document in ctx.
// Diagnostics are written to the default logger.
func load(ctx context.Context) (*pathfinder.Resolver, error) {
	file := fileFrom(ctx)

	r := pathfinder.New(diag.LogSink{}, pathfinder.WithLogger(log.Default()))
	if !r.Load(ctx, file) {
		return nil, ErrLoad.With(slog.String("file", file))
	}

	return r, nil
}

// parseKeys converts command-line keys to table keys.
func parseKeys(keys []string) ([]string, error) {
	parsed := make([]string, len(keys))

	for i, key := range keys {
		k, ok := pathfinder.KeyString(key)
		if !ok || !pathfinder.ValidateKey([]rune(key)) {
			return nil, ErrInvalidKey.With(slog.String("key", key))
		}

		parsed[i] = k
	}

	return parsed, nil
}
