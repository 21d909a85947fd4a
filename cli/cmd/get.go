package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/pathfinder/log"
)

// Get prints the resolved path of each key, one per line.
type Get struct {
	Keys []string `arg:"" help:"Keys to resolve." name:"key"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	keys, err := parseKeys(g.Keys)
	if err != nil {
		return err
	}

	r, err := load(ctx)
	if err != nil {
		return err
	}

	// Every key must resolve before anything is printed.
	paths := make([]string, len(keys))

	for i, key := range keys {
		path, ok := r.Lookup(key)
		if !ok {
			return ErrKeyNotFound.With(slog.String("key", g.Keys[i]))
		}

		paths[i] = path
	}

	out := stdout(ctx)

	for _, path := range paths {
		if _, err := fmt.Fprintln(out, path); err != nil {
			return err
		}
	}

	log.TraceContext(ctx, "get complete", slog.Int("count", len(paths)))

	return nil
}
