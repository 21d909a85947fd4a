package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/pathfinder/cli/cmd/browse"
	"github.com/ardnew/pathfinder/pathfinder"
)

// Browse opens an interactive, fuzzy-filtered view of the resolved paths.
// The path selected with enter is printed on exit.
type Browse struct{}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNoTerminal
	}

	path, err := browse.Run(ctx, snapshot)
	if err != nil || path == "" {
		return err
	}

	_, err = fmt.Fprintln(stdout(ctx), path)

	return err
}

// snapshot loads a fresh resolver and returns its table. Each call uses a new
// resolver, so a failed reload never disturbs the snapshot being browsed.
func snapshot(ctx context.Context) ([]browse.Entry, error) {
	r, err := load(ctx)
	if err != nil {
		return nil, err
	}

	snap := make([]browse.Entry, 0, r.Len())
	for key, path := range r.All() {
		snap = append(snap, browse.Entry{Key: pathfinder.DisplayKey(key), Path: path})
	}

	return snap, nil
}
