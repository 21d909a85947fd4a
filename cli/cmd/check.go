package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/pathfinder/diag"
	"github.com/ardnew/pathfinder/log"
	"github.com/ardnew/pathfinder/pathfinder"
)

// Check loads each paths document with its own resolver and prints the
// diagnostics it produces, grouped by file in argument order.
//
// Check fails if any document cannot be loaded or reports an error.
type Check struct {
	Jobs  int      `help:"Maximum number of documents loaded concurrently (0 for one per CPU)." short:"j"`
	Files []string `arg:""                                                                       help:"Paths documents to check." name:"file" type:"path"`
}

type checkResult struct {
	store diag.Store
	size  int
	ok    bool
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	results := make([]checkResult, len(c.Files))

	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range c.Files {
		g.Go(func() error {
			res := &results[i]

			r := pathfinder.New(&res.store, pathfinder.WithLogger(log.Default()))
			res.ok = r.Load(gctx, file)
			res.size = r.Len()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out := stdout(ctx)

	var werr error

	report := diag.SinkFunc(func(d diag.Diagnostic) {
		if werr == nil {
			_, werr = fmt.Fprintln(out, d.String())
		}
	})

	var merr *multierror.Error

	for i, file := range c.Files {
		res := &results[i]
		errs := res.store.Count(diag.Error)
		warns := res.store.Count(diag.Warning)

		res.store.Replay(report)

		if werr != nil {
			return werr
		}

		log.DebugContext(ctx, "document checked",
			slog.String("file", file),
			slog.Bool("loaded", res.ok),
			slog.Int("keys", res.size),
			slog.Int("errors", errs),
			slog.Int("warnings", warns),
		)

		if !res.ok || errs > 0 {
			merr = multierror.Append(merr, ErrCheck.
				With(slog.String("file", file), slog.Int("errors", errs)).
				Wrap(fmt.Errorf("%s: %d errors", file, errs)))

			continue
		}

		if _, err := fmt.Fprintf(out, "%s: ok (%d keys, %d warnings)\n", file, res.size, warns); err != nil {
			return err
		}
	}

	return merr.ErrorOrNil()
}
