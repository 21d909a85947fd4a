package cmd

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-multierror"
)

var errClosed = errors.New("closed")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestCheck_Run(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.sdoc")
	writeFile(t, good, "!sdoc 1\npathfinder {\n  a = /a\n  b = /b\n}\n")

	warn := filepath.Join(dir, "warn.sdoc")
	writeFile(t, warn, "!sdoc 1\npathfinder {\n  a = /a\n  a = /b\n}\n")

	bad := filepath.Join(dir, "bad.sdoc")
	writeFile(t, bad, "!sdoc 1\nother {\n}\n")

	broken := filepath.Join(dir, "broken.sdoc")
	writeFile(t, broken, "!sdoc 1\npathfinder {\n  a = \"\"\n  b = /b\n}\n")

	t.Run("all_ok", func(t *testing.T) {
		ctx, out := newContext(t, "", nil)

		err := (&Check{Jobs: 2, Files: []string{good, warn}}).Run(ctx)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := good + ": ok (2 keys, 0 warnings)\n" +
			warn + ":4:3: warning: Key \"a\" already defined. Will be ignored!\n" +
			warn + ": ok (1 keys, 1 warnings)\n"

		if got := out.String(); got != want {
			t.Errorf("Run() printed\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("failures_aggregated", func(t *testing.T) {
		ctx, out := newContext(t, "", nil)

		err := (&Check{Files: []string{bad, good, broken}}).Run(ctx)
		if !errors.Is(err, ErrCheck) {
			t.Fatalf("Run() error = %v, want %v", err, ErrCheck)
		}

		var merr *multierror.Error
		if !errors.As(err, &merr) || len(merr.Errors) != 2 {
			t.Fatalf("Run() error = %v, want 2 aggregated errors", err)
		}

		got := out.String()

		for _, want := range []string{
			bad + ":0:0: error: No \"pathfinder\" group specified in file\n",
			good + ": ok (2 keys, 0 warnings)\n",
			broken + ":3:3: error: Invalid path \"a\"=(empty)\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Run() output missing %q:\n%s", want, got)
			}
		}

		if strings.Index(got, bad) > strings.Index(got, good) ||
			strings.Index(got, good) > strings.Index(got, broken) {
			t.Errorf("Run() output not in argument order:\n%s", got)
		}
	})
}

func TestCheck_RunWriteError(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.sdoc")
	writeFile(t, good, "!sdoc 1\npathfinder {\n  a = /a\n}\n")

	warn := filepath.Join(dir, "warn.sdoc")
	writeFile(t, warn, "!sdoc 1\npathfinder {\n  a = /a\n  a = /b\n}\n")

	for _, file := range []string{good, warn} {
		t.Run(filepath.Base(file), func(t *testing.T) {
			var cli struct{}

			parser, err := kong.New(&cli, kong.Writers(closedWriter{}, io.Discard))
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), ktx)

			err = (&Check{Files: []string{file}}).Run(ctx)
			if !errors.Is(err, errClosed) {
				t.Errorf("Run() error = %v, want %v", err, errClosed)
			}
		})
	}
}
