package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

// fixture is a paths document written to a temporary directory.
type fixture struct {
	dir  string // directory holding the document
	file string // document path
	base string // directory the named paths point into
}

// newFixture writes a paths document defining "data" (from $PF_DATA),
// "home", and the relative "rel".
func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{dir: t.TempDir(), base: t.TempDir()}
	f.file = filepath.Join(f.dir, "paths.sdoc")

	t.Setenv("PF_DATA", filepath.Join(f.base, "data"))

	writeFile(t, f.file, "!sdoc 1\npathfinder {\n"+
		"  home = "+filepath.ToSlash(filepath.Join(f.base, "home"))+"\n"+
		"  data = \"${PF_DATA}\"\n"+
		"  rel = sub/dir\n"+
		"}\n")

	return f
}

func (f fixture) path(elem ...string) string {
	return filepath.Join(append([]string{f.base}, elem...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// newContext returns a context carrying a kong context whose standard output
// is captured in out, and naming file as the paths document.
func newContext(t *testing.T, file string, vars kong.Vars) (context.Context, *bytes.Buffer) {
	t.Helper()

	var (
		cli struct{}
		out bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&out, io.Discard), vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), ktx)

	return WithFile(ctx, file), &out
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestFileFrom(t *testing.T) {
	ctx, _ := newContext(t, "", kong.Vars{PathsIdentifier: "/default.sdoc"})

	if got := fileFrom(ctx); got != "/default.sdoc" {
		t.Errorf("fileFrom() = %q, want variable default", got)
	}

	ctx = WithFile(ctx, "/explicit.sdoc")
	if got := fileFrom(ctx); got != "/explicit.sdoc" {
		t.Errorf("fileFrom() = %q, want %q", got, "/explicit.sdoc")
	}

	if got := fileFrom(context.Background()); got != "" {
		t.Errorf("fileFrom(empty) = %q, want empty", got)
	}
}

func TestLoad(t *testing.T) {
	f := newFixture(t)

	ctx, _ := newContext(t, f.file, nil)

	r, err := load(ctx)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if got := r.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	if got, want := r.Path("rel"), filepath.Join(f.dir, "sub", "dir"); got != want {
		t.Errorf("Path(rel) = %q, want %q", got, want)
	}

	ctx, _ = newContext(t, filepath.Join(f.dir, "missing.sdoc"), nil)

	if _, err := load(ctx); !errors.Is(err, ErrLoad) {
		t.Errorf("load(missing) error = %v, want %v", err, ErrLoad)
	}
}

func TestParseKeys(t *testing.T) {
	got, err := parseKeys([]string{"home", "café"})
	if err != nil {
		t.Fatalf("parseKeys() error = %v", err)
	}

	if got[0] != "home" || got[1] != "caf\xe9" {
		t.Errorf("parseKeys() = %q", got)
	}

	if _, err := parseKeys([]string{"home", "ключ"}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("parseKeys(non-Latin-1) error = %v, want %v", err, ErrInvalidKey)
	}

	if _, err := parseKeys([]string{""}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("parseKeys(empty) error = %v, want %v", err, ErrInvalidKey)
	}
}
