package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/pathfinder/pathfinder"
)

const (
	formatNative = "native"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

var keyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// List prints every resolved path in ascending key order.
type List struct {
	Format string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                              help:"Indent width for JSON and YAML output." short:"i"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r, err := load(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	switch l.Format {
	case formatJSON:
		return l.writeJSON(out, r)

	case formatYAML:
		return l.writeYAML(ctx, out, r)

	default:
		return l.writeNative(out, r)
	}
}

// writeNative writes aligned "key  path" lines, highlighting keys when out is
// a terminal.
func (l *List) writeNative(out io.Writer, r *pathfinder.Resolver) error {
	width := 0

	for key := range r.All() {
		width = max(width, len([]rune(pathfinder.DisplayKey(key))))
	}

	color := isTerminal(out)

	for key, path := range r.All() {
		name := pathfinder.DisplayKey(key)
		pad := strings.Repeat(" ", width-len([]rune(name)))

		if color {
			name = keyStyle.Render(name)
		}

		if _, err := fmt.Fprintf(out, "%s%s  %s\n", name, pad, path); err != nil {
			return err
		}
	}

	return nil
}

func (l *List) writeJSON(out io.Writer, r *pathfinder.Resolver) error {
	table := make(map[string]string, r.Len())
	for key, path := range r.All() {
		table[pathfinder.DisplayKey(key)] = path
	}

	var (
		data []byte
		err  error
	)

	if l.Indent > 0 {
		data, err = json.MarshalIndent(table, "", strings.Repeat(" ", l.Indent))
	} else {
		data, err = json.Marshal(table)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(data))

	return err
}

func (l *List) writeYAML(
	ctx context.Context,
	out io.Writer,
	r *pathfinder.Resolver,
) error {
	table := make(yaml.MapSlice, 0, r.Len())
	for key, path := range r.All() {
		table = append(table, yaml.MapItem{Key: pathfinder.DisplayKey(key), Value: path})
	}

	var opts []yaml.EncodeOption
	if l.Indent > 0 {
		opts = append(opts, yaml.Indent(l.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, table, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, string(data))

	return err
}

// isTerminal reports whether w is a terminal device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
