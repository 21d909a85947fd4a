// Package diag defines the diagnostic records emitted while loading a paths
// document and the sinks that receive them.
package diag

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// Severity classifies a [Diagnostic].
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "Severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// Diagnostic is a single message attributed to a source location.
//
// For messages originating in a document, File is the document path and
// Line/Column are 1-based positions of the offending item.
// A zero Line means no position is known.
type Diagnostic struct {
	File     string
	Line     uint32
	Column   uint32
	Severity Severity
	Message  string
}

// String formats d as "file:line:column: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf(
		"%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Severity, d.Message,
	)
}

func (d Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("file", d.File),
		slog.Any("line", d.Line),
		slog.Any("column", d.Column),
		slog.String("severity", d.Severity.String()),
		slog.String("message", d.Message),
	)
}

// Sink receives diagnostics.
type Sink interface {
	Record(d Diagnostic)
}

// SinkFunc adapts an ordinary function to a [Sink].
type SinkFunc func(Diagnostic)

func (f SinkFunc) Record(d Diagnostic) { f(d) }

// Discard is a [Sink] that drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Tee forwards every diagnostic to each of its sinks in order.
type Tee []Sink

func (t Tee) Record(d Diagnostic) {
	for _, s := range t {
		if s != nil {
			s.Record(d)
		}
	}
}

// Here returns the base name of the source file and the line of its caller,
// skipping skip additional frames.
// It locates diagnostics raised by internal failures that have no document
// position.
func Here(skip int) (file string, line uint32) {
	_, file, n, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0
	}

	return filepath.Base(file), uint32(n)
}
