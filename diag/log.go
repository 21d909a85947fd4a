package diag

import (
	"context"
	"log/slog"

	"github.com/ardnew/pathfinder/log"
)

// LogSink writes diagnostics to a structured logger.
// Warnings are logged at [log.LevelWarn] and errors at [log.LevelError].
//
// A nil Logger writes to the package-level default logger.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Record(d Diagnostic) {
	l := log.Default()
	if s.Logger != nil {
		l = *s.Logger
	}

	level := log.LevelWarn
	if d.Severity >= Error {
		level = log.LevelError
	}

	l.Log(context.Background(), level, d.Message,
		slog.String("file", d.File),
		slog.Any("line", d.Line),
		slog.Any("column", d.Column),
	)
}
