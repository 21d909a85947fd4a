// Package log provides structured logging based on [log/slog].
//
// A [Logger] is an immutable value configured at construction time with
// functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Attributes are typed [slog.Attr] values:
//
//	logger.Info("loaded", slog.String("file", path), slog.Int("keys", n))
//
// The package-level functions log through a default logger that writes to
// [os.Stderr]; [Config] replaces it.
//
// [LevelTrace] sits below [LevelDebug] and is rendered as "TRACE".
package log
