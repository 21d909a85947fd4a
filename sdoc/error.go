package sdoc

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Code classifies an [Error].
type Code uint8

const (
	Unknown Code = iota
	FileNotFound
	ReadFailure
	BadEncoding
	BadPredictedEncoding
	InvalidChar
	BadEscape
	UnsupportedVersion
	BadFormat
	PrematureEnd
	MergedText
)

var codeName = [...]string{
	Unknown:              "unknown error",
	FileNotFound:         "file not found",
	ReadFailure:          "read failure",
	BadEncoding:          "invalid UTF-8",
	BadPredictedEncoding: "invalid UTF-16",
	InvalidChar:          "invalid character",
	BadEscape:            "invalid escape sequence",
	UnsupportedVersion:   "unsupported version",
	BadFormat:            "improperly formatted",
	PrematureEnd:         "unexpected end of input",
	MergedText:           "unexpected text",
}

func (c Code) String() string {
	if int(c) < len(codeName) {
		return codeName[c]
	}

	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// NoRune marks an unset Expected or Found character.
const NoRune rune = -1

// Sentinel errors for use with [errors.Is]. Two *Error values match when
// their codes are equal.
var (
	ErrFileNotFound       = &Error{Code: FileNotFound}
	ErrReadFailure        = &Error{Code: ReadFailure}
	ErrBadEncoding        = &Error{Code: BadEncoding}
	ErrUnsupportedVersion = &Error{Code: UnsupportedVersion}
	ErrBadFormat          = &Error{Code: BadFormat}
)

// Error describes a problem found while reading or parsing a document.
//
// Line and Column are 1-based; both are zero for problems not tied to a
// position, such as a missing file.
type Error struct {
	Code     Code
	Line     uint32
	Column   uint32
	Expected rune   // InvalidChar, PrematureEnd
	Found    rune   // InvalidChar
	Sequence string // BadEscape
	Version  int    // UnsupportedVersion

	warning bool
	err     error
}

func newError(code Code, line, col uint32) *Error {
	return &Error{
		Code:     code,
		Line:     line,
		Column:   col,
		Expected: NoRune,
		Found:    NoRune,
	}
}

// Warning reports whether e was delivered to a [WarningFunc] as a
// recoverable problem.
func (e *Error) Warning() bool { return e.warning }

func (e *Error) Error() string {
	msg := e.Code.String()

	switch e.Code {
	case InvalidChar:
		if e.Expected != NoRune {
			msg += fmt.Sprintf(" %q, expected %q", e.Found, e.Expected)
		} else {
			msg += fmt.Sprintf(" %q", e.Found)
		}

	case PrematureEnd:
		if e.Expected != NoRune {
			msg += fmt.Sprintf(", expected %q", e.Expected)
		}

	case BadEscape:
		msg += " " + strconv.Quote(e.Sequence)

	case UnsupportedVersion:
		msg += " " + strconv.Itoa(e.Version)
	}

	if e.Line > 0 {
		msg = fmt.Sprintf("%d:%d: %s", e.Line, e.Column, msg)
	}

	if e.err != nil {
		msg += ": " + e.err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Code == e.Code
}

func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Code.String()),
		slog.Any("line", e.Line),
		slog.Any("column", e.Column),
	}

	if e.Expected != NoRune {
		attrs = append(attrs, slog.String("expected", string(e.Expected)))
	}

	if e.Found != NoRune {
		attrs = append(attrs, slog.String("found", string(e.Found)))
	}

	if e.Sequence != "" {
		attrs = append(attrs, slog.String("sequence", e.Sequence))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(attrs...)
}
