//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the pathfinder module embedded at build
// time.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding
// whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "pathfinder"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Named path resolver"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// String formats a as "Name <Email>", omitting whichever part is empty.
func (a AuthorInfo) String() string {
	switch {
	case a.Email == "":
		return a.Name
	case a.Name == "":
		return "<" + a.Email + ">"
	default:
		return a.Name + " <" + a.Email + ">"
	}
}

// Summary returns the program name, version, and authors on one line.
func Summary() string {
	authors := make([]string, len(Author))
	for i, a := range Author {
		authors[i] = a.String()
	}

	return Name + " " + Version() + " (" + strings.Join(authors, ", ") + ")"
}
