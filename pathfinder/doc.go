// Package pathfinder resolves named filesystem paths from a paths document.
//
// A paths document is an sdoc file whose top-level "pathfinder" group holds
// one key-value entry per named path:
//
//	!sdoc 1
//	pathfinder {
//		data = ${HOME}/.local/share/app
//		logs = ../logs
//	}
//
// Values may reference environment variables. The document parser delivers
// each reference as the variable name enclosed by a pair of NUL characters,
// and [Split] decomposes a value along those delimiters. Relative results
// are anchored to the directory containing the document, and every stored
// path is absolute and lexically clean.
//
// Problems are never returned as errors. They are reported to a [diag.Sink],
// and [Resolver.Load] reports only whether a usable "pathfinder" group was
// found.
package pathfinder
