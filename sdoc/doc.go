// Package sdoc parses structured documents: line-oriented text made of named
// groups, key-value entries, and singlets.
//
//	!sdoc 1
//	# comment
//	pathfinder {
//		data = ${HOME}/.local/share/app
//		logs = "/var/log/app"; cache = "${XDG_CACHE_HOME}/app"
//	}
//
// Items are separated by newlines or ';'. A group is a name followed by
// '{' on the same line and closed by a matching '}'. Names and values are
// either bare text or double-quoted strings with backslash escapes.
//
// Every "${NAME}" reference in a value is stored as NAME enclosed by a pair of
// NUL characters. The escape "\0" also produces a NUL, so consumers see a
// single delimiter convention regardless of how the reference was written.
//
// Recoverable problems (unknown escapes, control characters) are reported to
// a [WarningFunc], which decides whether parsing continues.
package sdoc
