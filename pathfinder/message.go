package pathfinder

import (
	"strconv"
	"strings"

	"github.com/ardnew/pathfinder/sdoc"
)

// charName renders a character for a parse diagnostic.
func charName(r rune) string {
	switch r {
	case 0:
		return `"Null"`
	case '\n':
		return `"LF"`
	case '\r':
		return `"CR"`
	case '\t':
		return `"TAB"`
	}

	if r < ' ' || r > 126 {
		return "0x" + strings.ToUpper(strconv.FormatUint(uint64(uint32(r)), 16))
	}

	return "'" + string(r) + "'"
}

// parseMessage describes a document parsing problem.
func parseMessage(e *sdoc.Error) string {
	switch e.Code {
	case sdoc.FileNotFound:
		return "File not found."
	case sdoc.ReadFailure:
		return "Unable to read file."
	case sdoc.BadEncoding, sdoc.BadPredictedEncoding:
		return "Bad Encoding."
	case sdoc.InvalidChar:
		if e.Expected != sdoc.NoRune {
			return "Invalid character, expected: " + charName(e.Expected) +
				" found: " + charName(e.Found)
		}

		return "Invalid character " + charName(e.Found)
	case sdoc.BadEscape:
		return `Found invalid escape sequence: "` + e.Sequence + `"`
	case sdoc.UnsupportedVersion:
		return "Unsupported format version " + strconv.Itoa(e.Version)
	case sdoc.BadFormat:
		return "File is improperly formatted."
	case sdoc.PrematureEnd:
		return "End of file reached prematurely, expected: " + charName(e.Expected)
	case sdoc.MergedText:
		return "Mangled text."
	default:
		return "Unknown."
	}
}

// unusedMessage describes a document item that does not contribute to the
// table. Spacers and comments are never reported.
func unusedMessage(it *sdoc.Item) (string, bool) {
	switch it.Kind {
	case sdoc.Singlet:
		return `Unused singlet "` + it.NameString() + `"`, true
	case sdoc.KeyValue:
		return `Unused key-value "` + it.NameString() + `"`, true
	case sdoc.Group:
		return `Unused group "` + it.NameString() + `"`, true
	case sdoc.Spacer, sdoc.Comment:
		return "", false
	default:
		return "Unknown item type '" + strconv.Itoa(int(it.Kind)) + "'", true
	}
}

func quote(rs []rune) string { return `"` + string(rs) + `"` }
