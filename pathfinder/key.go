package pathfinder

import "golang.org/x/text/encoding/charmap"

// ValidateKey reports whether key is an acceptable table key: non-empty and
// made only of code points in the range U+0020 through U+00FF.
func ValidateKey(key []rune) bool {
	if len(key) == 0 {
		return false
	}

	for _, r := range key {
		if r < ' ' || r > 0xFF {
			return false
		}
	}

	return true
}

// keyBytes truncates each code point of a validated key to one byte.
func keyBytes(key []rune) string {
	b := make([]byte, len(key))
	for i, r := range key {
		b[i] = byte(r)
	}

	return string(b)
}

// KeyString converts UTF-8 text, such as a command-line argument, to the
// byte form used for table keys. It fails if s contains a character outside
// the Latin-1 range.
func KeyString(s string) (string, bool) {
	key, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", false
	}

	return key, true
}

// DisplayKey converts a table key back to UTF-8 text.
func DisplayKey(key string) string {
	s, err := charmap.ISO8859_1.NewDecoder().String(key)
	if err != nil {
		return key
	}

	return s
}
