package sdoc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode returns the document text as UTF-8 with any byte order mark
// removed. UTF-16 input is recognized only by its byte order mark.
func decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]

	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeUTF16(data, unicode.LittleEndian)

	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(data, unicode.BigEndian)
	}

	if err := validUTF8(data, BadEncoding); err != nil {
		return "", err
	}

	return string(data), nil
}

func decodeUTF16(data []byte, order unicode.Endianness) (string, error) {
	if len(data)%2 != 0 {
		return "", newError(BadPredictedEncoding, 0, 0)
	}

	out, err := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder().Bytes(data)
	if err != nil {
		e := newError(BadPredictedEncoding, 0, 0)
		e.err = err

		return "", e
	}

	if err := validUTF8(out, BadPredictedEncoding); err != nil {
		return "", err
	}

	return string(out), nil
}

// validUTF8 locates the first invalid sequence in data, if any.
func validUTF8(data []byte, code Code) error {
	if utf8.Valid(data) {
		return nil
	}

	line, col := uint32(1), uint32(1)

	for len(data) > 0 {
		r, n := utf8.DecodeRune(data)
		if r == utf8.RuneError && n <= 1 {
			return newError(code, line, col)
		}

		if r == '\n' {
			line, col = line+1, 1
		} else {
			col++
		}

		data = data[n:]
	}

	return newError(code, line, col)
}
