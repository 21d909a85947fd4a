package pathfinder

import (
	"errors"
	"iter"
	"slices"
	"unicode/utf8"
)

// Delimiter encloses an environment variable name within a value.
const Delimiter rune = 0

// ErrBadDelimiters indicates a value with an unpaired [Delimiter].
var ErrBadDelimiters = errors.New("unpaired environment delimiter")

// TokenKind identifies the type of a [Token].
type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenEnv
)

func (k TokenKind) String() string {
	if k == TokenEnv {
		return "env"
	}

	return "literal"
}

// Token is one segment of a split value: literal text, or the name of an
// environment variable.
type Token struct {
	Kind TokenKind
	Text []rune
}

// Tokens yields the segments of value from left to right.
//
// Empty literals and empty variable names produce no token. If an opening
// [Delimiter] has no partner, the tokens preceding it are yielded first and
// then a final [ErrBadDelimiters].
func Tokens(value []rune) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		rest := value

		for {
			i := slices.Index(rest, Delimiter)
			if i < 0 {
				if len(rest) > 0 {
					yield(Token{Kind: TokenLiteral, Text: rest}, nil)
				}

				return
			}

			if i > 0 && !yield(Token{Kind: TokenLiteral, Text: rest[:i]}, nil) {
				return
			}

			rest = rest[i+1:]

			j := slices.Index(rest, Delimiter)
			if j < 0 {
				yield(Token{}, ErrBadDelimiters)

				return
			}

			if j > 0 && !yield(Token{Kind: TokenEnv, Text: rest[:j]}, nil) {
				return
			}

			rest = rest[j+1:]
		}
	}
}

// Split collects the [Tokens] of value.
func Split(value []rune) ([]Token, error) {
	var toks []Token

	for tok, err := range Tokens(value) {
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)
	}

	return toks, nil
}

// ToNative converts code points to the native path encoding.
//
// It returns "" if any code point is a surrogate, negative, or beyond
// U+10FFFF; callers distinguish failure from empty input by length.
func ToNative(rs []rune) string {
	b := make([]byte, 0, len(rs))

	for _, r := range rs {
		if !utf8.ValidRune(r) {
			return ""
		}

		b = utf8.AppendRune(b, r)
	}

	return string(b)
}
