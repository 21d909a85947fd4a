package sdoc

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
)

const header = "!sdoc"

// SupportedVersion is the only document version this package understands.
const SupportedVersion = 1

// Parse reads and parses a document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		e := newError(ReadFailure, 0, 0)
		e.err = err

		return nil, e
	}

	return parseBytes(data, makeConfig(opts...))
}

// ParseString parses a document from s.
func ParseString(s string, opts ...Option) (*Document, error) {
	return parseBytes([]byte(s), makeConfig(opts...))
}

// ReadFile reads and parses the document at path.
// A missing file yields an error with code [FileNotFound].
func ReadFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ReadFailure
		if errors.Is(err, fs.ErrNotExist) {
			code = FileNotFound
		}

		e := newError(code, 0, 0)
		e.err = err

		return nil, e
	}

	return parseBytes(data, makeConfig(opts...))
}

func parseBytes(data []byte, cfg config) (*Document, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	p := &parser{input: []rune(text), line: 1, col: 1, cfg: cfg}

	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(context.TODO(), "parse complete",
		slog.Int("version", doc.Version),
		slog.Int("items", len(doc.Items)))

	return doc, nil
}

type parser struct {
	input []rune
	pos   int
	line  uint32
	col   uint32
	cfg   config
}

// parseDocument parses: Header? Item*.
func (p *parser) parseDocument() (*Document, error) {
	doc := new(Document)

	version, err := p.parseHeader()
	if err != nil {
		return nil, err
	}

	doc.Version = version

	doc.Items, err = p.parseItems(false, true)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// parseHeader parses: "!sdoc" Blank+ Version EOL.
func (p *parser) parseHeader() (int, error) {
	if !p.hasPrefix(header) {
		if p.cfg.header {
			return 0, p.errorAt(BadFormat)
		}

		return 0, nil
	}

	p.advanceN(len(header))

	if !isBlank(p.peek()) {
		return 0, p.errorAt(BadFormat)
	}

	p.skipBlanks()

	line, col := p.line, p.col
	start := p.pos

	for isDigit(p.peek()) && p.pos-start < 9 {
		p.advance()
	}

	if p.pos == start {
		return 0, p.errorAt(BadFormat)
	}

	version, _ := strconv.Atoi(string(p.input[start:p.pos]))
	if version != SupportedVersion {
		e := newError(UnsupportedVersion, line, col)
		e.Version = version

		return 0, e
	}

	p.skipBlanks()
	p.skipComment()

	if !p.eof() && p.peek() != '\n' {
		return 0, p.errorAt(MergedText)
	}

	p.advance()

	return version, nil
}

// parseItems parses items up to the end of input or, inside a group, up to
// and including the closing '}'.
// lineStart reports whether the cursor begins a fresh line, which determines
// whether an immediate newline is a spacer.
func (p *parser) parseItems(inGroup, lineStart bool) ([]*Item, error) {
	var items []*Item

	for {
		p.skipBlanks()

		if p.eof() {
			if inGroup {
				e := p.errorAt(PrematureEnd)
				e.Expected = '}'

				return nil, e
			}

			return items, nil
		}

		switch c := p.peek(); {
		case c == '\n':
			if lineStart && p.cfg.spacers {
				items = append(items, &Item{Kind: Spacer, Line: p.line, Column: p.col})
			}

			p.advance()

			lineStart = true

			continue

		case c == ';':
			p.advance()

			lineStart = false

			continue

		case c == '}':
			if !inGroup {
				e := p.errorAt(InvalidChar)
				e.Found = c

				return nil, e
			}

			p.advance()

			return items, nil

		case p.atComment():
			if it := p.parseComment(); p.cfg.comments {
				items = append(items, it)
			}

			lineStart = false

			continue
		}

		it, err := p.parseEntry()
		if err != nil {
			return nil, err
		}

		items = append(items, it)
		lineStart = false

		if err := p.endItem(); err != nil {
			return nil, err
		}
	}
}

// parseEntry parses: Name ('=' Value | '{' Item* '}')?.
func (p *parser) parseEntry() (*Item, error) {
	it := &Item{Kind: Singlet, Line: p.line, Column: p.col}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	it.Name = name

	p.skipBlanks()

	switch p.peek() {
	case '=':
		p.advance()
		p.skipBlanks()

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		it.Kind = KeyValue
		it.Value = value

	case '{':
		p.advance()

		items, err := p.parseItems(true, false)
		if err != nil {
			return nil, err
		}

		it.Kind = Group
		it.Items = items
	}

	return it, nil
}

// endItem verifies that nothing but a separator or comment follows an item
// on the same line.
func (p *parser) endItem() error {
	p.skipBlanks()

	if p.eof() || p.atComment() {
		return nil
	}

	switch p.peek() {
	case '\n', ';', '}':
		return nil
	}

	return p.errorAt(MergedText)
}

func (p *parser) parseName() ([]rune, error) {
	c := p.peek()

	if c == '"' {
		return p.parseQuoted()
	}

	if !isBare(c) {
		e := p.errorAt(InvalidChar)
		e.Found = c

		return nil, e
	}

	var name []rune

	for !p.eof() && isBare(p.peek()) {
		if err := p.checkControl(); err != nil {
			return nil, err
		}

		name = append(name, p.peek())
		p.advance()
	}

	return name, nil
}

func (p *parser) parseValue() ([]rune, error) {
	if p.peek() == '"' {
		return p.parseQuoted()
	}

	return p.parseBare()
}

// parseBare parses unquoted value text. Interior blanks are kept; trailing
// blanks are not. The text ends at a newline, ';', '}', '#', or a "//"
// preceded by a blank.
func (p *parser) parseBare() ([]rune, error) {
	var value []rune

	for !p.eof() {
		c := p.peek()

		switch {
		case c == '\n', c == ';', c == '}', c == '#', c == '"':
			return trimBlanks(value), nil

		case isBlank(c):
			start := p.pos
			p.skipBlanks()

			if p.atComment() {
				return trimBlanks(value), nil
			}

			value = append(value, p.input[start:p.pos]...)

			continue

		case c == '$' && p.peekAt(1) == '{':
			var err error
			if value, err = p.parsePlaceholder(value); err != nil {
				return nil, err
			}

			continue
		}

		if err := p.checkControl(); err != nil {
			return nil, err
		}

		value = append(value, c)
		p.advance()
	}

	return trimBlanks(value), nil
}

// parseQuoted parses: '"' (char | Escape | Placeholder)* '"'.
func (p *parser) parseQuoted() ([]rune, error) {
	p.advance()

	value := []rune{}

	for {
		if p.eof() {
			e := p.errorAt(PrematureEnd)
			e.Expected = '"'

			return nil, e
		}

		var err error

		switch c := p.peek(); {
		case c == '"':
			p.advance()

			return value, nil

		case c == '\\':
			value, err = p.parseEscape(value)

		case c == '$' && p.peekAt(1) == '{':
			value, err = p.parsePlaceholder(value)

		default:
			err = p.checkControl()
			value = append(value, c)
			p.advance()
		}

		if err != nil {
			return nil, err
		}
	}
}

// parsePlaceholder parses "${" Name '}' and appends NUL Name NUL to value.
func (p *parser) parsePlaceholder(value []rune) ([]rune, error) {
	p.advanceN(2)

	value = append(value, 0)

	for {
		if p.eof() || p.peek() == '\n' {
			e := p.errorAt(PrematureEnd)
			e.Expected = '}'

			return nil, e
		}

		c := p.peek()
		p.advance()

		if c == '}' {
			return append(value, 0), nil
		}

		value = append(value, c)
	}
}

// parseEscape parses a backslash escape and appends its value.
// Unrecognized escapes are reported as warnings and kept verbatim.
func (p *parser) parseEscape(value []rune) ([]rune, error) {
	line, col := p.line, p.col
	start := p.pos

	p.advance()

	if p.eof() {
		e := p.errorAt(PrematureEnd)
		e.Expected = '"'

		return nil, e
	}

	c := p.peek()
	p.advance()

	switch c {
	case '\\', '"', '\'', '$':
		return append(value, c), nil
	case 'n':
		return append(value, '\n'), nil
	case 'r':
		return append(value, '\r'), nil
	case 't':
		return append(value, '\t'), nil
	case '0':
		return append(value, 0), nil
	case 'x':
		if r, ok := p.parseHex(2, 2); ok {
			return append(value, r), nil
		}
	case 'u':
		if r, ok := p.parseHex(4, 4); ok {
			return append(value, r), nil
		}
	case 'U':
		if p.peek() == '{' {
			p.advance()

			if r, ok := p.parseHex(1, 8); ok && p.peek() == '}' {
				p.advance()

				return append(value, r), nil
			}
		}
	}

	seq := p.input[start:p.pos]

	e := newError(BadEscape, line, col)
	e.Sequence = string(seq)

	if err := p.warn(e); err != nil {
		return nil, err
	}

	return append(value, seq...), nil
}

// parseHex consumes between lo and hi hex digits.
func (p *parser) parseHex(lo, hi int) (rune, bool) {
	var v uint32

	n := 0

	for ; n < hi && isHex(p.peek()); n++ {
		d, _ := strconv.ParseUint(string(p.peek()), 16, 8)
		v = v<<4 | uint32(d)

		p.advance()
	}

	return rune(int32(v)), n >= lo
}

func (p *parser) parseComment() *Item {
	it := &Item{Kind: Comment, Line: p.line, Column: p.col}

	if p.peek() == '#' {
		p.advance()
	} else {
		p.advanceN(2)
	}

	start := p.pos

	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	it.Value = trimBlanks(append([]rune(nil), p.input[start:p.pos]...))

	return it
}

func (p *parser) skipComment() {
	if p.atComment() {
		p.parseComment()
	}
}

// checkControl warns about a control character at the cursor.
func (p *parser) checkControl() error {
	c := p.peek()
	if c == '\t' || !unicode.IsControl(c) {
		return nil
	}

	e := p.errorAt(InvalidChar)
	e.Found = c

	return p.warn(e)
}

// warn delivers e to the warning function and returns e if parsing must stop.
func (p *parser) warn(e *Error) error {
	if p.cfg.warn == nil {
		return nil
	}

	e.warning = true

	if p.cfg.warn(e) == Abort {
		e.warning = false

		return e
	}

	return nil
}

func (p *parser) errorAt(code Code) *Error {
	return newError(code, p.line, p.col)
}

// Cursor

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() rune { return p.peekAt(0) }

func (p *parser) peekAt(n int) rune {
	if p.pos+n >= len(p.input) {
		return 0
	}

	return p.input[p.pos+n]
}

func (p *parser) hasPrefix(s string) bool {
	rs := []rune(s)

	return len(p.input)-p.pos >= len(rs) &&
		string(p.input[p.pos:p.pos+len(rs)]) == s
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	if p.input[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	p.pos++
}

func (p *parser) advanceN(n int) {
	for range n {
		p.advance()
	}
}

func (p *parser) atComment() bool {
	return p.peek() == '#' || (p.peek() == '/' && p.peekAt(1) == '/')
}

func (p *parser) skipBlanks() {
	for !p.eof() && isBlank(p.peek()) {
		p.advance()
	}
}

// Character classification

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isBare reports whether r may appear in an unquoted name.
func isBare(r rune) bool {
	return !isBlank(r) && !strings.ContainsRune("\n=;{}#\"", r)
}

func trimBlanks(rs []rune) []rune {
	for len(rs) > 0 && isBlank(rs[0]) {
		rs = rs[1:]
	}

	for len(rs) > 0 && isBlank(rs[len(rs)-1]) {
		rs = rs[:len(rs)-1]
	}

	return rs
}
