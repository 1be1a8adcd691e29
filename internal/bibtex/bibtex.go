// Package bibtex reads BibTeX databases into plain entry/field mappings.
//
// The reader covers the parts of the format that show up in exported
// bibliographies (ADS, journal sites, reference managers):
//
//   - entries delimited by braces or parentheses
//   - braced, quoted, numeric and macro field values, joined with #
//   - @string macros, including the predefined month abbreviations
//   - @preamble and @comment blocks
//   - free text between entries, which BibTeX treats as a comment
//
// Field names and entry types are case-insensitive and stored lowercased.
// Field values keep inner braces and LaTeX commands untouched; only runs of
// whitespace are collapsed. Name lists (author, editor) are split into
// [Person] values.
package bibtex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for parsing.
var (
	ErrSyntax         = errors.New("bibtex syntax error")
	ErrUndefinedMacro = errors.New("undefined string macro")
	ErrDuplicateKey   = errors.New("repeated entry key")
	ErrDuplicateField = errors.New("repeated field")
)

// PersonFields are the fields parsed into [Person] lists instead of plain text.
var PersonFields = []string{"author", "editor"}

// Entry is a single bibliography entry.
type Entry struct {
	Type    string              // lowercased entry type, e.g. "article"
	Key     string              // citation key as written
	Fields  map[string]string   // lowercased field name -> value
	Persons map[string][]Person // "author"/"editor" -> parsed names
}

// Field returns the named field (case-insensitive) and whether it is present.
func (e Entry) Field(name string) (string, bool) {
	v, ok := e.Fields[strings.ToLower(name)]
	return v, ok
}

// Database holds every entry of a file in source order.
type Database struct {
	Entries   []Entry
	Preambles []string
	Macros    map[string]string
}

// monthMacros are predefined by BibTeX styles and always available.
var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March",
	"apr": "April", "may": "May", "jun": "June",
	"jul": "July", "aug": "August", "sep": "September",
	"oct": "October", "nov": "November", "dec": "December",
}

// ParseFile reads and parses the BibTeX file at path.
func ParseFile(path string) (*Database, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	db, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Parse reads a whole BibTeX database from r.
func Parse(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses a BibTeX database held in memory.
func ParseString(src string) (*Database, error) {
	p := &parser{
		src: src,
		db: &Database{
			Macros: make(map[string]string, len(monthMacros)),
		},
		keys: make(map[string]bool),
	}
	for k, v := range monthMacros {
		p.db.Macros[k] = v
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.db, nil
}

type parser struct {
	src  string
	pos  int
	db   *Database
	keys map[string]bool // lowercased keys already seen
}

func (p *parser) parse() error {
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			return nil
		}
		p.pos += at + 1

		kind := strings.ToLower(p.readIdent())
		if kind == "" {
			// A stray @ in free text, e.g. an e-mail address in a comment.
			continue
		}
		p.skipSpace()

		closing, err := p.openDelimiter()
		if err != nil {
			return err
		}

		switch kind {
		case "comment":
			if err := p.skipBlock(closing); err != nil {
				return err
			}
		case "preamble":
			if err := p.parsePreamble(closing); err != nil {
				return err
			}
		case "string":
			if err := p.parseMacro(closing); err != nil {
				return err
			}
		default:
			if err := p.parseEntry(kind, closing); err != nil {
				return err
			}
		}
	}
}

func (p *parser) openDelimiter() (byte, error) {
	if p.eof() {
		return 0, p.errorf("unexpected end of input, expected { or (")
	}
	switch p.src[p.pos] {
	case '{':
		p.pos++
		return '}', nil
	case '(':
		p.pos++
		return ')', nil
	}
	return 0, p.errorf("expected { or ( but found %q", p.src[p.pos])
}

func (p *parser) parsePreamble(closing byte) error {
	v, err := p.parseValue()
	if err != nil {
		return err
	}
	p.db.Preambles = append(p.db.Preambles, v)
	p.skipSpace()
	return p.expect(closing)
}

func (p *parser) parseMacro(closing byte) error {
	p.skipSpace()
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return p.errorf("missing @string name")
	}
	p.skipSpace()
	if err := p.expect('='); err != nil {
		return err
	}
	v, err := p.parseValue()
	if err != nil {
		return err
	}
	p.db.Macros[name] = v
	p.skipSpace()
	return p.expect(closing)
}

func (p *parser) parseEntry(kind string, closing byte) error {
	p.skipSpace()
	key := p.readKey(closing)
	if key == "" {
		return p.errorf("missing citation key for @%s", kind)
	}
	lowerKey := strings.ToLower(key)
	if p.keys[lowerKey] {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	p.keys[lowerKey] = true

	entry := Entry{
		Type:    kind,
		Key:     key,
		Fields:  make(map[string]string),
		Persons: make(map[string][]Person),
	}

	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated entry %q", key)
		}
		c := p.src[p.pos]
		if c == closing {
			p.pos++
			break
		}
		if c != ',' {
			return p.errorf("expected , or %q in entry %q but found %q", closing, key, c)
		}
		p.pos++
		p.skipSpace()

		// Trailing comma before the closing delimiter.
		if !p.eof() && p.src[p.pos] == closing {
			p.pos++
			break
		}

		name := strings.ToLower(p.readIdent())
		if name == "" {
			return p.errorf("missing field name in entry %q", key)
		}
		p.skipSpace()
		if err := p.expect('='); err != nil {
			return err
		}
		value, err := p.parseValue()
		if err != nil {
			return err
		}
		if _, dup := entry.Fields[name]; dup {
			return fmt.Errorf("%w: %q in entry %q", ErrDuplicateField, name, key)
		}
		if _, dup := entry.Persons[name]; dup {
			return fmt.Errorf("%w: %q in entry %q", ErrDuplicateField, name, key)
		}
		if isPersonField(name) {
			entry.Persons[name] = ParseNames(value)
			continue
		}
		entry.Fields[name] = value
	}

	p.db.Entries = append(p.db.Entries, entry)
	return nil
}

// parseValue reads a value made of one or more parts joined with #.
func (p *parser) parseValue() (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		part, err := p.parsePart()
		if err != nil {
			return "", err
		}
		b.WriteString(part)

		p.skipSpace()
		if p.eof() || p.src[p.pos] != '#' {
			break
		}
		p.pos++
	}
	return collapseSpace(b.String()), nil
}

func (p *parser) parsePart() (string, error) {
	if p.eof() {
		return "", p.errorf("unexpected end of input, expected a value")
	}
	c := p.src[p.pos]
	switch {
	case c == '{':
		p.pos++
		return p.readBraced('}')
	case c == '"':
		p.pos++
		return p.readQuoted()
	case isDigit(c):
		start := p.pos
		for !p.eof() && isDigit(p.src[p.pos]) {
			p.pos++
		}
		return p.src[start:p.pos], nil
	}

	name := p.readIdent()
	if name == "" {
		return "", p.errorf("unexpected %q, expected a value", c)
	}
	v, ok := p.db.Macros[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q (line %d)", ErrUndefinedMacro, name, p.line())
	}
	return v, nil
}

// readBraced returns the content up to the brace that balances the one
// already consumed. Nested braces are kept.
func (p *parser) readBraced(closing byte) (string, error) {
	start := p.pos
	depth := 0
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closing && depth == 0:
			s := p.src[start:p.pos]
			p.pos++
			return s, nil
		}
		p.pos++
	}
	return "", p.errorf("unbalanced braces")
}

// readQuoted returns the content up to the next double quote outside braces.
func (p *parser) readQuoted() (string, error) {
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return "", p.errorf("unbalanced braces in quoted value")
			}
			depth--
		case '"':
			if depth == 0 {
				s := p.src[start:p.pos]
				p.pos++
				return s, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("unterminated quoted value")
}

// skipBlock skips a @comment body, honoring nested braces.
func (p *parser) skipBlock(closing byte) error {
	_, err := p.readBraced(closing)
	return err
}

// readKey reads a citation key: everything up to a comma, whitespace or the
// closing delimiter.
func (p *parser) readKey(closing byte) string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == ',' || c == closing || isSpace(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// readIdent reads an entry type, field name or macro name.
func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf("unexpected end of input, expected %q", c)
	}
	if p.src[p.pos] != c {
		return p.errorf("expected %q but found %q", c, p.src[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) line() int {
	end := min(p.pos, len(p.src))
	return strings.Count(p.src[:end], "\n") + 1
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line(), fmt.Sprintf(format, args...))
}

func isPersonField(name string) bool {
	for _, f := range PersonFields {
		if f == name {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isIdentChar reports whether c may appear in a type, field or macro name.
// BibTeX excludes whitespace and the characters "#%'(),={}.
func isIdentChar(c byte) bool {
	if c <= ' ' || c >= 0x7f {
		return false
	}
	return !strings.ContainsRune("\"#%'(),={}", rune(c))
}

// collapseSpace replaces runs of whitespace with a single space and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
