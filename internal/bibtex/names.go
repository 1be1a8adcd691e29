package bibtex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Person is a name split into the four BibTeX name parts.
// First holds the first given name, Middle any further given names.
type Person struct {
	First   []string
	Middle  []string
	Prelast []string // "von" part
	Last    []string
	Lineage []string // "Jr" part
}

// String formats the name as "von Last, Jr, First Middle", omitting empty parts.
func (p Person) String() string {
	vonLast := strings.Join(append(append([]string{}, p.Prelast...), p.Last...), " ")
	jr := strings.Join(p.Lineage, " ")
	first := strings.Join(append(append([]string{}, p.First...), p.Middle...), " ")

	parts := make([]string, 0, 3)
	for _, s := range []string{vonLast, jr, first} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// ParseNames splits a name list on the word "and" (outside braces) and
// parses each name.
func ParseNames(s string) []Person {
	var (
		persons []Person
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			persons = append(persons, ParsePerson(strings.Join(current, " ")))
			current = nil
		}
	}
	for _, w := range splitWords(s) {
		if strings.EqualFold(w, "and") {
			flush()
			continue
		}
		current = append(current, w)
	}
	flush()
	return persons
}

// ParsePerson parses one name in any of the three BibTeX forms:
// "First von Last", "von Last, First" and "von Last, Jr, First".
func ParsePerson(name string) Person {
	parts := splitTopLevel(name, ',')
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var p Person
	switch len(parts) {
	case 0:
		return p
	case 1:
		words := splitWords(parts[0])
		if len(words) == 0 {
			return p
		}
		vonStart, vonEnd := -1, -1
		for i := 0; i < len(words)-1; i++ {
			if isLowerWord(words[i]) {
				if vonStart < 0 {
					vonStart = i
				}
				vonEnd = i
			}
		}
		if vonStart < 0 {
			p.setGiven(words[:len(words)-1])
			p.Last = words[len(words)-1:]
			return p
		}
		p.setGiven(words[:vonStart])
		p.Prelast = words[vonStart : vonEnd+1]
		p.Last = words[vonEnd+1:]
	default:
		p.setVonLast(splitWords(parts[0]))
		given := parts[len(parts)-1]
		if len(parts) > 2 {
			p.Lineage = splitWords(parts[1])
			given = strings.Join(parts[2:], ", ")
		}
		p.setGiven(splitWords(given))
	}
	return p
}

func (p *Person) setGiven(words []string) {
	if len(words) == 0 {
		return
	}
	p.First = words[:1]
	p.Middle = words[1:]
}

// setVonLast splits "von Last": the von part runs up to the last lowercase
// word, leaving at least one word for Last.
func (p *Person) setVonLast(words []string) {
	if len(words) == 0 {
		return
	}
	end := -1
	for i := 0; i < len(words)-1; i++ {
		if isLowerWord(words[i]) {
			end = i
		}
	}
	if end >= 0 {
		p.Prelast = words[:end+1]
	}
	p.Last = words[end+1:]
}

// isLowerWord reports whether the first letter of w at brace depth zero is
// lowercase. A leading {\cmd ...} group counts by the first letter after the
// command; any other braced group makes the word caseless (not lowercase).
func isLowerWord(w string) bool {
	for i := 0; i < len(w); {
		c := w[i]
		if c == '{' {
			if i+1 < len(w) && w[i+1] == '\\' {
				return specialCharIsLower(w[i+2:])
			}
			return false
		}
		r, size := utf8.DecodeRuneInString(w[i:])
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
		i += size
	}
	return false
}

// specialCharIsLower inspects the text after "{\" in a special character such
// as {\"o} or {\ss}.
func specialCharIsLower(s string) bool {
	// Skip a non-letter accent command like \" or \'.
	if len(s) > 0 && !isASCIILetter(s[0]) {
		s = s[1:]
	}
	for _, r := range s {
		if r == '}' {
			break
		}
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitWords splits on whitespace and ties (~) outside braces.
func splitWords(s string) []string {
	var (
		words []string
		b     strings.Builder
		depth int
	)
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case depth == 0 && (unicode.IsSpace(r) || r == '~'):
			flush()
			continue
		}
		b.WriteRune(r)
	}
	flush()
	return words
}

// splitTopLevel splits s on sep outside braces.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(parts, s[start:])
}
