package pubpage

import (
	"cmp"
	"fmt"
	"html/template"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alnah/go-pubpage/internal/bibtex"
	"github.com/alnah/go-pubpage/internal/latex"
	"github.com/alnah/go-pubpage/internal/render"
)

// UnknownYear stands in for a missing or unparseable year. It sorts after
// every real year.
const UnknownYear = 9999

// DefaultMaxAuthors is how many names a first-author row shows before "et al.".
const DefaultMaxAuthors = 3

// Placeholders for missing bibliography fields.
const (
	UnknownAuthors = "Unknown"
	UntitledEntry  = "No title"
)

// AuthorStyle selects how the author column of a table is written.
type AuthorStyle int

const (
	// FirstAuthor bolds the first name and truncates long lists.
	FirstAuthor AuthorStyle = iota
	// NthAuthor lists every name as plain text.
	NthAuthor
)

// String returns the style name used in logs.
func (s AuthorStyle) String() string {
	switch s {
	case FirstAuthor:
		return "first-author"
	case NthAuthor:
		return "nth-author"
	default:
		return fmt.Sprintf("AuthorStyle(%d)", int(s))
	}
}

// Entry is one bibliography entry reduced to the fields the page shows.
// Text fields are already transliterated from LaTeX accents.
type Entry struct {
	Key     string
	Year    int // UnknownYear when absent or unparseable
	Authors []string
	Title   string
	DOI     string
	URL     string
	Journal string // raw macro or name
	Volume  string
	Pages   string
}

// LoadBibliography reads every file in order and pools their entries, stably
// sorted by ascending year. The first unreadable or malformed file aborts.
func LoadBibliography(paths ...string) ([]Entry, error) {
	var entries []Entry
	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadBibliography, err)
		}
		db, err := bibtex.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseBibliography, path, err)
		}
		for _, e := range db.Entries {
			entries = append(entries, entryFromBibTeX(e))
		}
	}
	SortByYear(entries)
	return entries, nil
}

// SortByYear orders entries by ascending year, keeping input order for ties.
func SortByYear(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Year, b.Year)
	})
}

func entryFromBibTeX(e bibtex.Entry) Entry {
	out := Entry{
		Key:   e.Key,
		Year:  parseYear(e.Fields["year"]),
		Title: UntitledEntry,
	}
	for _, p := range e.Persons["author"] {
		out.Authors = append(out.Authors, latex.ToUnicode(p.String()))
	}
	// A title field that is present but empty stays empty.
	if title, ok := e.Field("title"); ok {
		out.Title = latex.ToUnicode(title)
	}
	out.DOI = e.Fields["doi"]
	out.URL = e.Fields["url"]
	out.Journal = e.Fields["journal"]
	out.Volume = e.Fields["volume"]
	out.Pages = e.Fields["pages"]
	return out
}

func parseYear(s string) int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return UnknownYear
	}
	return year
}

// Href is the title link target: the DOI resolver when a DOI is present,
// else the URL field, else the placeholder anchor.
func (e Entry) Href() string {
	if e.DOI != "" {
		return "https://doi.org/" + e.DOI
	}
	if e.URL != "" {
		return e.URL
	}
	return render.PlaceholderHref
}

// Citation joins journal, volume, pages and year with ", ", skipping empty
// parts. The journal goes through journals. The year is always printed, so an
// undated entry ends in UnknownYear.
func (e Entry) Citation(journals JournalTable) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{journals.Normalize(e.Journal), e.Volume, e.Pages} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, strconv.Itoa(e.Year))
	return strings.Join(parts, ", ")
}

// FormatAuthors renders an author cell. FirstAuthor bolds the first name and
// shows at most maxAuthors names followed by ", et al."; NthAuthor lists every
// name unemphasized. No names renders UnknownAuthors.
func FormatAuthors(authors []string, style AuthorStyle, maxAuthors int) template.HTML {
	if len(authors) == 0 {
		return render.Text(UnknownAuthors)
	}
	if style != FirstAuthor {
		parts := make([]template.HTML, len(authors))
		for i, a := range authors {
			parts[i] = render.Text(a)
		}
		return render.Join(parts, ", ")
	}

	if maxAuthors < 1 {
		maxAuthors = DefaultMaxAuthors
	}
	shown := authors[:min(len(authors), maxAuthors)]
	parts := make([]template.HTML, len(shown))
	parts[0] = render.Bold(shown[0])
	for i := 1; i < len(shown); i++ {
		parts[i] = render.Text(shown[i])
	}
	cell := render.Join(parts, ", ")
	if len(authors) > maxAuthors {
		cell += ", et al."
	}
	return cell
}

// publicationRows numbers entries from 1 in their current order.
func publicationRows(entries []Entry, style AuthorStyle, maxAuthors int, journals JournalTable) []render.PublicationRow {
	rows := make([]render.PublicationRow, len(entries))
	for i, e := range entries {
		rows[i] = render.PublicationRow{
			Number:   i + 1,
			Authors:  FormatAuthors(e.Authors, style, maxAuthors),
			Title:    render.Link(e.Href(), e.Title),
			Citation: e.Citation(journals),
		}
	}
	return rows
}
