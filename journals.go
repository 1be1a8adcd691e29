package pubpage

import "strings"

// Journal maps a BibTeX journal macro to the title shown on the page.
type Journal struct {
	Macro string // e.g. `\apj`
	Name  string // e.g. "Astrophysical Journal"
}

// DefaultJournals are the AAS-style macros commonly found in ADS exports.
// `\aap` is listed twice; the later definition wins.
var DefaultJournals = []Journal{
	{`\pasj`, "Publications of the Astronomical Society of Japan"},
	{`\nat`, "Nature"},
	{`\icarus`, "Icarus"},
	{`\aj`, "Astronomical Journal"},
	{`\apj`, "Astrophysical Journal"},
	{`\apjl`, "ApJL"},
	{`\apjs`, "ApJS"},
	{`\pasp`, "PASP"},
	{`\mnras`, "MNRAS"},
	{`\aap`, "A&A"},
	{`\grl`, "GRL"},
	{`\psj`, "PSJ"},
	{`\araa`, "ARAA"},
	{`\gca`, "GCA"},
	{`\aap`, "Astronomy & Astrophysics"},
}

// JournalTable resolves journal macros to titles.
type JournalTable map[string]string

// NewJournalTable folds definitions in order; a repeated macro keeps the
// last name given.
func NewJournalTable(defs ...Journal) JournalTable {
	t := make(JournalTable, len(defs))
	for _, d := range defs {
		t[strings.TrimSpace(d.Macro)] = d.Name
	}
	return t
}

// Normalize trims raw and returns its title, or the trimmed value itself
// when it is not a known macro.
func (t JournalTable) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if name, ok := t[raw]; ok {
		return name
	}
	return raw
}
