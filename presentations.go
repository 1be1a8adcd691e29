package pubpage

import (
	"fmt"
	"html/template"

	"github.com/alnah/go-pubpage/internal/kvblock"
	"github.com/alnah/go-pubpage/internal/render"
)

// Keys recognized in a presentations log block.
const (
	KeyPresenters = "Presenters"
	KeyTitle      = "Title"
	KeyEvent      = "Event"
	KeyLocation   = "Location"
	KeyDates      = "Dates"
	KeyType       = "Type"
	KeyMemo       = "Memo"
	KeyURL        = "URL"
)

// Placeholders for missing presentation fields.
const (
	UnknownPresenters = "Unknown"
	UntitledTalk      = "No title"
)

// Record is one talk or poster from a presentations log.
type Record struct {
	Presenters string
	Title      string
	Event      string
	Location   string
	Dates      string // free text; the start date comes before the first ';' or '–'
	Type       string
	Memo       string
	URL        string
}

// LoadPresentations reads the records of a log in file order.
func LoadPresentations(path string) ([]Record, error) {
	if path == "" {
		return nil, ErrMissingInput
	}
	blocks, err := kvblock.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPresentations, err)
	}
	records := make([]Record, len(blocks))
	for i, b := range blocks {
		records[i] = recordFromBlock(b)
	}
	return records, nil
}

// recordFromBlock applies placeholders only to keys that are absent; unknown
// keys are ignored.
func recordFromBlock(b kvblock.Block) Record {
	return Record{
		Presenters: b.Get(KeyPresenters, UnknownPresenters),
		Title:      b.Get(KeyTitle, UntitledTalk),
		Event:      b.Get(KeyEvent, ""),
		Location:   b.Get(KeyLocation, ""),
		Dates:      b.Get(KeyDates, ""),
		Type:       b.Get(KeyType, ""),
		Memo:       b.Get(KeyMemo, ""),
		URL:        b.Get(KeyURL, ""),
	}
}

// TitleHTML links the title in a new tab when the record has a URL.
func (r Record) TitleHTML() template.HTML {
	if r.URL == "" {
		return render.Text(r.Title)
	}
	return render.Link(r.URL, r.Title)
}

func presentationRows(records []Record) []render.PresentationRow {
	rows := make([]render.PresentationRow, len(records))
	for i, r := range records {
		rows[i] = render.PresentationRow{
			Number:     i + 1,
			Presenters: r.Presenters,
			Title:      r.TitleHTML(),
			Event:      r.Event,
			Location:   r.Location,
			Dates:      r.Dates,
			Type:       r.Type,
			Memo:       r.Memo,
		}
	}
	return rows
}
