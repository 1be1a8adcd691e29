package pubpage

import (
	"fmt"
	"time"

	"github.com/alnah/go-pubpage/internal/dateutil"
)

// Chart size bounds in CSS pixels, and the largest device scale factor.
const (
	MinChartSize = 200
	MaxChartSize = 4000
	MaxScale     = 4.0
)

// Site is the chrome shared by both pages.
type Site struct {
	Author      string // copyright holder
	Favicon     string // site-relative path
	Stylesheet  string // site-relative path
	HomeLink    string
	HomeLabel   string
	AnalyticsID string // publications page only; empty disables the tag
}

// DefaultSite returns the built-in page chrome.
func DefaultSite() Site {
	return Site{
		Author:      "Jin BENIYAMA",
		Favicon:     "fig/favicon.ico",
		Stylesheet:  "common/css/beni.css",
		HomeLink:    "index.html",
		HomeLabel:   "Back to home",
		AnalyticsID: "UA-143048532-1",
	}
}

// PublicationsText holds the wording of the publications page.
type PublicationsText struct {
	Title              string
	FirstAuthorHeading string
	NthAuthorHeading   string
	MaxAuthors         int    // names shown in first-author rows before "et al."
	Intro              string // Markdown above the tables; empty = none
}

// DefaultPublicationsText returns the built-in wording.
func DefaultPublicationsText() PublicationsText {
	return PublicationsText{
		Title:              "Publications",
		FirstAuthorHeading: "Refereed Articles (First author)",
		NthAuthorHeading:   "Refereed Articles (Nth author)",
		MaxAuthors:         DefaultMaxAuthors,
	}
}

// Validate checks MaxAuthors.
func (t PublicationsText) Validate() error {
	if t.MaxAuthors < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidMaxAuthors, t.MaxAuthors)
	}
	return nil
}

// PresentationsText holds the wording of the presentations page.
type PresentationsText struct {
	Title                string
	DomesticHeading      string
	InternationalHeading string
	Lead                 string // sentence before "Last updated on ..."
	DateFormat           string // dateutil token format or preset
	Intro                string // Markdown above the tables; empty = none
}

// DefaultPresentationsText returns the built-in wording.
func DefaultPresentationsText() PresentationsText {
	return PresentationsText{
		Title:                "Presentations",
		DomesticHeading:      "Domestic Presentations",
		InternationalHeading: "International Presentations",
		Lead:                 "These are list of my presentations.",
		DateFormat:           dateutil.DefaultDateFormat,
	}
}

// Validate checks the date format.
func (t PresentationsText) Validate() error {
	if _, err := dateutil.Format(time.Time{}, t.DateFormat); err != nil {
		return err
	}
	return nil
}

// ChartSettings shapes the presentations-per-year figure.
type ChartSettings struct {
	Title  string
	XLabel string
	YLabel string
	Width  int     // CSS px
	Height int     // CSS px
	Scale  float64 // device scale factor for raster figures
}

// DefaultChartSettings matches a 12x6 inch figure saved at 300 dpi.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		Title:  "Presentations per Year",
		XLabel: "Year",
		YLabel: "Number of Presentations",
		Width:  1200,
		Height: 600,
		Scale:  3,
	}
}

// Validate checks size and scale bounds.
func (s ChartSettings) Validate() error {
	if s.Width < MinChartSize || s.Width > MaxChartSize || s.Height < MinChartSize || s.Height > MaxChartSize {
		return fmt.Errorf("%w: %dx%d (each side must be between %d and %d)",
			ErrInvalidChartSize, s.Width, s.Height, MinChartSize, MaxChartSize)
	}
	if s.Scale <= 0 || s.Scale > MaxScale {
		return fmt.Errorf("%w: scale %.2f (must be in (0, %.0f])", ErrInvalidChartSize, s.Scale, MaxScale)
	}
	return nil
}

// PublicationsInput names the BibTeX files of each table. A group with no
// files gets no table.
type PublicationsInput struct {
	FirstAuthor []string
	NthAuthor   []string
}

// PresentationsInput names the two logs and the optional figure path.
type PresentationsInput struct {
	Domestic      string
	International string
	Figure        string // referenced by the page; empty = no figure
}

// PresentationsResult is a rendered presentations page.
type PresentationsResult struct {
	HTML   []byte
	Figure []byte // nil when no figure was requested
	Counts YearlyCounts
}

// Option configures a Publisher.
type Option func(*Publisher)

// defaultTimeout bounds figure rasterization.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds figure rasterization.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pubpage: WithTimeout duration must be positive")
	}
	return func(p *Publisher) {
		p.cfg.timeout = d
	}
}

// WithAssetPath overrides embedded templates and styles with files from dir.
// Missing files fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(p *Publisher) {
		p.cfg.assetPath = dir
	}
}

// WithSite sets the page chrome.
func WithSite(s Site) Option {
	return func(p *Publisher) {
		p.cfg.site = s
	}
}

// WithJournals adds journal macros after DefaultJournals, so they win.
func WithJournals(defs ...Journal) Option {
	return func(p *Publisher) {
		p.cfg.journals = append(p.cfg.journals, defs...)
	}
}

// WithPublicationsText sets the publications page wording.
func WithPublicationsText(t PublicationsText) Option {
	return func(p *Publisher) {
		p.cfg.publications = t
	}
}

// WithPresentationsText sets the presentations page wording.
func WithPresentationsText(t PresentationsText) Option {
	return func(p *Publisher) {
		p.cfg.presentations = t
	}
}

// WithChart sets the figure settings.
func WithChart(s ChartSettings) Option {
	return func(p *Publisher) {
		p.cfg.chart = s
	}
}

// WithClock sets the source of the last-updated stamp.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}
