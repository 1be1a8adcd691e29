package pubpage

// Notes:
// - PublicationsText: MaxAuthors lower bound only; there is no upper bound
//   at this level (the config layer caps it).
// - PresentationsText: date format validity is delegated to dateutil.
// - ChartSettings: size and scale bounds, inclusive at both ends.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-pubpage/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestPublicationsText_Validate
// ---------------------------------------------------------------------------

func TestPublicationsText_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		maxAuthors int
		wantErr    error
	}{
		{"default", DefaultMaxAuthors, nil},
		{"one", 1, nil},
		{"many", 100, nil},
		{"zero", 0, ErrInvalidMaxAuthors},
		{"negative", -3, ErrInvalidMaxAuthors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := DefaultPublicationsText()
			text.MaxAuthors = tt.maxAuthors
			err := text.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPresentationsText_Validate
// ---------------------------------------------------------------------------

func TestPresentationsText_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"default", dateutil.DefaultDateFormat, false},
		{"preset", "long", false},
		{"tokens", "DD/MM/YYYY", false},
		{"empty means default", "", false},
		{"too long", strings.Repeat("D", dateutil.MaxDateFormatLength+1), true},
		{"unclosed bracket", "[Updated: YYYY", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := DefaultPresentationsText()
			text.DateFormat = tt.format
			err := text.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestChartSettings_Validate
// ---------------------------------------------------------------------------

func TestChartSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ChartSettings)
		wantErr error
	}{
		{"default", func(*ChartSettings) {}, nil},
		{"minimum size", func(s *ChartSettings) { s.Width, s.Height = MinChartSize, MinChartSize }, nil},
		{"maximum size", func(s *ChartSettings) { s.Width, s.Height = MaxChartSize, MaxChartSize }, nil},
		{"maximum scale", func(s *ChartSettings) { s.Scale = MaxScale }, nil},
		{"too narrow", func(s *ChartSettings) { s.Width = MinChartSize - 1 }, ErrInvalidChartSize},
		{"too tall", func(s *ChartSettings) { s.Height = MaxChartSize + 1 }, ErrInvalidChartSize},
		{"zero scale", func(s *ChartSettings) { s.Scale = 0 }, ErrInvalidChartSize},
		{"scale too large", func(s *ChartSettings) { s.Scale = MaxScale + 0.5 }, ErrInvalidChartSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := DefaultChartSettings()
			tt.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaults - Built-in wording
// ---------------------------------------------------------------------------

func TestDefaults(t *testing.T) {
	t.Parallel()

	site := DefaultSite()
	if site.HomeLink != "index.html" || site.HomeLabel != "Back to home" {
		t.Errorf("DefaultSite() = %+v", site)
	}
	pubs := DefaultPublicationsText()
	if pubs.FirstAuthorHeading != "Refereed Articles (First author)" || pubs.NthAuthorHeading != "Refereed Articles (Nth author)" {
		t.Errorf("DefaultPublicationsText() = %+v", pubs)
	}
	pres := DefaultPresentationsText()
	if pres.DomesticHeading != "Domestic Presentations" || pres.InternationalHeading != "International Presentations" {
		t.Errorf("DefaultPresentationsText() = %+v", pres)
	}
	chart := DefaultChartSettings()
	if chart.Width != 1200 || chart.Height != 600 || chart.Scale != 3 {
		t.Errorf("DefaultChartSettings() = %+v", chart)
	}
}
