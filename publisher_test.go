package pubpage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type mockRasterizer struct {
	called   bool
	hostHTML []byte
	opts     *rasterOptions
	output   []byte
	err      error
	closed   bool
}

func (m *mockRasterizer) Rasterize(ctx context.Context, hostHTML []byte, opts *rasterOptions) ([]byte, error) {
	m.called = true
	m.hostHTML = hostHTML
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("rasterize called without a deadline")
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("\x89PNG mock"), nil
}

func (m *mockRasterizer) Close() error {
	m.closed = true
	return nil
}

// withRasterizer injects a fake browser backend.
func withRasterizer(r rasterizer) Option {
	return func(p *Publisher) {
		p.rasterizer = r
	}
}

func fixedClock(s string) func() time.Time {
	return func() time.Time {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			panic(err)
		}
		return t
	}
}

func newTestPublisher(t *testing.T, opts ...Option) (*Publisher, *mockRasterizer) {
	t.Helper()
	mock := &mockRasterizer{}
	opts = append([]Option{withRasterizer(mock), WithClock(fixedClock("2025-03-07"))}, opts...)
	p, err := NewPublisher(opts...)
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, mock
}

// ---------------------------------------------------------------------------
// NewPublisher
// ---------------------------------------------------------------------------

func TestNewPublisher_InvalidSettings(t *testing.T) {
	t.Parallel()

	badPubs := DefaultPublicationsText()
	badPubs.MaxAuthors = 0
	badPres := DefaultPresentationsText()
	badPres.DateFormat = "[YYYY"
	badChart := DefaultChartSettings()
	badChart.Width = 10
	badScale := DefaultChartSettings()
	badScale.Scale = 9

	tests := []struct {
		name    string
		opt     Option
		wantErr error
	}{
		{"max authors", WithPublicationsText(badPubs), ErrInvalidMaxAuthors},
		{"chart size", WithChart(badChart), ErrInvalidChartSize},
		{"chart scale", WithChart(badScale), ErrInvalidChartSize},
		{"asset path", WithAssetPath(filepath.Join(t.TempDir(), "missing")), ErrInvalidAssetPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewPublisher(withRasterizer(&mockRasterizer{}), tt.opt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewPublisher() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("date format", func(t *testing.T) {
		t.Parallel()

		if _, err := NewPublisher(withRasterizer(&mockRasterizer{}), WithPresentationsText(badPres)); err == nil {
			t.Error("NewPublisher() with bad date format should fail")
		}
	})
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	p, mock := newTestPublisher(t)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("rasterizer not closed")
	}
}

func TestPublisher_Journals(t *testing.T) {
	t.Parallel()

	p, _ := newTestPublisher(t, WithJournals(Journal{Macro: `\apj`, Name: "ApJ"}))
	if got := p.Journals().Normalize(`\apj`); got != "ApJ" {
		t.Errorf(`\apj = %q, want configured override`, got)
	}
	if got := p.Journals().Normalize(`\nat`); got != "Nature" {
		t.Errorf(`\nat = %q, want built-in`, got)
	}
}

// ---------------------------------------------------------------------------
// Publications
// ---------------------------------------------------------------------------

func TestPublisher_Publications(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "first.bib", firstBib)
	nth := writeFile(t, dir, "nth.bib", secondBib)

	p, _ := newTestPublisher(t)
	out, err := p.Publications(context.Background(), PublicationsInput{
		FirstAuthor: []string{first},
		NthAuthor:   []string{nth},
	})
	if err != nil {
		t.Fatalf("Publications() error = %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<h1>Refereed Articles (First author)</h1>",
		"<h1>Refereed Articles (Nth author)</h1>",
		"<b>Beniyama, Jin</b>, Sako, Shigeyuki, Ohtsuka, Katsuhito, et al.",
		`<a href="https://doi.org/10.3847/1538-4357/acd1a1" target="_blank">Photometry of Öpik-type Asteroids</a>`,
		"Astrophysical Journal, 950, 12, 2023",
		"Astronomy &amp; Astrophysics, 2019",
		`<a href="#" target="_blank">Preprint</a>`,
		"García, María, Beniyama, Jin",
		"Icarus, 2019",
		"UA-143048532-1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(html, "9999") {
		t.Error("undated entry should print the 9999 year sentinel")
	}
	// The first table comes before the second.
	if strings.Index(html, "(First author)") > strings.Index(html, "(Nth author)") {
		t.Error("tables out of order")
	}
}

func TestPublisher_Publications_TableSelection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bib := writeFile(t, dir, "a.bib", secondBib)
	empty := writeFile(t, dir, "empty.bib", "")

	tests := []struct {
		name      string
		in        PublicationsInput
		wantFirst bool
		wantNth   bool
		wantRows  int
	}{
		{name: "no files", in: PublicationsInput{}},
		{name: "first only", in: PublicationsInput{FirstAuthor: []string{bib}}, wantFirst: true, wantRows: 1},
		{name: "nth only", in: PublicationsInput{NthAuthor: []string{bib}}, wantNth: true, wantRows: 1},
		{name: "file without entries", in: PublicationsInput{FirstAuthor: []string{empty}}, wantFirst: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newTestPublisher(t)
			out, err := p.Publications(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Publications() error = %v", err)
			}
			html := string(out)
			if got := strings.Contains(html, "(First author)"); got != tt.wantFirst {
				t.Errorf("first-author table present = %v, want %v", got, tt.wantFirst)
			}
			if got := strings.Contains(html, "(Nth author)"); got != tt.wantNth {
				t.Errorf("nth-author table present = %v, want %v", got, tt.wantNth)
			}
			if got := strings.Count(html, "<td class=\"authors\">"); got != tt.wantRows {
				t.Errorf("rows = %d, want %d", got, tt.wantRows)
			}
		})
	}
}

func TestPublisher_Publications_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := PublicationsInput{FirstAuthor: []string{writeFile(t, dir, "a.bib", firstBib)}}

	p, _ := newTestPublisher(t)
	a, err := p.Publications(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Publications(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical input produced different pages")
	}
}

func TestPublisher_Publications_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.bib", secondBib)
	bad := writeFile(t, dir, "bad.bib", "@article{x, title = {open")

	p, _ := newTestPublisher(t)

	out, err := p.Publications(context.Background(), PublicationsInput{FirstAuthor: []string{good}, NthAuthor: []string{bad}})
	if !errors.Is(err, ErrParseBibliography) {
		t.Errorf("error = %v, want ErrParseBibliography", err)
	}
	if out != nil {
		t.Error("partial output returned")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Publications(ctx, PublicationsInput{FirstAuthor: []string{good}}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}

func TestPublisher_Publications_IntroAndSite(t *testing.T) {
	t.Parallel()

	text := DefaultPublicationsText()
	text.Intro = "Selected **refereed** papers."
	site := DefaultSite()
	site.AnalyticsID = ""
	site.Author = "Ada Lovelace"

	p, _ := newTestPublisher(t, WithPublicationsText(text), WithSite(site))
	out, err := p.Publications(context.Background(), PublicationsInput{})
	if err != nil {
		t.Fatalf("Publications() error = %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<strong>refereed</strong>") {
		t.Error("intro Markdown not rendered")
	}
	if !strings.Contains(html, "Copyright &copy; Ada Lovelace") {
		t.Error("site author not used")
	}
	if strings.Contains(html, "gtag") {
		t.Error("analytics rendered with empty id")
	}
}

func TestPublisher_Publications_CustomAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "templates"), "publications.html",
		`<p>{{.Title}}: {{range .Tables}}{{len .Rows}}{{end}}</p>`)

	p, _ := newTestPublisher(t, WithAssetPath(dir))
	out, err := p.Publications(context.Background(), PublicationsInput{
		FirstAuthor: []string{writeFile(t, dir, "a.bib", firstBib)},
	})
	if err != nil {
		t.Fatalf("Publications() error = %v", err)
	}
	if got := string(out); got != "<p>Publications: 3</p>" {
		t.Errorf("custom template output = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Presentations
// ---------------------------------------------------------------------------

func writeLogs(t *testing.T) (domestic, international string) {
	t.Helper()
	dir := t.TempDir()
	domestic = writeFile(t, dir, "domestic.txt", domesticLog)
	international = writeFile(t, dir, "international.txt",
		"Presenters: J. Beniyama\nTitle: Asteroid colors\nEvent: ACM\nDates: 2023-06-18 – 2023-06-23\nType: Poster\n")
	return domestic, international
}

func TestPublisher_Presentations(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	p, mock := newTestPublisher(t)

	res, err := p.Presentations(context.Background(), PresentationsInput{
		Domestic:      dom,
		International: intl,
		Figure:        "fig/presentations.png",
	})
	if err != nil {
		t.Fatalf("Presentations() error = %v", err)
	}
	html := string(res.HTML)

	for _, want := range []string{
		"These are list of my presentations. Last updated on 2025-03-07",
		`<img src="fig/presentations.png" alt="Presentations per Year"`,
		"<h1>Domestic Presentations</h1>",
		"<h1>International Presentations</h1>",
		`<a href="https://example.org/talk" target="_blank">Lightcurves of tiny asteroids</a>`,
		"<td>Poster without presenters</td>",
		"<td>Asteroid colors</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "gtag") {
		t.Error("presentations page should not carry analytics")
	}

	if !mock.called {
		t.Fatal("png figure should be rasterized")
	}
	if mock.opts.Width != 1200 || mock.opts.Height != 600 || mock.opts.Scale != 3 || mock.opts.Format != FigurePNG {
		t.Errorf("raster options = %+v", mock.opts)
	}
	if !strings.Contains(string(mock.hostHTML), "<svg") {
		t.Error("host page does not embed the chart")
	}
	if !bytes.HasPrefix(res.Figure, []byte("\x89PNG")) {
		t.Errorf("Figure = %q", res.Figure)
	}

	// 2023 counts one domestic and one international talk.
	if len(res.Counts.Years) == 0 || res.Counts.Years[len(res.Counts.Years)-1] != 2023 {
		t.Fatalf("Years = %v", res.Counts.Years)
	}
	last := len(res.Counts.Years) - 1
	if res.Counts.Domestic[last] != 1 || res.Counts.International[last] != 1 || res.Counts.Total[last] != 2 {
		t.Errorf("2023 counts = %d/%d/%d", res.Counts.Domestic[last], res.Counts.International[last], res.Counts.Total[last])
	}
}

func TestPublisher_Presentations_SVGFigure(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	p, mock := newTestPublisher(t)

	res, err := p.Presentations(context.Background(), PresentationsInput{Domestic: dom, International: intl, Figure: "fig/p.svg"})
	if err != nil {
		t.Fatalf("Presentations() error = %v", err)
	}
	if mock.called {
		t.Error("svg figure should not start a browser")
	}
	if !bytes.HasPrefix(res.Figure, []byte("<svg")) {
		t.Errorf("Figure prefix = %q", res.Figure[:min(len(res.Figure), 20)])
	}
}

func TestPublisher_Presentations_NoFigure(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	p, mock := newTestPublisher(t)

	res, err := p.Presentations(context.Background(), PresentationsInput{Domestic: dom, International: intl})
	if err != nil {
		t.Fatalf("Presentations() error = %v", err)
	}
	if res.Figure != nil || mock.called {
		t.Error("figure rendered without a figure path")
	}
	if strings.Contains(string(res.HTML), "<img") {
		t.Error("<img> emitted without a figure path")
	}
}

func TestPublisher_Presentations_OnlyDateStampDiffers(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	in := PresentationsInput{Domestic: dom, International: intl}

	a, _ := newTestPublisher(t)
	b, _ := newTestPublisher(t, WithClock(fixedClock("2026-10-18")))

	ra, err := a.Presentations(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.Presentations(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	normalized := strings.Replace(string(rb.HTML), "2026-10-18", "2025-03-07", 1)
	if normalized != string(ra.HTML) {
		t.Error("pages differ beyond the last-updated stamp")
	}
}

func TestPublisher_Presentations_DateFormat(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	text := DefaultPresentationsText()
	text.DateFormat = "long"
	p, _ := newTestPublisher(t, WithPresentationsText(text))

	res, err := p.Presentations(context.Background(), PresentationsInput{Domestic: dom, International: intl})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(res.HTML), "Last updated on March 7, 2025") {
		t.Error("long date preset not applied")
	}
}

func TestPublisher_Presentations_Errors(t *testing.T) {
	t.Parallel()

	dom, intl := writeLogs(t)
	missing := filepath.Join(t.TempDir(), "missing.txt")
	browserErr := errors.New("no chrome")

	tests := []struct {
		name    string
		in      PresentationsInput
		rastErr error
		wantErr error
	}{
		{
			name:    "missing domestic",
			in:      PresentationsInput{Domestic: missing, International: intl},
			wantErr: ErrReadPresentations,
		},
		{
			name:    "missing international",
			in:      PresentationsInput{Domestic: dom, International: missing},
			wantErr: ErrReadPresentations,
		},
		{
			name:    "empty path",
			in:      PresentationsInput{Domestic: dom},
			wantErr: ErrMissingInput,
		},
		{
			name:    "rasterizer failure",
			in:      PresentationsInput{Domestic: dom, International: intl, Figure: "f.png"},
			rastErr: browserErr,
			wantErr: browserErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewPublisher(withRasterizer(&mockRasterizer{err: tt.rastErr}))
			if err != nil {
				t.Fatal(err)
			}
			res, err := p.Presentations(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("result returned alongside an error")
			}
		})
	}
}
