package pubpage

import (
	"context"
	"fmt"
	"html/template"
	"slices"
	"time"

	"github.com/alnah/go-pubpage/internal/assets"
	"github.com/alnah/go-pubpage/internal/chart"
	"github.com/alnah/go-pubpage/internal/dateutil"
	"github.com/alnah/go-pubpage/internal/render"
)

// Publisher renders the publications and presentations pages.
// Create with NewPublisher, and Close when done to release the browser.
type Publisher struct {
	cfg        publisherConfig
	now        func() time.Time
	journals   JournalTable
	renderer   *render.Renderer
	markdown   *render.MarkdownConverter
	rasterizer rasterizer
}

// publisherConfig holds what options set.
type publisherConfig struct {
	timeout       time.Duration
	assetPath     string
	site          Site
	journals      []Journal // appended after DefaultJournals
	publications  PublicationsText
	presentations PresentationsText
	chart         ChartSettings
}

// NewPublisher creates a Publisher with the built-in site defaults.
// Options override them; invalid settings and an unusable asset path are
// reported here rather than on first render.
func NewPublisher(opts ...Option) (*Publisher, error) {
	p := &Publisher{
		cfg: publisherConfig{
			timeout:       defaultTimeout,
			site:          DefaultSite(),
			publications:  DefaultPublicationsText(),
			presentations: DefaultPresentationsText(),
			chart:         DefaultChartSettings(),
		},
		now:      time.Now,
		markdown: render.NewMarkdownConverter(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.cfg.publications.Validate(); err != nil {
		return nil, err
	}
	if err := p.cfg.presentations.Validate(); err != nil {
		return nil, err
	}
	if err := p.cfg.chart.Validate(); err != nil {
		return nil, err
	}

	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if p.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(p.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	p.renderer = render.NewRenderer(loader)

	p.journals = NewJournalTable(append(slices.Clone(DefaultJournals), p.cfg.journals...)...)

	// Tests inject a fake before this point.
	if p.rasterizer == nil {
		p.rasterizer = newRodRasterizer(p.cfg.timeout)
	}
	return p, nil
}

// Close releases browser resources, if a browser was started.
func (p *Publisher) Close() error {
	if p.rasterizer != nil {
		return p.rasterizer.Close()
	}
	return nil
}

// Journals returns the resolved journal table.
func (p *Publisher) Journals() JournalTable {
	return p.journals
}

// Publications renders the publications page. Every file is read and parsed
// before rendering, so any failure means no page.
func (p *Publisher) Publications(ctx context.Context, in PublicationsInput) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	text := p.cfg.publications
	intro, err := p.markdown.ToHTML(ctx, text.Intro)
	if err != nil {
		return nil, fmt.Errorf("%w: intro: %w", ErrRenderPage, err)
	}

	page := render.PublicationsPage{
		Site:  render.Site(p.cfg.site),
		Title: text.Title,
		Intro: intro,
	}

	groups := []struct {
		heading string
		files   []string
		style   AuthorStyle
	}{
		{text.FirstAuthorHeading, in.FirstAuthor, FirstAuthor},
		{text.NthAuthorHeading, in.NthAuthor, NthAuthor},
	}
	for _, g := range groups {
		if len(g.files) == 0 {
			continue
		}
		entries, err := LoadBibliography(g.files...)
		if err != nil {
			return nil, err
		}
		page.Tables = append(page.Tables, render.PublicationTable{
			Heading: g.heading,
			Rows:    publicationRows(entries, g.style, text.MaxAuthors, p.journals),
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err = p.renderer.Publications(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPage, err)
	}
	return out, nil
}

// Presentations renders the presentations page and, when in.Figure is set,
// the chart it references.
func (p *Publisher) Presentations(ctx context.Context, in PresentationsInput) (res *PresentationsResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	domestic, err := LoadPresentations(in.Domestic)
	if err != nil {
		return nil, fmt.Errorf("domestic: %w", err)
	}
	international, err := LoadPresentations(in.International)
	if err != nil {
		return nil, fmt.Errorf("international: %w", err)
	}

	text := p.cfg.presentations
	stamp, err := dateutil.Format(p.now(), text.DateFormat)
	if err != nil {
		return nil, err
	}
	intro, err := p.markdown.ToHTML(ctx, text.Intro)
	if err != nil {
		return nil, fmt.Errorf("%w: intro: %w", ErrRenderPage, err)
	}

	page := render.PresentationsPage{
		Site:        render.Site(p.cfg.site),
		Title:       text.Title,
		Intro:       intro,
		Lead:        text.Lead,
		LastUpdated: stamp,
		Figure:      in.Figure,
		FigureAlt:   p.cfg.chart.Title,
		Tables: []render.PresentationTable{
			{Heading: text.DomesticHeading, Rows: presentationRows(domestic)},
			{Heading: text.InternationalHeading, Rows: presentationRows(international)},
		},
	}

	html, err := p.renderer.Presentations(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPage, err)
	}

	res = &PresentationsResult{
		HTML:   html,
		Counts: CountByYear(domestic, international),
	}
	if in.Figure == "" {
		return res, nil
	}

	res.Figure, err = p.RenderFigure(ctx, res.Counts, FigureFormatFor(in.Figure))
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RenderFigure draws counts in the given format. SVG is returned as drawn;
// raster formats go through headless Chrome, bounded by the timeout option.
func (p *Publisher) RenderFigure(ctx context.Context, counts YearlyCounts, format FigureFormat) ([]byte, error) {
	svg := chart.Render(counts.Chart(p.cfg.chart))
	if !format.NeedsBrowser() {
		return svg, nil
	}

	host, err := p.renderer.ChartHost(render.ChartPage{
		Title: p.cfg.chart.Title,
		SVG:   template.HTML(svg), // #nosec G203 -- generated by internal/chart, text escaped
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChartRender, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.timeout)
	defer cancel()

	return p.rasterizer.Rasterize(ctx, host, &rasterOptions{
		Width:  p.cfg.chart.Width,
		Height: p.cfg.chart.Height,
		Scale:  p.cfg.chart.Scale,
		Format: format,
	})
}
