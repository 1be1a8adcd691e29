package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-pubpage/internal/assets"
)

// Sentinel errors for page rendering.
var (
	ErrTemplateParse   = errors.New("page template parsing failed")
	ErrTemplateExecute = errors.New("page template rendering failed")
)

// Site is the chrome shared by every page.
type Site struct {
	Author      string
	Favicon     string
	Stylesheet  string
	HomeLink    string
	HomeLabel   string
	AnalyticsID string // rendered on the publications page only
}

// PublicationRow is one numbered bibliography row.
type PublicationRow struct {
	Number   int
	Authors  template.HTML
	Title    template.HTML
	Citation string
}

// PublicationTable is a headed bibliography table.
type PublicationTable struct {
	Heading string
	Rows    []PublicationRow
}

// PublicationsPage is the data of the publications template.
type PublicationsPage struct {
	Site   Site
	Title  string
	Intro  template.HTML
	Tables []PublicationTable
}

// PresentationRow is one numbered presentation row.
type PresentationRow struct {
	Number     int
	Presenters string
	Title      template.HTML
	Event      string
	Location   string
	Dates      string
	Type       string
	Memo       string
}

// PresentationTable is a headed presentation table.
type PresentationTable struct {
	Heading string
	Rows    []PresentationRow
}

// PresentationsPage is the data of the presentations template.
type PresentationsPage struct {
	Site        Site
	Title       string
	Intro       template.HTML
	Lead        string
	LastUpdated string
	Figure      string // image path; empty = no <img>
	FigureAlt   string
	Tables      []PresentationTable
}

// ChartPage hosts an SVG figure for rasterization.
type ChartPage struct {
	Title string
	SVG   template.HTML
}

// Renderer executes page templates loaded from an asset loader.
type Renderer struct {
	loader assets.AssetLoader
}

// NewRenderer creates a Renderer. A nil loader means embedded assets.
func NewRenderer(loader assets.AssetLoader) *Renderer {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	return &Renderer{loader: loader}
}

// Publications renders the publications page.
func (r *Renderer) Publications(page PublicationsPage) ([]byte, error) {
	style, err := r.style()
	if err != nil {
		return nil, err
	}
	return r.execute(assets.TemplatePublications, flattenPublications(page, style))
}

// Presentations renders the presentations page.
func (r *Renderer) Presentations(page PresentationsPage) ([]byte, error) {
	style, err := r.style()
	if err != nil {
		return nil, err
	}
	return r.execute(assets.TemplatePresentations, flattenPresentations(page, style))
}

// ChartHost renders the page the rasterizer screenshots.
func (r *Renderer) ChartHost(page ChartPage) ([]byte, error) {
	return r.execute(assets.TemplateChart, page)
}

func (r *Renderer) style() (template.CSS, error) {
	css, err := r.loader.LoadStyle(assets.StyleTable)
	if err != nil {
		return "", err
	}
	return template.CSS(sanitizeCSS(css)), nil // #nosec G203 -- style sheet shipped with the site
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	src, err := r.loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateExecute, name, err)
	}
	return buf.Bytes(), nil
}

// Templates address page fields directly (.Site, .Tables, .Style), so the
// page and its style are merged into one struct before execution.
type publicationsData struct {
	PublicationsPage
	Style template.CSS
}

type presentationsData struct {
	PresentationsPage
	Style template.CSS
}

func flattenPublications(p PublicationsPage, style template.CSS) publicationsData {
	return publicationsData{PublicationsPage: p, Style: style}
}

func flattenPresentations(p PresentationsPage, style template.CSS) presentationsData {
	return presentationsData{PresentationsPage: p, Style: style}
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
