// Package chart draws small line charts as standalone SVG documents.
//
// Charts have a numeric x axis of years (one tick per year), a y axis of
// counts starting at zero, a grid, a legend and one line-and-marker series
// per group. Output is deterministic for identical input.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"
)

// Marker is the symbol drawn at each data point.
type Marker int

const (
	Circle Marker = iota
	Square
	Triangle
)

// Default colors, matching the classic named colors.
const (
	Blue  = "#0000ff"
	Red   = "#ff0000"
	Green = "#008000"
)

// Series is one plotted line. Values align with Chart.Years.
type Series struct {
	Name   string
	Color  string
	Marker Marker
	Values []int
}

// Chart describes a figure.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Years  []int // ascending
	Series []Series
	Width  int // px; 0 = DefaultWidth
	Height int // px; 0 = DefaultHeight
}

// Default figure size in CSS pixels (2:1, like a 12x6 inch figure).
const (
	DefaultWidth  = 1200
	DefaultHeight = 600
)

// Plot margins in px.
const (
	marginLeft   = 90.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 80.0
	markerSize   = 5.0
	fontFamily   = "DejaVu Sans, Helvetica, Arial, sans-serif"
)

// Render returns the chart as an SVG document.
func Render(c Chart) []byte {
	w, h := float64(c.Width), float64(c.Height)
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	p := newPlot(c, w, h)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		w, h, w, h, fontFamily)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="#ffffff"/>`+"\n", w, h)

	p.renderGrid(&buf)
	p.renderAxes(&buf, c)
	for _, s := range c.Series {
		p.renderSeries(&buf, s)
	}
	p.renderLegend(&buf, c.Series)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// plot maps data coordinates to pixels.
type plot struct {
	x0, x1, y0, y1 float64 // pixel box: x0 left, y0 bottom
	years          []int
	minX, maxX     float64
	yMax           int
	yStep          int
}

func newPlot(c Chart, w, h float64) *plot {
	p := &plot{
		x0:    marginLeft,
		x1:    w - marginRight,
		y0:    h - marginBottom,
		y1:    marginTop,
		years: c.Years,
	}

	if len(c.Years) > 0 {
		lo, hi := float64(c.Years[0]), float64(c.Years[len(c.Years)-1])
		// Pad the x range so end markers are not clipped.
		pad := math.Max((hi-lo)*0.05, 0.5)
		p.minX, p.maxX = lo-pad, hi+pad
	} else {
		p.minX, p.maxX = 0, 1
	}

	maxVal := 0
	for _, s := range c.Series {
		for _, v := range s.Values {
			maxVal = max(maxVal, v)
		}
	}
	p.yStep = niceStep(maxVal)
	p.yMax = ((maxVal / p.yStep) + 1) * p.yStep
	return p
}

// niceStep picks a 1, 2 or 5 times power-of-ten tick step giving at most
// about eight ticks.
func niceStep(maxVal int) int {
	if maxVal <= 8 {
		return 1
	}
	raw := float64(maxVal) / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw {
			return int(step)
		}
	}
	return int(10 * mag)
}

func (p *plot) px(year int) float64 {
	return p.x0 + (float64(year)-p.minX)/(p.maxX-p.minX)*(p.x1-p.x0)
}

func (p *plot) py(v int) float64 {
	return p.y0 - float64(v)/float64(p.yMax)*(p.y0-p.y1)
}

func (p *plot) renderGrid(buf *bytes.Buffer) {
	buf.WriteString(`  <g stroke="#b0b0b0" stroke-width="0.8">` + "\n")
	for _, y := range p.years {
		x := p.px(y)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, p.y1, x, p.y0)
	}
	for v := 0; v <= p.yMax; v += p.yStep {
		y := p.py(v)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", p.x0, y, p.x1, y)
	}
	buf.WriteString("  </g>\n")
}

func (p *plot) renderAxes(buf *bytes.Buffer, c Chart) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000000" stroke-width="1"/>`+"\n",
		p.x0, p.y1, p.x1-p.x0, p.y0-p.y1)

	buf.WriteString(`  <g font-size="14" fill="#000000">` + "\n")
	for _, y := range p.years {
		x := p.px(y)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>`+"\n", x, p.y0, x, p.y0+5)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle">%d</text>`+"\n", x, p.y0+22, y)
	}
	for v := 0; v <= p.yMax; v += p.yStep {
		y := p.py(v)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>`+"\n", p.x0-5, y, p.x0, y)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle">%d</text>`+"\n", p.x0-9, y, v)
	}
	buf.WriteString("  </g>\n")

	midX := (p.x0 + p.x1) / 2
	midY := (p.y0 + p.y1) / 2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="20" text-anchor="middle">%s</text>`+"\n",
		midX, p.y1-20, html.EscapeString(c.Title))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="16" text-anchor="middle">%s</text>`+"\n",
		midX, p.y0+55, html.EscapeString(c.XLabel))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="16" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
		p.x0-60, midY, p.x0-60, midY, html.EscapeString(c.YLabel))
}

func (p *plot) renderSeries(buf *bytes.Buffer, s Series) {
	n := min(len(s.Values), len(p.years))
	if n == 0 {
		return
	}

	fmt.Fprintf(buf, `  <g class="series" data-name="%s">`+"\n", html.EscapeString(s.Name))
	if n > 1 {
		buf.WriteString(`    <polyline fill="none" stroke-width="2" stroke="` + html.EscapeString(s.Color) + `" points="`)
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%.1f,%.1f", p.px(p.years[i]), p.py(s.Values[i]))
		}
		buf.WriteString(`"/>` + "\n")
	}
	for i := 0; i < n; i++ {
		writeMarker(buf, s.Marker, s.Color, p.px(p.years[i]), p.py(s.Values[i]))
	}
	buf.WriteString("  </g>\n")
}

func (p *plot) renderLegend(buf *bytes.Buffer, series []Series) {
	if len(series) == 0 {
		return
	}
	const (
		rowHeight = 24.0
		boxWidth  = 190.0
		pad       = 10.0
	)
	x := p.x0 + 12
	y := p.y1 + 12
	height := pad*2 + rowHeight*float64(len(series)-1) + 8

	fmt.Fprintf(buf, `  <g class="legend" font-size="14">`+"\n")
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff" fill-opacity="0.8" stroke="#cccccc" rx="3"/>`+"\n",
		x, y, boxWidth, height)
	for i, s := range series {
		cy := y + pad + 4 + rowHeight*float64(i)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			x+pad, cy, x+pad+36, cy, html.EscapeString(s.Color))
		writeMarker(buf, s.Marker, s.Color, x+pad+18, cy)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" dominant-baseline="middle">%s</text>`+"\n",
			x+pad+48, cy, html.EscapeString(s.Name))
	}
	buf.WriteString("  </g>\n")
}

func writeMarker(buf *bytes.Buffer, m Marker, color string, x, y float64) {
	c := html.EscapeString(color)
	switch m {
	case Square:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x-markerSize, y-markerSize, 2*markerSize, 2*markerSize, c)
	case Triangle:
		fmt.Fprintf(buf, `    <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
			x, y-markerSize*1.2, x-markerSize*1.1, y+markerSize*0.8, x+markerSize*1.1, y+markerSize*0.8, c)
	default:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x, y, markerSize, c)
	}
}
