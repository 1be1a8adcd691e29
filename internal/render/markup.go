package render

import (
	"html"
	"html/template"
	"strings"
)

// PlaceholderHref is the link target used when an entry has no URL.
const PlaceholderHref = "#"

// Bold wraps escaped text in <b>.
func Bold(text string) template.HTML {
	return template.HTML("<b>" + html.EscapeString(text) + "</b>") // #nosec G203 -- text escaped
}

// Text escapes plain text for a cell that otherwise holds markup.
func Text(text string) template.HTML {
	return template.HTML(html.EscapeString(text)) // #nosec G203 -- text escaped
}

// Join concatenates fragments with an escaped separator.
func Join(parts []template.HTML, sep string) template.HTML {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(html.EscapeString(sep))
		}
		b.WriteString(string(p))
	}
	return template.HTML(b.String()) // #nosec G203 -- parts are already safe
}

// Link renders an anchor that opens in a new tab. Both href and text are
// escaped; an empty href or a script URL becomes PlaceholderHref.
func Link(href, text string) template.HTML {
	return template.HTML(`<a href="` + html.EscapeString(SafeHref(href)) + `" target="_blank">` + // #nosec G203 -- escaped
		html.EscapeString(text) + `</a>`)
}

// SafeHref returns href, or PlaceholderHref when it is empty or uses a
// script scheme.
func SafeHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return PlaceholderHref
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return PlaceholderHref
		}
	}
	return href
}
