package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdown indicates an intro could not be converted.
var ErrMarkdown = errors.New("markdown conversion failed")

// MarkdownConverter converts page intros from Markdown to an HTML fragment.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter with GFM, footnotes and
// class-based code highlighting. Raw HTML in the source is not passed through.
func NewMarkdownConverter() *MarkdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &MarkdownConverter{md: md}
}

// ToHTML converts source to an HTML fragment. Empty source yields an empty
// fragment. goldmark takes no context, so only a context that is already
// canceled is honored.
func (c *MarkdownConverter) ToHTML(ctx context.Context, source string) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if source == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark output, raw HTML disabled
}
