// Package render turns page data into HTML documents.
//
// Pages are html/template sources loaded through an [assets.AssetLoader], so
// every plain string field is escaped by the template engine. Cells that carry
// markup (a bold first author, a title link) are built with [Bold] and [Link],
// which escape the text they wrap and return template.HTML.
//
// Optional page intros are written in Markdown and converted with goldmark.
package render
