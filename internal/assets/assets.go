package assets

import "sort"

// Built-in asset names.
const (
	TemplatePublications  = "publications"
	TemplatePresentations = "presentations"
	TemplateChart         = "chart"
	StyleTable            = "pub-list"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS file by name (without .css).
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an embedded HTML template by name (without .html).
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// TemplateNames lists the embedded template names, sorted.
func TemplateNames() []string {
	names := defaultLoader.names(templates, "templates", ".html")
	sort.Strings(names)
	return names
}
