package assets

import (
	"fmt"
	"unicode"
)

// AssetLoader loads style sheets and page templates by name.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName checks that name can be used as a bare file name: not
// empty, no path separators, no dots (so no extension games or traversal) and
// no whitespace or control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		if r == '/' || r == '\\' || r == '.' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
