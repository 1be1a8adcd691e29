// Package yamlutil decodes site configuration YAML, keeping the parser
// dependency in one place.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalFileStrict reads path and decodes it with UnmarshalStrict.
// Decoding errors carry the file path.
func UnmarshalFileStrict(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- config path chosen by the user
	if err != nil {
		return err
	}
	if err := UnmarshalStrict(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
