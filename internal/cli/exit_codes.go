package cli

import (
	"errors"
	"os"

	pubpage "github.com/alnah/go-pubpage"
	"github.com/alnah/go-pubpage/internal/assets"
	"github.com/alnah/go-pubpage/internal/config"
	"github.com/alnah/go-pubpage/internal/dateutil"
)

// Exit codes for bib2html and pres2html.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input missing or malformed, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pubpage.ErrBrowserConnect) ||
		errors.Is(err, pubpage.ErrPageCreate) ||
		errors.Is(err, pubpage.ErrPageLoad) ||
		errors.Is(err, pubpage.ErrChartRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pubpage.ErrReadBibliography) ||
		errors.Is(err, pubpage.ErrParseBibliography) ||
		errors.Is(err, pubpage.ErrReadPresentations) ||
		errors.Is(err, pubpage.ErrMissingInput) ||
		errors.Is(err, pubpage.ErrNoOutput) ||
		errors.Is(err, pubpage.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, pubpage.ErrInvalidMaxAuthors) ||
		errors.Is(err, pubpage.ErrInvalidChartSize) ||
		errors.Is(err, pubpage.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
