package pubpage

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadBibliography  = errors.New("failed to read bibliography")
	ErrParseBibliography = errors.New("failed to parse bibliography")
	ErrReadPresentations = errors.New("failed to read presentations log")
	ErrMissingInput      = errors.New("input path cannot be empty")
	ErrNoOutput          = errors.New("output path cannot be empty")
	ErrRenderPage        = errors.New("page rendering failed")
	ErrChartRender       = errors.New("chart rendering failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrWriteOutput       = errors.New("failed to write output")

	// Settings validation errors.
	ErrInvalidMaxAuthors = errors.New("invalid maximum author count")
	ErrInvalidChartSize  = errors.New("invalid chart size")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
)
