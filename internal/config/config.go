// Package config loads the YAML site configuration shared by both commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	pubpage "github.com/alnah/go-pubpage"
	"github.com/alnah/go-pubpage/internal/dateutil"
	"github.com/alnah/go-pubpage/internal/fileutil"
	"github.com/alnah/go-pubpage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength    = 100
	MaxURLLength     = 2048
	MaxHeadingLength = 200
	MaxIntroLength   = 20000
	MaxMacroLength   = 50
	MaxLabelLength   = 100
	MaxAnalyticsID   = 50
)

// MaxAuthors caps publications.maxAuthors.
const MaxAuthors = 50

// DefaultTimeout bounds chart rasterization.
const DefaultTimeout = 30 * time.Second

// Config holds everything that shapes the generated pages.
type Config struct {
	Site          SiteConfig          `yaml:"site"`
	Journals      []JournalDef        `yaml:"journals"`
	Publications  PublicationsConfig  `yaml:"publications"`
	Presentations PresentationsConfig `yaml:"presentations"`
	Chart         ChartConfig         `yaml:"chart"`
	Assets        AssetsConfig        `yaml:"assets"`
}

// SiteConfig is the page chrome shared by both pages.
type SiteConfig struct {
	Author      string `yaml:"author"`      // copyright holder in the footer
	Favicon     string `yaml:"favicon"`     // site-relative favicon path
	Stylesheet  string `yaml:"stylesheet"`  // site-relative stylesheet path
	HomeLink    string `yaml:"homeLink"`    // target of "Back to home"
	HomeLabel   string `yaml:"homeLabel"`   // text of the home link
	AnalyticsID string `yaml:"analyticsID"` // Google Analytics id, publications page only; empty disables
}

// JournalDef adds or overrides one journal macro.
type JournalDef struct {
	Macro string `yaml:"macro"` // e.g. "\icarus"
	Name  string `yaml:"name"`  // e.g. "Icarus"
}

// PublicationsConfig shapes the bibliography page.
type PublicationsConfig struct {
	Title              string `yaml:"title"`
	FirstAuthorHeading string `yaml:"firstAuthorHeading"`
	NthAuthorHeading   string `yaml:"nthAuthorHeading"`
	MaxAuthors         int    `yaml:"maxAuthors"` // first-author mode truncation
	Intro              string `yaml:"intro"`      // Markdown, empty = none
}

// PresentationsConfig shapes the presentations page.
type PresentationsConfig struct {
	Title                string `yaml:"title"`
	DomesticHeading      string `yaml:"domesticHeading"`
	InternationalHeading string `yaml:"internationalHeading"`
	Lead                 string `yaml:"lead"`       // sentence before the last-updated stamp
	DateFormat           string `yaml:"dateFormat"` // token format or preset for the last-updated stamp
	Intro                string `yaml:"intro"`      // Markdown, empty = none
}

// ChartConfig shapes the presentations-per-year figure.
type ChartConfig struct {
	Title   string  `yaml:"title"`
	XLabel  string  `yaml:"xLabel"`
	YLabel  string  `yaml:"yLabel"`
	Width   int     `yaml:"width"`   // CSS px
	Height  int     `yaml:"height"`  // CSS px
	Scale   float64 `yaml:"scale"`   // device scale factor for raster output
	Timeout string  `yaml:"timeout"` // Go duration, e.g. "45s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig reproduces the pages the commands have always produced.
func DefaultConfig() *Config {
	site := pubpage.DefaultSite()
	pubs := pubpage.DefaultPublicationsText()
	pres := pubpage.DefaultPresentationsText()
	chart := pubpage.DefaultChartSettings()

	return &Config{
		Site: SiteConfig{
			Author:      site.Author,
			Favicon:     site.Favicon,
			Stylesheet:  site.Stylesheet,
			HomeLink:    site.HomeLink,
			HomeLabel:   site.HomeLabel,
			AnalyticsID: site.AnalyticsID,
		},
		Publications: PublicationsConfig{
			Title:              pubs.Title,
			FirstAuthorHeading: pubs.FirstAuthorHeading,
			NthAuthorHeading:   pubs.NthAuthorHeading,
			MaxAuthors:         pubs.MaxAuthors,
		},
		Presentations: PresentationsConfig{
			Title:                pres.Title,
			DomesticHeading:      pres.DomesticHeading,
			InternationalHeading: pres.InternationalHeading,
			Lead:                 pres.Lead,
			DateFormat:           pres.DateFormat,
		},
		Chart: ChartConfig{
			Title:   chart.Title,
			XLabel:  chart.XLabel,
			YLabel:  chart.YLabel,
			Width:   chart.Width,
			Height:  chart.Height,
			Scale:   chart.Scale,
			Timeout: DefaultTimeout.String(),
		},
	}
}

// TimeoutDuration parses Chart.Timeout, falling back to DefaultTimeout when empty.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Chart.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Chart.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: chart.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: chart.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks lengths and ranges. LoadConfig calls it; library users who
// build a Config by hand should too.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.favicon", c.Site.Favicon, MaxURLLength},
		{"site.stylesheet", c.Site.Stylesheet, MaxURLLength},
		{"site.homeLink", c.Site.HomeLink, MaxURLLength},
		{"site.homeLabel", c.Site.HomeLabel, MaxLabelLength},
		{"site.analyticsID", c.Site.AnalyticsID, MaxAnalyticsID},
		{"publications.title", c.Publications.Title, MaxHeadingLength},
		{"publications.firstAuthorHeading", c.Publications.FirstAuthorHeading, MaxHeadingLength},
		{"publications.nthAuthorHeading", c.Publications.NthAuthorHeading, MaxHeadingLength},
		{"publications.intro", c.Publications.Intro, MaxIntroLength},
		{"presentations.title", c.Presentations.Title, MaxHeadingLength},
		{"presentations.domesticHeading", c.Presentations.DomesticHeading, MaxHeadingLength},
		{"presentations.internationalHeading", c.Presentations.InternationalHeading, MaxHeadingLength},
		{"presentations.lead", c.Presentations.Lead, MaxHeadingLength},
		{"presentations.intro", c.Presentations.Intro, MaxIntroLength},
		{"chart.title", c.Chart.Title, MaxHeadingLength},
		{"chart.xLabel", c.Chart.XLabel, MaxLabelLength},
		{"chart.yLabel", c.Chart.YLabel, MaxLabelLength},
		{"assets.basePath", c.Assets.BasePath, MaxURLLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for i, j := range c.Journals {
		name := fmt.Sprintf("journals[%d]", i)
		if strings.TrimSpace(j.Macro) == "" {
			return fmt.Errorf("%w: %s.macro: required", ErrInvalidValue, name)
		}
		if err := validateFieldLength(name+".macro", j.Macro, MaxMacroLength); err != nil {
			return err
		}
		if err := validateFieldLength(name+".name", j.Name, MaxHeadingLength); err != nil {
			return err
		}
	}

	if c.Publications.MaxAuthors < 1 || c.Publications.MaxAuthors > MaxAuthors {
		return fmt.Errorf("%w: publications.maxAuthors: must be between 1 and %d, got %d",
			ErrInvalidValue, MaxAuthors, c.Publications.MaxAuthors)
	}

	if _, err := dateutil.Format(time.Time{}, c.Presentations.DateFormat); err != nil {
		return fmt.Errorf("presentations.dateFormat: %w", err)
	}

	if err := validateRange("chart.width", c.Chart.Width); err != nil {
		return err
	}
	if err := validateRange("chart.height", c.Chart.Height); err != nil {
		return err
	}
	if c.Chart.Scale <= 0 || c.Chart.Scale > pubpage.MaxScale {
		return fmt.Errorf("%w: chart.scale: must be in (0, %.0f], got %.2f", ErrInvalidValue, pubpage.MaxScale, c.Chart.Scale)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

func validateRange(fieldName string, v int) error {
	if v < pubpage.MinChartSize || v > pubpage.MaxChartSize {
		return fmt.Errorf("%w: %s: must be between %d and %d, got %d",
			ErrInvalidValue, fieldName, pubpage.MinChartSize, pubpage.MaxChartSize, v)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value that looks like a path (separator or .yaml/.yml extension) is read
// directly; a bare name is searched in the current directory, then in the
// user config directory under go-pubpage/. Fields absent from the file keep
// their DefaultConfig values. A missing file is an error, never a silent
// fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrNilData) {
			// An empty file means "all defaults".
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-pubpage", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
