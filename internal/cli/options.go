package cli

import (
	"fmt"
	"time"

	pubpage "github.com/alnah/go-pubpage"
	"github.com/alnah/go-pubpage/internal/config"
)

// loadConfig returns the config named by --config, else PUBPAGE_CONFIG,
// else the built-in defaults, with environment overrides applied.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// resolveTimeout gives --timeout precedence over the config value, which
// already carries PUBPAGE_TIMEOUT.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.TimeoutDuration()
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// publisherOptions translates the merged configuration into Publisher options.
func publisherOptions(cfg *config.Config, timeout time.Duration, now func() time.Time) []pubpage.Option {
	journals := make([]pubpage.Journal, 0, len(cfg.Journals))
	for _, j := range cfg.Journals {
		journals = append(journals, pubpage.Journal{Macro: j.Macro, Name: j.Name})
	}

	opts := []pubpage.Option{
		pubpage.WithTimeout(timeout),
		pubpage.WithSite(pubpage.Site{
			Author:      cfg.Site.Author,
			Favicon:     cfg.Site.Favicon,
			Stylesheet:  cfg.Site.Stylesheet,
			HomeLink:    cfg.Site.HomeLink,
			HomeLabel:   cfg.Site.HomeLabel,
			AnalyticsID: cfg.Site.AnalyticsID,
		}),
		pubpage.WithJournals(journals...),
		pubpage.WithPublicationsText(pubpage.PublicationsText{
			Title:              cfg.Publications.Title,
			FirstAuthorHeading: cfg.Publications.FirstAuthorHeading,
			NthAuthorHeading:   cfg.Publications.NthAuthorHeading,
			MaxAuthors:         cfg.Publications.MaxAuthors,
			Intro:              cfg.Publications.Intro,
		}),
		pubpage.WithPresentationsText(pubpage.PresentationsText{
			Title:                cfg.Presentations.Title,
			DomesticHeading:      cfg.Presentations.DomesticHeading,
			InternationalHeading: cfg.Presentations.InternationalHeading,
			Lead:                 cfg.Presentations.Lead,
			DateFormat:           cfg.Presentations.DateFormat,
			Intro:                cfg.Presentations.Intro,
		}),
		pubpage.WithChart(pubpage.ChartSettings{
			Title:  cfg.Chart.Title,
			XLabel: cfg.Chart.XLabel,
			YLabel: cfg.Chart.YLabel,
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
			Scale:  cfg.Chart.Scale,
		}),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, pubpage.WithAssetPath(cfg.Assets.BasePath))
	}
	if now != nil {
		opts = append(opts, pubpage.WithClock(now))
	}
	return opts
}
