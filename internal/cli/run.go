// Package cli implements the bib2html and pres2html commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	pubpage "github.com/alnah/go-pubpage"
	"github.com/alnah/go-pubpage/internal/assets"
	"github.com/alnah/go-pubpage/internal/config"
	"github.com/alnah/go-pubpage/internal/fileutil"
	"github.com/alnah/go-pubpage/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

type runFunc func(ctx context.Context, args []string, env *Environment) error

// Bib2HTML runs bib2html with args (program name excluded) and returns
// the process exit code.
func Bib2HTML(args []string, env *Environment) int {
	return execute(runBib2HTML, args, env)
}

// Pres2HTML runs pres2html with args (program name excluded) and returns
// the process exit code.
func Pres2HTML(args []string, env *Environment) int {
	return execute(runPres2HTML, args, env)
}

func execute(run runFunc, args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

func runBib2HTML(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBib2HTMLFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printBib2HTMLUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v (see bib2html --help)", ErrUsage, err)
	}
	if f.common.version {
		fmt.Fprintf(env.Stdout, "bib2html %s\n", Version)
		return nil
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: expected <output_html>, got %d arguments (see bib2html --help)", ErrUsage, len(positional))
	}
	output := positional[0]
	if output == "" {
		return pubpage.ErrNoOutput
	}

	logger, pub, err := setup(f.common, "", env)
	if err != nil {
		return err
	}
	defer pub.Close()

	if len(f.first) == 0 && len(f.nth) == 0 {
		logger.Warn("no BibTeX files given, the page will have no tables")
	}
	logger.Debug("rendering publications", "first", f.first, "nth", f.nth)

	p := newProgress(logger)
	html, err := pub.Publications(ctx, pubpage.PublicationsInput{
		FirstAuthor: f.first,
		NthAuthor:   f.nth,
	})
	if err != nil {
		return err
	}
	p.done("Rendered publications")

	if err := writeOutput(output, html); err != nil {
		return err
	}
	logger.Infof("Generated HTML: %s", output)
	return nil
}

func runPres2HTML(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePres2HTMLFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printPres2HTMLUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v (see pres2html --help)", ErrUsage, err)
	}
	if f.common.version {
		fmt.Fprintf(env.Stdout, "pres2html %s\n", Version)
		return nil
	}
	if len(positional) != 3 {
		return fmt.Errorf("%w: expected <output_html> <domestic> <international>, got %d arguments (see pres2html --help)",
			ErrUsage, len(positional))
	}
	output, domestic, international := positional[0], positional[1], positional[2]
	if output == "" {
		return pubpage.ErrNoOutput
	}

	logger, pub, err := setup(f.common, f.timeout, env)
	if err != nil {
		return err
	}
	defer pub.Close()

	if f.figure != "" {
		format := pubpage.FigureFormatFor(f.figure)
		logger.Debug("figure requested", "path", f.figure, "format", format, "browser", format.NeedsBrowser())
	}

	p := newProgress(logger)
	res, err := pub.Presentations(ctx, pubpage.PresentationsInput{
		Domestic:      domestic,
		International: international,
		Figure:        f.figure,
	})
	if err != nil {
		return err
	}
	p.done("Rendered presentations")
	logger.Debug("yearly counts", "years", res.Counts.Years, "total", res.Counts.Total)

	if err := writeOutput(output, res.HTML); err != nil {
		return err
	}
	logger.Infof("Generated HTML: %s", output)

	if res.Figure != nil {
		if err := writeOutput(f.figure, res.Figure); err != nil {
			return err
		}
		logger.Infof("Saved figure: %s", f.figure)
	}
	return nil
}

// setup builds the logger and a Publisher from config file, environment,
// and flags.
func setup(common commonFlags, timeoutFlag string, env *Environment) (*log.Logger, Publisher, error) {
	logger := newLogger(env.Stderr, levelFor(common))
	if env.MaxProcs != nil {
		env.MaxProcs(logger.Debugf)
	}
	warnUnknownEnvVars(logger)

	cfg, err := loadConfig(common.config, loadEnvConfig())
	if err != nil {
		return nil, nil, err
	}
	if common.assetPath != "" {
		cfg.Assets.BasePath = common.assetPath
	}

	timeout, err := resolveTimeout(timeoutFlag, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("settings resolved", "config", common.config, "assets", cfg.Assets.BasePath, "timeout", timeout)

	pub, err := env.NewPublisher(publisherOptions(cfg, timeout, env.Now)...)
	if err != nil {
		return nil, nil, err
	}
	return logger, pub, nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, fileutil.DefaultFilePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", pubpage.ErrWriteOutput, path, err)
	}
	return nil
}

// hintFor returns actionable advice for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, pubpage.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, pubpage.ErrParseBibliography):
		return hints.ForBibliographySyntax()
	case errors.Is(err, pubpage.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("pubpage"))
	case errors.Is(err, assets.ErrTemplateNotFound):
		return hints.ForAssetNotFound(assets.TemplateNames())
	}
	return ""
}
