package cli

import (
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by both commands.
type commonFlags struct {
	config    string
	assetPath string
	quiet     bool
	verbose   bool
	version   bool
}

// bib2htmlFlags holds bib2html flags.
type bib2htmlFlags struct {
	common commonFlags
	first  []string
	nth    []string
}

// pres2htmlFlags holds pres2html flags.
type pres2htmlFlags struct {
	common  commonFlags
	figure  string
	timeout string
}

// listFlags take every following value up to the next flag.
var listFlags = []string{"first", "Nth", "nth"}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template/style directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
}

// newFlagSet returns a silent FlagSet; the caller reports errors and usage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseBib2HTMLFlags parses bib2html flags and returns positional args.
func parseBib2HTMLFlags(args []string) (*bib2htmlFlags, []string, error) {
	fs := newFlagSet("bib2html")
	f := &bib2htmlFlags{}

	fs.StringArrayVar(&f.first, "first", nil, "BibTeX files listed as first author")
	fs.StringArrayVar(&f.nth, "Nth", nil, "BibTeX files listed as co-author")
	addCommonFlags(fs, &f.common)
	fs.SetNormalizeFunc(func(_ *flag.FlagSet, name string) flag.NormalizedName {
		if name == "nth" {
			return "Nth"
		}
		return flag.NormalizedName(name)
	})

	if err := fs.Parse(expandListFlags(args, listFlags)); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePres2HTMLFlags parses pres2html flags and returns positional args.
func parsePres2HTMLFlags(args []string) (*pres2htmlFlags, []string, error) {
	fs := newFlagSet("pres2html")
	f := &pres2htmlFlags{}

	fs.StringVar(&f.figure, "fig", "", "chart path (.svg, .png, .jpg, .webp); empty = no chart")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "chart rasterization timeout (e.g. 30s, 2m)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// expandListFlags rewrites "--first a.bib b.bib" as
// "--first=a.bib --first=b.bib": every value up to the next flag belongs to
// the list flag. A list flag with no value is kept bare so the parser
// reports it.
func expandListFlags(args []string, names []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	taken := false

	flush := func() {
		if current != "" && !taken {
			out = append(out, "--"+current)
		}
		current, taken = "", false
	}

	for i, arg := range args {
		if arg == "--" {
			flush()
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flush()
			if name, ok := strings.CutPrefix(arg, "--"); ok && slices.Contains(names, name) {
				current = name
				continue
			}
			out = append(out, arg)
			continue
		}
		if current != "" {
			out = append(out, "--"+current+"="+arg)
			taken = true
			continue
		}
		out = append(out, arg)
	}
	flush()
	return out
}
