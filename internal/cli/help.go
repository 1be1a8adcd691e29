package cli

import (
	"fmt"
	"io"
)

// printBib2HTMLUsage prints usage for bib2html.
func printBib2HTMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html <output_html> [--first <bib>...] [--Nth <bib>...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render BibTeX files as a publications page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  output_html    HTML file to write")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "      --first <bib>...      BibTeX files where you are first author")
	fmt.Fprintln(w, "      --Nth <bib>...        BibTeX files where you are a co-author (alias --nth)")
	fmt.Fprintln(w, "                            Values run until the next flag; flags may repeat")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPres2HTMLUsage prints usage for pres2html.
func printPres2HTMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pres2html <output_html> <domestic> <international> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render presentation logs as a presentations page with a per-year chart.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  output_html      HTML file to write")
	fmt.Fprintln(w, "  domestic         Domestic presentation log")
	fmt.Fprintln(w, "  international    International presentation log")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chart:")
	fmt.Fprintln(w, "      --fig <path>          Chart file referenced by the page")
	fmt.Fprintln(w, "                            .svg needs no browser; .png, .jpg, .webp use Chrome")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Rasterization timeout (default: 30s)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template/style directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PUBPAGE_CONFIG            Config file name or path")
	fmt.Fprintln(w, "  PUBPAGE_ASSET_PATH        Custom template/style directory")
	fmt.Fprintln(w, "  PUBPAGE_TIMEOUT           Rasterization timeout")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary for raster charts")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (Docker/CI)")
}
