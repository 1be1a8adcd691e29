// Package hints appends actionable advice to CLI error messages.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-pubpage/internal/fileutil"
)

// IsInContainer detects Docker-like containers through /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the rod environment variables relevant to the
// current machine when Chrome cannot be started.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or write the figure as .svg, which needs no browser")

	return formatHints(hints)
}

// ForTimeout suggests a longer --timeout for the chart rasterizer.
func ForTimeout() string {
	return format("on slow machines, raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound suggests --config and the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-pubpage") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is shown when the output file cannot be written.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetNotFound lists the embedded asset names a custom directory may override.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForBibliographySyntax points at the usual causes of BibTeX parse failures.
func ForBibliographySyntax() string {
	return format("check for unbalanced braces and undefined @string macros near the reported line")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
