// Command pres2html renders presentation logs as a presentations page with
// a per-year chart.
package main

import (
	"os"

	"github.com/alnah/go-pubpage/internal/cli"
)

func main() {
	os.Exit(cli.Pres2HTML(os.Args[1:], cli.DefaultEnv()))
}
