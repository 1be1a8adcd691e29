// Command bib2html renders BibTeX files as a publications page.
package main

import (
	"os"

	"github.com/alnah/go-pubpage/internal/cli"
)

func main() {
	os.Exit(cli.Bib2HTML(os.Args[1:], cli.DefaultEnv()))
}
