// Package pubpage turns personal academic records into static HTML pages.
//
// Two independent pipelines are provided:
//
//   - Publications: BibTeX files, split into first-author and Nth-author
//     groups, become one page with a numbered table per group.
//   - Presentations: two plain-text logs of "Key: value" blocks (domestic and
//     international) become one page with two tables and, optionally, a
//     presentations-per-year chart.
//
// # Quick Start
//
//	pub, err := pubpage.NewPublisher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pub.Close()
//
//	html, err := pub.Publications(ctx, pubpage.PublicationsInput{
//	    FirstAuthor: []string{"first.bib"},
//	    NthAuthor:   []string{"coauthor.bib"},
//	})
//
// Presentations work the same way; a non-empty Figure path adds an <img>
// reference to the page and renders the chart bytes in the result:
//
//	res, err := pub.Presentations(ctx, pubpage.PresentationsInput{
//	    Domestic:      "domestic.txt",
//	    International: "international.txt",
//	    Figure:        "fig/presentations.png",
//	})
//
// A ".svg" figure is written as vector output. Any other extension is
// rasterized in headless Chrome (go-rod), so a browser is only needed for
// raster figures.
//
// # Configuration
//
// Functional options customize the page chrome, headings and chart:
//
//	pub, err := pubpage.NewPublisher(
//	    pubpage.WithSite(site),
//	    pubpage.WithJournals(pubpage.Journal{Macro: `\psj`, Name: "Planetary Science Journal"}),
//	    pubpage.WithAssetPath("/path/to/custom/assets"),
//	    pubpage.WithTimeout(time.Minute),
//	)
//
// Nothing is written to disk by this package; callers decide where the
// returned bytes go.
package pubpage
