package pubpage

import (
	"maps"
	"slices"

	"github.com/alnah/go-pubpage/internal/chart"
	"github.com/alnah/go-pubpage/internal/dateutil"
)

// YearlyCounts holds per-year presentation counts aligned on Years.
type YearlyCounts struct {
	Years         []int // ascending union of years with at least one record
	Domestic      []int
	International []int
	Total         []int // pointwise sum
}

// CountByYear tallies records by the year of their start date. Records whose
// start year cannot be read are left out of the counts.
func CountByYear(domestic, international []Record) YearlyCounts {
	dom := countPerYear(domestic)
	intl := countPerYear(international)

	union := maps.Clone(dom)
	for y := range intl {
		union[y] = 0
	}
	years := slices.Sorted(maps.Keys(union))

	c := YearlyCounts{
		Years:         years,
		Domestic:      make([]int, len(years)),
		International: make([]int, len(years)),
		Total:         make([]int, len(years)),
	}
	for i, y := range years {
		c.Domestic[i] = dom[y]
		c.International[i] = intl[y]
		c.Total[i] = dom[y] + intl[y]
	}
	return c
}

func countPerYear(records []Record) map[int]int {
	counts := make(map[int]int)
	for _, r := range records {
		if year, ok := dateutil.StartYear(r.Dates); ok {
			counts[year]++
		}
	}
	return counts
}

// Chart builds the three-series figure for these counts.
func (c YearlyCounts) Chart(s ChartSettings) chart.Chart {
	return chart.Chart{
		Title:  s.Title,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		Width:  s.Width,
		Height: s.Height,
		Years:  c.Years,
		Series: []chart.Series{
			{Name: "Domestic", Color: chart.Blue, Marker: chart.Circle, Values: c.Domestic},
			{Name: "International", Color: chart.Red, Marker: chart.Square, Values: c.International},
			{Name: "Total", Color: chart.Green, Marker: chart.Triangle, Values: c.Total},
		},
	}
}
