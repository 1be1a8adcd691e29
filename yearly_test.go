package pubpage

import (
	"slices"
	"testing"

	"github.com/alnah/go-pubpage/internal/chart"
)

func TestCountByYear(t *testing.T) {
	t.Parallel()

	domestic := []Record{
		{Dates: "2023-04-10; 2023-04-12"},
		{Dates: "2021-09-01 – 2021-09-03"},
		{Dates: "2023-11-02"},
		{Dates: "TBD"}, // excluded from counts only
		{Dates: ""},
	}
	international := []Record{
		{Dates: "2022-06-05;2022-06-09"},
		{Dates: " 2023-01-20 "},
	}

	got := CountByYear(domestic, international)

	if want := []int{2021, 2022, 2023}; !slices.Equal(got.Years, want) {
		t.Fatalf("Years = %v, want %v", got.Years, want)
	}
	if want := []int{1, 0, 2}; !slices.Equal(got.Domestic, want) {
		t.Errorf("Domestic = %v, want %v", got.Domestic, want)
	}
	if want := []int{0, 1, 1}; !slices.Equal(got.International, want) {
		t.Errorf("International = %v, want %v", got.International, want)
	}
	if want := []int{1, 1, 3}; !slices.Equal(got.Total, want) {
		t.Errorf("Total = %v, want %v", got.Total, want)
	}
}

func TestCountByYear_Empty(t *testing.T) {
	t.Parallel()

	got := CountByYear(nil, []Record{{Dates: "soon"}})
	if len(got.Years) != 0 || len(got.Total) != 0 {
		t.Errorf("CountByYear() = %+v, want no years", got)
	}
}

func TestYearlyCounts_Chart(t *testing.T) {
	t.Parallel()

	counts := YearlyCounts{Years: []int{2020}, Domestic: []int{1}, International: []int{2}, Total: []int{3}}
	c := counts.Chart(DefaultChartSettings())

	if c.Title != "Presentations per Year" || c.XLabel != "Year" || c.YLabel != "Number of Presentations" {
		t.Errorf("labels = %q, %q, %q", c.Title, c.XLabel, c.YLabel)
	}
	want := []struct {
		name   string
		color  string
		marker chart.Marker
	}{
		{"Domestic", chart.Blue, chart.Circle},
		{"International", chart.Red, chart.Square},
		{"Total", chart.Green, chart.Triangle},
	}
	if len(c.Series) != len(want) {
		t.Fatalf("series = %d, want %d", len(c.Series), len(want))
	}
	for i, w := range want {
		s := c.Series[i]
		if s.Name != w.name || s.Color != w.color || s.Marker != w.marker {
			t.Errorf("series[%d] = %+v, want %+v", i, s, w)
		}
	}
	if c.Series[2].Values[0] != 3 {
		t.Errorf("total value = %d, want 3", c.Series[2].Values[0])
	}
}
