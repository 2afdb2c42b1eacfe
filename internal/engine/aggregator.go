package engine

import (
	"fmt"
	"sort"
	"strings"

	"gdpdash/internal/models"
)

const (
	ChartTitle  = "Gross Domestic Product Per Capita By Country and Year"
	ChartXLabel = "Year"
	ChartYLabel = "Gross Domestic Product (GDP) per Capita"
)

// Line colors, cycled when there are more countries than entries.
var lineColors = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// BuildChart groups query output into one line per country. Lines keep the
// order in which their country first appears in points; each line is
// sorted by year.
func BuildChart(points []models.SeriesPoint) *models.ChartData {
	data := &models.ChartData{
		Title:  ChartTitle,
		XLabel: ChartXLabel,
		YLabel: ChartYLabel,
		Series: make([]models.LineSeries, 0),
	}

	index := make(map[string]int)
	for _, p := range points {
		i, ok := index[p.Entity]
		if !ok {
			i = len(data.Series)
			index[p.Entity] = i
			data.Series = append(data.Series, models.LineSeries{
				Country: p.Entity,
				Color:   lineColors[i%len(lineColors)],
			})
		}
		data.Series[i].Points = append(data.Series[i].Points, models.LinePoint{Year: p.Period, Value: p.Value})
	}

	for i := range data.Series {
		pts := data.Series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Year < pts[b].Year })
	}
	return data
}

// Summary describes the dataset for the page header.
func Summary(d *Dataset) *models.DatasetSummary {
	lo, hi := d.PeriodBounds()
	countries := d.Entities()
	return &models.DatasetSummary{
		Countries:    countries,
		CountryCount: len(countries),
		MinYear:      lo,
		MaxYear:      hi,
		Points:       d.Series().Len(),
		Description: fmt.Sprintf(
			"This dataset contains the GDP per capita of countries from %d to %d. "+
				"GDP per capita is a measure of economic output per citizen. "+
				"A total of %d countries are included: %s.",
			lo, hi, len(countries), strings.Join(countries, ", ")),
	}
}
