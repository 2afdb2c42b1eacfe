package models

// SeriesPoint is one (country, year, value) row of the long-form series.
type SeriesPoint struct {
	Entity string  `json:"country"`
	Period int     `json:"year"`
	Value  float64 `json:"gdp_per_cap"`
}

type EntityList struct {
	Countries []string `json:"countries"`
}

type PeriodBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ChartData is everything a host needs to draw the multi-series line chart.
type ChartData struct {
	Title  string       `json:"title"`
	XLabel string       `json:"x_label"`
	YLabel string       `json:"y_label"`
	Series []LineSeries `json:"series"`
}

type LineSeries struct {
	Country string      `json:"country"`
	Color   string      `json:"color"`
	Points  []LinePoint `json:"points"`
}

type LinePoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type DatasetSummary struct {
	Countries    []string `json:"countries"`
	CountryCount int      `json:"country_count"`
	MinYear      int      `json:"min_year"`
	MaxYear      int      `json:"max_year"`
	Points       int      `json:"points"`
	Description  string   `json:"description"`
}
