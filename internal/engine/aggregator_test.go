package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdpdash/internal/models"
)

func TestBuildChart(t *testing.T) {
	// Scenario:
	// FRA appears first, its years out of order
	// USA second
	points := []models.SeriesPoint{
		{Entity: "FRA", Period: 2000, Value: 25000},
		{Entity: "USA", Period: 1950, Value: 2000},
		{Entity: "FRA", Period: 1950, Value: 1500},
		{Entity: "USA", Period: 2000, Value: 30000},
	}

	data := BuildChart(points)

	assert.Equal(t, ChartTitle, data.Title)
	assert.Equal(t, "Year", data.XLabel)
	assert.Equal(t, "Gross Domestic Product (GDP) per Capita", data.YLabel)

	require.Len(t, data.Series, 2)
	fra, usa := data.Series[0], data.Series[1]
	assert.Equal(t, "FRA", fra.Country)
	assert.Equal(t, "USA", usa.Country)
	assert.NotEqual(t, fra.Color, usa.Color)

	assert.Equal(t, []models.LinePoint{{Year: 1950, Value: 1500}, {Year: 2000, Value: 25000}}, fra.Points)
	assert.Equal(t, []models.LinePoint{{Year: 1950, Value: 2000}, {Year: 2000, Value: 30000}}, usa.Points)
}

func TestBuildChartEmpty(t *testing.T) {
	data := BuildChart(nil)
	require.NotNil(t, data.Series)
	assert.Empty(t, data.Series)
}

func TestBuildChartColorsCycle(t *testing.T) {
	var points []models.SeriesPoint
	for i := 0; i < len(lineColors)+1; i++ {
		points = append(points, models.SeriesPoint{Entity: string(rune('A' + i)), Period: 2000, Value: 1})
	}
	data := BuildChart(points)
	require.Len(t, data.Series, len(lineColors)+1)
	assert.Equal(t, data.Series[0].Color, data.Series[len(lineColors)].Color)
	assert.NotEqual(t, data.Series[0].Color, data.Series[1].Color)
}

func TestSummary(t *testing.T) {
	records, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	ds, err := NewDataset(records)
	require.NoError(t, err)

	s := Summary(ds)
	assert.Equal(t, []string{"USA", "FRA"}, s.Countries)
	assert.Equal(t, 2, s.CountryCount)
	assert.Equal(t, 1950, s.MinYear)
	assert.Equal(t, 2000, s.MaxYear)
	assert.Equal(t, 4, s.Points)
	assert.Contains(t, s.Description, "from 1950 to 2000")
	assert.Contains(t, s.Description, "USA, FRA")
}
