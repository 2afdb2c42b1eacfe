package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdpdash/internal/engine"
	"gdpdash/internal/models"
)

const testCSV = `country,1950,1960,2000
USA,2k,5k,30k
FRA,1.5k,4k,25k
"Congo, Dem. Rep.",300,350,400
`

func newTestServer(t *testing.T, loaded bool) (*echo.Echo, *Handler) {
	t.Helper()
	e := echo.New()
	h := NewHandler(nil)
	if loaded {
		records, err := engine.Load(strings.NewReader(testCSV))
		require.NoError(t, err)
		ds, err := engine.NewDataset(records)
		require.NoError(t, err)
		h.SetData(ds)
	}
	h.RegisterRoutes(e)
	return e, h
}

func get(t *testing.T, e *echo.Echo, target string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

type seriesPage struct {
	Data   []models.SeriesPoint `json:"data"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func TestUnavailableBeforeLoad(t *testing.T) {
	e, h := newTestServer(t, false)

	for _, path := range []string{"/api/entities", "/api/periods/bounds", "/api/series", "/api/chart", "/api/summary"} {
		assert.Equal(t, http.StatusServiceUnavailable, get(t, e, path, nil), path)
	}

	var health map[string]interface{}
	require.Equal(t, http.StatusOK, get(t, e, "/health", &health))
	assert.Equal(t, false, health["loaded"])

	records, err := engine.Load(strings.NewReader(testCSV))
	require.NoError(t, err)
	ds, err := engine.NewDataset(records)
	require.NoError(t, err)
	h.SetData(ds)

	assert.Equal(t, http.StatusOK, get(t, e, "/api/entities", nil))
}

func TestGetEntities(t *testing.T) {
	e, _ := newTestServer(t, true)

	var got models.EntityList
	require.Equal(t, http.StatusOK, get(t, e, "/api/entities", &got))
	assert.Equal(t, []string{"USA", "FRA", "Congo, Dem. Rep."}, got.Countries)
}

func TestGetPeriodBounds(t *testing.T) {
	e, _ := newTestServer(t, true)

	var got models.PeriodBounds
	require.Equal(t, http.StatusOK, get(t, e, "/api/periods/bounds", &got))
	assert.Equal(t, models.PeriodBounds{Min: 1950, Max: 2000}, got)
}

func TestGetSeriesDefaults(t *testing.T) {
	e, _ := newTestServer(t, true)

	var page seriesPage
	require.Equal(t, http.StatusOK, get(t, e, "/api/series", &page))
	assert.Equal(t, 9, page.Total)
	assert.Len(t, page.Data, 9)
}

func TestGetSeriesFiltered(t *testing.T) {
	e, _ := newTestServer(t, true)

	var page seriesPage
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?country=USA&from=2000&to=2000", &page))
	assert.Equal(t, []models.SeriesPoint{{Entity: "USA", Period: 2000, Value: 30000}}, page.Data)

	page = seriesPage{}
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?country=USA&country=Congo,+Dem.+Rep.&from=1960", &page))
	assert.Equal(t, 4, page.Total)
	for _, p := range page.Data {
		assert.GreaterOrEqual(t, p.Period, 1960)
	}

	page = seriesPage{}
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?to=1950", &page))
	assert.Equal(t, 3, page.Total)
}

func TestGetSeriesExplicitEmptySelection(t *testing.T) {
	e, _ := newTestServer(t, true)

	var page seriesPage
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?country=", &page))
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Data)
}

func TestGetSeriesOutOfRange(t *testing.T) {
	e, _ := newTestServer(t, true)

	var page seriesPage
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?from=1800&to=1900", &page))
	assert.Equal(t, 0, page.Total)

	page = seriesPage{}
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?from=2000&to=1950", &page))
	assert.Equal(t, 0, page.Total)
}

func TestGetSeriesPagination(t *testing.T) {
	e, _ := newTestServer(t, true)

	var page seriesPage
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?limit=2&offset=3", &page))
	assert.Equal(t, 9, page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "FRA", page.Data[0].Entity)

	page = seriesPage{}
	require.Equal(t, http.StatusOK, get(t, e, "/api/series?offset=50", &page))
	assert.Empty(t, page.Data)
}

func TestGetSeriesBadYear(t *testing.T) {
	e, _ := newTestServer(t, true)

	assert.Equal(t, http.StatusBadRequest, get(t, e, "/api/series?from=abc", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, e, "/api/chart?to=19x", nil))
}

func TestGetChart(t *testing.T) {
	e, _ := newTestServer(t, true)

	var chart models.ChartData
	require.Equal(t, http.StatusOK, get(t, e, "/api/chart?country=FRA&country=USA&from=1950&to=1960", &chart))
	assert.Equal(t, engine.ChartTitle, chart.Title)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "USA", chart.Series[0].Country)
	assert.Equal(t, "FRA", chart.Series[1].Country)
	assert.Equal(t, []models.LinePoint{{Year: 1950, Value: 1500}, {Year: 1960, Value: 4000}}, chart.Series[1].Points)
}

func TestGetSummary(t *testing.T) {
	e, _ := newTestServer(t, true)

	var s models.DatasetSummary
	require.Equal(t, http.StatusOK, get(t, e, "/api/summary", &s))
	assert.Equal(t, 3, s.CountryCount)
	assert.Equal(t, 9, s.Points)
	assert.Equal(t, 1950, s.MinYear)
	assert.Equal(t, 2000, s.MaxYear)
}
