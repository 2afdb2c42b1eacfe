package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"gdpdash/internal/engine"
	"gdpdash/internal/metrics"
	"gdpdash/internal/models"
)

type Handler struct {
	data atomic.Pointer[engine.Dataset]
}

// NewHandler accepts a nil dataset; data endpoints answer 503 until SetData.
func NewHandler(data *engine.Dataset) *Handler {
	h := &Handler{}
	if data != nil {
		h.data.Store(data)
	}
	return h
}

// SetData publishes the loaded dataset to all handlers.
func (h *Handler) SetData(data *engine.Dataset) {
	h.data.Store(data)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/entities", h.GetEntities)
	api.GET("/periods/bounds", h.GetPeriodBounds)
	api.GET("/series", h.GetSeries)
	api.GET("/chart", h.GetChart)
	api.GET("/summary", h.GetSummary)
}

// --- HELPERS ---

func (h *Handler) dataset(endpoint string) (*engine.Dataset, error) {
	ds := h.data.Load()
	if ds == nil {
		metrics.RecordRejected(endpoint, "unavailable")
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset loading")
	}
	return ds, nil
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseFilters maps query parameters onto engine filters.
//
//	country absent      -> every country
//	country= (empty)    -> explicit empty selection
//	from/to absent      -> that end taken from the dataset bounds
func parseFilters(c echo.Context, ds *engine.Dataset) (engine.EntityFilter, engine.PeriodFilter, error) {
	entities := engine.AllEntities()
	if raw, ok := c.QueryParams()["country"]; ok {
		names := make([]string, 0, len(raw))
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				names = append(names, v)
			}
		}
		entities = engine.Entities(names...)
	}

	fromRaw, toRaw := c.QueryParam("from"), c.QueryParam("to")
	if fromRaw == "" && toRaw == "" {
		return entities, engine.AllPeriods(), nil
	}

	lo, hi := ds.PeriodBounds()
	var err error
	if fromRaw != "" {
		if lo, err = strconv.Atoi(fromRaw); err != nil {
			return entities, engine.PeriodFilter{}, echo.NewHTTPError(http.StatusBadRequest, "from must be an integer year")
		}
	}
	if toRaw != "" {
		if hi, err = strconv.Atoi(toRaw); err != nil {
			return entities, engine.PeriodFilter{}, echo.NewHTTPError(http.StatusBadRequest, "to must be an integer year")
		}
	}
	return entities, engine.Between(lo, hi), nil
}

func (h *Handler) query(c echo.Context, endpoint string) ([]models.SeriesPoint, error) {
	ds, err := h.dataset(endpoint)
	if err != nil {
		return nil, err
	}
	entities, periods, err := parseFilters(c, ds)
	if err != nil {
		metrics.RecordRejected(endpoint, "bad_request")
		return nil, err
	}

	t0 := time.Now()
	points := ds.Query(entities, periods)
	metrics.RecordQuery(endpoint, time.Since(t0), len(points))
	return points, nil
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"loaded": h.data.Load() != nil,
	})
}

// options for the country multi-select
func (h *Handler) GetEntities(c echo.Context) error {
	ds, err := h.dataset("entities")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.EntityList{Countries: ds.Entities()})
}

// min/max for the year range slider
func (h *Handler) GetPeriodBounds(c echo.Context) error {
	ds, err := h.dataset("bounds")
	if err != nil {
		return err
	}
	lo, hi := ds.PeriodBounds()
	return c.JSON(http.StatusOK, models.PeriodBounds{Min: lo, Max: hi})
}

func (h *Handler) GetSeries(c echo.Context) error {
	points, err := h.query(c, "series")
	if err != nil {
		return err
	}

	total := len(points)
	limit, offset := getPaginationParams(c, total)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   points[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetChart(c echo.Context) error {
	points, err := h.query(c, "chart")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildChart(points))
}

func (h *Handler) GetSummary(c echo.Context) error {
	ds, err := h.dataset("summary")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Summary(ds))
}
