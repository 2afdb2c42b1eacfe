package engine

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"gdpdash/internal/models"
	"gdpdash/pkg/logger"
)

// Dataset composes the loader and the reshaper and owns the resulting
// Series. It replaces any process-wide state: hosts receive a *Dataset and
// pass it around explicitly.
type Dataset struct {
	series    *Series
	entities  []string
	minPeriod int
	maxPeriod int
}

// NewDataset validates records and builds the immutable series.
func NewDataset(records []WideRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, formatErrorf(0, "no data rows")
	}
	entities, err := DistinctEntities(records)
	if err != nil {
		return nil, err
	}
	lo, hi, err := PeriodBounds(records)
	if err != nil {
		return nil, err
	}
	series, err := Reshape(records)
	if err != nil {
		return nil, err
	}
	return &Dataset{series: series, entities: entities, minPeriod: lo, maxPeriod: hi}, nil
}

// LoadDataset reads path and builds a Dataset from it.
func LoadDataset(path string) (*Dataset, error) {
	start := time.Now()
	logger.Infow("Loading dataset...", "path", path)

	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := NewDataset(records)
	if err != nil {
		return nil, fmt.Errorf("build series from %s: %w", path, err)
	}

	logger.Infof("Load Complete. Path: %s. Countries: %s. Points: %s. Years: %d-%d. Time: %v",
		path, humanize.Comma(int64(len(ds.entities))), humanize.Comma(int64(ds.series.Len())),
		ds.minPeriod, ds.maxPeriod, time.Since(start))
	return ds, nil
}

// Entities returns entity identifiers in source order.
func (d *Dataset) Entities() []string {
	out := make([]string, len(d.entities))
	copy(out, d.entities)
	return out
}

func (d *Dataset) PeriodBounds() (int, int) { return d.minPeriod, d.maxPeriod }

func (d *Dataset) Series() *Series { return d.series }

func (d *Dataset) Query(entities EntityFilter, periods PeriodFilter) []models.SeriesPoint {
	return Query(d.series, entities, periods)
}
