package engine

import "gdpdash/internal/models"

// Series holds the long-form data in Struct-of-Arrays format.
// It is never written after Reshape returns, so any number of goroutines
// may read it without locking.
type Series struct {
	// Data Columns (Flat Arrays, one entry per point)
	entityIDs []int32
	periods   []int
	values    []float64

	// Dictionary (ID -> entity), first-seen order
	entityDict  []string
	entityIndex map[string]int32

	minPeriod int
	maxPeriod int
}

// Len is the number of points.
func (s *Series) Len() int { return len(s.values) }

// At materializes point i.
func (s *Series) At(i int) models.SeriesPoint {
	return models.SeriesPoint{
		Entity: s.entityDict[s.entityIDs[i]],
		Period: s.periods[i],
		Value:  s.values[i],
	}
}

// Points copies the whole series out, entity-then-period order.
func (s *Series) Points() []models.SeriesPoint {
	out := make([]models.SeriesPoint, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Entities returns a copy of the entity dictionary.
func (s *Series) Entities() []string {
	out := make([]string, len(s.entityDict))
	copy(out, s.entityDict)
	return out
}

// Bounds returns the min and max period present. Both are zero for an
// empty series.
func (s *Series) Bounds() (int, int) { return s.minPeriod, s.maxPeriod }

func (s *Series) entityID(name string) (int32, bool) {
	id, ok := s.entityIndex[name]
	return id, ok
}
