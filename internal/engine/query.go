package engine

import "gdpdash/internal/models"

// EntityFilter selects entities. The zero value (AllEntities) means "no
// selection made" and matches every entity; Entities() with no names is an
// explicit empty selection and matches nothing.
type EntityFilter struct {
	names    []string
	explicit bool
}

func AllEntities() EntityFilter { return EntityFilter{} }

func Entities(names ...string) EntityFilter {
	return EntityFilter{names: append([]string(nil), names...), explicit: true}
}

// IsAll reports whether the filter falls back to every entity.
func (f EntityFilter) IsAll() bool { return !f.explicit }

// PeriodFilter selects an inclusive period range. The zero value
// (AllPeriods) spans the series' own bounds.
type PeriodFilter struct {
	lo, hi   int
	explicit bool
}

func AllPeriods() PeriodFilter { return PeriodFilter{} }

func Between(lo, hi int) PeriodFilter { return PeriodFilter{lo: lo, hi: hi, explicit: true} }

// IsAll reports whether the filter falls back to the full period range.
func (f PeriodFilter) IsAll() bool { return !f.explicit }

// Range resolves the filter against s.
func (f PeriodFilter) Range(s *Series) (int, int) {
	if f.explicit {
		return f.lo, f.hi
	}
	return s.Bounds()
}

// Query returns the points whose entity passes entities AND whose period
// lies in periods (inclusive). It never fails: an inverted range or an
// unknown entity simply yields an empty, non-nil slice.
func Query(s *Series, entities EntityFilter, periods PeriodFilter) []models.SeriesPoint {
	out := make([]models.SeriesPoint, 0)
	if s == nil || s.Len() == 0 {
		return out
	}

	// Entity mask indexed by dictionary ID
	allowed := make([]bool, len(s.entityDict))
	if entities.IsAll() {
		for i := range allowed {
			allowed[i] = true
		}
	} else {
		for _, name := range entities.names {
			if id, ok := s.entityID(name); ok {
				allowed[id] = true
			}
		}
	}

	lo, hi := periods.Range(s)
	if lo > hi {
		return out
	}

	for i, id := range s.entityIDs {
		p := s.periods[i]
		if allowed[id] && lo <= p && p <= hi {
			out = append(out, s.At(i))
		}
	}
	return out
}
