package engine

// Reshape melts wide records into a Series with one point per
// (entity, period) cell, keeping entity-then-period order.
func Reshape(records []WideRecord) (*Series, error) {
	total := 0
	for _, rec := range records {
		total += len(rec.Cells)
	}

	// Allocate Store ONCE
	s := &Series{
		entityIDs:   make([]int32, 0, total),
		periods:     make([]int, 0, total),
		values:      make([]float64, 0, total),
		entityDict:  make([]string, 0, len(records)),
		entityIndex: make(map[string]int32, len(records)),
	}

	first := true
	for _, rec := range records {
		id, ok := s.entityIndex[rec.Entity]
		if !ok {
			id = int32(len(s.entityDict))
			s.entityDict = append(s.entityDict, rec.Entity)
			s.entityIndex[rec.Entity] = id
		}

		for _, c := range rec.Cells {
			v, err := DecodeValue(c.Raw)
			if err != nil {
				return nil, &ValueDecodeError{Entity: rec.Entity, Period: c.Period, Raw: c.Raw, Err: err}
			}
			s.entityIDs = append(s.entityIDs, id)
			s.periods = append(s.periods, c.Period)
			s.values = append(s.values, v)

			if first || c.Period < s.minPeriod {
				s.minPeriod = c.Period
			}
			if first || c.Period > s.maxPeriod {
				s.maxPeriod = c.Period
			}
			first = false
		}
	}
	return s, nil
}
