package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EntityColumn is the key column every source table must carry.
const EntityColumn = "country"

// Cell is one raw value of a wide row, tagged with its period column.
type Cell struct {
	Period int
	Raw    string
}

// WideRecord is one source row: an entity and one cell per period column,
// in header order.
type WideRecord struct {
	Entity string
	Cells  []Cell
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]WideRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// Load parses a wide table: header "country,<period>,<period>,..." followed
// by one row per entity. The country column may sit at any position.
func Load(r io.Reader) ([]WideRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows get our own error below

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, formatErrorf(0, "empty source")
	}
	if err != nil {
		return nil, csvError(err)
	}

	keyIdx, periods, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var records []WideRecord
	seen := make(map[string]int)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)

		if len(row) != len(header) {
			return nil, formatErrorf(line, "expected %d columns, got %d", len(header), len(row))
		}

		entity := strings.TrimSpace(row[keyIdx])
		if entity == "" {
			return nil, formatErrorf(line, "missing %s", EntityColumn)
		}
		if first, dup := seen[entity]; dup {
			return nil, formatErrorf(line, "duplicate %s %q (first on line %d)", EntityColumn, entity, first)
		}
		seen[entity] = line

		rec := WideRecord{Entity: entity, Cells: make([]Cell, 0, len(periods))}
		for i, raw := range row {
			if i == keyIdx {
				continue
			}
			rec.Cells = append(rec.Cells, Cell{Period: periods[len(rec.Cells)], Raw: raw})
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, formatErrorf(0, "no data rows")
	}
	return records, nil
}

// parseHeader locates the key column and parses every other column as a
// period. Periods are returned in column order, key column excluded.
func parseHeader(header []string) (int, []int, error) {
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	keyIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), EntityColumn) {
			if keyIdx != -1 {
				return 0, nil, formatErrorf(1, "%s column appears twice", EntityColumn)
			}
			keyIdx = i
		}
	}
	if keyIdx == -1 {
		return 0, nil, formatErrorf(1, "header has no %s column", EntityColumn)
	}

	periods := make([]int, 0, len(header)-1)
	seen := make(map[int]bool, len(header)-1)
	for i, name := range header {
		if i == keyIdx {
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(name), 10, 32)
		if err != nil {
			return 0, nil, formatErrorf(1, "period header %q is not a 32-bit integer", name)
		}
		p := int(v)
		if seen[p] {
			return 0, nil, formatErrorf(1, "period %d appears twice", p)
		}
		seen[p] = true
		periods = append(periods, p)
	}
	return keyIdx, periods, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return formatErrorf(pe.Line, "%v", pe.Err)
	}
	return fmt.Errorf("read dataset: %w", err)
}

// DistinctEntities returns entity identifiers in first-seen order.
// A repeated identifier is a FormatError.
func DistinctEntities(records []WideRecord) ([]string, error) {
	out := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Entity] {
			return nil, formatErrorf(0, "duplicate %s %q", EntityColumn, rec.Entity)
		}
		seen[rec.Entity] = true
		out = append(out, rec.Entity)
	}
	return out, nil
}

// PeriodBounds returns the smallest and largest period across records.
func PeriodBounds(records []WideRecord) (int, int, error) {
	lo, hi, found := 0, 0, false
	for _, rec := range records {
		for _, c := range rec.Cells {
			if !found || c.Period < lo {
				lo = c.Period
			}
			if !found || c.Period > hi {
				hi = c.Period
			}
			found = true
		}
	}
	if !found {
		return 0, 0, formatErrorf(0, "no periods to bound")
	}
	return lo, hi, nil
}
