package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const thousandSuffix = "k"

var (
	errEmptyCell  = errors.New("empty cell")
	errNotFinite  = errors.New("value is not finite")
	errBadLiteral = errors.New("not a plain or k-suffixed number")
)

// DecodeValue parses "123.45" -> 123.45 and "12.5k" -> 12500.
func DecodeValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errEmptyCell
	}

	mult := 1.0
	if strings.HasSuffix(s, thousandSuffix) {
		s = strings.TrimSuffix(s, thousandSuffix)
		mult = 1000
	}

	// Only a decimal literal may remain: this rules out "kk", hex floats,
	// "Inf" and "NaN", which ParseFloat would otherwise accept.
	if !isDecimalLiteral(s) {
		return 0, errBadLiteral
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errBadLiteral
	}
	v *= mult
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errNotFinite
	}
	return v, nil
}

// isDecimalLiteral accepts [+-]digits[.digits] with at least one digit.
func isDecimalLiteral(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
