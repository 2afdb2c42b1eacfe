package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches any structural problem in the source table.
	ErrFormat = errors.New("malformed dataset")

	// ErrValueDecode matches any cell that is not a plain or k-suffixed number.
	ErrValueDecode = errors.New("undecodable value")
)

// FormatError reports a structural problem in the wide table: missing key
// column, bad period header, duplicate entity, ragged row or empty table.
// Line is 1-based and zero when the problem is not tied to a line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("format error: %s", e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErrorf(line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// ValueDecodeError names the cell that could not be decoded.
type ValueDecodeError struct {
	Entity string
	Period int
	Raw    string
	Err    error
}

func (e *ValueDecodeError) Error() string {
	return fmt.Sprintf("decode %s/%d: %q: %v", e.Entity, e.Period, e.Raw, e.Err)
}

func (e *ValueDecodeError) Is(target error) bool { return target == ErrValueDecode }

func (e *ValueDecodeError) Unwrap() error { return e.Err }
