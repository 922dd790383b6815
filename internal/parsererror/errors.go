// Package parsererror defines the typed errors of the input layer.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError reports a value that could not be converted.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Row    int // 1-based data row, 0 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Parser, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an input file that does not have the expected shape.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// MissingColumnsError is returned when required CSV columns are absent.
type MissingColumnsError struct {
	FilePath string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns in %s: %s", e.FilePath, strings.Join(e.Missing, ", "))
}
