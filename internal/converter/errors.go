package converter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrMissingSQLParameters = errors.New("missing SQL parameters")
)

// UnsupportedFormatError is returned when a format name is not one of
// csv, excel, json or sql.
type UnsupportedFormatError struct {
	// Side is "input" or "output", empty when parsed out of context.
	Side  string
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Side == "" {
		return fmt.Sprintf("unsupported format: %s", e.Value)
	}
	return fmt.Sprintf("unsupported %s format: %s", e.Side, e.Value)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) match.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// MissingSQLParametersError is returned when a side of the conversion is sql
// but the table name or the connection string is empty.
type MissingSQLParametersError struct {
	Side    string
	Missing []string
}

func (e *MissingSQLParametersError) Error() string {
	return fmt.Sprintf("for SQL %s, both db_uri and sql_table are required (missing: %s)",
		e.Side, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrMissingSQLParameters) match.
func (e *MissingSQLParametersError) Is(target error) bool {
	return target == ErrMissingSQLParameters
}
