// =============================================================================
// Tabular Converter - Dataset
// =============================================================================
//
// This package contains the in-memory tabular representation shared by every
// reader and writer. It lives in its own package so the format packages
// (csvfile, excelfile, jsonfile, sqltable) can depend on it without importing
// each other.
//
// A Dataset is an ordered list of column names plus an ordered list of rows.
// Every row holds exactly one value per column. Values are limited to:
//
//   nil        - a missing / null cell
//   string     - text
//   int64      - integers
//   float64    - floating point numbers
//   bool       - booleans
//   time.Time  - timestamps
//
// =============================================================================

package dataset

import (
	"fmt"
	"strconv"
)

// =============================================================================
// DATASET
// =============================================================================

// Dataset is an ordered sequence of same-shaped records.
//
// The column set and order are fixed by New. Append rejects rows whose width
// does not match, so a Dataset can never hold a ragged row.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty Dataset with the given column order.
// Column names must be unique.
func New(columns []string) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Dataset{
		columns: cols,
		index:   index,
	}, nil
}

// MustNew is like New but panics on duplicate columns. Intended for tests and
// fixed column lists.
func MustNew(columns ...string) *Dataset {
	d, err := New(columns)
	if err != nil {
		panic(err)
	}
	return d
}

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	return len(d.columns)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Append adds a record. The row must have exactly one value per column and
// every value must be one of the supported cell types.
func (d *Dataset) Append(row []any) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(row), len(d.columns))
	}
	for i, v := range row {
		if KindOf(v) == KindInvalid {
			return fmt.Errorf("column %q: unsupported value type %T", d.columns[i], v)
		}
	}

	r := make([]any, len(row))
	copy(r, row)
	d.rows = append(d.rows, r)
	return nil
}

// Row returns the values of record i in column order.
// The returned slice must not be modified.
func (d *Dataset) Row(i int) []any {
	return d.rows[i]
}

// Record returns record i as a column name -> value mapping.
func (d *Dataset) Record(i int) map[string]any {
	rec := make(map[string]any, len(d.columns))
	for j, name := range d.columns {
		rec[name] = d.rows[i][j]
	}
	return rec
}

// Value returns the value of a named column in record i.
func (d *Dataset) Value(i int, column string) (any, bool) {
	j, ok := d.index[column]
	if !ok {
		return nil, false
	}
	return d.rows[i][j], true
}

// ColumnKind reports the kind shared by the non-null values of column j.
//
// All-null columns report KindNull. A column mixing integers and floats
// reports KindFloat; any other mix reports KindString.
func (d *Dataset) ColumnKind(j int) Kind {
	kind := KindNull
	for _, row := range d.rows {
		k := KindOf(row[j])
		switch {
		case k == KindNull || k == kind:
			continue
		case kind == KindNull:
			kind = k
		case (kind == KindInt && k == KindFloat) || (kind == KindFloat && k == KindInt):
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

// =============================================================================
// COLUMN NAMES
// =============================================================================

// UniqueColumns makes header names usable as Dataset columns.
//
// Empty names become "Unnamed: <position>" and repeated names get a numeric
// suffix ("a", "a.1", "a.2") so the result is always unique.
func UniqueColumns(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))

	for i, name := range names {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for seen[candidate] {
			counts[name]++
			candidate = name + "." + strconv.Itoa(counts[name])
		}

		seen[candidate] = true
		out[i] = candidate
	}

	return out
}
