package sqltable

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ginjaninja78/tabular-converter/internal/dataset"
)

// ReadTable loads every row of a table into a dataset.
//
// table is a table name, optionally schema-qualified. When it starts with
// SELECT or WITH it is run as a query instead.
func (c *Conn) ReadTable(ctx context.Context, table string) (*dataset.Dataset, error) {
	query := table
	if !isQuery(table) {
		query = "SELECT * FROM " + c.Dialect.QuoteTable(table)
	}

	c.logger.Debug("reading table", slog.String("query", query))

	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	ds, err := dataset.New(dataset.UniqueColumns(columns))
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for j := range values {
		dest[j] = &values[j]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", ds.Len()+1, err)
		}

		row := make([]any, len(columns))
		for j, v := range values {
			row[j] = normalize(v, types[j].DatabaseTypeName())
		}
		if err := ds.Append(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", ds.Len()+1, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	c.logger.Debug("table read", slog.Int("rows", ds.Len()), slog.Int("columns", ds.Width()))
	return ds, nil
}

func isQuery(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH":
		return true
	}
	return false
}

// normalize converts a driver value to a dataset cell.
func normalize(v any, dbType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case string, float64, bool, time.Time:
		return val
	case float32:
		return float64(val)
	case int64:
		if isBoolType(dbType) {
			return val != 0
		}
		return val
	case int:
		return normalize(int64(val), dbType)
	case int32:
		return normalize(int64(val), dbType)
	case int16:
		return normalize(int64(val), dbType)
	case int8:
		return normalize(int64(val), dbType)
	case uint8:
		return normalize(int64(val), dbType)
	case uint16:
		return normalize(int64(val), dbType)
	case uint32:
		return normalize(int64(val), dbType)
	case uint64:
		if val > math.MaxInt64 {
			return float64(val)
		}
		return normalize(int64(val), dbType)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func isBoolType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "BOOLEAN", "BOOL", "BIT":
		return true
	}
	return false
}
