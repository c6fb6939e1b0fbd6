package sqltable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/ginjaninja78/tabular-converter/internal/dataset"
)

// IfExists modes accepted by WriteTable.
const (
	Replace = "replace"
	Append  = "append"
	Fail    = "fail"
)

// WriteTable stores a dataset in a table inside one transaction.
//
// ifExists decides what happens to an existing table:
//   - "replace": drop it and create it again from the dataset's columns
//   - "append": keep it and insert the rows (the table is created if missing)
//   - "fail": return ErrTableExists
//
// Column types follow the first non-null value of each column. No index
// column is written.
func (c *Conn) WriteTable(ctx context.Context, table string, ds *dataset.Dataset, ifExists string) (err error) {
	if ds.Width() == 0 {
		return fmt.Errorf("cannot write a dataset without columns to table %s", table)
	}

	var create bool
	switch ifExists {
	case Replace:
		create = true
	case Append, Fail:
		exists, err := c.tableExists(ctx, table)
		if err != nil {
			return err
		}
		if exists && ifExists == Fail {
			return fmt.Errorf("%s: %w", table, ErrTableExists)
		}
		create = !exists
	default:
		return fmt.Errorf("unknown if_exists mode %q", ifExists)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if ifExists == Replace {
		if err := c.exec(ctx, tx, "DROP TABLE IF EXISTS "+c.Dialect.QuoteTable(table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	if create {
		if err := c.exec(ctx, tx, c.createStatement(table, ds)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	if err := c.insertRows(ctx, tx, table, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	c.logger.Debug("table written",
		slog.String("table", table),
		slog.String("if_exists", ifExists),
		slog.Int("rows", ds.Len()))
	return nil
}

// tableExists probes the table with a query that returns no rows.
func (c *Conn) tableExists(ctx context.Context, table string) (bool, error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT * FROM "+c.Dialect.QuoteTable(table)+" WHERE 1 = 0")
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return false, nil
	}
	return true, rows.Close()
}

func (c *Conn) createStatement(table string, ds *dataset.Dataset) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(c.Dialect.QuoteTable(table))
	b.WriteString(" (")
	for j, name := range ds.Columns() {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Dialect.QuoteIdent(name))
		b.WriteByte(' ')
		b.WriteString(c.Dialect.ColumnType(ds.ColumnKind(j)))
	}
	b.WriteString(")")
	return b.String()
}

// insertRows writes the rows with multi-row INSERT statements sized to the
// dialect's parameter limit.
func (c *Conn) insertRows(ctx context.Context, tx *sql.Tx, table string, ds *dataset.Dataset) error {
	columns := ds.Columns()
	quoted := make([]string, len(columns))
	for j, name := range columns {
		quoted[j] = c.Dialect.QuoteIdent(name)
	}
	prefix := "INSERT INTO " + c.Dialect.QuoteTable(table) + " (" + strings.Join(quoted, ", ") + ") VALUES "

	batch := c.Dialect.rowsPerInsert(len(columns))
	for start := 0; start < ds.Len(); start += batch {
		end := min(start+batch, ds.Len())

		var b strings.Builder
		b.WriteString(prefix)
		args := make([]any, 0, (end-start)*len(columns))

		for i := start; i < end; i++ {
			if i > start {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			for j, v := range ds.Row(i) {
				if j > 0 {
					b.WriteString(", ")
				}
				args = append(args, bindValue(v))
				b.WriteString(c.Dialect.Placeholder(len(args)))
			}
			b.WriteByte(')')
		}

		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d into %s: %w", start+1, end, table, err)
		}
	}
	return nil
}

func (c *Conn) exec(ctx context.Context, tx *sql.Tx, stmt string) error {
	c.logger.Debug("executing", slog.String("sql", stmt))
	_, err := tx.ExecContext(ctx, stmt)
	return err
}

func bindValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
