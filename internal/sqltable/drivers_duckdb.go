//go:build cgo

package sqltable

// The DuckDB driver requires cgo.
import (
	_ "github.com/marcboeker/go-duckdb"
)
