package sqltable

import (
	"errors"
	"fmt"
)

// ErrTableExists is returned by WriteTable in "fail" mode when the target
// table is already present.
var ErrTableExists = errors.New("table already exists")

// UnknownDialectError is returned when a connection string names a database
// this tool has no driver for.
type UnknownDialectError struct {
	Scheme    string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown database dialect %q\nAvailable dialects: %v\nHint: Check the scheme of your --db_uri", e.Scheme, e.Available)
}
