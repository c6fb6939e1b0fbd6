package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Conn is an open database together with the dialect used to talk to it.
type Conn struct {
	DB      *sql.DB
	Dialect *Dialect
	logger  *slog.Logger
}

// NewConn wraps an already open database.
// If logger is nil, a discard logger is used.
func NewConn(db *sql.DB, d *Dialect, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Conn{DB: db, Dialect: d, logger: logger.With("dialect", d.Name)}
}

// Open parses uri, opens the database and checks that it answers.
func Open(ctx context.Context, uri string, logger *slog.Logger) (*Conn, error) {
	target, err := ParseURL(uri)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(target.Dialect.DriverName, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", target.Dialect.Name, err)
	}

	if target.InMemory {
		// every new connection would see a fresh, empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", target.Dialect.Name, err)
	}

	conn := NewConn(db, target.Dialect, logger)
	conn.logger.Debug("connected", slog.Bool("in_memory", target.InMemory))
	return conn, nil
}

// Close closes the underlying database.
func (c *Conn) Close() error {
	return c.DB.Close()
}
