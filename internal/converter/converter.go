// =============================================================================
// Tabular Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It runs the pipeline for a
// single conversion, from reading the input to writing the output.
//
// CONVERSION PIPELINE:
//   1. Resolve the input and output formats
//   2. Check that sql_table and db_uri are set for every SQL side
//   3. Read the whole input into a dataset
//   4. Write the dataset to the output
//
// Steps 1 and 2 touch neither files nor databases, so a bad request fails
// before any I/O happens.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/csvfile"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
	"github.com/ginjaninja78/tabular-converter/internal/excelfile"
	"github.com/ginjaninja78/tabular-converter/internal/jsonfile"
	"github.com/ginjaninja78/tabular-converter/internal/sqltable"
	"github.com/ginjaninja78/tabular-converter/pkg/utils"
)

// =============================================================================
// REQUEST AND RESULT
// =============================================================================

// Request describes one conversion.
type Request struct {
	// InputPath is the file to read. Ignored when the input format is sql.
	InputPath string

	// OutputPath is the file to write. Ignored when the output format is
	// sql, but still reported in the result.
	OutputPath string

	// InputFormat and OutputFormat are format names: csv, excel, json, sql.
	InputFormat  string
	OutputFormat string

	// SQLTable and DBURI are required when either side is sql.
	SQLTable string
	DBURI    string

	Options Options
}

// Options holds the per-format settings.
type Options struct {
	// IfExists is the SQL write mode: replace, append or fail.
	IfExists string

	CSV   config.CSVSettings
	Excel config.ExcelSettings
	JSON  config.JSONSettings
}

// OptionsFromConfig picks the conversion settings out of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		IfExists: cfg.IfExists,
		CSV:      cfg.CSV,
		Excel:    cfg.Excel,
		JSON:     cfg.JSON,
	}
}

// Result represents the outcome of a successful conversion.
type Result struct {
	InputFormat  Format
	OutputFormat Format

	// OutputPath is the output path as given in the request.
	OutputPath string

	// Rows and Columns describe the converted dataset.
	Rows    int
	Columns int

	// Duration is the time taken by the conversion.
	Duration time.Duration
}

// Message is the line printed after a successful conversion.
func (r *Result) Message() string {
	return fmt.Sprintf("File converted from %s to %s and saved to %s", r.InputFormat, r.OutputFormat, r.OutputPath)
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter reads and writes datasets in every supported format.
type Converter struct {
	logger *slog.Logger
}

// New creates a Converter. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Converter{logger: logger}
}

// Convert runs the conversion pipeline for req.
//
// RETURNS:
//   - The Result on success.
//   - *UnsupportedFormatError or *MissingSQLParametersError when the request
//     itself is invalid. No file or database is touched in that case.
//   - The reader or writer error otherwise, wrapped with context.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: RESOLVE FORMATS
	// =========================================================================

	in, err := parseSide("input", req.InputFormat)
	if err != nil {
		return nil, err
	}
	out, err := parseSide("output", req.OutputFormat)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: CHECK SQL PARAMETERS
	// =========================================================================

	if err := req.checkSQL("input", in); err != nil {
		return nil, err
	}
	if err := req.checkSQL("output", out); err != nil {
		return nil, err
	}

	logger := c.logger.With(
		slog.String("input_format", in.String()),
		slog.String("output_format", out.String()))
	logger.Info("conversion started",
		slog.String("input", req.location(in, req.InputPath)),
		slog.String("output", req.location(out, req.OutputPath)))

	// =========================================================================
	// STEP 3: READ INPUT
	// =========================================================================

	ds, err := c.read(ctx, in, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s input: %w", in, err)
	}

	logger.Debug("input loaded", slog.Int("rows", ds.Len()), slog.Int("columns", ds.Width()))

	// =========================================================================
	// STEP 4: WRITE OUTPUT
	// =========================================================================

	if err := c.write(ctx, out, ds, req); err != nil {
		return nil, fmt.Errorf("failed to write %s output: %w", out, err)
	}

	if out != SQL {
		if size, err := utils.FileSize(req.OutputPath); err == nil {
			logger.Debug("output written", slog.String("path", req.OutputPath), slog.Int64("bytes", size))
		}
	}

	result := &Result{
		InputFormat:  in,
		OutputFormat: out,
		OutputPath:   req.OutputPath,
		Rows:         ds.Len(),
		Columns:      ds.Width(),
		Duration:     time.Since(startTime),
	}

	logger.Info("conversion finished",
		slog.Int("rows", result.Rows),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// Load reads only the input side of req. The output fields are ignored.
func (c *Converter) Load(ctx context.Context, req Request) (*dataset.Dataset, error) {
	in, err := parseSide("input", req.InputFormat)
	if err != nil {
		return nil, err
	}
	if err := req.checkSQL("input", in); err != nil {
		return nil, err
	}

	ds, err := c.read(ctx, in, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s input: %w", in, err)
	}
	return ds, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func parseSide(side, name string) (Format, error) {
	f, err := ParseFormat(name)
	if err != nil {
		return 0, &UnsupportedFormatError{Side: side, Value: name}
	}
	return f, nil
}

// checkSQL reports which SQL parameters are missing for a sql side.
// Whitespace-only values count as missing.
func (r Request) checkSQL(side string, f Format) error {
	if f != SQL {
		return nil
	}

	var missing []string
	if strings.TrimSpace(r.DBURI) == "" {
		missing = append(missing, "db_uri")
	}
	if strings.TrimSpace(r.SQLTable) == "" {
		missing = append(missing, "sql_table")
	}
	if len(missing) > 0 {
		return &MissingSQLParametersError{Side: side, Missing: missing}
	}
	return nil
}

// location describes a side for log lines without leaking passwords.
func (r Request) location(f Format, path string) string {
	if f != SQL {
		return path
	}
	return strings.TrimSpace(r.SQLTable) + " @ " + sqltable.Redact(strings.TrimSpace(r.DBURI))
}

// read dispatches to the reader of format f.
func (c *Converter) read(ctx context.Context, f Format, req Request) (*dataset.Dataset, error) {
	switch f {
	case CSV:
		return csvfile.ReadFile(req.InputPath, req.Options.CSV)
	case Excel:
		return excelfile.ReadFile(req.InputPath, req.Options.Excel)
	case JSON:
		return jsonfile.ReadFile(req.InputPath)
	case SQL:
		conn, err := sqltable.Open(ctx, strings.TrimSpace(req.DBURI), c.logger)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return conn.ReadTable(ctx, strings.TrimSpace(req.SQLTable))
	}
	return nil, &UnsupportedFormatError{Side: "input", Value: f.String()}
}

// write dispatches to the writer of format f.
func (c *Converter) write(ctx context.Context, f Format, ds *dataset.Dataset, req Request) error {
	switch f {
	case CSV:
		return csvfile.WriteFile(req.OutputPath, ds, req.Options.CSV)
	case Excel:
		return excelfile.WriteFile(req.OutputPath, ds, req.Options.Excel)
	case JSON:
		return jsonfile.WriteFile(req.OutputPath, ds, req.Options.JSON)
	case SQL:
		conn, err := sqltable.Open(ctx, strings.TrimSpace(req.DBURI), c.logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		ifExists := req.Options.IfExists
		if ifExists == "" {
			ifExists = sqltable.Replace
		}
		return conn.WriteTable(ctx, strings.TrimSpace(req.SQLTable), ds, ifExists)
	}
	return &UnsupportedFormatError{Side: "output", Value: f.String()}
}
