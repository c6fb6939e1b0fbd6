// =============================================================================
// Tabular Converter - CSV Module
// =============================================================================
//
// This module reads and writes delimited text files. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon, any single character)
//   - Different input encodings (UTF-8 with or without BOM, ISO-8859-1,
//     Windows-1252, any IANA charset name)
//   - Quoted fields with embedded delimiters and newlines
//
// The first record is the header row. Every following record becomes one row
// of the dataset. Cell values are typed per column by dataset.InferColumn.
//
// =============================================================================

package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
)

// ErrNoColumns is returned when the input holds no header row at all.
var ErrNoColumns = errors.New("no columns to parse from file")

// =============================================================================
// READER
// =============================================================================

// ReadFile opens filePath and reads it with Read.
func ReadFile(filePath string, settings config.CSVSettings) (*dataset.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, settings)
}

// Read parses CSV text into a dataset.
//
// PARAMETERS:
//   - r: The CSV source.
//   - settings: Delimiter and encoding.
//
// RETURNS:
//   - The dataset. Columns come from the header row: empty names become
//     "Unnamed: <i>" and repeated names get ".1", ".2" suffixes.
//   - An error if the text is not valid CSV, a record has more fields than
//     the header, or the input is empty.
//
// Records shorter than the header are padded with nulls.
func Read(r io.Reader, settings config.CSVSettings) (*dataset.Dataset, error) {
	comma, err := settings.DelimiterRune()
	if err != nil {
		return nil, err
	}

	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(r, decoder))
	configureReader(csvReader, comma)

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := dataset.UniqueColumns(header)
	cells := make([][]string, len(columns))

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if len(record) > len(columns) {
			line, _ := csvReader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w: expected %d fields, saw %d",
				line, csv.ErrFieldCount, len(columns), len(record))
		}

		for j := range columns {
			value := ""
			if j < len(record) {
				value = record[j]
			}
			cells[j] = append(cells[j], value)
		}
	}

	return build(columns, cells)
}

// configureReader applies the parsing options shared by every CSV input.
func configureReader(reader *csv.Reader, comma rune) {
	reader.Comma = comma

	// Record widths are checked against the header by Read so short rows
	// can be padded.
	reader.FieldsPerRecord = -1

	// Allow quotes that don't follow strict CSV rules.
	reader.LazyQuotes = true
}

// build types every column and assembles the dataset row by row.
func build(columns []string, cells [][]string) (*dataset.Dataset, error) {
	ds, err := dataset.New(columns)
	if err != nil {
		return nil, err
	}

	typed := make([][]any, len(columns))
	for j := range columns {
		typed[j] = dataset.InferColumn(cells[j])
	}

	rowCount := 0
	if len(cells) > 0 {
		rowCount = len(cells[0])
	}

	row := make([]any, len(columns))
	for i := 0; i < rowCount; i++ {
		for j := range columns {
			row[j] = typed[j][i]
		}
		if err := ds.Append(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return ds, nil
}

// =============================================================================
// ENCODINGS
// =============================================================================

// isUTF8 reports whether name refers to UTF-8 (the default).
func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// decoderFor returns a transformer producing UTF-8 from the named charset.
// UTF-8 input has a leading byte order mark removed.
func decoderFor(name string) (transform.Transformer, error) {
	if isUTF8(name) {
		return unicode.UTF8BOM.NewDecoder(), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

// encoderFor returns a transformer producing the named charset from UTF-8,
// or nil when no transcoding is needed.
func encoderFor(name string) (transform.Transformer, error) {
	if isUTF8(name) {
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewEncoder(), nil
}
