// Package jsonfile reads and writes datasets as JSON arrays of records.
//
// A record is a flat object mapping column names to scalar values. Key order
// is preserved in both directions: columns are the union of keys in the order
// they are first seen, and written objects list fields in column order.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/tabular-converter/internal/dataset"
)

// ErrNotRecords is returned when the document is not an array of objects.
var ErrNotRecords = errors.New("expected a JSON array of objects")

// ReadFile opens filePath and reads it with Read.
func ReadFile(filePath string) (*dataset.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes an array of objects into a dataset.
//
// Keys missing from a record read as null. Numbers written without a
// fraction or exponent become int64 when they fit, every other number
// becomes float64. Nested arrays and objects are kept as compact JSON text.
func Read(r io.Reader) (*dataset.Dataset, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var (
		columns []string
		index   = map[string]int{}
		records []map[string]any
	)

	for dec.More() {
		rec, keys, err := readObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		records = append(records, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level array")
	}

	ds, err := dataset.New(columns)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		row := make([]any, len(columns))
		for k, v := range rec {
			row[index[k]] = v
		}
		if err := ds.Append(row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	return ds, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected end of input", ErrNotRecords)
	}
	if err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: found %v", ErrNotRecords, tok)
	}
	return nil
}

// readObject consumes one object and returns its values plus its keys in
// document order. A repeated key keeps its last value.
func readObject(dec *json.Decoder) (map[string]any, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}

	rec := map[string]any{}
	var keys []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("failed to parse JSON: unexpected %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		value, err := scalar(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}

		if _, seen := rec[key]; !seen {
			keys = append(keys, key)
		}
		rec[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return rec, keys, nil
}

// scalar converts one raw JSON value to a dataset cell.
func scalar(raw json.RawMessage) (any, error) {
	switch raw[0] {
	case 'n':
		return nil, nil
	case 't':
		return true, nil
	case 'f':
		return false, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}
	return number(json.Number(raw))
}

func number(n json.Number) (any, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %s: %w", n, err)
	}
	return f, nil
}
