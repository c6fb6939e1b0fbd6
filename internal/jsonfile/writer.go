package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
	"github.com/ginjaninja78/tabular-converter/pkg/utils"
)

// WriteFile creates filePath (and any missing parent directories) and writes
// the dataset to it with Write.
func WriteFile(filePath string, ds *dataset.Dataset, settings config.JSONSettings) error {
	file, err := utils.CreateOutputFile(filePath)
	if err != nil {
		return err
	}

	if err := Write(file, ds, settings); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Write encodes the dataset as an array with one object per row.
//
// Output is compact unless settings.Indent is positive. Floats always carry a
// fraction or exponent so they read back as floats. NaN and infinities are
// written as null, timestamps as RFC 3339 strings.
func Write(w io.Writer, ds *dataset.Dataset, settings config.JSONSettings) error {
	var buf bytes.Buffer
	columns := ds.Columns()

	keys := make([]string, len(columns))
	for j, name := range columns {
		k, err := encodeString(name)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		keys[j] = k
	}

	buf.WriteByte('[')
	for i := 0; i < ds.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, value := range ds.Row(i) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(keys[j])
			buf.WriteByte(':')
			if err := encodeValue(&buf, value); err != nil {
				return fmt.Errorf("row %d, column %q: %w", i+1, columns[j], err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	out := buf.Bytes()
	if settings.Indent > 0 {
		var indented bytes.Buffer
		if err := json.Indent(&indented, out, "", strings.Repeat(" ", settings.Indent)); err != nil {
			return fmt.Errorf("failed to indent JSON: %w", err)
		}
		indented.WriteByte('\n')
		out = indented.Bytes()
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		s, err := encodeString(v)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			return nil
		}
		s := dataset.FormatFloat(v)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case time.Time:
		s, err := encodeString(v.Format(dataset.TimeLayout))
		if err != nil {
			return err
		}
		buf.WriteString(s)
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
	return nil
}

// encodeString quotes s as a JSON string without HTML escaping.
func encodeString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
