package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/transform"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
	"github.com/ginjaninja78/tabular-converter/pkg/utils"
)

// =============================================================================
// WRITER
// =============================================================================

// WriteFile creates filePath (and any missing parent directories) and writes
// the dataset to it with Write.
func WriteFile(filePath string, ds *dataset.Dataset, settings config.CSVSettings) error {
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

// Write serializes the dataset as CSV: a header row, then one record per row.
//
// Nulls are written as empty fields, booleans as "true"/"false" and
// timestamps in RFC 3339 form. No index column is added.
func Write(w io.Writer, ds *dataset.Dataset, settings config.CSVSettings) error {
	comma, err := settings.DelimiterRune()
	if err != nil {
		return err
	}

	encoder, err := encoderFor(settings.Encoding)
	if err != nil {
		return err
	}

	var transcoder *transform.Writer
	if encoder != nil {
		transcoder = transform.NewWriter(w, encoder)
		w = transcoder
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = comma

	if err := csvWriter.Write(ds.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, ds.Width())
	for i := 0; i < ds.Len(); i++ {
		for j, value := range ds.Row(i) {
			record[j] = dataset.FormatText(value)
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if transcoder != nil {
		if err := transcoder.Close(); err != nil {
			return fmt.Errorf("failed to encode CSV output: %w", err)
		}
	}

	return nil
}
