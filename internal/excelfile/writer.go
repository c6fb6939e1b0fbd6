package excelfile

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
	"github.com/ginjaninja78/tabular-converter/pkg/utils"
)

// =============================================================================
// WRITER
// =============================================================================

// WriteFile creates filePath (and any missing parent directories) and writes
// the dataset to it as a workbook.
func WriteFile(filePath string, ds *dataset.Dataset, settings config.ExcelSettings) error {
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

// Write builds a single-sheet workbook holding the dataset and writes it to w.
//
// Nulls, NaN and infinities leave the cell empty. Timestamps are stored as
// spreadsheet dates.
func Write(w io.Writer, ds *dataset.Dataset, settings config.ExcelSettings) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := settings.SheetOrDefault()
	if sheetName != config.DefaultSheetName {
		if err := f.SetSheetName(config.DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("failed to name worksheet: %w", err)
		}
	}

	header := make([]interface{}, ds.Width())
	for j, name := range ds.Columns() {
		header[j] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < ds.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := make([]interface{}, ds.Width())
		for j, v := range ds.Row(i) {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellValue(v any) interface{} {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
