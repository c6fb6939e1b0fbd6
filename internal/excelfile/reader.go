// =============================================================================
// Tabular Converter - Excel Module
// =============================================================================
//
// This module reads and writes .xlsx workbooks through excelize.
//
// READING:
//   - The first worksheet is read unless a sheet name is configured
//   - Row 1 is the header row, every following non-empty row is a record
//   - Cells keep their spreadsheet type: numbers, booleans, dates, text
//
// WRITING:
//   - A new workbook with a single worksheet ("Sheet1" by default)
//   - Row 1 holds the column names, no index column is written
//
// =============================================================================

package excelfile

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
)

// maxExactInt is the largest integer a spreadsheet number holds exactly.
const maxExactInt = 1 << 53

// =============================================================================
// READER
// =============================================================================

// ReadFile opens the workbook at filePath and reads it with readWorkbook.
func ReadFile(filePath string, settings config.ExcelSettings) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, settings)
}

// Read reads a workbook from r.
func Read(r io.Reader, settings config.ExcelSettings) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, settings)
}

// readWorkbook turns one worksheet into a dataset.
//
// RETURNS:
//   - The dataset. An empty worksheet gives a dataset with no columns.
//   - An error if the configured worksheet does not exist.
func readWorkbook(f *excelize.File, settings config.ExcelSettings) (*dataset.Dataset, error) {
	sheetName := settings.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("worksheet %q not found (available: %s)",
			sheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return dataset.New(nil)
	}

	// Records reaching past the header get unnamed columns.
	width := len(rows[0])
	for _, row := range rows[1:] {
		width = max(width, len(row))
	}
	header := make([]string, width)
	copy(header, rows[0])

	ds, err := dataset.New(dataset.UniqueColumns(header))
	if err != nil {
		return nil, err
	}

	cells := &cellReader{f: f, sheet: sheetName, dateStyles: map[int]bool{}}

	for i := 1; i < len(rows); i++ {
		if isRowEmpty(rows[i]) {
			continue
		}

		record := make([]any, width)
		for j, raw := range rows[i] {
			value, err := cells.value(j+1, i+1, raw)
			if err != nil {
				return nil, fmt.Errorf("error reading row %d: %w", i+1, err)
			}
			record[j] = value
		}

		if err := ds.Append(record); err != nil {
			return nil, fmt.Errorf("error reading row %d: %w", i+1, err)
		}
	}

	return ds, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// CELL TYPING
// =============================================================================

// cellReader converts raw cell text to typed values using the cell's type
// and number format.
type cellReader struct {
	f          *excelize.File
	sheet      string
	dateStyles map[int]bool
}

func (c *cellReader) value(col, row int, raw string) (any, error) {
	if dataset.IsMissing(raw) {
		return nil, nil
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}

	cellType, err := c.f.GetCellType(c.sheet, ref)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil

	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return t, nil
		}
		return raw, nil

	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, nil
		}

		isDate, err := c.isDateCell(ref)
		if err != nil {
			return nil, err
		}
		if isDate {
			t, err := excelize.ExcelDateToTime(n, false)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", ref, err)
			}
			return t, nil
		}

		if n == math.Trunc(n) && math.Abs(n) <= maxExactInt {
			return int64(n), nil
		}
		return n, nil
	}

	return raw, nil
}

// isDateCell reports whether the cell's number format displays a date or time.
func (c *cellReader) isDateCell(ref string) (bool, error) {
	styleID, err := c.f.GetCellStyle(c.sheet, ref)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}

	if isDate, ok := c.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := c.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}

	isDate := isDateNumFmt(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	c.dateStyles[styleID] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in number format id is a date or time.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormatCode reports whether a custom format code contains date or
// time placeholders outside quoted literals and bracketed modifiers.
func isDateFormatCode(code string) bool {
	var (
		plain     strings.Builder
		inQuote   bool
		inBracket bool
		escaped   bool
	)

	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			// elapsed time such as [h] still counts
			if r == 'h' || r == 'H' || r == 'm' || r == 'M' || r == 's' || r == 'S' {
				plain.WriteRune(r)
			}
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			plain.WriteRune(r)
		}
	}

	s := strings.ToLower(plain.String())
	if strings.HasPrefix(s, "general") {
		return false
	}
	return strings.ContainsAny(s, "ydhms")
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
