package dataset

import (
	"strconv"
	"strings"
)

// missingMarkers are cell texts read as null.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
}

// IsMissing reports whether a text cell stands for a missing value.
func IsMissing(s string) bool {
	return missingMarkers[strings.TrimSpace(s)]
}

// InferColumn converts the text cells of one column to typed values.
//
// Missing cells become nil. The remaining cells are converted to int64 when
// all of them are integers, otherwise to float64 when all of them are
// numbers, otherwise to bool when all of them are true/false. Anything else
// leaves the column as the original strings.
func InferColumn(cells []string) []any {
	out := make([]any, len(cells))

	switch {
	case allCells(cells, isInt):
		fillCells(out, cells, func(s string) any {
			n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			return n
		})
	case allCells(cells, isFloat):
		fillCells(out, cells, func(s string) any {
			f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return f
		})
	case allCells(cells, isBool):
		fillCells(out, cells, func(s string) any {
			return strings.EqualFold(strings.TrimSpace(s), "true")
		})
	default:
		fillCells(out, cells, func(s string) any { return s })
	}

	return out
}

// allCells reports whether every non-missing cell satisfies ok.
// A column with no values at all matches nothing and stays textual.
func allCells(cells []string, ok func(string) bool) bool {
	seen := false
	for _, c := range cells {
		if IsMissing(c) {
			continue
		}
		if !ok(strings.TrimSpace(c)) {
			return false
		}
		seen = true
	}
	return seen
}

func fillCells(out []any, cells []string, conv func(string) any) {
	for i, c := range cells {
		if IsMissing(c) {
			out[i] = nil
			continue
		}
		out[i] = conv(c)
	}
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	// spelled-out infinity stays textual
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "infinity", "nan":
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isBool(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
