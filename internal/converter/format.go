package converter

import "strings"

// Format is one of the supported tabular formats.
type Format int

const (
	CSV Format = iota + 1
	Excel
	JSON
	SQL
)

var formatNames = map[Format]string{
	CSV:   "csv",
	Excel: "excel",
	JSON:  "json",
	SQL:   "sql",
}

// FormatNames lists the accepted format names in display order.
func FormatNames() []string {
	return []string{"csv", "excel", "json", "sql"}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat resolves a format name, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, &UnsupportedFormatError{Value: s}
}
