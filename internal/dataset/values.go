package dataset

import (
	"math"
	"strconv"
	"time"
)

// Kind classifies a cell value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindString:  "string",
	KindInt:     "int",
	KindFloat:   "float",
	KindBool:    "bool",
	KindTime:    "time",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf returns the Kind of v, or KindInvalid for unsupported types.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	case time.Time:
		return KindTime
	default:
		return KindInvalid
	}
}

// TimeLayout is the text form used for timestamps in text outputs.
const TimeLayout = time.RFC3339Nano

// FormatText renders a cell as text for delimited output.
// Null cells and NaN render as the empty string.
func FormatText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return FormatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(TimeLayout)
	default:
		return ""
	}
}

// FormatFloat renders f in the shortest form that parses back to the same
// value, switching to exponent notation only for very large or small numbers.
func FormatFloat(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.FormatFloat(f, format, -1, 64)
}
