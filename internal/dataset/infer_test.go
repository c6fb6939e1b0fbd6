package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  []any
	}{
		{
			name:  "integers",
			cells: []string{"1", "-2", " 3 "},
			want:  []any{int64(1), int64(-2), int64(3)},
		},
		{
			name:  "integers with missing",
			cells: []string{"1", "", "NA"},
			want:  []any{int64(1), nil, nil},
		},
		{
			name:  "floats",
			cells: []string{"1", "2.5", "1e3"},
			want:  []any{1.0, 2.5, 1000.0},
		},
		{
			name:  "booleans any case",
			cells: []string{"true", "False", "TRUE"},
			want:  []any{true, false, true},
		},
		{
			name:  "mixed stays text",
			cells: []string{"1", "Alice", ""},
			want:  []any{"1", "Alice", nil},
		},
		{
			name:  "text keeps surrounding spaces",
			cells: []string{" padded ", "x"},
			want:  []any{" padded ", "x"},
		},
		{
			name:  "all missing",
			cells: []string{"", "null"},
			want:  []any{nil, nil},
		},
		{
			name:  "infinity spelled out is text",
			cells: []string{"Infinity", "1"},
			want:  []any{"Infinity", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumn(tt.cells))
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "N/A", "NaN", "null", "None", "#N/A"} {
		assert.True(t, IsMissing(s), "expected %q to be missing", s)
	}
	for _, s := range []string{"0", "none", "-", "x"} {
		assert.False(t, IsMissing(s), "expected %q to be a value", s)
	}
}

func TestFormatText(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Bob", "Bob"},
		{"int", int64(-42), "-42"},
		{"float", 2.5, "2.5"},
		{"large float", 1234567.0, "1234567"},
		{"tiny float", 1e-9, "1e-09"},
		{"nan", math.NaN(), ""},
		{"bool", true, "true"},
		{"time", ts, "2024-05-06T07:08:09Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatText(tt.value))
		})
	}
}
