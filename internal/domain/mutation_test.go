package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoost(t *testing.T) {
	tests := []struct {
		name       string
		number     int64
		percentage float64
		expected   int64
	}{
		{
			name:       "plus 100 percent doubles",
			number:     100,
			percentage: 100,
			expected:   200,
		},
		{
			name:       "fractional percent truncates",
			number:     100,
			percentage: 37.5,
			expected:   137,
		},
		{
			name:       "zero percent keeps the number",
			number:     12345,
			percentage: 0,
			expected:   12345,
		},
		{
			name:       "large number",
			number:     1_000_000,
			percentage: 400,
			expected:   5_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Boost(tt.number, tt.percentage))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "single digit", input: 5, expected: "5"},
		{name: "three digits", input: 999, expected: "999"},
		{name: "four digits", input: 1000, expected: "1 000"},
		{name: "seven digits", input: 1234567, expected: "1 234 567"},
		{name: "zero", input: 0, expected: "0"},
		{name: "negative", input: -1234, expected: "-1 234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestMutationByEmoji(t *testing.T) {
	golden := MutationByEmoji("🟡")
	assert.Equal(t, "Golden", golden.NameEN)

	// Unknown emoji falls back to the first category.
	unknown := MutationByEmoji("🤷")
	assert.Equal(t, Mutations[0].NameEN, unknown.NameEN)
}

func TestMutation_Name(t *testing.T) {
	m := Mutations[0]
	assert.Equal(t, m.NameRU, m.Name("ru"))
	assert.Equal(t, m.NameEN, m.Name("en"))
	assert.Equal(t, m.NameEN, m.Name("de"))
}
