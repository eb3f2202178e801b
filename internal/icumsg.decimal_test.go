package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDec(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		minFrac int
		maxFrac int
		digits  []byte
		exp     int
		scale   int
	}{
		{
			name:  "integer",
			value: 1, digits: []byte{1}, exp: 1, scale: 0,
		},
		{
			name:  "multi digit integer",
			value: 1230, digits: []byte{1, 2, 3}, exp: 4, scale: 0,
		},
		{
			name:  "zero",
			value: 0, digits: nil, exp: 0, scale: 0,
		},
		{
			name:  "simple fraction",
			value: 1.5, maxFrac: 3, digits: []byte{1, 5}, exp: 1, scale: 1,
		},
		{
			name:  "fraction below one",
			value: 0.25, maxFrac: 3, digits: []byte{2, 5}, exp: 0, scale: 2,
		},
		{
			name:  "negative uses absolute value",
			value: -1.5, maxFrac: 3, digits: []byte{1, 5}, exp: 1, scale: 1,
		},
		{
			name:  "max fraction rounds",
			value: 1.23456, maxFrac: 2, digits: []byte{1, 2, 3}, exp: 1, scale: 2,
		},
		{
			name:  "min fraction pads scale",
			value: 1, minFrac: 2, maxFrac: 3, digits: []byte{1}, exp: 1, scale: 2,
		},
		{
			name:  "rounding trims trailing zeros",
			value: 1.103, maxFrac: 2, digits: []byte{1, 1}, exp: 1, scale: 1,
		},
		{
			name:  "nan treated as zero",
			value: math.NaN(), digits: nil, exp: 0, scale: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := FormatDec(tt.value, tt.minFrac, tt.maxFrac)
			assert.Equal(t, tt.digits, dec.Digits)
			assert.Equal(t, tt.exp, dec.Exp)
			assert.Equal(t, tt.scale, dec.Scale)
		})
	}
}

func TestIsInt(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int64
		ok       bool
	}{
		{name: "zero", value: 0, expected: 0, ok: true},
		{name: "positive", value: 42, expected: 42, ok: true},
		{name: "negative", value: -7, expected: -7, ok: true},
		{name: "fraction", value: 1.5, ok: false},
		{name: "nan", value: math.NaN(), ok: false},
		{name: "huge", value: 1e300, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IsInt(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
